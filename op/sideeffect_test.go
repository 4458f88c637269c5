package op

import (
	"testing"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/murmurtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTap(t *testing.T) {
	t.Run("spy sees every notification before downstream", func(t *testing.T) {
		var order []string
		spy := murmur.NewObserver(
			func(v int) { order = append(order, "spy") },
			nil,
			func() { order = append(order, "spy done") },
		)
		probe := murmur.NewObserver(
			func(v int) { order = append(order, "down") },
			nil,
			func() { order = append(order, "down done") },
		)

		_, err := Tap(murmur.Just(1, 2), spy).Subscribe(probe)
		require.NoError(t, err)

		assert.Equal(t, []string{"spy", "down", "spy", "down", "spy done", "down done"}, order)
	})

	t.Run("stream is unchanged", func(t *testing.T) {
		seen := 0
		spy := murmur.NewObserver(func(v int) { seen += v }, nil, nil)
		rec := murmurtest.NewRecorder[int]()

		_, err := Tap(murmur.Just(3, 4), spy).Subscribe(rec)
		require.NoError(t, err)

		assert.Equal(t, []int{3, 4}, rec.Values())
		assert.True(t, rec.Completed())
		assert.Equal(t, 7, seen)
	})

	t.Run("spy sees failures", func(t *testing.T) {
		var spied error
		spy := murmur.NewObserver[int](nil, func(err error) { spied = err }, nil)
		rec := murmurtest.NewRecorder[int]()

		_, err := Tap(murmur.Throw[int](assert.AnError), spy).Subscribe(rec)
		require.NoError(t, err)

		assert.ErrorIs(t, spied, assert.AnError)
		assert.ErrorIs(t, rec.Err(), assert.AnError)
	})
}
