package murmur

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefer(t *testing.T) {
	t.Run("builds the stream at subscription time", func(t *testing.T) {
		var built int
		src := Defer(func() (Observable[int], error) {
			built++
			return Just(built), nil
		})

		assert.Zero(t, built)

		first := newRecorder[int]()
		_, err := src.Subscribe(first)
		require.NoError(t, err)

		second := newRecorder[int]()
		_, err = src.Subscribe(second)
		require.NoError(t, err)

		assert.Equal(t, 2, built)
		assert.Equal(t, []int{1}, first.values())
		assert.Equal(t, []int{2}, second.values())
	})

	t.Run("returns the factory error", func(t *testing.T) {
		boom := errors.New("no stream for you")
		src := Defer(func() (Observable[int], error) {
			return nil, boom
		})

		d, err := src.Subscribe(newRecorder[int]())
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, d)
	})
}
