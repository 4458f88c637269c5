package subject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/murmurtest"
)

func TestBehaviorSeedsSubscribers(t *testing.T) {
	b := NewBehavior(21.5)

	early := murmurtest.NewRecorder[float64]()
	_, err := b.Subscribe(early)
	require.NoError(t, err)
	assert.Equal(t, []float64{21.5}, early.Values())

	b.OnNext(22.0)

	late := murmurtest.NewRecorder[float64]()
	_, err = b.Subscribe(late)
	require.NoError(t, err)

	assert.Equal(t, []float64{21.5, 22.0}, early.Values())
	assert.Equal(t, []float64{22.0}, late.Values())

	b.OnNext(22.5)
	assert.Equal(t, []float64{22.0, 22.5}, late.Values())
}

func TestBehaviorValue(t *testing.T) {
	t.Run("starts at the seed and follows OnNext", func(t *testing.T) {
		b := NewBehavior("seed")

		v, err := b.Value()
		require.NoError(t, err)
		assert.Equal(t, "seed", v)

		b.OnNext("updated")
		v, err = b.Value()
		require.NoError(t, err)
		assert.Equal(t, "updated", v)
	})

	t.Run("completion freezes the value", func(t *testing.T) {
		b := NewBehavior(1)
		b.OnNext(2)
		b.OnCompleted()
		b.OnNext(3)

		v, err := b.Value()
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("failure surfaces the terminal error", func(t *testing.T) {
		boom := errors.New("boom")
		b := NewBehavior(1)
		b.OnError(boom)

		_, err := b.Value()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("disposal makes the value unavailable", func(t *testing.T) {
		b := NewBehavior(1)
		b.Dispose()

		_, err := b.Value()
		assert.ErrorIs(t, err, murmur.ErrDisposed)
	})
}

func TestBehaviorTerminated(t *testing.T) {
	t.Run("late subscriber gets only completion", func(t *testing.T) {
		b := NewBehavior(5)
		b.OnCompleted()

		rec := murmurtest.NewRecorder[int]()
		sub, err := b.Subscribe(rec)
		require.NoError(t, err)
		assert.True(t, sub.IsDisposed())

		assert.Empty(t, rec.Values())
		assert.True(t, rec.Completed())
	})

	t.Run("late subscriber gets only the error", func(t *testing.T) {
		boom := errors.New("boom")
		b := NewBehavior(5)
		b.OnError(boom)

		rec := murmurtest.NewRecorder[int]()
		_, err := b.Subscribe(rec)
		require.NoError(t, err)

		assert.Empty(t, rec.Values())
		assert.ErrorIs(t, rec.Err(), boom)
	})

	t.Run("terminal is idempotent", func(t *testing.T) {
		b := NewBehavior(0)
		rec := murmurtest.NewRecorder[int]()
		_, err := b.Subscribe(rec)
		require.NoError(t, err)

		b.OnCompleted()
		b.OnCompleted()
		b.OnError(errors.New("late"))

		// seed plus one completion
		assert.Len(t, rec.Sparks(), 2)
	})
}

func TestBehaviorDisposed(t *testing.T) {
	b := NewBehavior(1)
	b.Dispose()
	require.True(t, b.IsDisposed())

	_, err := b.Subscribe(murmurtest.NewRecorder[int]())
	assert.ErrorIs(t, err, murmur.ErrDisposed)
	assert.PanicsWithValue(t, murmur.ErrDisposed, func() { b.OnNext(2) })
	assert.PanicsWithValue(t, murmur.ErrDisposed, func() { b.OnCompleted() })
}

func TestBehaviorUnsubscribe(t *testing.T) {
	b := NewBehavior(0)

	rec := murmurtest.NewRecorder[int]()
	sub, err := b.Subscribe(rec)
	require.NoError(t, err)
	assert.True(t, b.HasObservers())

	sub.Dispose()
	assert.False(t, b.HasObservers())

	b.OnNext(1)
	assert.Equal(t, []int{0}, rec.Values())
}
