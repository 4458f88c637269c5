package murmurtest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casualjim/murmur/scheduler"
)

func TestRecorder(t *testing.T) {
	t.Run("keeps notifications in arrival order", func(t *testing.T) {
		rec := NewRecorder[int]()
		rec.OnNext(1)
		rec.OnNext(2)
		rec.OnCompleted()

		assert.Equal(t, []int{1, 2}, rec.Values())
		assert.True(t, rec.Completed())
		assert.True(t, rec.Terminal())
		assert.NoError(t, rec.Err())
		require.Len(t, rec.Sparks(), 3)
	})

	t.Run("surfaces the terminal error", func(t *testing.T) {
		boom := errors.New("boom")
		rec := NewRecorder[int]()
		rec.OnNext(1)
		rec.OnError(boom)

		assert.ErrorIs(t, rec.Err(), boom)
		assert.False(t, rec.Completed())
		assert.True(t, rec.Terminal())
	})

	t.Run("stamps records with the injected clock", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		virt := scheduler.NewVirtual(scheduler.WithStart(start))
		rec := NewRecorder[string](WithClock(virt))

		EmitAt(virt, rec, 2*time.Second, "late")
		rec.OnNext("now")
		require.NoError(t, virt.Drain())

		recs := rec.Records()
		require.Len(t, recs, 2)
		assert.Equal(t, start, time.Time(recs[0].At))
		assert.Equal(t, start.Add(2*time.Second), time.Time(recs[1].At))
	})

	t.Run("reset drops the recording", func(t *testing.T) {
		rec := NewRecorder[int]()
		rec.OnNext(1)
		rec.Reset()
		assert.Empty(t, rec.Sparks())
	})

	t.Run("renders a json timeline", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		virt := scheduler.NewVirtual(scheduler.WithStart(start))
		rec := NewRecorder[int](WithClock(virt))

		rec.OnNext(7)
		rec.OnCompleted()

		data, err := rec.JSON()
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"at":"2024-03-01T12:00:00.000Z","spark":{"kind":"next","value":7}},
			{"at":"2024-03-01T12:00:00.000Z","spark":{"kind":"completed"}}
		]`, string(data))
	})
}

func TestScript(t *testing.T) {
	virt := scheduler.NewVirtual()
	rec := NewRecorder[int](WithClock(virt))

	EmitAt(virt, rec, time.Second, 1)
	EmitAt(virt, rec, 2*time.Second, 2)
	CompleteAt[int](virt, rec, 3*time.Second)

	require.NoError(t, virt.AdvanceBy(2*time.Second))
	assert.Equal(t, []int{1, 2}, rec.Values())
	assert.False(t, rec.Terminal())

	require.NoError(t, virt.AdvanceBy(time.Second))
	assert.True(t, rec.Completed())
}
