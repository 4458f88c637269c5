package op

import (
	"testing"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/murmurtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize(t *testing.T) {
	t.Run("values then a completed spark", func(t *testing.T) {
		rec := murmurtest.NewRecorder[murmur.Spark[int]]()

		_, err := Materialize(murmur.Just(1, 2)).Subscribe(rec)
		require.NoError(t, err)

		sparks := rec.Values()
		require.Len(t, sparks, 3)
		assert.Equal(t, murmur.NextSpark(1), sparks[0])
		assert.Equal(t, murmur.NextSpark(2), sparks[1])
		assert.Equal(t, murmur.KindCompleted, sparks[2].Kind())
		assert.True(t, rec.Completed(), "materialized streams always complete")
	})

	t.Run("failure becomes an error spark", func(t *testing.T) {
		rec := murmurtest.NewRecorder[murmur.Spark[int]]()

		_, err := Materialize(murmur.Throw[int](assert.AnError)).Subscribe(rec)
		require.NoError(t, err)

		sparks := rec.Values()
		require.Len(t, sparks, 1)
		assert.Equal(t, murmur.KindError, sparks[0].Kind())
		assert.ErrorIs(t, sparks[0].Err(), assert.AnError)
		assert.NoError(t, rec.Err())
		assert.True(t, rec.Completed())
	})
}

func TestDematerialize(t *testing.T) {
	t.Run("round trips a materialized stream", func(t *testing.T) {
		rec := murmurtest.NewRecorder[int]()

		_, err := Dematerialize(Materialize(murmur.Just(1, 2, 3))).Subscribe(rec)
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2, 3}, rec.Values())
		assert.True(t, rec.Completed())
	})

	t.Run("error spark fails the stream and drops the rest", func(t *testing.T) {
		src := murmur.Create(func(o murmur.Observer[murmur.Spark[int]]) (disposal.Disposable, error) {
			o.OnNext(murmur.NextSpark(1))
			o.OnNext(murmur.ErrorSpark[int](assert.AnError))
			o.OnNext(murmur.NextSpark(2))
			o.OnCompleted()
			return disposal.Noop(), nil
		})
		rec := murmurtest.NewRecorder[int]()

		_, err := Dematerialize(src).Subscribe(rec)
		require.NoError(t, err)

		assert.Equal(t, []int{1}, rec.Values())
		assert.ErrorIs(t, rec.Err(), assert.AnError)
		require.Len(t, rec.Sparks(), 2, "nothing after the terminal spark")
	})
}
