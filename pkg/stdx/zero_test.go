package stdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		assert.Equal(t, 0, Zero[int]())
		assert.Equal(t, int64(0), Zero[int64]())
		assert.Equal(t, float64(0), Zero[float64]())
		assert.Equal(t, "", Zero[string]())
		assert.Equal(t, false, Zero[bool]())
	})

	t.Run("reference types", func(t *testing.T) {
		assert.Nil(t, Zero[[]int]())
		assert.Nil(t, Zero[map[string]int]())
		assert.Nil(t, Zero[*int]())
		assert.Nil(t, Zero[chan int]())
		assert.Nil(t, Zero[error]())
	})

	t.Run("struct", func(t *testing.T) {
		type pair struct {
			A int
			B string
		}
		assert.Equal(t, pair{}, Zero[pair]())
	})
}
