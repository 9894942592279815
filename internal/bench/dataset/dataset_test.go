package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Random(t *testing.T) {
	g := NewGenerator(1)

	data := g.Random(5000)
	assert.Len(t, data, 5000)
	for _, v := range data {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, MaxValue)
	}

	assert.Empty(t, g.Random(0))
	assert.Empty(t, g.Random(-3))
}

func TestGenerator_SeedIsReproducible(t *testing.T) {
	assert.Equal(t, NewGenerator(42).Random(100), NewGenerator(42).Random(100))
	assert.NotEqual(t, NewGenerator(42).Random(100), NewGenerator(43).Random(100))
}

func TestClone(t *testing.T) {
	src := []int{3, 1, 2}
	dst := Clone(src)
	dst[0] = 99

	assert.Equal(t, []int{3, 1, 2}, src)
	assert.NotNil(t, Clone(nil))
}
