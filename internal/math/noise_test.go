package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerlinIsZeroOnLattice(t *testing.T) {
	g := NewGenerator(7)
	for _, p := range [][2]float64{{0, 0}, {3, 5}, {-2, 4}} {
		assert.InDelta(t, 0, g.Perlin2D(p[0], p[1]), 1e-12)
	}
}

func TestFieldIsDeterministic(t *testing.T) {
	a := NewGenerator(42).Field(16, 8, 4, 3)
	b := NewGenerator(42).Field(16, 8, 4, 3)
	c := NewGenerator(43).Field(16, 8, 4, 3)

	require.Len(t, a, 16*8)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFBMRange(t *testing.T) {
	g := NewGenerator(1)
	for _, v := range g.Field(32, 32, 5, 4) {
		assert.GreaterOrEqual(t, v, -1.5)
		assert.LessOrEqual(t, v, 1.5)
	}
}
