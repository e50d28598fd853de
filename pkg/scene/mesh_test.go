package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCube(t *testing.T) {
	m := &Mesh{}
	m.AddCube(1, 2, 3, 2, 4, 6)
	require.Equal(t, 36, m.Count())
	require.Len(t, m.Normals, len(m.Vertices))

	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, lo)
	assert.Equal(t, mgl32.Vec3{2, 4, 6}, hi)

	// every triangle winds counter-clockwise around its outward normal
	for i := 0; i < m.Count(); i += 3 {
		a, n := m.Vertex(i)
		b, _ := m.Vertex(i + 1)
		c, _ := m.Vertex(i + 2)
		cross := b.Sub(a).Cross(c.Sub(a)).Normalize()
		assert.InDeltaSlice(t, n[:], cross[:], 1e-6, "triangle %d", i/3)
	}
}

func TestNewTable(t *testing.T) {
	opt := DefaultTableOptions()
	m := NewTable(opt)
	assert.Equal(t, 9*36, m.Count())

	lo, hi := m.Bounds()
	assert.InDelta(t, -0.5, lo.X(), 1e-6)
	assert.InDelta(t, 0.5, hi.X(), 1e-6)
	assert.InDelta(t, -0.25, lo.Y(), 1e-6)
	assert.InDelta(t, 0.25+opt.LegSize/2, hi.Y(), 1e-6)
	assert.InDelta(t, -0.5, lo.Z(), 1e-6)
}

func TestNewFloor(t *testing.T) {
	m := NewFloor(4, -0.3)
	lo, hi := m.Bounds()
	assert.InDelta(t, -2, lo.X(), 1e-6)
	assert.InDelta(t, 2, hi.Z(), 1e-6)
	assert.InDelta(t, -0.3, (lo.Y()+hi.Y())/2, 1e-6)
}

func TestEmptyBounds(t *testing.T) {
	lo, hi := (&Mesh{}).Bounds()
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}
