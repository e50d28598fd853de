package scene

import "github.com/go-gl/mathgl/mgl32"

// Mesh is a flat triangle list with one normal per vertex, laid out the way
// it is uploaded: three floats per position and per normal.
type Mesh struct {
	Vertices []float32
	Normals  []float32
}

// Count returns the number of vertices
func (m *Mesh) Count() int {
	return len(m.Vertices) / 3
}

// Vertex returns position and normal of vertex i
func (m *Mesh) Vertex(i int) (pos, normal mgl32.Vec3) {
	j := i * 3
	pos = mgl32.Vec3{m.Vertices[j], m.Vertices[j+1], m.Vertices[j+2]}
	normal = mgl32.Vec3{m.Normals[j], m.Normals[j+1], m.Normals[j+2]}
	return pos, normal
}

// Bounds returns the axis-aligned box enclosing every vertex
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m.Count() == 0 {
		return lo, hi
	}
	lo, _ = m.Vertex(0)
	hi = lo
	for i := 1; i < m.Count(); i++ {
		p, _ := m.Vertex(i)
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	return lo, hi
}

func (m *Mesh) addVertex(v, n mgl32.Vec3) {
	m.Vertices = append(m.Vertices, v[0], v[1], v[2])
	m.Normals = append(m.Normals, n[0], n[1], n[2])
}

func (m *Mesh) addTri(a, b, c, n mgl32.Vec3) {
	m.addVertex(a, n)
	m.addVertex(b, n)
	m.addVertex(c, n)
}

// AddCube appends an axis-aligned box centered at (x, y, z)
func (m *Mesh) AddCube(x, y, z, sx, sy, sz float32) {
	hx, hy, hz := sx/2, sy/2, sz/2

	a := mgl32.Vec3{x - hx, y - hy, z - hz}
	b := mgl32.Vec3{x - hx, y - hy, z + hz}
	c := mgl32.Vec3{x - hx, y + hy, z - hz}
	d := mgl32.Vec3{x - hx, y + hy, z + hz}
	e := mgl32.Vec3{x + hx, y - hy, z - hz}
	f := mgl32.Vec3{x + hx, y - hy, z + hz}
	g := mgl32.Vec3{x + hx, y + hy, z - hz}
	h := mgl32.Vec3{x + hx, y + hy, z + hz}

	faces := []struct {
		n          mgl32.Vec3
		t1, t2, t3 mgl32.Vec3
		u1, u2, u3 mgl32.Vec3
	}{
		{mgl32.Vec3{-1, 0, 0}, a, b, d, d, c, a},
		{mgl32.Vec3{1, 0, 0}, f, e, g, g, h, f},
		{mgl32.Vec3{0, -1, 0}, a, e, f, f, b, a},
		{mgl32.Vec3{0, 1, 0}, c, d, h, h, g, c},
		{mgl32.Vec3{0, 0, -1}, a, c, g, g, e, a},
		{mgl32.Vec3{0, 0, 1}, b, f, h, h, d, b},
	}
	for _, face := range faces {
		m.addTri(face.t1, face.t2, face.t3, face.n)
		m.addTri(face.u1, face.u2, face.u3, face.n)
	}
}

// TableOptions sizes the table model
type TableOptions struct {
	Height  float32
	Radius  float32
	LegSize float32
}

// DefaultTableOptions is the selectable object's default shape
func DefaultTableOptions() TableOptions {
	return TableOptions{Height: 0.5, Radius: 0.5, LegSize: 0.075}
}

// NewTable builds a four-legged table centered on the origin: legs, four
// cross-bars and a square top.
func NewTable(opt TableOptions) *Mesh {
	m := &Mesh{}
	bottomY := -opt.Height / 2
	legY := bottomY + opt.Height/2
	legPos := 0.7 * opt.Radius
	crossY := bottomY + 0.333*opt.Height
	crossLen := 2 * legPos
	crossSize := 0.6 * opt.LegSize

	for _, p := range [][2]float32{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		m.AddCube(p[0]*legPos, legY, p[1]*legPos, opt.LegSize, opt.Height, opt.LegSize)
	}

	m.AddCube(-legPos, crossY, 0, crossSize, crossSize, crossLen)
	m.AddCube(legPos, crossY, 0, crossSize, crossSize, crossLen)
	m.AddCube(0, crossY, -legPos, crossLen, crossSize, crossSize)
	m.AddCube(0, crossY, legPos, crossLen, crossSize, crossSize)

	m.AddCube(0, bottomY+opt.Height, 0, 2*opt.Radius, opt.LegSize, 2*opt.Radius)
	return m
}

// NewFloor builds a thin square slab used as static background
func NewFloor(size, y float32) *Mesh {
	m := &Mesh{}
	m.AddCube(0, y, 0, size, 0.02, size)
	return m
}
