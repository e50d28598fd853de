package raster

import (
	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"

	"outline/pkg/outline"
	"outline/pkg/scene"
)

func toColor(c outline.RGBA) fauxgl.Color {
	return fauxgl.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

func clipPosition(mvp mgl32.Mat4, p fauxgl.Vector) fauxgl.VectorW {
	c := mvp.Mul4x1(mgl32.Vec4{float32(p.X), float32(p.Y), float32(p.Z), 1})
	return fauxgl.VectorW{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2]), W: float64(c[3])}
}

// flatShader fills every covered pixel with one unlit color
type flatShader struct {
	mvp   mgl32.Mat4
	color fauxgl.Color
}

func newFlatShader(proj, mv mgl32.Mat4, c outline.RGBA) *flatShader {
	return &flatShader{mvp: proj.Mul4(mv), color: toColor(c)}
}

func (s *flatShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = clipPosition(s.mvp, v.Position)
	return v
}

func (s *flatShader) Fragment(fauxgl.Vertex) fauxgl.Color {
	return s.color
}

// litShader applies the ambient plus directional model per pixel with
// view-space normals
type litShader struct {
	mvp     mgl32.Mat4
	normal  mgl32.Mat3
	lights  scene.Lights
	toLight mgl32.Vec3
	base    [4]float32
}

func newLitShader(proj, mv mgl32.Mat4, lights scene.Lights, base outline.RGBA) *litShader {
	return &litShader{
		mvp:     proj.Mul4(mv),
		normal:  mv.Mat3(),
		lights:  lights,
		toLight: lights.ToLight(mv),
		base:    base,
	}
}

func (s *litShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	n := s.normal.Mul3x1(mgl32.Vec3{float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)})
	v.Normal = fauxgl.Vector{X: float64(n[0]), Y: float64(n[1]), Z: float64(n[2])}
	v.Output = clipPosition(s.mvp, v.Position)
	return v
}

func (s *litShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	n := mgl32.Vec3{float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)}
	if n.Len() > 0 {
		n = n.Normalize()
	}
	return toColor(s.lights.Shade(n, s.toLight, s.base))
}

// triangles converts a flat mesh into fauxgl triangles
func triangles(m *scene.Mesh) []*fauxgl.Triangle {
	if m == nil {
		return nil
	}
	vec := func(v mgl32.Vec3) fauxgl.Vector {
		return fauxgl.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
	}
	out := make([]*fauxgl.Triangle, 0, m.Count()/3)
	for i := 0; i+2 < m.Count(); i += 3 {
		var vs [3]fauxgl.Vertex
		for k := range vs {
			p, n := m.Vertex(i + k)
			vs[k] = fauxgl.Vertex{Position: vec(p), Normal: vec(n)}
		}
		out = append(out, &fauxgl.Triangle{V1: vs[0], V2: vs[1], V3: vs[2]})
	}
	return out
}
