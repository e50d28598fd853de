package scene

import "github.com/go-gl/mathgl/mgl32"

// Lights is one ambient term plus one directional light
type Lights struct {
	Ambient   mgl32.Vec3
	Color     mgl32.Vec3
	Direction mgl32.Vec3 // normalized, pointing away from the light
}

// NewLights normalizes direction. A zero direction falls back to straight down.
func NewLights(ambient, color, direction [3]float32) Lights {
	dir := mgl32.Vec3(direction)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	return Lights{
		Ambient:   mgl32.Vec3(ambient),
		Color:     mgl32.Vec3(color),
		Direction: dir.Normalize(),
	}
}

// ToLight returns the direction toward the light in view space. The light
// rides with the model-view, so shading is stable relative to the object.
func (l Lights) ToLight(mv mgl32.Mat4) mgl32.Vec3 {
	return mv.Mul4x1(l.Direction.Mul(-1).Vec4(0)).Vec3()
}

// Shade returns the lit color of a surface with view-space normal n
func (l Lights) Shade(n, toLight mgl32.Vec3, base [4]float32) [4]float32 {
	ndotl := n.Dot(toLight)
	if ndotl < 0 {
		ndotl = 0
	}
	var out [4]float32
	for i := 0; i < 3; i++ {
		out[i] = l.Ambient[i]*base[i] + ndotl*l.Color[i]*base[i]
	}
	out[3] = base[3]
	return out
}
