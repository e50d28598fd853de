package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera looks down -Z at the origin from Distance units away
type Camera struct {
	FovDeg   float32
	Aspect   float32
	Near     float32
	Far      float32
	Distance float32
	// BackgroundTiltDeg tilts the static background toward the viewer
	BackgroundTiltDeg float32
}

// DefaultCamera returns the framing used for the table model
func DefaultCamera(aspect float32) Camera {
	return Camera{
		FovDeg:            60,
		Aspect:            aspect,
		Near:              0.1,
		Far:               100,
		Distance:          1.707,
		BackgroundTiltDeg: 20,
	}
}

// Projection returns the perspective matrix
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovDeg), c.Aspect, c.Near, c.Far)
}

// ModelView places the object: longitude about Y (plus the user yaw),
// the user pitch about X, then latitude about Z.
func (c Camera) ModelView(longitude, latitude, yawDeg, pitchDeg float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -c.Distance).
		Mul4(mgl32.HomogRotate3DY(longitude + mgl32.DegToRad(yawDeg))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(pitchDeg))).
		Mul4(mgl32.HomogRotate3DZ(latitude))
}

// BackgroundView is the fixed model-view of the static scenery
func (c Camera) BackgroundView() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -c.Distance).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.BackgroundTiltDeg)))
}

// Scaled returns mv with a uniform model-space scale applied first. With the
// camera aimed at the origin the scale also pushes the copy away from the
// viewer, which keeps it behind the real object.
func Scaled(mv mgl32.Mat4, factor float32) mgl32.Mat4 {
	return mv.Mul4(mgl32.Scale3D(factor, factor, factor))
}
