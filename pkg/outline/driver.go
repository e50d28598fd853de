package outline

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"outline/pkg/scene"
)

const fullTurn = 2 * math.Pi

// Angle returns velocity*elapsed wrapped into [0, 2π)
func Angle(velocity, elapsed float64) float64 {
	a := math.Mod(velocity*elapsed, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	return a
}

// Rotation derives both model angles from one rotation period
type Rotation struct {
	Period float64 // seconds per full longitude turn
}

// LongitudeVelocity is in radians per second
func (r Rotation) LongitudeVelocity() float64 {
	return fullTurn / r.Period
}

// LatitudeVelocity is a quarter of the longitude velocity
func (r Rotation) LatitudeVelocity() float64 {
	return 0.5 * math.Pi / r.Period
}

// Transform is the object's orientation for one frame
type Transform struct {
	Longitude float64 // radians
	Latitude  float64 // radians
	YawDeg    float64 // user offset
	PitchDeg  float64 // user offset
}

// At returns the orientation after elapsed seconds, without user offsets
func (r Rotation) At(elapsed float64) Transform {
	if r.Period <= 0 {
		return Transform{}
	}
	return Transform{
		Longitude: Angle(r.LongitudeVelocity(), elapsed),
		Latitude:  Angle(r.LatitudeVelocity(), elapsed),
	}
}

// FrameSettings is everything besides time that shapes a frame plan
type FrameSettings struct {
	Technique Technique
	Camera    scene.Camera
	Rotation  Rotation
	// Margin is the relative growth of the offset technique's duplicate
	Margin float32
}

// Executor carries out a frame plan on some backend
type Executor interface {
	Execute(cmds FrameCommands) error
}

// Driver is the scene loop state: the settings plus the user's rotation
// offsets. It has a single running state; the host calls Tick once per
// display refresh and tears the process down to stop it.
type Driver struct {
	settings FrameSettings
	keyStep  float64
	yaw      float64
	pitch    float64
	frames   uint64
}

// NewDriver creates a driver. keyStepDeg is the rotation per arrow-key press.
func NewDriver(settings FrameSettings, keyStepDeg float64) *Driver {
	return &Driver{settings: settings, keyStep: keyStepDeg}
}

// Settings returns the driver's frame settings
func (d *Driver) Settings() FrameSettings {
	return d.settings
}

// SetAspect follows a viewport size change. Non-positive aspects are ignored.
func (d *Driver) SetAspect(aspect float32) {
	if aspect > 0 {
		d.settings.Camera.Aspect = aspect
	}
}

// Nudge adjusts the user offsets by whole key presses: dx about the
// vertical axis, dy about the horizontal axis.
func (d *Driver) Nudge(dx, dy int) {
	d.yaw += float64(dx) * d.keyStep
	d.pitch += float64(dy) * d.keyStep
}

// Offsets returns the accumulated yaw and pitch in degrees
func (d *Driver) Offsets() (yawDeg, pitchDeg float64) {
	return d.yaw, d.pitch
}

// Frames returns how many frames have been ticked
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Plan returns the commands for the frame at elapsed seconds
func (d *Driver) Plan(elapsed float64) FrameCommands {
	t := d.settings.Rotation.At(elapsed)
	t.YawDeg, t.PitchDeg = d.yaw, d.pitch
	return BuildFrame(d.settings, elapsed, t)
}

// Tick plans the frame at elapsed seconds and hands it to exec
func (d *Driver) Tick(elapsed float64, exec Executor) error {
	cmds := d.Plan(elapsed)
	if err := exec.Execute(cmds); err != nil {
		return err
	}
	d.frames++
	return nil
}

// ModelView returns the object's model-view matrix for t
func ModelView(cam scene.Camera, t Transform) mgl32.Mat4 {
	return cam.ModelView(float32(t.Longitude), float32(t.Latitude), float32(t.YawDeg), float32(t.PitchDeg))
}
