package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// keySource is the part of a window the input handler polls
type keySource interface {
	GetKey(key glfw.Key) glfw.Action
}

// trackedKeys are the only keys the viewer reacts to
var trackedKeys = []glfw.Key{
	glfw.KeyLeft, glfw.KeyRight, glfw.KeyUp, glfw.KeyDown,
	glfw.KeyC, glfw.KeyEscape,
}

// InputHandler polls keyboard state once per frame and derives press and
// release edges from the previous frame's state
type InputHandler struct {
	source       keySource
	currentKeys  map[glfw.Key]bool
	previousKeys map[glfw.Key]bool
}

// NewInputHandler creates a handler polling source
func NewInputHandler(source keySource) *InputHandler {
	return &InputHandler{
		source:       source,
		currentKeys:  make(map[glfw.Key]bool),
		previousKeys: make(map[glfw.Key]bool),
	}
}

// Update samples the tracked keys
func (ih *InputHandler) Update() {
	ih.previousKeys, ih.currentKeys = ih.currentKeys, ih.previousKeys
	for _, key := range trackedKeys {
		ih.currentKeys[key] = ih.source.GetKey(key) == glfw.Press
	}
}

// IsKeyDown reports whether key is held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed reports whether key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// IsKeyReleased reports whether key went up this frame
func (ih *InputHandler) IsKeyReleased(key glfw.Key) bool {
	return !ih.currentKeys[key] && ih.previousKeys[key]
}

// RotationSteps returns the arrow presses of this frame as whole steps:
// right and up count positive, left and down negative.
func (ih *InputHandler) RotationSteps() (dx, dy int) {
	if ih.IsKeyPressed(glfw.KeyRight) {
		dx++
	}
	if ih.IsKeyPressed(glfw.KeyLeft) {
		dx--
	}
	if ih.IsKeyPressed(glfw.KeyUp) {
		dy++
	}
	if ih.IsKeyPressed(glfw.KeyDown) {
		dy--
	}
	return dx, dy
}

// CaptureRequested reports a press of the capture key
func (ih *InputHandler) CaptureRequested() bool {
	return ih.IsKeyPressed(glfw.KeyC)
}

// QuitRequested reports whether Escape is held
func (ih *InputHandler) QuitRequested() bool {
	return ih.IsKeyDown(glfw.KeyEscape)
}
