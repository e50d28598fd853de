package engine

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

// fakeKeys stands in for a window
type fakeKeys map[glfw.Key]bool

func (f fakeKeys) GetKey(key glfw.Key) glfw.Action {
	if f[key] {
		return glfw.Press
	}
	return glfw.Release
}

func TestInputHandlerEdges(t *testing.T) {
	keys := fakeKeys{}
	ih := NewInputHandler(keys)

	keys[glfw.KeyRight] = true
	ih.Update()
	assert.True(t, ih.IsKeyDown(glfw.KeyRight))
	assert.True(t, ih.IsKeyPressed(glfw.KeyRight))

	// holding the key is one press
	ih.Update()
	assert.True(t, ih.IsKeyDown(glfw.KeyRight))
	assert.False(t, ih.IsKeyPressed(glfw.KeyRight))

	keys[glfw.KeyRight] = false
	ih.Update()
	assert.True(t, ih.IsKeyReleased(glfw.KeyRight))
	assert.False(t, ih.IsKeyDown(glfw.KeyRight))
}

func TestRotationSteps(t *testing.T) {
	tests := []struct {
		name   string
		keys   []glfw.Key
		dx, dy int
	}{
		{"none", nil, 0, 0},
		{"right", []glfw.Key{glfw.KeyRight}, 1, 0},
		{"left", []glfw.Key{glfw.KeyLeft}, -1, 0},
		{"up", []glfw.Key{glfw.KeyUp}, 0, 1},
		{"down", []glfw.Key{glfw.KeyDown}, 0, -1},
		{"left and right cancel", []glfw.Key{glfw.KeyLeft, glfw.KeyRight}, 0, 0},
		{"diagonal", []glfw.Key{glfw.KeyRight, glfw.KeyDown}, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := fakeKeys{}
			for _, k := range tt.keys {
				keys[k] = true
			}
			ih := NewInputHandler(keys)
			ih.Update()
			dx, dy := ih.RotationSteps()
			assert.Equal(t, tt.dx, dx)
			assert.Equal(t, tt.dy, dy)
		})
	}
}

func TestCaptureAndQuitKeys(t *testing.T) {
	keys := fakeKeys{glfw.KeyC: true}
	ih := NewInputHandler(keys)
	ih.Update()
	assert.True(t, ih.CaptureRequested())
	assert.False(t, ih.QuitRequested())

	ih.Update()
	assert.False(t, ih.CaptureRequested())

	keys[glfw.KeyEscape] = true
	ih.Update()
	assert.True(t, ih.QuitRequested())
}
