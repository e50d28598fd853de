package engine

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"outline/internal/logger"
)

var maskInside = [4]float32{1, 1, 1, 1}

// MaskRenderer draws the selected object's silhouette into a mask target:
// black with alpha 1 outside, white inside.
type MaskRenderer struct {
	program *Program
}

// NewMaskRenderer links the unlit program the mask is drawn with
func NewMaskRenderer(log *logger.Logger) (*MaskRenderer, error) {
	p, err := NewProgram(log, "mask", flatVertexShaderSource, flatFragmentShaderSource,
		"projection", "modelView", "color")
	if err != nil {
		return nil, err
	}
	return &MaskRenderer{program: p}, nil
}

// Render clears dst and fills the silhouette of mesh under projection and
// modelView. The previous framebuffer binding is restored on return.
func (m *MaskRenderer) Render(dst *RenderTarget, mesh *GPUMesh, projection, modelView mgl32.Mat4) {
	restore := dst.Bind()
	defer restore()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	m.program.Use()
	m.program.SetMat4("projection", projection)
	m.program.SetMat4("modelView", modelView)
	m.program.SetVec4("color", maskInside)
	mesh.Draw()
}

// Delete releases the program
func (m *MaskRenderer) Delete() {
	m.program.Delete()
}
