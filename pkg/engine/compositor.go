package engine

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"outline/internal/logger"
	"outline/pkg/outline"
	"outline/pkg/scene"
)

// Compositor draws into the default framebuffer: the lit meshes, the
// offset outline duplicate, and the outline target blended over the scene.
type Compositor struct {
	lit       *Program
	flat      *Program
	composite *Program
	quad      *GPUMesh
}

// NewCompositor links the scene programs
func NewCompositor(log *logger.Logger, quad *GPUMesh) (*Compositor, error) {
	c := &Compositor{quad: quad}
	var err error
	if c.lit, err = NewProgram(log, "lit", litVertexShaderSource, litFragmentShaderSource,
		"projection", "modelView", "lightDirection", "color", "ambient", "lightColor"); err != nil {
		return nil, err
	}
	if c.flat, err = NewProgram(log, "offset", flatVertexShaderSource, flatFragmentShaderSource,
		"projection", "modelView", "color"); err != nil {
		c.Delete()
		return nil, err
	}
	if c.composite, err = NewProgram(log, "composite", quadVertexShaderSource, compositeFragmentShaderSource,
		"source"); err != nil {
		c.Delete()
		return nil, err
	}
	return c, nil
}

// Clear fills color with the background and resets depth
func (c *Compositor) Clear(background outline.RGBA) {
	gl.DepthMask(true)
	gl.ClearColor(background[0], background[1], background[2], background[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLit draws mesh with ambient and diffuse lighting, depth tested
func (c *Compositor) DrawLit(mesh *GPUMesh, projection, modelView mgl32.Mat4, lights scene.Lights, color outline.RGBA) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	c.lit.Use()
	c.lit.SetMat4("projection", projection)
	c.lit.SetMat4("modelView", modelView)
	c.lit.SetVec3("lightDirection", lights.Direction)
	c.lit.SetVec3("ambient", lights.Ambient)
	c.lit.SetVec3("lightColor", lights.Color)
	c.lit.SetVec4("color", color)
	mesh.Draw()
}

// DrawOffset draws the enlarged duplicate in the flat outline color. It
// neither tests nor writes depth, so the object drawn next covers it.
func (c *Compositor) DrawOffset(mesh *GPUMesh, projection, outlineView mgl32.Mat4, color outline.RGBA) {
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Disable(gl.BLEND)
	defer func() {
		gl.DepthMask(true)
		gl.Enable(gl.DEPTH_TEST)
	}()

	c.flat.Use()
	c.flat.SetMat4("projection", projection)
	c.flat.SetMat4("modelView", outlineView)
	c.flat.SetVec4("color", color)
	mesh.Draw()
}

// Composite blends src over the current framebuffer: color by source
// alpha, alpha replaced. Depth is left untouched.
func (c *Compositor) Composite(src *RenderTarget, unit int) {
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ZERO)
	defer func() {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
		gl.Enable(gl.DEPTH_TEST)
	}()

	src.BindTexture(unit)
	c.composite.Use()
	c.composite.SetInt("source", unit)
	c.quad.Draw()
}

// Delete releases the programs
func (c *Compositor) Delete() {
	for _, p := range []*Program{c.lit, c.flat, c.composite} {
		if p != nil {
			p.Delete()
		}
	}
}
