package engine

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"outline/pkg/outline"
)

// RenderTarget is an offscreen color target: a framebuffer with one texture
// attachment. Textures use nearest filtering and clamp-to-edge so kernel
// taps read whole texels and never wrap.
type RenderTarget struct {
	Width  int
	Height int
	Format outline.PixelFormat

	fbo     uint32
	texture uint32
}

// textureFormat maps a pixel format to the GL internal format and the
// component type of the texture storage
func textureFormat(f outline.PixelFormat) (int32, uint32, error) {
	switch f {
	case outline.FormatUnorm8:
		return gl.RGBA8, gl.UNSIGNED_BYTE, nil
	case outline.FormatFloat32:
		return gl.RGBA32F, gl.FLOAT, nil
	}
	return 0, 0, fmt.Errorf("%w: no texture format for %v", outline.ErrFormatMismatch, f)
}

// NewRenderTarget creates a width x height target. A driver that cannot
// render to the format yields ErrIncompleteTarget.
func NewRenderTarget(width, height int, format outline.PixelFormat) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", outline.ErrInvalidParams, width, height)
	}
	internal, xtype, err := textureFormat(format)
	if err != nil {
		return nil, err
	}

	t := &RenderTarget{Width: width, Height: height, Format: format}

	// Generate framebuffer
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	// Create texture for framebuffer
	gl.GenTextures(1, &t.texture)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, gl.RGBA, xtype, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.texture, 0)

	// Check if framebuffer is complete
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		return nil, fmt.Errorf("%w: %v %dx%d, status 0x%x", ErrIncompleteTarget, format, width, height, status)
	}
	return t, nil
}

// Bind directs drawing into the target and sets the viewport to its size.
// The returned function restores the previous framebuffer and viewport.
func (t *RenderTarget) Bind() (restore func()) {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.Width), int32(t.Height))

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// BindTexture binds the target's texture to a texture unit for sampling
func (t *RenderTarget) BindTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
}

// SameSize reports whether both targets have equal dimensions
func (t *RenderTarget) SameSize(o *RenderTarget) bool {
	return t.Width == o.Width && t.Height == o.Height
}

// Delete releases the framebuffer and its texture
func (t *RenderTarget) Delete() {
	if t.texture != 0 {
		gl.DeleteTextures(1, &t.texture)
		t.texture = 0
	}
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
}

// RenderTargets owns the offscreen targets of the current technique. They
// share the framebuffer size; Resize releases them so the next Ensure
// recreates them at the new size.
type RenderTargets struct {
	width   int
	height  int
	targets map[outline.TargetID]*RenderTarget
}

// NewRenderTargets creates an empty set for a width x height framebuffer
func NewRenderTargets(width, height int) (*RenderTargets, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: viewport %dx%d", outline.ErrInvalidParams, width, height)
	}
	return &RenderTargets{width: width, height: height, targets: map[outline.TargetID]*RenderTarget{}}, nil
}

// Ensure creates every target tech needs that is missing or has the wrong
// format
func (r *RenderTargets) Ensure(tech outline.Technique) error {
	for id, format := range outline.Targets(tech) {
		if t, ok := r.targets[id]; ok {
			if t.Format == format {
				continue
			}
			t.Delete()
			delete(r.targets, id)
		}
		t, err := NewRenderTarget(r.width, r.height, format)
		if err != nil {
			return fmt.Errorf("create %v target: %w", id, err)
		}
		r.targets[id] = t
	}
	return nil
}

// Get returns an allocated target
func (r *RenderTargets) Get(id outline.TargetID) (*RenderTarget, error) {
	t, ok := r.targets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v target not allocated", outline.ErrInvalidParams, id)
	}
	return t, nil
}

// Resize records a new framebuffer size and releases stale targets
func (r *RenderTargets) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", outline.ErrInvalidParams, width, height)
	}
	if width == r.width && height == r.height {
		return nil
	}
	r.width, r.height = width, height
	r.Delete()
	return nil
}

// Delete releases every target
func (r *RenderTargets) Delete() {
	for id, t := range r.targets {
		t.Delete()
		delete(r.targets, id)
	}
}
