package engine

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"outline/internal/logger"
	"outline/pkg/outline"
	"outline/pkg/scene"
)

// Options configures the OpenGL renderer
type Options struct {
	Width     int
	Height    int
	Technique outline.Technique

	// Kernel holds the outline color and kernel shape. PixelSize is filled
	// in per pass from the source target.
	Kernel outline.KernelParams

	ModelColor outline.RGBA
	FloorColor outline.RGBA
	Background outline.RGBA
	Lights     scene.Lights
}

// OpenGLRenderer executes frame plans with OpenGL into the current
// context's default framebuffer. It implements Renderer.
type OpenGLRenderer struct {
	opts Options
	log  *logger.Logger

	targets    *RenderTargets
	mask       *MaskRenderer
	kernels    *KernelPass
	compositor *Compositor

	quad   *GPUMesh
	object *GPUMesh
	floor  *GPUMesh
}

// NewOpenGLRenderer creates the renderer. The GL context must be current.
// Programs and targets for opts.Technique are created here, so a device
// that cannot run the technique fails at startup rather than mid-frame.
func NewOpenGLRenderer(opts Options, object, floor *scene.Mesh, log *logger.Logger) (*OpenGLRenderer, error) {
	r := &OpenGLRenderer{opts: opts, log: log.With("gl")}

	var err error
	if r.targets, err = NewRenderTargets(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	if err := r.initOpenGL(object, floor); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.targets.Ensure(opts.Technique); err != nil {
		r.Close()
		return nil, err
	}

	r.log.Infof("renderer ready: %v, %dx%d", opts.Technique, opts.Width, opts.Height)
	return r, nil
}

// initOpenGL uploads meshes and links every program the technique uses
func (r *OpenGLRenderer) initOpenGL(object, floor *scene.Mesh) error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	var err error
	if r.object, err = UploadMesh(object); err != nil {
		return fmt.Errorf("object mesh: %w", err)
	}
	if floor != nil && floor.Count() > 0 {
		if r.floor, err = UploadMesh(floor); err != nil {
			return fmt.Errorf("floor mesh: %w", err)
		}
	}
	r.quad = NewQuad()

	if r.compositor, err = NewCompositor(r.log, r.quad); err != nil {
		return err
	}
	if r.opts.Technique.UsesMask() {
		if r.mask, err = NewMaskRenderer(r.log); err != nil {
			return err
		}
		if r.kernels, err = NewKernelPass(r.log, r.quad, r.opts.Technique.KernelPasses()...); err != nil {
			return err
		}
	}
	return checkGLError("init")
}

// Execute runs every pass of the plan in order
func (r *OpenGLRenderer) Execute(cmds outline.FrameCommands) error {
	if cmds.Technique != r.opts.Technique {
		return fmt.Errorf("%w: renderer set up for %v, frame uses %v",
			outline.ErrInvalidParams, r.opts.Technique, cmds.Technique)
	}
	if err := r.targets.Ensure(cmds.Technique); err != nil {
		return err
	}
	for i, p := range cmds.Passes {
		if err := r.run(p, cmds); err != nil {
			return fmt.Errorf("frame at %.3fs, pass %d %v: %w", cmds.Elapsed, i, p, err)
		}
		if err := checkGLError(p.Kind.String()); err != nil {
			return fmt.Errorf("frame at %.3fs, pass %d %v: %w", cmds.Elapsed, i, p, err)
		}
	}
	return nil
}

func (r *OpenGLRenderer) run(p outline.Pass, cmds outline.FrameCommands) error {
	switch p.Kind {
	case outline.PassClearScene:
		r.compositor.Clear(r.opts.Background)

	case outline.PassBackground:
		if r.floor != nil {
			r.compositor.DrawLit(r.floor, cmds.Projection, cmds.BackgroundView, r.opts.Lights, r.opts.FloorColor)
		}

	case outline.PassMask:
		dst, err := r.targets.Get(p.Dest)
		if err != nil {
			return err
		}
		r.mask.Render(dst, r.object, cmds.Projection, cmds.ModelView)

	case outline.PassKernel:
		src, err := r.targets.Get(p.Source)
		if err != nil {
			return err
		}
		dst, err := r.targets.Get(p.Dest)
		if err != nil {
			return err
		}
		params := r.opts.Kernel
		params.PixelSize = [2]float32{1 / float32(src.Width), 1 / float32(src.Height)}
		return r.kernels.Run(p.Variant, src, dst, params)

	case outline.PassComposite:
		src, err := r.targets.Get(p.Source)
		if err != nil {
			return err
		}
		r.compositor.Composite(src, r.opts.Kernel.TextureUnit)

	case outline.PassOffsetOutline:
		r.compositor.DrawOffset(r.object, cmds.Projection, cmds.OutlineView, r.opts.Kernel.Color)

	case outline.PassLitObject:
		r.compositor.DrawLit(r.object, cmds.Projection, cmds.ModelView, r.opts.Lights, r.opts.ModelColor)

	default:
		return fmt.Errorf("%w: unsupported pass %v", outline.ErrInvalidParams, p.Kind)
	}
	return nil
}

// checkGLError drains the GL error queue and reports the first error
func checkGLError(stage string) error {
	first := uint32(gl.NO_ERROR)
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == gl.NO_ERROR {
			first = code
		}
	}
	if first != gl.NO_ERROR {
		return fmt.Errorf("%w 0x%x after %s", ErrGL, first, stage)
	}
	return nil
}

// Resize follows a framebuffer size change. Offscreen targets are
// recreated at the new size on the next frame.
func (r *OpenGLRenderer) Resize(width, height int) error {
	if err := r.targets.Resize(width, height); err != nil {
		return err
	}
	r.opts.Width, r.opts.Height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debugf("framebuffer resized to %dx%d", width, height)
	return nil
}

// Close releases every GL object the renderer created
func (r *OpenGLRenderer) Close() {
	if r.targets != nil {
		r.targets.Delete()
	}
	if r.kernels != nil {
		r.kernels.Delete()
	}
	if r.mask != nil {
		r.mask.Delete()
	}
	if r.compositor != nil {
		r.compositor.Delete()
	}
	for _, m := range []*GPUMesh{r.quad, r.object, r.floor} {
		if m != nil {
			m.Delete()
		}
	}
}
