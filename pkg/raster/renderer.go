// Package raster executes frame plans on the CPU. The mask, background and
// lit object are rasterized with fauxgl, optionally supersampled, and the
// kernel passes run on the outline package's engine.
package raster

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/fogleman/fauxgl"
	"golang.org/x/image/draw"

	"outline/internal/logger"
	"outline/pkg/outline"
	"outline/pkg/scene"
)

var (
	maskOutside = outline.RGBA{0, 0, 0, 1}
	maskInside  = outline.RGBA{1, 1, 1, 1}
)

// Options configures a Renderer
type Options struct {
	Width       int
	Height      int
	Supersample int // rasterization scale per axis, 1 disables
	Workers     int // kernel engine row bands, 0 uses GOMAXPROCS

	// Kernel holds the outline color and kernel shape. PixelSize is filled
	// in per pass from the source target.
	Kernel outline.KernelParams

	ModelColor outline.RGBA
	FloorColor outline.RGBA
	Background outline.RGBA
	Lights     scene.Lights
}

// Renderer is the CPU backend. It implements outline.Executor.
type Renderer struct {
	opts    Options
	log     *logger.Logger
	engine  *outline.Engine
	targets *Targets

	object []*fauxgl.Triangle
	floor  []*fauxgl.Triangle

	scene *fauxgl.Context // main scene, supersampled
	mask  *fauxgl.Context // mask rasterization, supersampled
}

// New creates a renderer drawing object as the selectable model. floor may
// be nil for a plain background.
func New(opts Options, object, floor *scene.Mesh, log *logger.Logger) (*Renderer, error) {
	if object == nil || object.Count() == 0 {
		return nil, fmt.Errorf("%w: empty object mesh", outline.ErrInvalidParams)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	targets, err := NewTargets(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		opts:    opts,
		log:     log.With("raster"),
		engine:  outline.NewEngine(opts.Workers),
		targets: targets,
		object:  triangles(object),
		floor:   triangles(floor),
	}
	r.allocContexts()
	r.log.Debugf("cpu renderer %dx%d, supersample %d, %d kernel workers, %d blur taps per texel",
		opts.Width, opts.Height, opts.Supersample, r.engine.Workers(), opts.Kernel.Taps())
	return r, nil
}

func (r *Renderer) allocContexts() {
	w, h := r.opts.Width*r.opts.Supersample, r.opts.Height*r.opts.Supersample
	r.scene = newContext(w, h)
	r.mask = newContext(w, h)
}

func newContext(w, h int) *fauxgl.Context {
	ctx := fauxgl.NewContext(w, h)
	ctx.Cull = fauxgl.CullNone
	return ctx
}

// Resize recreates the rasterization contexts and drops the offscreen
// targets so they are reallocated at the new viewport size.
func (r *Renderer) Resize(width, height int) error {
	if err := r.targets.Resize(width, height); err != nil {
		return err
	}
	r.opts.Width, r.opts.Height = width, height
	r.allocContexts()
	return nil
}

// Target exposes an offscreen target of the last frame
func (r *Renderer) Target(id outline.TargetID) (*outline.Buffer, error) {
	return r.targets.Get(id)
}

// Execute runs every pass of the plan in order
func (r *Renderer) Execute(cmds outline.FrameCommands) error {
	if err := r.targets.Ensure(cmds.Technique); err != nil {
		return err
	}
	for i, p := range cmds.Passes {
		if err := r.run(p, cmds); err != nil {
			return fmt.Errorf("frame at %.3fs, pass %d %v: %w", cmds.Elapsed, i, p, err)
		}
	}
	return nil
}

func (r *Renderer) run(p outline.Pass, cmds outline.FrameCommands) error {
	switch p.Kind {
	case outline.PassClearScene:
		r.scene.ClearColorBufferWith(toColor(r.opts.Background))
		r.scene.ClearDepthBuffer()

	case outline.PassBackground:
		if len(r.floor) > 0 {
			r.scene.Shader = newLitShader(cmds.Projection, cmds.BackgroundView, r.opts.Lights, r.opts.FloorColor)
			r.scene.DrawTriangles(r.floor)
		}

	case outline.PassMask:
		dst, err := r.targets.Get(p.Dest)
		if err != nil {
			return err
		}
		return r.renderMask(dst, cmds)

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
		params.PixelSize = src.PixelSize()
		return r.engine.Run(p.Variant, src, dst, params)

	case outline.PassComposite:
		src, err := r.targets.Get(p.Source)
		if err != nil {
			return err
		}
		return r.composite(src)

	case outline.PassOffsetOutline:
		// the duplicate neither tests nor writes depth, so the real object
		// drawn next covers it wherever they overlap
		r.scene.ReadDepth, r.scene.WriteDepth = false, false
		r.scene.Shader = newFlatShader(cmds.Projection, cmds.OutlineView, r.opts.Kernel.Color)
		r.scene.DrawTriangles(r.object)
		r.scene.ReadDepth, r.scene.WriteDepth = true, true

	case outline.PassLitObject:
		r.scene.Shader = newLitShader(cmds.Projection, cmds.ModelView, r.opts.Lights, r.opts.ModelColor)
		r.scene.DrawTriangles(r.object)

	default:
		return fmt.Errorf("%w: unsupported pass %v", outline.ErrInvalidParams, p.Kind)
	}
	return nil
}

// renderMask clears dst to the outside value and fills the object's
// silhouette with the inside value. Supersampled edges come out as
// intermediate values after the downscale.
func (r *Renderer) renderMask(dst *outline.Buffer, cmds outline.FrameCommands) error {
	r.mask.ClearColorBufferWith(toColor(maskOutside))
	r.mask.ClearDepthBuffer()
	r.mask.Shader = newFlatShader(cmds.Projection, cmds.ModelView, maskInside)
	r.mask.DrawTriangles(r.object)

	return dst.Load(r.scale(r.mask.ColorBuffer, dst.Width, dst.Height, draw.BiLinear))
}

// composite blends the outline target over the scene without touching the
// depth buffer
func (r *Renderer) composite(src *outline.Buffer) error {
	buf := r.scene.ColorBuffer
	w, h := buf.Bounds().Dx(), buf.Bounds().Dy()

	frame, err := outline.FromImage(buf, outline.FormatFloat32)
	if err != nil {
		return err
	}
	over := src
	if !src.SameSize(frame) {
		over, err = outline.FromImage(r.scale(src.Image(), w, h, interpolator(src.Filter)), outline.FormatUnorm8)
		if err != nil {
			return err
		}
	}
	if err := outline.Composite(frame, over); err != nil {
		return err
	}
	// straight copy: the composite may leave alpha at zero and a
	// premultiplied draw would drop the color underneath
	copy(buf.Pix, frame.Image().Pix)
	return nil
}

// interpolator maps a target's filter mode to the resampler reading it
func interpolator(f outline.FilterMode) draw.Interpolator {
	if f == outline.FilterLinear {
		return draw.BiLinear
	}
	return draw.NearestNeighbor
}

func (r *Renderer) scale(src *image.NRGBA, w, h int, interp draw.Interpolator) *image.NRGBA {
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Frame returns the presented image at viewport size. The presented frame
// is opaque whatever alpha the composite left behind.
func (r *Renderer) Frame() *image.NRGBA {
	src := r.scene.ColorBuffer
	opaque := image.NewNRGBA(src.Bounds())
	copy(opaque.Pix, src.Pix)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}
	return r.scale(opaque, r.opts.Width, r.opts.Height, draw.BiLinear)
}

// Save writes the presented frame as a PNG
func (r *Renderer) Save(path string) error {
	if err := imgio.Save(path, r.Frame(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save frame %s: %w", path, err)
	}
	return nil
}
