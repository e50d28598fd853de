package outline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/chewxy/math32"
)

// texelFunc evaluates one output texel of a kernel pass
type texelFunc func(src *Buffer, x, y int, p KernelParams) RGBA

var kernels = map[KernelVariant]texelFunc{
	VariantBlur:          blurTexel,
	VariantSobel:         sobelTexel,
	VariantCannyGradient: cannyGradientTexel,
	VariantCannyNMS:      cannyNMSTexel,
}

// Engine is the CPU kernel pass dispatcher. Every variant goes through the
// same full-screen dispatch; only the texel function differs.
type Engine struct {
	workers int
}

// NewEngine creates an engine that splits each pass into row bands over
// the given number of goroutines. Zero or less uses GOMAXPROCS.
func NewEngine(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{workers: workers}
}

// Workers returns the number of row bands per pass
func (e *Engine) Workers() int {
	return e.workers
}

// Run evaluates variant over every texel of dst, reading src. The pass has
// returned completely before Run does.
func (e *Engine) Run(variant KernelVariant, src, dst *Buffer, p KernelParams) error {
	fn, ok := kernels[variant]
	if !ok {
		return fmt.Errorf("%w: unknown variant %v", ErrInvalidParams, variant)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if src == nil || dst == nil {
		return fmt.Errorf("%w: nil buffer for %v pass", ErrInvalidParams, variant)
	}
	if src == dst {
		return fmt.Errorf("%w: %v pass cannot read and write the same buffer", ErrInvalidParams, variant)
	}
	if !src.SameSize(dst) {
		return fmt.Errorf("%w: %v pass %dx%d -> %dx%d", ErrSizeMismatch, variant,
			src.Width, src.Height, dst.Width, dst.Height)
	}
	ps := src.PixelSize()
	if math32.Abs(ps[0]-p.PixelSize[0]) > 1e-6 || math32.Abs(ps[1]-p.PixelSize[1]) > 1e-6 {
		return fmt.Errorf("%w: pixel size %v does not match %dx%d source", ErrSizeMismatch,
			p.PixelSize, src.Width, src.Height)
	}
	if variant.RequiresFloatSource() && src.Format != FormatFloat32 {
		return fmt.Errorf("%w: %v reads %v, needs %v", ErrFormatMismatch, variant, src.Format, FormatFloat32)
	}
	if variant.RequiresFloatDest() && dst.Format != FormatFloat32 {
		return fmt.Errorf("%w: %v writes %v, needs %v", ErrFormatMismatch, variant, dst.Format, FormatFloat32)
	}

	e.dispatch(dst.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < dst.Width; x++ {
				dst.Set(x, y, fn(src, x, y, p))
			}
		}
	})
	return nil
}

// dispatch splits [0, rows) into contiguous bands and waits for all of them
func (e *Engine) dispatch(rows int, band func(y0, y1 int)) {
	n := e.workers
	if n > rows {
		n = rows
	}
	if n <= 1 {
		band(0, rows)
		return
	}

	var wg sync.WaitGroup
	per := rows / n
	for g := 0; g < n; g++ {
		start := g * per
		end := start + per
		if g == n-1 {
			end = rows
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			band(start, end)
		}(start, end)
	}
	wg.Wait()
}

// Extract turns a mask into an outline buffer using the kernel passes the
// technique needs. The returned buffer is an 8-bit target the size of mask.
func (e *Engine) Extract(t Technique, mask *Buffer, p KernelParams) (*Buffer, error) {
	passes := t.KernelPasses()
	if len(passes) == 0 {
		return nil, fmt.Errorf("%w: technique %v has no kernel passes", ErrInvalidParams, t)
	}

	src := mask
	var out *Buffer
	for i, variant := range passes {
		format := FormatUnorm8
		if variant.RequiresFloatDest() {
			format = FormatFloat32
		}
		dst, err := NewBuffer(mask.Width, mask.Height, format)
		if err != nil {
			return nil, err
		}
		if err := e.Run(variant, src, dst, p); err != nil {
			return nil, fmt.Errorf("pass %d (%v): %w", i, variant, err)
		}
		src, out = dst, dst
	}
	return out, nil
}
