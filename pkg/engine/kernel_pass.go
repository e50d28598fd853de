package engine

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"

	"outline/internal/logger"
	"outline/pkg/outline"
)

// kernelSources pairs each variant with its fragment shader
var kernelSources = map[outline.KernelVariant]string{
	outline.VariantBlur:          blurFragmentShaderSource,
	outline.VariantSobel:         sobelFragmentShaderSource,
	outline.VariantCannyGradient: cannyGradientFragmentShaderSource,
	outline.VariantCannyNMS:      cannyNMSFragmentShaderSource,
}

var kernelUniforms = []string{
	"source", "pixelSize", "color", "radius", "solid", "fuzzy", "insideFalloff", "threshold",
}

// KernelPass runs full-screen kernel passes on the GPU: one quad draw per
// pass, one fragment per destination texel.
type KernelPass struct {
	programs map[outline.KernelVariant]*Program
	quad     *GPUMesh
}

// NewKernelPass links the programs for the given variants. Variants that
// are never requested are not compiled, so a device lacking a feature only
// one technique needs can still run the others.
func NewKernelPass(log *logger.Logger, quad *GPUMesh, variants ...outline.KernelVariant) (*KernelPass, error) {
	k := &KernelPass{programs: map[outline.KernelVariant]*Program{}, quad: quad}
	for _, v := range variants {
		if _, ok := k.programs[v]; ok {
			continue
		}
		src, ok := kernelSources[v]
		if !ok {
			k.Delete()
			return nil, fmt.Errorf("%w: unknown variant %v", outline.ErrInvalidParams, v)
		}
		p, err := NewProgram(log, v.String(), quadVertexShaderSource, src, kernelUniforms...)
		if err != nil {
			k.Delete()
			return nil, err
		}
		k.programs[v] = p
	}
	return k, nil
}

// checkPass applies the same preconditions as the CPU engine
func checkPass(variant outline.KernelVariant, src, dst *RenderTarget, p outline.KernelParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if src == nil || dst == nil {
		return fmt.Errorf("%w: nil target for %v pass", outline.ErrInvalidParams, variant)
	}
	if src == dst {
		return fmt.Errorf("%w: %v pass cannot read and write the same target", outline.ErrInvalidParams, variant)
	}
	if !src.SameSize(dst) {
		return fmt.Errorf("%w: %v pass %dx%d -> %dx%d", outline.ErrSizeMismatch, variant,
			src.Width, src.Height, dst.Width, dst.Height)
	}
	if math32.Abs(p.PixelSize[0]*float32(src.Width)-1) > 1e-4 || math32.Abs(p.PixelSize[1]*float32(src.Height)-1) > 1e-4 {
		return fmt.Errorf("%w: pixel size %v does not match %dx%d source", outline.ErrSizeMismatch,
			p.PixelSize, src.Width, src.Height)
	}
	if variant.RequiresFloatSource() && src.Format != outline.FormatFloat32 {
		return fmt.Errorf("%w: %v reads %v, needs %v", outline.ErrFormatMismatch, variant, src.Format, outline.FormatFloat32)
	}
	if variant.RequiresFloatDest() && dst.Format != outline.FormatFloat32 {
		return fmt.Errorf("%w: %v writes %v, needs %v", outline.ErrFormatMismatch, variant, dst.Format, outline.FormatFloat32)
	}
	return nil
}

// Run evaluates variant over every texel of dst, sampling src
func (k *KernelPass) Run(variant outline.KernelVariant, src, dst *RenderTarget, p outline.KernelParams) error {
	prog, ok := k.programs[variant]
	if !ok {
		return fmt.Errorf("%w: no program for variant %v", outline.ErrInvalidParams, variant)
	}
	if err := checkPass(variant, src, dst, p); err != nil {
		return err
	}

	restore := dst.Bind()
	defer restore()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	src.BindTexture(p.TextureUnit)
	prog.Use()
	prog.SetInt("source", p.TextureUnit)
	prog.SetVec2("pixelSize", p.PixelSize)
	prog.SetVec4("color", p.Color)
	prog.SetInt("radius", p.Radius)
	prog.SetFloat("solid", p.Solid())
	prog.SetFloat("fuzzy", p.Fuzzy())
	prog.SetFloat("insideFalloff", p.InsideFalloff)
	prog.SetFloat("threshold", p.EdgeThreshold)
	k.quad.Draw()
	return nil
}

// Delete releases every program
func (k *KernelPass) Delete() {
	for v, p := range k.programs {
		p.Delete()
		delete(k.programs, v)
	}
}
