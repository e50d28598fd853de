package outline

import (
	"fmt"
	"strings"
)

// KernelVariant selects the per-texel function a kernel pass evaluates
type KernelVariant int

const (
	// VariantBlur is the coverage/distance kernel
	VariantBlur KernelVariant = iota
	// VariantSobel is the 3x3 gradient magnitude kernel
	VariantSobel
	// VariantCannyGradient writes magnitude and direction into a float target
	VariantCannyGradient
	// VariantCannyNMS thins a gradient buffer by non-maximum suppression
	VariantCannyNMS
)

var variantNames = map[KernelVariant]string{
	VariantBlur:          "blur",
	VariantSobel:         "sobel",
	VariantCannyGradient: "canny-gradient",
	VariantCannyNMS:      "canny-nms",
}

func (v KernelVariant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("KernelVariant(%d)", int(v))
}

// RequiresFloatSource reports whether the variant reads values outside [0,1]
func (v KernelVariant) RequiresFloatSource() bool {
	return v == VariantCannyNMS
}

// RequiresFloatDest reports whether the variant writes values outside [0,1]
func (v KernelVariant) RequiresFloatDest() bool {
	return v == VariantCannyGradient
}

// Default kernel tuning
const (
	DefaultRadius        = 6
	DefaultSolidFraction = 0.3
	DefaultInsideFalloff = 0.75
	DefaultEdgeThreshold = 0.1

	// sentinelDistance marks "no silhouette texel inside the window"
	sentinelDistance = 1e6
)

// KernelParams configures a single kernel pass
type KernelParams struct {
	PixelSize     [2]float32
	Color         RGBA
	Radius        int
	SolidFraction float32
	InsideFalloff float32
	EdgeThreshold float32
	TextureUnit   int
}

// DefaultKernelParams returns the tuning used for a buffer of the given size
func DefaultKernelParams(width, height int, c RGBA) KernelParams {
	return KernelParams{
		PixelSize:     [2]float32{1 / float32(width), 1 / float32(height)},
		Color:         c,
		Radius:        DefaultRadius,
		SolidFraction: DefaultSolidFraction,
		InsideFalloff: DefaultInsideFalloff,
		EdgeThreshold: DefaultEdgeThreshold,
	}
}

// Validate checks the invariants every kernel relies on
func (p KernelParams) Validate() error {
	var problems []string
	if p.Radius < 1 {
		problems = append(problems, fmt.Sprintf("radius %d < 1", p.Radius))
	}
	if p.SolidFraction < 0 || p.SolidFraction >= 1 {
		problems = append(problems, fmt.Sprintf("solid fraction %g outside [0,1)", p.SolidFraction))
	}
	if p.InsideFalloff <= 0 {
		problems = append(problems, fmt.Sprintf("inside falloff %g <= 0", p.InsideFalloff))
	}
	if p.EdgeThreshold < 0 {
		problems = append(problems, fmt.Sprintf("edge threshold %g < 0", p.EdgeThreshold))
	}
	if p.PixelSize[0] <= 0 || p.PixelSize[1] <= 0 {
		problems = append(problems, "pixel size must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(problems, "; "))
	}
	return nil
}

// Solid returns the fully opaque band width outside the silhouette, in texels
func (p KernelParams) Solid() float32 {
	return p.SolidFraction * float32(p.Radius)
}

// Fuzzy returns the width of the linear falloff beyond the solid band
func (p KernelParams) Fuzzy() float32 {
	return float32(p.Radius) - p.Solid()
}

// Taps returns the number of mask samples the blur kernel reads per texel
func (p KernelParams) Taps() int {
	n := 2*p.Radius + 1
	return n * n
}
