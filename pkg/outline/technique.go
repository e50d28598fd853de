package outline

import (
	"fmt"
	"strings"
)

// Technique is one of the alternative ways of drawing the selection outline
type Technique int

const (
	// TechniqueOffset draws a scaled, unlit duplicate behind the object
	TechniqueOffset Technique = iota
	// TechniqueBlur runs the coverage/distance kernel over the mask
	TechniqueBlur
	// TechniqueSobel runs the 3x3 gradient magnitude kernel over the mask
	TechniqueSobel
	// TechniqueCanny runs a gradient pass then non-maximum suppression
	TechniqueCanny
)

var techniqueNames = []string{"offset", "blur", "sobel", "canny"}

func (t Technique) String() string {
	if t >= 0 && int(t) < len(techniqueNames) {
		return techniqueNames[t]
	}
	return fmt.Sprintf("Technique(%d)", int(t))
}

// ParseTechnique converts a config or flag value into a Technique
func ParseTechnique(s string) (Technique, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range techniqueNames {
		if n == name {
			return Technique(i), nil
		}
	}
	return 0, fmt.Errorf("unknown technique %q (want one of %s)", s, strings.Join(techniqueNames, ", "))
}

// KernelPasses lists the kernel variants the technique runs, in order
func (t Technique) KernelPasses() []KernelVariant {
	switch t {
	case TechniqueBlur:
		return []KernelVariant{VariantBlur}
	case TechniqueSobel:
		return []KernelVariant{VariantSobel}
	case TechniqueCanny:
		return []KernelVariant{VariantCannyGradient, VariantCannyNMS}
	default:
		return nil
	}
}

// UsesMask reports whether the technique renders a selection mask
func (t Technique) UsesMask() bool {
	return len(t.KernelPasses()) > 0
}

// Capabilities are the optional device features some techniques depend on
type Capabilities struct {
	FloatTextures bool
	Derivatives   bool
}

// RequireCapabilities fails when caps lacks a feature t depends on. Missing
// capabilities are fatal at startup; there is no fallback technique.
func RequireCapabilities(t Technique, caps Capabilities) error {
	switch t {
	case TechniqueCanny:
		if !caps.FloatTextures {
			return fmt.Errorf("%w: %v needs floating-point render targets", ErrMissingCapability, t)
		}
	case TechniqueSobel:
		if !caps.Derivatives {
			return fmt.Errorf("%w: %v needs shader derivative instructions", ErrMissingCapability, t)
		}
	}
	return nil
}
