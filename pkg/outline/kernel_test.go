package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKernelParamsValidate(t *testing.T) {
	base := DefaultKernelParams(64, 64, testColor)

	tests := []struct {
		name   string
		modify func(*KernelParams)
		ok     bool
	}{
		{"defaults", func(*KernelParams) {}, true},
		{"radius one", func(p *KernelParams) { p.Radius = 1 }, true},
		{"radius zero", func(p *KernelParams) { p.Radius = 0 }, false},
		{"solid fraction one", func(p *KernelParams) { p.SolidFraction = 1 }, false},
		{"negative solid fraction", func(p *KernelParams) { p.SolidFraction = -0.1 }, false},
		{"zero inside falloff", func(p *KernelParams) { p.InsideFalloff = 0 }, false},
		{"negative threshold", func(p *KernelParams) { p.EdgeThreshold = -1 }, false},
		{"zero pixel size", func(p *KernelParams) { p.PixelSize = [2]float32{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.modify(&p)
			err := p.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParams)
			}
		})
	}
}

func TestSolidAndFuzzyBands(t *testing.T) {
	p := DefaultKernelParams(10, 10, testColor)
	assert.InDelta(t, 1.8, p.Solid(), 1e-6)
	assert.InDelta(t, 4.2, p.Fuzzy(), 1e-6)
	assert.Equal(t, 169, p.Taps())
}

func TestVariantFormats(t *testing.T) {
	assert.True(t, VariantCannyGradient.RequiresFloatDest())
	assert.False(t, VariantCannyGradient.RequiresFloatSource())
	assert.True(t, VariantCannyNMS.RequiresFloatSource())
	assert.False(t, VariantBlur.RequiresFloatDest())
	assert.Equal(t, "canny-nms", VariantCannyNMS.String())
}
