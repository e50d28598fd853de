package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outline/pkg/outline"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	tech, err := cfg.Technique()
	require.NoError(t, err)
	assert.Equal(t, outline.TechniqueBlur, tech)

	p := cfg.KernelParams()
	assert.Equal(t, 6, p.Radius)
	assert.InDelta(t, 1.8, p.Solid(), 1e-6)
	assert.InDelta(t, 4.2, p.Fuzzy(), 1e-6)
	assert.Equal(t, [2]float32{1.0 / 400, 1.0 / 400}, p.PixelSize)
	assert.Equal(t, outline.RGBA{0.6, 0.1, 0.5, 1}, p.Color)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.yaml")
	data := []byte(`
outline:
  technique: canny
  radius: 4
  color: [0, 0, 1, 1]
scene:
  rotation_period: 20
headless:
  frames: 12
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "canny", cfg.Outline.Technique)
	assert.Equal(t, 4, cfg.Outline.Radius)
	assert.Equal(t, []float32{0, 0, 1, 1}, cfg.Outline.Color)
	assert.Equal(t, 20.0, cfg.Scene.RotationPeriod)
	assert.Equal(t, 12, cfg.Headless.Frames)
	// untouched settings keep their defaults
	assert.Equal(t, 400, cfg.Window.Width)
	assert.InDelta(t, 0.06, cfg.Outline.OffsetMargin, 1e-6)
	require.NoError(t, cfg.Validate())

	s, err := cfg.FrameSettings()
	require.NoError(t, err)
	assert.Equal(t, outline.TechniqueCanny, s.Technique)
	assert.Equal(t, 20.0, s.Rotation.Period)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("outline: [unclosed"), 0644))
	cfg, err := LoadConfig(path)
	assert.ErrorContains(t, err, "error parsing config")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := DefaultConfig()
	cfg.Outline.Technique = "sobel"
	cfg.Log.Level = "debug"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"technique", func(c *Config) { c.Outline.Technique = "stencil" }, "outline.technique"},
		{"radius", func(c *Config) { c.Outline.Radius = 0 }, "radius"},
		{"margin", func(c *Config) { c.Outline.OffsetMargin = -0.1 }, "offset_margin"},
		{"period", func(c *Config) { c.Scene.RotationPeriod = 0 }, "rotation_period"},
		{"color", func(c *Config) { c.Outline.Color = []float32{1, 0} }, "outline.color needs 4"},
		{"light", func(c *Config) { c.Lighting.Direction = nil }, "lighting.direction needs 3"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"frames", func(c *Config) { c.Headless.Frames = 0 }, "headless.frames"},
		{"supersample", func(c *Config) { c.Headless.Supersample = 9 }, "headless.supersample"},
		{"log level", func(c *Config) { c.Log.Level = "chatty" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSceneHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 9*36, cfg.Table().Count())
	require.NotNil(t, cfg.Floor())

	cfg.Scene.Floor = false
	assert.Nil(t, cfg.Floor())

	cam := cfg.Camera()
	assert.Equal(t, float32(1), cam.Aspect)
	assert.Equal(t, float32(1.707), cam.Distance)

	l := cfg.Lights()
	assert.InDelta(t, 1, l.Direction.Len(), 1e-6)

	model, _, bg := cfg.Colors()
	assert.Equal(t, outline.RGBA{0.9, 0.65, 0.4, 1}, model)
	assert.Equal(t, outline.RGBA{1, 1, 1, 1}, bg)
}
