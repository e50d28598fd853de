package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"outline/internal/logger"
	"outline/pkg/outline"
	"outline/pkg/scene"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the main configuration
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Outline  OutlineConfig  `yaml:"outline"`
	Scene    SceneConfig    `yaml:"scene"`
	Lighting LightingConfig `yaml:"lighting"`
	Capture  CaptureConfig  `yaml:"capture"`
	Headless HeadlessConfig `yaml:"headless"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig contains window and frame loop configuration
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FrameRate  int    `yaml:"framerate"` // 0 leaves pacing to vsync
}

// OutlineConfig selects the technique and shapes the outline
type OutlineConfig struct {
	Technique     string    `yaml:"technique"` // offset, blur, sobel, canny
	Color         []float32 `yaml:"color"`
	Radius        int       `yaml:"radius"`
	SolidFraction float32   `yaml:"solid_fraction"`
	InsideFalloff float32   `yaml:"inside_falloff"`
	EdgeThreshold float32   `yaml:"edge_threshold"`
	OffsetMargin  float32   `yaml:"offset_margin"` // growth of the offset technique's duplicate
}

// SceneConfig contains the model, camera and animation settings
type SceneConfig struct {
	RotationPeriod float64   `yaml:"rotation_period"` // seconds per longitude turn
	KeyStepDeg     float64   `yaml:"key_step_deg"`
	FovDeg         float32   `yaml:"fov_deg"`
	Distance       float32   `yaml:"distance"`
	ModelColor     []float32 `yaml:"model_color"`
	Background     []float32 `yaml:"background"`
	Floor          bool      `yaml:"floor"`
	FloorColor     []float32 `yaml:"floor_color"`
	TableHeight    float32   `yaml:"table_height"`
	TableRadius    float32   `yaml:"table_radius"`
	LegSize        float32   `yaml:"leg_size"`
}

// LightingConfig is one ambient term and one directional light
type LightingConfig struct {
	Ambient   []float32 `yaml:"ambient"`
	Color     []float32 `yaml:"color"`
	Direction []float32 `yaml:"direction"`
}

// CaptureConfig controls the one-shot diagnostic readback
type CaptureConfig struct {
	Enabled bool   `yaml:"enabled"` // capture the first frame
	Path    string `yaml:"path"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

// HeadlessConfig contains CPU backend configuration
type HeadlessConfig struct {
	Frames      int     `yaml:"frames"`
	FrameStep   float64 `yaml:"frame_step"` // seconds between frames
	OutputDir   string  `yaml:"output_dir"`
	Supersample int     `yaml:"supersample"`
	Workers     int     `yaml:"workers"` // 0 uses every CPU
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // also log to this file when set
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     400,
			Height:    400,
			Title:     "outline",
			VSync:     true,
			FrameRate: 60,
		},
		Outline: OutlineConfig{
			Technique:     outline.TechniqueBlur.String(),
			Color:         []float32{0.6, 0.1, 0.5, 1},
			Radius:        outline.DefaultRadius,
			SolidFraction: outline.DefaultSolidFraction,
			InsideFalloff: outline.DefaultInsideFalloff,
			EdgeThreshold: outline.DefaultEdgeThreshold,
			OffsetMargin:  0.06,
		},
		Scene: SceneConfig{
			RotationPeriod: 10,
			KeyStepDeg:     1,
			FovDeg:         60,
			Distance:       1.707,
			ModelColor:     []float32{0.9, 0.65, 0.4, 1},
			Background:     []float32{1, 1, 1, 1},
			Floor:          true,
			FloorColor:     []float32{0.75, 0.75, 0.78, 1},
			TableHeight:    0.5,
			TableRadius:    0.5,
			LegSize:        0.075,
		},
		Lighting: LightingConfig{
			Ambient:   []float32{0.4, 0.4, 0.4},
			Color:     []float32{1, 1, 1},
			Direction: []float32{-1, -1, -1},
		},
		Capture: CaptureConfig{
			Path:   "capture.png",
			Width:  400,
			Height: 400,
		},
		Headless: HeadlessConfig{
			Frames:      1,
			FrameStep:   1.0 / 30,
			OutputDir:   "frames",
			Supersample: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file. On error the defaults are
// returned alongside it.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate reports every out-of-range setting at once
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FrameRate < 0 {
		add("window.framerate %d", c.Window.FrameRate)
	}
	if _, err := outline.ParseTechnique(c.Outline.Technique); err != nil {
		add("outline.technique: %v", err)
	}
	if err := c.KernelParams().Validate(); err != nil {
		add("outline: %v", err)
	}
	if c.Outline.OffsetMargin < 0 {
		add("outline.offset_margin %v is negative", c.Outline.OffsetMargin)
	}
	if c.Scene.RotationPeriod <= 0 {
		add("scene.rotation_period %v must be positive", c.Scene.RotationPeriod)
	}
	if c.Scene.FovDeg <= 0 || c.Scene.FovDeg >= 180 {
		add("scene.fov_deg %v", c.Scene.FovDeg)
	}
	if c.Scene.Distance <= 0 {
		add("scene.distance %v", c.Scene.Distance)
	}
	if c.Scene.TableHeight <= 0 || c.Scene.TableRadius <= 0 || c.Scene.LegSize <= 0 {
		add("scene table dimensions must be positive")
	}
	for _, v := range []struct {
		name string
		vals []float32
		n    int
	}{
		{"outline.color", c.Outline.Color, 4},
		{"scene.model_color", c.Scene.ModelColor, 4},
		{"scene.background", c.Scene.Background, 4},
		{"scene.floor_color", c.Scene.FloorColor, 4},
		{"lighting.ambient", c.Lighting.Ambient, 3},
		{"lighting.color", c.Lighting.Color, 3},
		{"lighting.direction", c.Lighting.Direction, 3},
	} {
		if len(v.vals) != v.n {
			add("%s needs %d components, got %d", v.name, v.n, len(v.vals))
		}
	}
	if c.Capture.Width <= 0 || c.Capture.Height <= 0 {
		add("capture region %dx%d", c.Capture.Width, c.Capture.Height)
	}
	if c.Headless.Frames < 1 {
		add("headless.frames %d", c.Headless.Frames)
	}
	if c.Headless.FrameStep < 0 {
		add("headless.frame_step %v", c.Headless.FrameStep)
	}
	if c.Headless.Supersample < 1 || c.Headless.Supersample > 8 {
		add("headless.supersample %d not in [1, 8]", c.Headless.Supersample)
	}
	if c.Headless.Workers < 0 {
		add("headless.workers %d", c.Headless.Workers)
	}
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		add("log.level %q", c.Log.Level)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func rgba(v []float32) outline.RGBA {
	var c outline.RGBA
	copy(c[:], v)
	return c
}

func vec3(v []float32) [3]float32 {
	var out [3]float32
	copy(out[:], v)
	return out
}

// Technique returns the configured outline technique
func (c *Config) Technique() (outline.Technique, error) {
	return outline.ParseTechnique(c.Outline.Technique)
}

// KernelParams returns the kernel parameters for a viewport of the
// configured window size
func (c *Config) KernelParams() outline.KernelParams {
	p := outline.DefaultKernelParams(c.Window.Width, c.Window.Height, rgba(c.Outline.Color))
	p.Radius = c.Outline.Radius
	p.SolidFraction = c.Outline.SolidFraction
	p.InsideFalloff = c.Outline.InsideFalloff
	p.EdgeThreshold = c.Outline.EdgeThreshold
	return p
}

// Camera returns the camera for the configured window aspect
func (c *Config) Camera() scene.Camera {
	cam := scene.DefaultCamera(float32(c.Window.Width) / float32(c.Window.Height))
	cam.FovDeg = c.Scene.FovDeg
	cam.Distance = c.Scene.Distance
	return cam
}

// FrameSettings assembles the scene loop settings
func (c *Config) FrameSettings() (outline.FrameSettings, error) {
	tech, err := c.Technique()
	if err != nil {
		return outline.FrameSettings{}, err
	}
	return outline.FrameSettings{
		Technique: tech,
		Camera:    c.Camera(),
		Rotation:  outline.Rotation{Period: c.Scene.RotationPeriod},
		Margin:    c.Outline.OffsetMargin,
	}, nil
}

// Lights returns the configured lights
func (c *Config) Lights() scene.Lights {
	return scene.NewLights(vec3(c.Lighting.Ambient), vec3(c.Lighting.Color), vec3(c.Lighting.Direction))
}

// Table builds the selectable model
func (c *Config) Table() *scene.Mesh {
	return scene.NewTable(scene.TableOptions{
		Height:  c.Scene.TableHeight,
		Radius:  c.Scene.TableRadius,
		LegSize: c.Scene.LegSize,
	})
}

// Floor builds the background slab below the table, or nil when disabled
func (c *Config) Floor() *scene.Mesh {
	if !c.Scene.Floor {
		return nil
	}
	return scene.NewFloor(4*c.Scene.TableRadius, -c.Scene.TableHeight/2-0.01)
}

// Colors returns model, floor and background colors
func (c *Config) Colors() (model, floor, background outline.RGBA) {
	return rgba(c.Scene.ModelColor), rgba(c.Scene.FloorColor), rgba(c.Scene.Background)
}
