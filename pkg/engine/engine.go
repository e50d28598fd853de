package engine

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"outline/internal/logger"
	"outline/internal/util"
	"outline/pkg/config"
	"outline/pkg/outline"
)

// fpsReportInterval is how often the frame rate is logged at DEBUG
const fpsReportInterval = 5 * time.Second

// Engine owns the window and runs the scene loop: one planned frame per
// display refresh until the window closes or Escape is pressed.
type Engine struct {
	window    *glfw.Window
	config    *config.Config
	logger    *logger.Logger
	driver    *outline.Driver
	renderer  Renderer
	input     *InputHandler
	capture   *Capture
	timer     *util.FrameTimer
	isRunning bool
	startTime time.Time
	frameRate int

	fbWidth   int
	fbHeight  int
	resizeTo  [2]int
	resizing  bool
	minimized bool
}

// NewEngine creates the window and GL context, checks the device against
// the configured technique, and builds the renderer
func NewEngine(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	settings, err := cfg.FrameSettings()
	if err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Window.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	// Create window
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	e := &Engine{
		window:    window,
		config:    cfg,
		logger:    log.With("engine"),
		input:     NewInputHandler(window),
		capture:   NewCapture(cfg.Capture.Path, cfg.Capture.Width, cfg.Capture.Height, log),
		timer:     util.NewFrameTimer(120),
		frameRate: cfg.Window.FrameRate,
	}

	caps := DetectCapabilities(e.logger)
	if err := outline.RequireCapabilities(settings.Technique, caps); err != nil {
		glfw.Terminate()
		return nil, err
	}

	// The framebuffer can be larger than the window on high-DPI displays
	e.fbWidth, e.fbHeight = window.GetFramebufferSize()
	settings.Camera.Aspect = float32(e.fbWidth) / float32(e.fbHeight)
	e.driver = outline.NewDriver(settings, cfg.Scene.KeyStepDeg)

	model, floor, background := cfg.Colors()
	kernel := cfg.KernelParams()
	renderer, err := NewOpenGLRenderer(Options{
		Width:      e.fbWidth,
		Height:     e.fbHeight,
		Technique:  settings.Technique,
		Kernel:     kernel,
		ModelColor: model,
		FloorColor: floor,
		Background: background,
		Lights:     cfg.Lights(),
	}, cfg.Table(), cfg.Floor(), log)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	e.renderer = renderer

	window.SetFramebufferSizeCallback(e.resizeCallback)
	if cfg.Capture.Enabled {
		e.capture.Request()
	}

	return e, nil
}

// Run starts the scene loop. It returns the first frame error; closing
// the window or pressing Escape returns nil.
func (e *Engine) Run() error {
	defer e.cleanup()

	e.isRunning = true
	e.startTime = time.Now()
	lastReport := e.startTime

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()
		e.timer.Mark(currentTime)

		// Check for input
		e.processInput()

		if err := e.applyResize(); err != nil {
			return err
		}

		if !e.minimized {
			elapsed := currentTime.Sub(e.startTime).Seconds()
			if err := e.driver.Tick(elapsed, e.renderer); err != nil {
				return err
			}
			if err := e.capture.Take(e.fbWidth, e.fbHeight); err != nil {
				e.logger.Errorf("capture: %v", err)
			}
		}

		// Swap buffers and poll events
		e.window.SwapBuffers()
		glfw.PollEvents()

		if currentTime.Sub(lastReport) >= fpsReportInterval {
			yaw, pitch := e.driver.Offsets()
			e.logger.Debugf("%.1f fps over %d frames, yaw %.0f, pitch %.0f",
				e.timer.FPS(), e.driver.Frames(), yaw, pitch)
			lastReport = currentTime
		}

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	return nil
}

// processInput handles user input
func (e *Engine) processInput() {
	e.input.Update()

	// Close when ESC is pressed
	if e.input.QuitRequested() {
		e.isRunning = false
	}

	if dx, dy := e.input.RotationSteps(); dx != 0 || dy != 0 {
		e.driver.Nudge(dx, dy)
	}

	if e.input.CaptureRequested() {
		e.capture.Request()
	}
}

// resizeCallback records the new framebuffer size; the loop applies it
// before the next frame
func (e *Engine) resizeCallback(_ *glfw.Window, width int, height int) {
	e.resizeTo = [2]int{width, height}
	e.resizing = true
}

func (e *Engine) applyResize() error {
	if !e.resizing {
		return nil
	}
	e.resizing = false
	width, height := e.resizeTo[0], e.resizeTo[1]

	// A minimized window reports a zero framebuffer; skip frames until it
	// comes back
	e.minimized = width <= 0 || height <= 0
	if e.minimized {
		return nil
	}

	e.logger.Infof("framebuffer resized to %dx%d", width, height)
	if err := e.renderer.Resize(width, height); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	e.fbWidth, e.fbHeight = width, height
	e.driver.SetAspect(float32(width) / float32(height))
	return nil
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Infof("shutting down after %d frames", e.driver.Frames())
	e.renderer.Close()
	glfw.Terminate()
}
