package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"runtime"

	"outline/internal/logger"
	"outline/pkg/config"
	"outline/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	technique := flag.String("technique", "", "Outline technique: offset, blur, sobel or canny")
	headless := flag.Bool("headless", false, "Render frames to PNG files on the CPU instead of opening a window")
	frames := flag.Int("frames", 0, "Number of headless frames (overrides config)")
	outDir := flag.String("out", "", "Headless output directory (overrides config)")
	capture := flag.Bool("capture", false, "Capture the first frame to the configured path")
	level := flag.String("log", "", "Log level (overrides config)")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this path and exit")
	flag.Parse()

	cfg, loadErr := config.LoadConfig(*configPath)

	// Flags win over the file
	if *technique != "" {
		cfg.Outline.Technique = *technique
	}
	if *frames > 0 {
		cfg.Headless.Frames = *frames
	}
	if *outDir != "" {
		cfg.Headless.OutputDir = *outDir
	}
	if *capture {
		cfg.Capture.Enabled = true
	}
	if *level != "" {
		cfg.Log.Level = *level
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logger.Close()

	if loadErr != nil {
		if errors.Is(loadErr, os.ErrNotExist) {
			logger.Warnf("%v", loadErr)
		} else {
			logger.Fatalf("Failed to load configuration: %v", loadErr)
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("%v", err)
	}

	if *writeConfig != "" {
		if err := config.SaveConfig(cfg, *writeConfig); err != nil {
			logger.Fatalf("%v", err)
		}
		logger.Infof("configuration written to %s", *writeConfig)
		return
	}

	logger.Infof("Starting outline viewer, technique %s", cfg.Outline.Technique)

	if *headless {
		if err := runHeadless(cfg, logger); err != nil {
			logger.Fatalf("Headless rendering failed: %v", err)
		}
		return
	}

	viewer, err := engine.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize engine: %v", err)
	}

	logger.Info("Engine initialized, starting scene loop...")
	if err := viewer.Run(); err != nil {
		logger.Fatalf("Scene loop stopped: %v", err)
	}
}

func newLogger(cfg config.LogConfig) (*logger.Logger, error) {
	if cfg.File == "" {
		return logger.NewLogger(cfg.Level), nil
	}
	return logger.NewMultiLogger(cfg.Level, cfg.File)
}
