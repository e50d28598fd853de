package main

import (
	"fmt"
	"image"
	"time"

	"github.com/anthonynsimon/bild/imgio"

	"outline/internal/logger"
	"outline/internal/util"
	"outline/pkg/config"
	"outline/pkg/outline"
	"outline/pkg/raster"
)

// runHeadless renders the configured number of frames on the CPU, one PNG
// per frame, stepping the clock by a fixed amount
func runHeadless(cfg *config.Config, log *logger.Logger) error {
	settings, err := cfg.FrameSettings()
	if err != nil {
		return err
	}
	model, floor, background := cfg.Colors()
	r, err := raster.New(raster.Options{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Supersample: cfg.Headless.Supersample,
		Workers:     cfg.Headless.Workers,
		Kernel:      cfg.KernelParams(),
		ModelColor:  model,
		FloorColor:  floor,
		Background:  background,
		Lights:      cfg.Lights(),
	}, cfg.Table(), cfg.Floor(), log)
	if err != nil {
		return err
	}

	if err := util.CreateDirIfNotExist(cfg.Headless.OutputDir); err != nil {
		return err
	}

	driver := outline.NewDriver(settings, cfg.Scene.KeyStepDeg)
	total := time.Now()
	for i := 0; i < cfg.Headless.Frames; i++ {
		start := time.Now()
		elapsed := float64(i) * cfg.Headless.FrameStep
		if err := driver.Tick(elapsed, r); err != nil {
			return err
		}

		path := util.FramePath(cfg.Headless.OutputDir, settings.Technique.String(), i)
		if err := r.Save(path); err != nil {
			return err
		}
		log.Infof("frame %d at %.3fs written to %s in %s", i, elapsed, path, util.TimeTrack(start))

		if i == 0 && cfg.Capture.Enabled {
			if err := saveCapture(r.Frame(), cfg.Capture, log); err != nil {
				return err
			}
		}
	}
	log.Infof("%d frames in %s", driver.Frames(), util.TimeTrack(total))
	return nil
}

// saveCapture writes the lower-left capture region of frame, matching the
// region the windowed backend reads back
func saveCapture(frame *image.NRGBA, cfg config.CaptureConfig, log *logger.Logger) error {
	b := frame.Bounds()
	w := util.Clamp(cfg.Width, 1, b.Dx())
	h := util.Clamp(cfg.Height, 1, b.Dy())
	region := frame.SubImage(image.Rect(0, b.Dy()-h, w, b.Dy()))

	if err := imgio.Save(cfg.Path, region, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save capture %s: %w", cfg.Path, err)
	}
	stats := util.Luma(region)
	log.Infof("captured %dx%d to %s: luma mean %.3f, median %.3f", w, h, cfg.Path, stats.Mean, stats.Median)
	return nil
}
