package engine

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/go-gl/gl/v4.1-core/gl"

	"outline/internal/logger"
	"outline/internal/util"
)

// Capture is the one-shot diagnostic readback of the presented frame. A
// request is served by the next frame and then cleared.
type Capture struct {
	path    string
	width   int
	height  int
	pending bool
	log     *logger.Logger
}

// NewCapture creates a capture of the lower-left width x height region
func NewCapture(path string, width, height int, log *logger.Logger) *Capture {
	return &Capture{path: path, width: width, height: height, log: log.With("capture")}
}

// Request arms the capture for the next frame
func (c *Capture) Request() {
	c.pending = true
}

// Pending reports whether a capture is armed
func (c *Capture) Pending() bool {
	return c.pending
}

// Take reads back the armed region of the default framebuffer and writes
// it as a PNG. The region is clipped to the framebuffer. Take must run
// after the frame is drawn and before buffers are swapped.
func (c *Capture) Take(fbWidth, fbHeight int) error {
	if !c.pending {
		return nil
	}
	c.pending = false

	w, h := util.Clamp(c.width, 1, fbWidth), util.Clamp(c.height, 1, fbHeight)
	pix := make([]uint8, w*h*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	img := fromReadback(pix, w, h)
	if err := imgio.Save(c.path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save capture %s: %w", c.path, err)
	}

	stats := util.Luma(img)
	c.log.Infof("captured %dx%d to %s: luma mean %.3f, median %.3f",
		w, h, c.path, stats.Mean, stats.Median)
	return nil
}

// fromReadback turns bottom-up GL rows into a top-down opaque image. The
// composite replaces framebuffer alpha with the outline's, so the alpha
// read back is not what was presented.
func fromReadback(pix []uint8, w, h int) *image.RGBA {
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xff
	}
	img := &image.RGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	return transform.FlipV(img)
}
