package outline

import "fmt"

// BlendOver returns src composited over dst with separate color and alpha
// factors: color uses (srcAlpha, 1-srcAlpha), alpha uses (1, 0).
func BlendOver(dst, src RGBA) RGBA {
	a := src[3]
	return RGBA{
		src[0]*a + dst[0]*(1-a),
		src[1]*a + dst[1]*(1-a),
		src[2]*a + dst[2]*(1-a),
		a,
	}
}

// Composite blends the outline buffer over the frame in place
func Composite(frame, outline *Buffer) error {
	if !frame.SameSize(outline) {
		return fmt.Errorf("%w: composite %dx%d over %dx%d", ErrSizeMismatch,
			outline.Width, outline.Height, frame.Width, frame.Height)
	}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			frame.Set(x, y, BlendOver(frame.At(x, y), outline.At(x, y)))
		}
	}
	return nil
}
