package outline

import "github.com/chewxy/math32"

// Luminance weights of the gray conversion ahead of the Canny gradient
const (
	lumaR = 0.3
	lumaG = 0.6
	lumaB = 0.1
)

func luma(c RGBA) float32 {
	return lumaR*c[0] + lumaG*c[1] + lumaB*c[2]
}

// cannyGradientTexel writes (|G|, gx, gy, 1) computed on luminance
func cannyGradientTexel(src *Buffer, x, y int, _ KernelParams) RGBA {
	var gx, gy float32
	for j := -1; j <= 1; j++ {
		for i := -1; i <= 1; i++ {
			wx, wy := sobelX[j+1][i+1], sobelY[j+1][i+1]
			if wx == 0 && wy == 0 {
				continue
			}
			l := luma(src.At(x+i, y+j))
			gx += wx * l
			gy += wy * l
		}
	}
	return RGBA{math32.Hypot(gx, gy), gx, gy, 1}
}

// GradientStep quantizes the gradient direction to one of four neighbour
// steps (0, 45, 90, 135 degrees). A zero gradient has no direction.
func GradientStep(gx, gy float32) (dx, dy int) {
	if gx == 0 && gy == 0 {
		return 0, 0
	}
	deg := math32.Atan2(gy, gx) * 180 / math32.Pi
	if deg < 0 {
		deg += 180
	}
	switch {
	case deg < 22.5 || deg >= 157.5:
		return 1, 0
	case deg < 67.5:
		return 1, 1
	case deg < 112.5:
		return 0, 1
	default:
		return -1, 1
	}
}

// Suppressed reports whether the gradient texel at (x, y) of a Canny
// gradient buffer is removed by non-maximum suppression. The comparison is
// strict against the neighbour behind and non-strict against the one ahead,
// so a two-texel plateau keeps exactly one texel.
func Suppressed(grad *Buffer, x, y int, threshold float32) bool {
	c := grad.At(x, y)
	m := c[0]
	if m <= threshold {
		return true
	}
	dx, dy := GradientStep(c[1], c[2])
	if dx == 0 && dy == 0 {
		return true
	}
	behind := grad.R(x-dx, y-dy)
	ahead := grad.R(x+dx, y+dy)
	return !(m > behind && m >= ahead)
}

func cannyNMSTexel(src *Buffer, x, y int, p KernelParams) RGBA {
	out := p.Color
	if Suppressed(src, x, y, p.EdgeThreshold) {
		out[3] = 0
		return out
	}
	out[3] = math32.Min(1, src.R(x, y))
	return out
}
