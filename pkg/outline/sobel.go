package outline

import "github.com/chewxy/math32"

var (
	sobelX = [3][3]float32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// SobelAt returns the per-channel Sobel responses at (x, y)
func SobelAt(src *Buffer, x, y int) (gx, gy RGBA) {
	for j := -1; j <= 1; j++ {
		for i := -1; i <= 1; i++ {
			wx, wy := sobelX[j+1][i+1], sobelY[j+1][i+1]
			if wx == 0 && wy == 0 {
				continue
			}
			c := src.At(x+i, y+j)
			for ch := 0; ch < 4; ch++ {
				gx[ch] += wx * c[ch]
				gy[ch] += wy * c[ch]
			}
		}
	}
	return gx, gy
}

// SobelMagnitude returns the largest color-channel gradient magnitude at (x, y)
func SobelMagnitude(src *Buffer, x, y int) float32 {
	gx, gy := SobelAt(src, x, y)
	var m float32
	for ch := 0; ch < 3; ch++ {
		m = math32.Max(m, math32.Hypot(gx[ch], gy[ch]))
	}
	return m
}

func sobelTexel(src *Buffer, x, y int, p KernelParams) RGBA {
	out := p.Color
	out[3] = math32.Min(1, SobelMagnitude(src, x, y))
	return out
}
