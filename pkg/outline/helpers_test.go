package outline

import (
	"testing"

	"github.com/stretchr/testify/require"

	noise "outline/internal/math"
)

var testColor = RGBA{0.6, 0.1, 0.5, 1}

func newMask(t *testing.T, w, h int, inside func(x, y int) bool) *Buffer {
	t.Helper()
	b, err := NewBuffer(w, h, FormatUnorm8)
	require.NoError(t, err)
	b.Clear(RGBA{0, 0, 0, 1})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if inside(x, y) {
				b.Set(x, y, RGBA{1, 1, 1, 1})
			}
		}
	}
	return b
}

// noiseMask thresholds FBM noise into a blobby silhouette
func noiseMask(t *testing.T, w, h int, seed int64) *Buffer {
	t.Helper()
	field := noise.NewGenerator(seed).Field(w, h, 9, 3)
	return newMask(t, w, h, func(x, y int) bool { return field[y*w+x] > 0 })
}

func runPass(t *testing.T, v KernelVariant, src *Buffer, format PixelFormat, p KernelParams) *Buffer {
	t.Helper()
	dst, err := NewBuffer(src.Width, src.Height, format)
	require.NoError(t, err)
	require.NoError(t, NewEngine(2).Run(v, src, dst, p))
	return dst
}

func alphaAt(b *Buffer, x, y int) float32 {
	return b.At(x, y)[3]
}
