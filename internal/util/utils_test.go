package util

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.5, 0, 1))
	assert.Equal(t, float32(1), Clamp[float32](3, 0, 1))
	assert.Equal(t, 4, Clamp(4, 1, 8))
}

func TestStats(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, CalculateMedian(nil))
	assert.Equal(t, 2.0, CalculateMedian([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, CalculateMedian([]float64{4, 1, 3, 2}))
}

func TestLuma(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{0, 0, 255, 255} {
		img.SetGray(x, 0, color.Gray{Y: v})
	}
	stats := Luma(img)
	assert.InDelta(t, 0.5, stats.Mean, 1e-9)
	assert.InDelta(t, 0.5, stats.Median, 1e-9)

	// a region of a larger image honours its bounds
	rgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	rgba.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})
	region := rgba.SubImage(image.Rect(1, 1, 2, 2))
	assert.InDelta(t, 1, Luma(region).Mean, 1e-9)

	assert.Zero(t, Luma(image.NewGray(image.Rect(0, 0, 0, 0))).Mean)
}

func TestDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames", "canny")
	assert.False(t, DirExists(dir))
	require.NoError(t, CreateDirIfNotExist(dir))
	require.NoError(t, CreateDirIfNotExist(dir))
	assert.True(t, DirExists(dir))
	assert.False(t, FileExists(dir))

	assert.Equal(t, filepath.Join(dir, "blur-0007.png"), FramePath(dir, "blur", 7))
}

func TestFrameTimer(t *testing.T) {
	ft := NewFrameTimer(3)
	assert.Zero(t, ft.FPS())

	start := time.Unix(0, 0)
	ft.Mark(start)
	assert.Zero(t, ft.Average())

	for i := 1; i <= 5; i++ {
		ft.Mark(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	assert.Equal(t, 20*time.Millisecond, ft.Average())
	assert.InDelta(t, 50, ft.FPS(), 1e-9)

	ft.Mark(start.Add(100*time.Millisecond + 50*time.Millisecond))
	assert.Equal(t, 30*time.Millisecond, ft.Average())
}
