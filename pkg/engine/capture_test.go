package engine

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReadbackFlipsRows(t *testing.T) {
	// two rows, bottom row first as GL returns them
	pix := []uint8{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img := fromReadback(pix, 2, 2)
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(1, 1))
}

func TestFromReadbackIsOpaque(t *testing.T) {
	// the composite leaves alpha 0 wherever no outline was drawn
	pix := []uint8{
		255, 255, 255, 0, 153, 26, 128, 0,
	}
	img := fromReadback(pix, 2, 1)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{153, 26, 128, 255}, img.RGBAAt(1, 0))
}

func TestReadbackSavesOpaquePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.png")
	img := fromReadback([]uint8{255, 255, 255, 0}, 1, 1)
	require.NoError(t, imgio.Save(path, img, imgio.PNGEncoder()))

	saved, err := imgio.Open(path)
	require.NoError(t, err)
	r, g, b, a := saved.At(0, 0).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, b, a})
}

func TestCaptureIsOneShot(t *testing.T) {
	c := &Capture{path: "unused.png", width: 4, height: 4}
	assert.False(t, c.Pending())
	// nothing armed, nothing read
	assert.NoError(t, c.Take(4, 4))
	c.Request()
	assert.True(t, c.Pending())
}
