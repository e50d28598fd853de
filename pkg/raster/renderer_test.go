package raster

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"outline/internal/logger"
	"outline/pkg/outline"
	"outline/pkg/scene"
)

const size = 64

var outlineColor = outline.RGBA{0.6, 0.1, 0.5, 1}

func testOptions() Options {
	return Options{
		Width:       size,
		Height:      size,
		Supersample: 1,
		Workers:     2,
		Kernel:      outline.DefaultKernelParams(size, size, outlineColor),
		ModelColor:  outline.RGBA{0.9, 0.65, 0.4, 1},
		FloorColor:  outline.RGBA{0.5, 0.5, 0.5, 1},
		Background:  outline.RGBA{1, 1, 1, 1},
		Lights:      scene.NewLights([3]float32{0.4, 0.4, 0.4}, [3]float32{1, 1, 1}, [3]float32{-1, -1, -1}),
	}
}

func unitCube() *scene.Mesh {
	m := &scene.Mesh{}
	m.AddCube(0, 0, 0, 1, 1, 1)
	return m
}

func newTestRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := New(opts, unitCube(), nil, logger.NewWriterLogger("error", io.Discard))
	require.NoError(t, err)
	return r
}

// renderStill executes one frame of tech with the cube facing the camera
func renderStill(t *testing.T, r *Renderer, tech outline.Technique) {
	t.Helper()
	d := outline.NewDriver(outline.FrameSettings{
		Technique: tech,
		Camera:    scene.DefaultCamera(1),
		Margin:    0.06,
	}, 1)
	require.NoError(t, d.Tick(0, r))
}

// firstInside returns the first mask column on row y above the inside threshold
func firstInside(t *testing.T, mask *outline.Buffer, y int) int {
	t.Helper()
	for x := 0; x < mask.Width; x++ {
		if mask.R(x, y) > 0.5 {
			return x
		}
	}
	t.Fatalf("row %d of the mask is empty", y)
	return -1
}

func TestTargets(t *testing.T) {
	_, err := NewTargets(0, 10)
	assert.ErrorIs(t, err, outline.ErrInvalidParams)

	tg, err := NewTargets(8, 4)
	require.NoError(t, err)
	_, err = tg.Get(outline.TargetMask)
	assert.ErrorIs(t, err, outline.ErrInvalidParams)

	require.NoError(t, tg.Ensure(outline.TechniqueCanny))
	grad, err := tg.Get(outline.TargetGradient)
	require.NoError(t, err)
	assert.Equal(t, outline.FormatFloat32, grad.Format)
	assert.Equal(t, outline.FilterNearest, grad.Filter)

	mask, err := tg.Get(outline.TargetMask)
	require.NoError(t, err)
	require.NoError(t, tg.Ensure(outline.TechniqueCanny))
	again, err := tg.Get(outline.TargetMask)
	require.NoError(t, err)
	assert.Same(t, mask, again)

	require.NoError(t, tg.Resize(16, 16))
	_, err = tg.Get(outline.TargetMask)
	assert.Error(t, err)
	require.NoError(t, tg.Ensure(outline.TechniqueBlur))
	mask, err = tg.Get(outline.TargetMask)
	require.NoError(t, err)
	assert.Equal(t, 16, mask.Width)
}

func TestMaskIsBinary(t *testing.T) {
	r := newTestRenderer(t, testOptions())
	renderStill(t, r, outline.TechniqueBlur)

	mask, err := r.Target(outline.TargetMask)
	require.NoError(t, err)
	inside := 0
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			c := mask.At(x, y)
			if c == (outline.RGBA{1, 1, 1, 1}) {
				inside++
				continue
			}
			require.Equal(t, outline.RGBA{0, 0, 0, 1}, c, "texel %d,%d", x, y)
		}
	}
	assert.Positive(t, inside)
	assert.Equal(t, float32(1), mask.R(size/2, size/2))
}

func TestCubeBlurOutline(t *testing.T) {
	r := newTestRenderer(t, testOptions())
	renderStill(t, r, outline.TechniqueBlur)

	mask, err := r.Target(outline.TargetMask)
	require.NoError(t, err)
	out, err := r.Target(outline.TargetOutline)
	require.NoError(t, err)

	row := size / 2
	edge := firstInside(t, mask, row)
	require.Greater(t, edge, 6)

	// solid band right at the boundary, gone by the radius, none deep inside
	assert.InDelta(t, 1, out.At(edge-1, row)[3], 0.01)
	assert.InDelta(t, 0, out.At(edge-6, row)[3], 0.01)
	assert.InDelta(t, 0, out.At(size/2, size/2)[3], 0.01)

	// outline color is carried unchanged
	c := out.At(edge-1, row)
	assert.InDeltaSlice(t, outlineColor[:3], c[:3], 0.01)
}

func TestFramePresentation(t *testing.T) {
	r := newTestRenderer(t, testOptions())
	renderStill(t, r, outline.TechniqueBlur)
	mask, err := r.Target(outline.TargetMask)
	require.NoError(t, err)
	edge := firstInside(t, mask, size/2)

	img := r.Frame()
	require.Equal(t, size, img.Bounds().Dx())
	for i := 3; i < len(img.Pix); i += 4 {
		require.Equal(t, uint8(0xff), img.Pix[i])
	}

	// background survives where the outline is transparent
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img.Pix, img.Stride, 0, 0))

	// the lit object is on top of its own outline
	center := pixel(img.Pix, img.Stride, size/2, size/2)
	assert.Greater(t, center[0], center[1])
	assert.Greater(t, center[1], center[2])
	assert.Less(t, center[0], uint8(250))

	// just outside the silhouette the outline color shows
	near := pixel(img.Pix, img.Stride, edge-1, size/2)
	assert.InDelta(t, 153, int(near[0]), 3)
	assert.InDelta(t, 26, int(near[1]), 3)
	assert.InDelta(t, 128, int(near[2]), 3)
}

func pixel(pix []uint8, stride, x, y int) [4]uint8 {
	i := y*stride + x*4
	return [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func TestOffsetTechnique(t *testing.T) {
	r := newTestRenderer(t, testOptions())
	renderStill(t, r, outline.TechniqueOffset)

	// no offscreen targets are involved
	_, err := r.Target(outline.TargetMask)
	assert.Error(t, err)

	// locate the real silhouette with the blur mask pass of a second renderer
	ref := newTestRenderer(t, testOptions())
	renderStill(t, ref, outline.TechniqueBlur)
	mask, err := ref.Target(outline.TargetMask)
	require.NoError(t, err)
	edge := firstInside(t, mask, size/2)

	img := r.Frame()
	near := pixel(img.Pix, img.Stride, edge-1, size/2)
	assert.InDelta(t, 153, int(near[0]), 1)
	assert.InDelta(t, 26, int(near[1]), 1)
	assert.InDelta(t, 128, int(near[2]), 1)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img.Pix, img.Stride, edge-8, size/2))
}

func TestCannyAndSobelTechniques(t *testing.T) {
	for _, tech := range []outline.Technique{outline.TechniqueSobel, outline.TechniqueCanny} {
		t.Run(tech.String(), func(t *testing.T) {
			r := newTestRenderer(t, testOptions())
			renderStill(t, r, tech)

			out, err := r.Target(outline.TargetOutline)
			require.NoError(t, err)
			edges := 0
			for y := 0; y < out.Height; y++ {
				for x := 0; x < out.Width; x++ {
					if out.At(x, y)[3] > 0 {
						edges++
					}
				}
			}
			assert.Positive(t, edges)
			// a thin contour, not a filled area
			assert.Less(t, edges, size*size/4)
		})
	}
}

func TestSupersampledMask(t *testing.T) {
	opts := testOptions()
	opts.Supersample = 3
	r := newTestRenderer(t, opts)
	renderStill(t, r, outline.TechniqueBlur)

	mask, err := r.Target(outline.TargetMask)
	require.NoError(t, err)
	assert.Equal(t, size, mask.Width)
	assert.InDelta(t, 1, mask.R(size/2, size/2), 0.01)
	assert.InDelta(t, 0, mask.R(0, 0), 0.01)
	assert.Equal(t, size, r.Frame().Bounds().Dx())
}

func TestResizeAndSave(t *testing.T) {
	r := newTestRenderer(t, testOptions())
	require.NoError(t, r.Resize(32, 24))
	renderStill(t, r, outline.TechniqueBlur)

	mask, err := r.Target(outline.TargetMask)
	require.NoError(t, err)
	assert.Equal(t, 32, mask.Width)
	assert.Equal(t, 24, mask.Height)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, r.Save(path))
	img, err := imgio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}

func TestExecuteRejectsUnknownPass(t *testing.T) {
	r := newTestRenderer(t, testOptions())
	err := r.Execute(outline.FrameCommands{Passes: []outline.Pass{{Kind: outline.PassKind(99)}}})
	assert.ErrorIs(t, err, outline.ErrInvalidParams)
}

func TestNewRejectsEmptyMesh(t *testing.T) {
	_, err := New(testOptions(), &scene.Mesh{}, nil, logger.NewWriterLogger("error", io.Discard))
	assert.ErrorIs(t, err, outline.ErrInvalidParams)
}

func TestInterpolatorFollowsFilter(t *testing.T) {
	assert.Equal(t, draw.NearestNeighbor, interpolator(outline.FilterNearest))
	assert.Equal(t, draw.BiLinear, interpolator(outline.FilterLinear))

	// a hard mask edge upscaled through a nearest target stays hard
	r := newTestRenderer(t, testOptions())
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})
	up := r.scale(src, 8, 1, interpolator(outline.FilterNearest))
	for x := 0; x < 8; x++ {
		a := up.NRGBAAt(x, 0).A
		assert.True(t, a == 0 || a == 255, "texel %d alpha %d", x, a)
	}
}
