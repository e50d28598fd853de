package outline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// PixelFormat is the storage format of a Buffer's channels
type PixelFormat int

const (
	// FormatUnorm8 stores each channel as an 8-bit normalized value
	FormatUnorm8 PixelFormat = iota
	// FormatFloat32 stores each channel as an unclamped 32-bit float
	FormatFloat32
)

func (f PixelFormat) String() string {
	switch f {
	case FormatUnorm8:
		return "unorm8"
	case FormatFloat32:
		return "float32"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// FilterMode selects how a target is resampled when it is read at another
// resolution
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// RGBA is a straight-alpha float color
type RGBA [4]float32

// Buffer is the CPU counterpart of a GPU color target. Row 0 is the top row.
type Buffer struct {
	Width  int
	Height int
	Format PixelFormat
	Filter FilterMode
	Pix    []float32 // 4 channels per texel, row-major
}

// NewBuffer allocates a zeroed buffer
func NewBuffer(width, height int, format PixelFormat) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: buffer size %dx%d", ErrInvalidParams, width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Format: format,
		Filter: FilterNearest,
		Pix:    make([]float32, width*height*4),
	}, nil
}

// PixelSize returns the UV extent of one texel
func (b *Buffer) PixelSize() [2]float32 {
	return [2]float32{1 / float32(b.Width), 1 / float32(b.Height)}
}

func (b *Buffer) offset(x, y int) int {
	if x < 0 {
		x = 0
	} else if x >= b.Width {
		x = b.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= b.Height {
		y = b.Height - 1
	}
	return (y*b.Width + x) * 4
}

// At returns the texel at (x, y) with clamp-to-edge addressing
func (b *Buffer) At(x, y int) RGBA {
	i := b.offset(x, y)
	return RGBA{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// R returns the red channel at (x, y) with clamp-to-edge addressing
func (b *Buffer) R(x, y int) float32 {
	return b.Pix[b.offset(x, y)]
}

// Set stores c at (x, y). Out-of-range writes are dropped.
func (b *Buffer) Set(x, y int, c RGBA) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := (y*b.Width + x) * 4
	for ch := 0; ch < 4; ch++ {
		b.Pix[i+ch] = b.store(c[ch])
	}
}

// store applies the format's write conversion
func (b *Buffer) store(v float32) float32 {
	if b.Format == FormatFloat32 {
		return v
	}
	if v <= 0 || math32.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return math32.Round(v*255) / 255
}

// Clear fills every texel with c
func (b *Buffer) Clear(c RGBA) {
	var q RGBA
	for ch := range c {
		q[ch] = b.store(c[ch])
	}
	for i := 0; i < len(b.Pix); i += 4 {
		copy(b.Pix[i:i+4], q[:])
	}
}

// SameSize reports whether o has the same dimensions as b
func (b *Buffer) SameSize(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// FromImage creates a buffer holding a copy of img
func FromImage(img image.Image, format PixelFormat) (*Buffer, error) {
	r := img.Bounds()
	buf, err := NewBuffer(r.Dx(), r.Dy(), format)
	if err != nil {
		return nil, err
	}
	if err := buf.Load(img); err != nil {
		return nil, err
	}
	return buf, nil
}

// Load overwrites every texel with the straight-alpha color of img, which
// must have the buffer's dimensions.
func (b *Buffer) Load(img image.Image) error {
	r := img.Bounds()
	if r.Dx() != b.Width || r.Dy() != b.Height {
		return fmt.Errorf("%w: load %dx%d image into %dx%d buffer", ErrSizeMismatch,
			r.Dx(), r.Dy(), b.Width, b.Height)
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			b.Set(x, y, RGBA{
				float32(c.R) / 255,
				float32(c.G) / 255,
				float32(c.B) / 255,
				float32(c.A) / 255,
			})
		}
	}
	return nil
}

// Image converts the buffer to an 8-bit straight-alpha image
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: toByte(c[0]),
				G: toByte(c[1]),
				B: toByte(c[2]),
				A: toByte(c[3]),
			})
		}
	}
	return img
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math32.Round(v * 255))
}
