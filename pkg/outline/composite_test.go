package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendOver(t *testing.T) {
	dst := RGBA{1, 1, 1, 1}

	got := BlendOver(dst, RGBA{0.6, 0.1, 0.5, 0})
	assert.InDeltaSlice(t, []float32{1, 1, 1}, got[:3], 1e-6)
	assert.Equal(t, float32(0), got[3])

	got = BlendOver(dst, RGBA{0.6, 0.1, 0.5, 1})
	assert.InDeltaSlice(t, []float32{0.6, 0.1, 0.5, 1}, got[:], 1e-6)

	got = BlendOver(RGBA{0, 0, 0, 1}, RGBA{1, 0.5, 0, 0.5})
	assert.InDeltaSlice(t, []float32{0.5, 0.25, 0, 0.5}, got[:], 1e-6)
}

func TestComposite(t *testing.T) {
	frame, err := NewBuffer(4, 1, FormatFloat32)
	require.NoError(t, err)
	frame.Clear(RGBA{1, 1, 1, 1})

	out, err := NewBuffer(4, 1, FormatUnorm8)
	require.NoError(t, err)
	out.Set(1, 0, RGBA{0, 0, 0, 1})

	require.NoError(t, Composite(frame, out))
	assert.Equal(t, RGBA{1, 1, 1, 0}, frame.At(0, 0))
	assert.Equal(t, RGBA{0, 0, 0, 1}, frame.At(1, 0))

	small, err := NewBuffer(2, 1, FormatUnorm8)
	require.NoError(t, err)
	assert.ErrorIs(t, Composite(frame, small), ErrSizeMismatch)
}
