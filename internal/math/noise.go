// Package noise generates deterministic gradient noise, used to synthesize
// irregular silhouettes when exercising the outline kernels.
package noise

import "math"

// Generator produces seeded 2D gradient noise. The zero value is usable
// with seed 0.
type Generator struct {
	seed int
}

// NewGenerator creates a generator for the given seed
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: int(seed)}
}

// hash mixes lattice coordinates with the seed
func (g *Generator) hash(x, y int) int {
	h := g.seed + x*374761393 + y*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// gradient picks one of eight lattice gradients
func gradient(h int) (float64, float64) {
	switch h & 7 {
	case 0:
		return 1, 0
	case 1:
		return -1, 0
	case 2:
		return 0, 1
	case 3:
		return 0, -1
	case 4:
		return 1, 1
	case 5:
		return -1, 1
	case 6:
		return 1, -1
	default:
		return -1, -1
	}
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Perlin2D returns gradient noise at (x, y), roughly in [-1, 1]
func (g *Generator) Perlin2D(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int(x0), int(y0)
	fx, fy := x-x0, y-y0

	corner := func(cx, cy int, dx, dy float64) float64 {
		gx, gy := gradient(g.hash(cx, cy))
		return gx*dx + gy*dy
	}

	n00 := corner(ix, iy, fx, fy)
	n10 := corner(ix+1, iy, fx-1, fy)
	n01 := corner(ix, iy+1, fx, fy-1)
	n11 := corner(ix+1, iy+1, fx-1, fy-1)

	u, v := fade(fx), fade(fy)
	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)
}

// FBM2D sums octaves of Perlin noise and normalizes by the total amplitude
func (g *Generator) FBM2D(x, y float64, octaves int, lacunarity, gain float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += g.Perlin2D(x*freq, y*freq) * amp
		norm += amp
		amp *= gain
		freq *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Field samples FBM over a width x height grid at the given feature scale
// (texels per lattice cell). Row-major, one value per cell.
func (g *Generator) Field(width, height int, scale float64, octaves int) []float64 {
	out := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[y*width+x] = g.FBM2D(float64(x)/scale, float64(y)/scale, octaves, 2, 0.5)
		}
	}
	return out
}
