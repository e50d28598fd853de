package outline

import "github.com/chewxy/math32"

// BlurAlpha is the alpha law of the coverage/distance kernel.
//
// Inside the silhouette alpha grows as coverage drops, so the outline hugs the
// inner edge and fades toward the interior. Outside, texels within Solid()
// texels of the silhouette are opaque and alpha falls off linearly over
// Fuzzy() texels beyond that.
func BlurAlpha(coverage float32, inside bool, dist float32, p KernelParams) float32 {
	if inside {
		return math32.Min(1, (1-coverage)/p.InsideFalloff)
	}
	return 1 - clamp01((dist-p.Solid())/p.Fuzzy())
}

// blurWindow samples the (2r+1)^2 neighbourhood of (x, y) and returns the
// mean mask value, whether the center is inside, and the distance in texels
// to the nearest tap at or above one half.
func blurWindow(src *Buffer, x, y, r int) (coverage float32, inside bool, dist float32) {
	dist = sentinelDistance
	var sum float32
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			m := src.R(x+dx, y+dy)
			sum += m
			if m >= 0.5 {
				d := math32.Sqrt(float32(dx*dx + dy*dy))
				if d < dist {
					dist = d
				}
			}
		}
	}
	inside = src.R(x, y) > 0.5
	n := 2*r + 1
	return sum / float32(n*n), inside, dist
}

func blurTexel(src *Buffer, x, y int, p KernelParams) RGBA {
	coverage, inside, dist := blurWindow(src, x, y, p.Radius)
	out := p.Color
	out[3] = BlurAlpha(coverage, inside, dist, p)
	return out
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
