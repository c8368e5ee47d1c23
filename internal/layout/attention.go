package layout

import (
	"math"
	"math/rand"
)

// Hotspots are the grid cells forced to full attention.
var Hotspots = [][2]int{{2, 7}, {7, 2}, {3, 3}, {6, 6}}

// AttentionWeight is the pre-jitter weight of cell (i, j) in a size×size attention
// matrix: a falloff around the centre, a strong diagonal and the fixed hotspots.
func AttentionWeight(i, j, size int) float64 {
	half := float64(size / 2)
	dist := math.Hypot(float64(i)-half, float64(j)-half)

	w := 0.0
	if dist < 3 {
		w = 1 - dist/3
	}
	if size > 0 {
		diag := 1 - math.Abs(float64(i-j))/float64(size)
		if diag > 0.7 {
			w = math.Max(w, diag)
		}
	}
	for _, h := range Hotspots {
		if h[0] == i && h[1] == j {
			return 1
		}
	}
	return w
}

// JitterWeight mixes 80% of w with uniform noise in [0, 0.2). The result is not clamped.
func JitterWeight(w float64, rng *rand.Rand) float64 {
	return w*0.8 + rng.Float64()*0.2
}
