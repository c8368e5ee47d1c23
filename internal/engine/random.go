package engine

import "math/rand"

// randSource is a lightweight wrapper around math/rand.Rand.
// It is not safe for concurrent use, so each goroutine must have its own instance.
type randSource struct {
	r *rand.Rand
}

func newRandSource(seed int64) *randSource {
	return &randSource{
		r: rand.New(rand.NewSource(seed)),
	}
}

// tileSeed derives the per-tile seed so the image does not depend on which worker
// happened to pick up which tile.
func tileSeed(seed int64, tile int) int64 {
	return seed*6364136223846793005 + int64(tile)*1442695040888963407 + 1
}

func (rs *randSource) Float64() float64 {
	return rs.r.Float64()
}
