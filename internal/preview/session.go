// Package preview shows one artwork in a window while it renders.
package preview

import (
	"context"
	"errors"
	"image"
	"math/rand"
	"path/filepath"
	"sync"

	"github.com/user/neongallery/internal/artwork"
	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/pipeline"
)

var errNothingRendered = errors.New("no finished render to save")

// session holds the artwork being previewed and its last finished frame.
type session struct {
	art  artwork.Artwork
	opts pipeline.Options

	mu   sync.Mutex
	seed int64
	last *image.NRGBA
}

func newSession(a artwork.Artwork, opts pipeline.Options) *session {
	return &session{art: a, opts: opts, seed: opts.Seed}
}

func (s *session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Reseed picks a new run seed from rng and returns it.
func (s *session) Reseed(rng *rand.Rand) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = rng.Int63n(1 << 31)
	return s.seed
}

// NewFrame returns a blank buffer of the preview size.
func (s *session) NewFrame() *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, s.opts.Render.Width, s.opts.Render.Height))
}

// Render composes the artwork with the current seed and renders it into dst.
// A completed frame becomes the one Save writes.
func (s *session) Render(ctx context.Context, dst *image.NRGBA, progress func()) error {
	seed := s.Seed()
	sc := s.art.Compose(compose.NewBuilder(), seed)
	ro := s.opts.Render
	ro.Seed = s.art.Seed(seed)
	ro.Progress = progress
	if err := compose.RenderInto(ctx, sc, dst, ro); err != nil {
		return err
	}
	s.mu.Lock()
	s.last = dst
	s.mu.Unlock()
	return nil
}

// Save post-processes the last finished frame and writes it to the artwork's file
// under the output root.
func (s *session) Save() (string, error) {
	s.mu.Lock()
	frame := s.last
	s.mu.Unlock()
	if frame == nil {
		return "", errNothingRendered
	}
	path := filepath.Join(s.opts.OutputRoot, filepath.FromSlash(s.art.File()))
	if err := compose.Export(path, pipeline.Finish(frame, s.opts)); err != nil {
		return "", err
	}
	return path, nil
}

// generation numbers renders so a superseded render can tell it is stale.
type generation struct {
	mu sync.Mutex
	n  uint64
}

// Next starts a new generation and returns its number.
func (g *generation) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.n
}

// Current reports whether n is still the latest generation.
func (g *generation) Current(n uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n == n
}
