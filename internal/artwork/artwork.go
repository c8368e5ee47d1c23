// Package artwork holds the catalogue of procedural neon artworks. Each artwork is
// a record whose Build function composes its scene on a Builder.
package artwork

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"path"
	"sort"

	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/scene"
)

// ErrUnknownArtwork is returned when a name is not in the catalogue.
var ErrUnknownArtwork = errors.New("unknown artwork")

// Category groups artworks on disk and in the gallery.
type Category string

const (
	Thinking      Category = "thinking"
	Memory        Category = "memory"
	System        Category = "system"
	Consciousness Category = "consciousness"
	// Legacy artworks are written at the output root.
	Legacy Category = "legacy"
)

// Artwork describes one image.
type Artwork struct {
	Name        string
	Category    Category
	Title       string
	Description string
	Build       func(b *compose.Builder, rng *rand.Rand)
}

// File is the output path relative to the output root.
func (a Artwork) File() string {
	if a.Category == Legacy {
		return a.Name + ".png"
	}
	return path.Join(string(a.Category), a.Name+".png")
}

// Seed derives the artwork's own seed from a run seed, so results do not depend on
// which other artworks are rendered or in what order.
func (a Artwork) Seed(runSeed int64) int64 {
	h := fnv.New64a()
	h.Write([]byte(a.Name))
	return runSeed + int64(h.Sum64()>>1)
}

// Compose builds the artwork's scene from scratch.
func (a Artwork) Compose(b *compose.Builder, runSeed int64) *scene.Scene {
	b.Reset(a.Name)
	a.Build(b, rand.New(rand.NewSource(a.Seed(runSeed))))
	return b.Scene()
}

// All returns the catalogue ordered by category, then name.
func All() []Artwork {
	out := append([]Artwork(nil), catalogue...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Lookup finds an artwork by name.
func Lookup(name string) (Artwork, error) {
	for _, a := range catalogue {
		if a.Name == name {
			return a, nil
		}
	}
	return Artwork{}, fmt.Errorf("%w: %q", ErrUnknownArtwork, name)
}

// Select resolves names in order; no names means the whole catalogue.
func Select(names []string) ([]Artwork, error) {
	if len(names) == 0 {
		return All(), nil
	}
	out := make([]Artwork, 0, len(names))
	for _, n := range names {
		a, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
