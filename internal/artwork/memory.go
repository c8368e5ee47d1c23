package artwork

import (
	"math/rand"

	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/layout"
	"github.com/user/neongallery/internal/palette"
)

func buildKnowledgeGraph(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 12, 35)

	b.Place(compose.IcoSphere, layout.At(origin, 0.6), palette.Neon.Glow("white", 15))

	spoke := palette.Neon.Glow("white", 3)
	twig := palette.Neon.Glow("white", 1.5)
	for i := 0; i < 6; i++ {
		primary := layout.Ring(i, 6, 2.5, 0)
		b.Place(compose.IcoSphere, primary.Sized(0.4), palette.Neon.Cycle(i, 10))
		beam(b, origin, primary.Position, 0.02, spoke)

		for j := 0; j < 3; j++ {
			angle := layout.Angle(i, 6) + float64(j-1)*0.5
			p := layout.Polar(angle, 1, layout.Uniform(rng, -0.5, 0.5)).Moved(primary.Position).Sized(0.25)
			b.Place(compose.IcoSphere, p, palette.Neon.Cycle(i+j+3, 6))
			beam(b, primary.Position, p.Position, 0.012, twig)
		}
	}
}
