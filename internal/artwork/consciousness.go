package artwork

import (
	"math/rand"

	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/layout"
	"github.com/user/neongallery/internal/palette"
	"github.com/user/neongallery/internal/scene"
)

func buildIntrospectionSpiral(b *compose.Builder, _ *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 10, 35)

	const points = 40
	spiral := layout.SpiralParams{Turns: 1.5, RFrom: 3, RTo: 0, ZFrom: -1, ZTo: 1}
	for i := 0; i < points; i++ {
		progress := float64(i) / points
		var name string
		switch {
		case progress < 0.33:
			name = "cyan"
		case progress < 0.67:
			name = "magenta"
		default:
			name = "yellow"
		}
		b.Place(compose.Cube, layout.Spiral(i, points, spiral).Sized(0.15), palette.Neon.Glow(name, 4+progress*10))
	}

	b.Place(compose.IcoSphere, layout.At(scene.V(0, 0, 1), 0.3), palette.Neon.Glow("white", 15))
	b.Place(compose.Torus, layout.At(scene.V(0, 0, 1), 0.6), palette.Neon.Glow("white", 3).Named("halo"))
}
