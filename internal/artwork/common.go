package artwork

import (
	"math/rand"

	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/layout"
	"github.com/user/neongallery/internal/palette"
	"github.com/user/neongallery/internal/scene"
)

var origin = scene.V(0, 0, 0)

// overviewCamera looks down on the XY plane from the front at about 37°.
func overviewCamera(b *compose.Builder, dist, lens float64) {
	b.SetCamera(scene.V(0, -dist*0.8, dist*0.6), origin, lens)
}

func darkWorld(b *compose.Builder) {
	b.SetBackground(palette.RGB(0, 0, 0))
}

// beam joins from and to with a glowing rod.
func beam(b *compose.Builder, from, to scene.Vec3, thickness float64, m palette.MaterialSpec) {
	b.Place(compose.Cylinder, layout.Beam(from, to, thickness), m)
}

// dust scatters n tiny particles through box.
func dust(b *compose.Builder, rng *rand.Rand, n int, box layout.Box, size float64, color func(p scene.Vec3) palette.Emissive) {
	for i := 0; i < n; i++ {
		p := layout.UniformCloud(rng, box).Sized(size)
		b.Place(compose.IcoSphere, p, color(p.Position))
	}
}
