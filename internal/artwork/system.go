package artwork

import (
	"math/rand"

	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/layout"
	"github.com/user/neongallery/internal/palette"
	"github.com/user/neongallery/internal/scene"
)

func buildProcessThreads(b *compose.Builder, _ *rand.Rand) {
	darkWorld(b)
	b.SetCamera(scene.V(0, -9, 3), origin, 45)

	b.Place(compose.Cylinder, layout.At(origin, 1).Stretched(scene.V(0.8, 0.8, 2)), palette.Principled{
		Name:             "main-process",
		Color:            palette.RGB(0.9, 0.9, 0.95),
		Roughness:        0.25,
		Metallic:         1,
		Emission:         palette.RGB(1, 1, 1),
		EmissionStrength: 0.4,
	})
	b.Place(compose.Plane, layout.At(scene.V(0, 0, -2.4), 1), palette.Principled{
		Name:      "floor",
		Color:     palette.RGB(0.35, 0.35, 0.4),
		Roughness: 0.1,
		Metallic:  1,
	})
	b.AddLight(compose.Light{Kind: compose.Area, Position: scene.V(0, -5, 5), Energy: 300, Size: 4})

	const threads = 6
	for t := 0; t < threads; t++ {
		helix := layout.HelixParams{Radius: 1.2, Turns: 2, Height: 4, Phase: layout.Angle(t, threads)}
		glow := palette.Neon.Cycle(t, 8)
		for i := 0; i < 20; i++ {
			b.Place(compose.Cube, layout.Helix(i, 20, helix).Sized(0.1), glow)
		}
	}
}

var hexNetwork = []scene.Vec3{
	scene.V(0, 0, 0),
	scene.V(2.5, 0, 0),
	scene.V(-2.5, 0, 0),
	scene.V(1.25, 2.16, 0),
	scene.V(1.25, -2.16, 0),
	scene.V(-1.25, 2.16, 0),
	scene.V(-1.25, -2.16, 0),
}

var hexLinks = [][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6},
	{1, 3}, {1, 4}, {2, 5}, {2, 6}, {3, 5}, {4, 6},
}

func buildNetworkPackets(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 10, 35)

	for i, pos := range hexNetwork {
		if i == 0 {
			b.Place(compose.IcoSphere, layout.At(pos, 0.3), palette.Neon.Glow("white", 10))
			continue
		}
		b.Place(compose.IcoSphere, layout.At(pos, 0.25), palette.Neon.Cycle(i-1, 10))
	}

	link := palette.Neon.Glow("white", 2)
	for _, l := range hexLinks {
		beam(b, hexNetwork[l[0]], hexNetwork[l[1]], 0.02, link)
	}

	for i := 0; i < 15; i++ {
		l := hexLinks[rng.Intn(len(hexLinks))]
		pos := hexNetwork[l[0]].Lerp(hexNetwork[l[1]], rng.Float64())
		pos.Z = layout.Uniform(rng, -0.2, 0.2)
		b.Place(compose.IcoSphere, layout.At(pos, 0.08), palette.Neon.Cycle(i, 8))
	}
}

var fileOps = []struct {
	name  string
	pos   scene.Vec3
	color string
}{
	{"read", scene.V(-2, 1.5, 0), "cyan"},
	{"write", scene.V(-2, 0.5, 0), "magenta"},
	{"delete", scene.V(-2, -0.5, 0), "red"},
	{"create", scene.V(-2, -1.5, 0), "green"},
}

func buildFileOperations(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 9, 35)

	block := palette.Principled{
		Name:             "file",
		Color:            palette.RGB(0.1, 0.1, 0.12),
		Roughness:        0.4,
		Emission:         palette.RGB(1, 1, 1),
		EmissionStrength: 3,
	}
	var files []scene.Vec3
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			pos := scene.V(1+float64(j)*0.8, (float64(i)-1.5)*0.8, 0)
			b.Place(compose.Cube, layout.At(pos, 0.3), block)
			files = append(files, pos)
		}
	}
	b.AddLight(compose.Light{Kind: compose.Sun, Position: scene.V(0, 0, 10), Energy: 1})

	for _, op := range fileOps {
		b.Place(compose.Cube, layout.At(op.pos, 1).Stretched(scene.V(0.4, 0.15, 0.15)), palette.Neon.Glow(op.color, 10).Named(op.name))

		target := files[rng.Intn(len(files))]
		beam(b, op.pos, target, 0.015, palette.Neon.Glow(op.color, 2).Named(op.name+"-path"))

		// The arrowhead sits halfway along the path with its apex towards the file.
		head := layout.Beam(op.pos, target, 0.15).Stretched(scene.V(0.15, 0.15, 0.3))
		b.Place(compose.Cone, head, palette.Neon.Glow(op.color, 8).Named(op.name+"-arrow"))
	}
}
