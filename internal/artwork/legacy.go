package artwork

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/layout"
	"github.com/user/neongallery/internal/palette"
	"github.com/user/neongallery/internal/scene"
)

var networkLayers = []int{4, 6, 6, 3}

func buildNeuralNetwork(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 11, 35)

	params := layout.LayerParams{LayerSpacing: 2, NodeSpacing: 0.8, Offset: -3}
	synapse := palette.Neon.Glow("white", 2)
	var prev []scene.Vec3
	for layer, n := range networkLayers {
		nodes := make([]scene.Vec3, 0, n)
		for i := 0; i < n; i++ {
			p := layout.Layered(layer, i, n, params, nil)
			b.Place(compose.IcoSphere, p.Sized(0.3), palette.Neon.Cycle(layer, 8+layout.Uniform(rng, -2, 2)))
			nodes = append(nodes, p.Position)

			if len(prev) == 0 {
				continue
			}
			// Each neuron listens to a random subset of the previous layer.
			for _, j := range rng.Perm(len(prev))[:min(3, len(prev))] {
				beam(b, prev[j], p.Position, 0.01, synapse)
			}
		}
		prev = nodes
	}
}

func buildDataFlow(b *compose.Builder, _ *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 10, 35)

	const stages = 5
	for stage := 0; stage < stages; stage++ {
		x := (float64(stage) - stages/2.0) * 1.5
		swatch := palette.Neon.At(stage)

		if stage == 0 {
			for i := 0; i < 8; i++ {
				b.Place(compose.IcoSphere, layout.At(scene.V(x-0.8, (float64(i)-3.5)*0.3, 0), 0.08), palette.Neon.Glow("cyan", 4))
			}
		}

		b.Place(compose.IcoSphere, layout.At(scene.V(x, 0, 0), 0.5), palette.Glow(swatch.Name, swatch.Color, 10))

		if stage < stages-1 {
			stream := palette.Glow(swatch.Name+"-stream", swatch.Color, 6)
			for i := 0; i < 5; i++ {
				p := layout.At(scene.V(x+0.75, (float64(i)-2)*0.2, 0), 1).Stretched(scene.V(0.2, 0.05, 0.05))
				b.Place(compose.Cube, p, stream)
			}
		}
	}
}

var crystalVertices = []scene.Vec3{
	scene.V(0, 0, 1.5),
	scene.V(1, 0, 0),
	scene.V(0, 1, 0),
	scene.V(-1, 0, 0),
	scene.V(0, -1, 0),
	scene.V(0, 0, -1.5),
}

var crystalEdges = [][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 2}, {2, 3}, {3, 4}, {4, 1},
	{5, 1}, {5, 2}, {5, 3}, {5, 4},
	{1, 3}, {2, 4},
}

func buildAlgorithmCrystal(b *compose.Builder, _ *rand.Rand) {
	darkWorld(b)
	b.SetCamera(scene.V(0, -7, 2.5), origin, 50)

	for i, v := range crystalVertices {
		glow := palette.Neon.Cycle(i, 12)
		if i == 0 || i == 5 {
			glow = palette.Neon.Glow("white", 12)
		}
		b.Place(compose.IcoSphere, layout.At(v, 0.2), glow)
	}

	edge := palette.Neon.Glow("cyan", 6)
	for _, e := range crystalEdges {
		beam(b, crystalVertices[e[0]], crystalVertices[e[1]], 0.03, edge)
	}

	b.Place(compose.Sphere, layout.At(origin, 0.55), palette.Glass{Name: "crystal-core", Color: palette.RGB(0.9, 1, 1), IOR: 1.5})
}

var codePlanets = []struct {
	name   string
	radius float64
	z      float64
	color  string
}{
	{"functions", 2, 0, "cyan"},
	{"classes", 2.5, 0.5, "magenta"},
	{"variables", 1.5, -0.3, "green"},
	{"loops", 3, 0.2, "orange"},
}

func buildCodeUniverse(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 10, 35)

	b.Place(compose.IcoSphere, layout.At(origin, 0.8), palette.Neon.Glow("yellow", 15).Named("code-star"))
	b.Place(compose.Torus, layout.At(origin, 1.2).Turned(scene.V(0.4, 0, 0)), palette.Neon.Glow("orange", 3).Named("corona"))

	for _, pl := range codePlanets {
		planet := layout.Polar(layout.Uniform(rng, 0, 2*math.Pi), pl.radius, pl.z)
		b.Place(compose.IcoSphere, planet.Sized(0.3), palette.Neon.Glow(pl.color, 8).Named(pl.name))

		moon := palette.Neon.Glow(pl.color, 5).Named(pl.name + "-moon")
		for i := 0; i < 3; i++ {
			p := layout.Orbit(planet.Position, i, 3, 0.6, 0).Moved(scene.V(0, 0, layout.Uniform(rng, -0.1, 0.1)))
			b.Place(compose.IcoSphere, p.Sized(0.1), moon)
		}
	}

	galaxy(b, rng, origin, galaxyRadius, galaxyStars)

	for i := 0; i < haloDust; i++ {
		p := layout.Disc(rng, galaxyRadius+0.5, 0.4).Sized(0.02)
		b.Place(compose.IcoSphere, p, palette.Neon.Cycle(rng.Intn(len(palette.Neon)), layout.Uniform(rng, 3, 6)))
	}
}

const (
	galaxyRadius = 4.5
	galaxyStars  = 200
	haloDust     = 50
)

// galaxy scatters n stars along spiral arms in the plane of center. Stars keep
// clear of the inner third of the radius, where the code star sits.
func galaxy(b *compose.Builder, rng *rand.Rand, center scene.Vec3, radius float64, n int) {
	for i := 0; i < n; i++ {
		angle := layout.Uniform(rng, 0, 4*math.Pi)
		r := radius * math.Sqrt(layout.Uniform(rng, 0.1, 1))
		arm := layout.Polar(angle*1.2, r, 0)
		p := layout.GaussianCloud(rng, center, scene.V(0, 0, radius*0.1)).
			Moved(arm.Position).
			Sized(layout.Uniform(rng, 0.02, 0.1))

		temp := rng.Float64()
		b.Place(compose.IcoSphere, p, palette.StarTiers.Bucket(temp).Glow(temp))
	}
}

// architectureTiers are laid out as layers from the core outwards.
var architectureTiers = []struct {
	name  string
	shape compose.Shape
	count int
	size  scene.Vec3
	color colorful.Color
}{
	{"core", compose.Cube, 1, scene.Uniform(0.6), palette.RGB(0.8, 0.2, 0.2)},
	{"service", compose.Cylinder, 6, scene.V(0.3, 0.3, 0.5), palette.RGB(0.2, 0.8, 0.2)},
	{"interface", compose.Torus, 4, scene.Uniform(0.4), palette.RGB(0.2, 0.2, 0.8)},
	{"data", compose.Sphere, 4, scene.Uniform(0.3), palette.RGB(0.8, 0.8, 0.2)},
}

func buildSystemArchitecture(b *compose.Builder, rng *rand.Rand) {
	b.SetGradient(palette.RGB(0.02, 0.02, 0.03), palette.RGB(0.01, 0.02, 0.08))
	b.SetCameraEuler(scene.V(10, -10, 8), scene.V(1.1, 0, 0.785), 35)
	b.AddLight(compose.Light{Kind: compose.Sun, Position: scene.V(5, 5, 10), Energy: 0.5})
	b.AddLight(compose.Light{Kind: compose.Area, Position: scene.V(-5, -5, 0), Energy: 50, Size: 2, Color: palette.RGB(0.5, 0.7, 1)})

	params := layout.LayerParams{LayerSpacing: 2.2, NodeSpacing: 1.2, Offset: -3.3, DepthJitter: 0.5}
	var components []scene.Vec3
	for layer, tier := range architectureTiers {
		m := palette.Principled{
			Name:             tier.name,
			Color:            tier.color,
			Roughness:        0.2,
			Metallic:         0.5,
			Emission:         tier.color,
			EmissionStrength: 2,
		}
		for i := 0; i < tier.count; i++ {
			p := layout.Layered(layer, i, tier.count, params, rng).Stretched(tier.size)
			b.Place(tier.shape, p, m)
			components = append(components, p.Position)
		}
	}

	link := palette.Glow("connection", palette.RGB(0.5, 0.5, 0.8), 1.5)
	for i, from := range components {
		links := 2 + rng.Intn(2)
		for _, j := range rng.Perm(len(components)) {
			if links == 0 {
				break
			}
			if j == i {
				continue
			}
			beam(b, from, components[j], 0.02, link)
			links--
		}
	}

	dust(b, rng, 30, layout.Box{Min: scene.V(-6, -6, -3), Max: scene.V(6, 6, 3)}, 0.05,
		func(scene.Vec3) palette.Emissive { return palette.Glow("particle", palette.RGB(1, 1, 1), 2) })
}
