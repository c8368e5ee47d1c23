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

var tokenWave = layout.WaveParams{
	Center: 40,
	Step:   0.25,
	Div:    10,
	Y:      layout.Waves(layout.Sin(3, 1), layout.Sin(1, 2), layout.Cos(0.5, 0.7)),
	Z:      layout.Waves(layout.Cos(1, 0.5), layout.Sin(0.3, 3)),
	Size:   layout.Curve{Base: 0.15, Terms: []layout.Harmonic{layout.Sin(0.1, 1.5), layout.AbsSin(0.05, 3)}},
	Aspect: scene.V(1, 2, 0.8),
	Spin: [3]layout.Curve{
		layout.Waves(layout.Sin(0.3, 1)),
		{Linear: 0.2},
		layout.Waves(layout.Cos(0.5, 2)),
	},
}

// tokenGlow colours token i: cyan input, a purple processing band, gold output.
func tokenGlow(i int, t float64) palette.Emissive {
	switch {
	case i < 25:
		return palette.Glow("token-input", palette.RGB(0, 0.8+math.Sin(t)*0.2, 1), 10+math.Sin(t)*5)
	case i < 50:
		c := palette.Gradient(float64(i-25)/25, palette.RGB(0, 0.8, 1), palette.RGB(0.8, 0.4, 1))
		return palette.Glow("token-processing", c, 15+math.Sin(t*1.5)*4)
	default:
		c := palette.Gradient(float64(i-50)/30, palette.RGB(1, 0.8, 0), palette.RGB(1, 1, 0.3))
		return palette.Glow("token-output", c, 12+math.Cos(t)*6)
	}
}

func buildTokenStream(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	b.SetCameraEuler(scene.V(0, -12, 2), scene.V(1.3, 0, 0), 35)

	for i := 0; i < 80; i++ {
		p := layout.Wave(i, tokenWave)
		b.Place(compose.Cube, p, tokenGlow(i, tokenWave.Param(i)))

		if i > 0 && i%2 == 0 {
			for j := 0; j < 3; j++ {
				trail := layout.At(p.Position.Add(scene.V(-0.25*float64(j+1), -0.1*float64(j), 0)), 0.04-0.01*float64(j))
				b.Place(compose.IcoSphere, trail, palette.Neon.Glow("white", 20-5*float64(j)))
			}
		}
	}

	dust(b, rng, 50, layout.Box{Min: scene.V(-10, -5, -3), Max: scene.V(10, 5, 5)}, 0.02,
		func(scene.Vec3) palette.Emissive {
			var c colorful.Color
			if rng.Float64() > 0.5 {
				c = palette.RGB(0, layout.Uniform(rng, 0.5, 1), 1)
			} else {
				c = palette.RGB(1, 0, layout.Uniform(rng, 0.5, 1))
			}
			return palette.Glow("particle", c, layout.Uniform(rng, 2, 6))
		})

	for i := 0; i < 5; i++ {
		orb := layout.UniformCloud(rng, layout.Box{Min: scene.V(-6, -3, 0), Max: scene.V(6, 3, 3)}).Sized(0.15)
		b.Place(compose.Sphere, orb, palette.Neon.Glow("yellow", 25))
	}
}

const (
	attentionGrid    = 10
	attentionSpacing = 1.5
)

func buildAttentionMatrix(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 18, 35)

	var strong []scene.Vec3
	for i := 0; i < attentionGrid; i++ {
		for j := 0; j < attentionGrid; j++ {
			cell := layout.Grid(i, j, attentionGrid, attentionSpacing)
			base := layout.AttentionWeight(i, j, attentionGrid)
			w := layout.JitterWeight(base, rng)
			if w > 0.1 {
				b.Place(compose.Sphere, cell.Sized(w*0.3), palette.AttentionTiers.Pick(w))
			}
			if base > 0.6 {
				strong = append(strong, cell.Position)
			}
		}
	}

	white := palette.Neon.Glow("white", 5)
	for k, p := range strong {
		for _, q := range strong[k+1:] {
			if q.Sub(p).Len() < 3 {
				beam(b, p, q, 0.02, white)
			}
		}
	}

	dust(b, rng, 40, layout.Box{Min: scene.V(-6, -6, -1), Max: scene.V(6, 6, 1)}, 0.02,
		func(scene.Vec3) palette.Emissive {
			return palette.Neon.Glow("cyan", layout.Uniform(rng, 2, 6))
		})
}

type contextFrame struct {
	name      string
	size, z   float64
	color     colorful.Color
	intensity float64
}

var contextFrames = []contextFrame{
	{"immediate", 4, 0, palette.RGB(0, 1, 1), 15},
	{"recent", 3.2, 0.8, palette.RGB(0.5, 0, 1), 12},
	{"relevant", 2.4, 1.6, palette.RGB(1, 0, 1), 10},
	{"background", 1.6, 2.4, palette.RGB(1, 1, 0), 8},
	{"core", 0.8, 3.2, palette.RGB(1, 1, 1), 20},
}

var contextElements = []struct {
	name  string
	pos   scene.Vec3
	color colorful.Color
	size  float64
}{
	{"query", scene.V(-2, 2, 0.5), palette.RGB(0, 1, 1), 0.2},
	{"memory", scene.V(2, 2, 1.5), palette.RGB(0.5, 0, 1), 0.2},
	{"knowledge", scene.V(2, -2, 2.5), palette.RGB(1, 0, 1), 0.2},
	{"intent", scene.V(-2, -2, 1), palette.RGB(1, 1, 0), 0.2},
	{"focus", scene.V(0, 0, 3.5), palette.RGB(1, 1, 1), 0.3},
}

func buildContextWindow(b *compose.Builder, rng *rand.Rand) {
	darkWorld(b)
	b.SetCameraEuler(scene.V(8, -8, 6), scene.V(1.1, 0, 0.785), 35)

	for _, f := range contextFrames {
		bar := palette.Glow(f.name, f.color, f.intensity)
		for _, p := range layout.SquareFrame(f.size, f.z, 4) {
			b.Place(compose.Cube, p.Sized(0.1), bar)
		}
		corner := palette.Glow(f.name+"-corner", f.color, f.intensity*1.5)
		for _, p := range layout.SquareFrame(f.size, f.z, 1) {
			b.Place(compose.IcoSphere, p.Sized(0.15), corner)
		}
	}

	for _, e := range contextElements {
		b.Place(compose.Sphere, layout.At(e.pos, e.size), palette.Glow(e.name, e.color, 18))
		for i := 0; i < 8; i++ {
			b.Place(compose.IcoSphere, layout.Orbit(e.pos, i, 8, 0.5, 0.1).Sized(0.03), palette.Neon.Glow("white", 10))
		}
	}

	// Deeper particles are dimmer.
	dust(b, rng, 40, layout.Box{Min: scene.V(-5, -5, -1), Max: scene.V(5, 5, 4)}, 0.02,
		func(p scene.Vec3) palette.Emissive {
			v := 1 - p.Z/4
			return palette.Glow("depth", palette.RGB(v, v, 1), layout.Uniform(rng, 2, 6))
		})
}

func buildThoughtChains(b *compose.Builder, _ *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 11, 35)

	b.Place(compose.IcoSphere, layout.At(origin, 0.5), palette.Neon.Glow("white", 15))
	b.Place(compose.Torus, layout.At(origin, 0.8).Turned(scene.V(0.35, 0, 0)), palette.Neon.Glow("white", 4))

	const chains = 8
	link := palette.Neon.Glow("white", 2)
	for i := 0; i < chains; i++ {
		angle := layout.Angle(i, chains)
		prev := origin
		for j := 0; j < 5; j++ {
			dist := 0.8 + float64(j)*0.8
			p := layout.Polar(angle, dist, math.Sin(float64(j)*0.5)*0.3).Sized(0.3 - float64(j)*0.04)
			b.Place(compose.IcoSphere, p, palette.Neon.Cycle(i, 10-float64(j)*1.5))
			beam(b, prev, p.Position, 0.015, link)
			prev = p.Position
		}
	}
}

var reasoningStream = layout.WaveParams{
	Center: 7,
	Step:   0.5,
	Div:    1,
	Size:   layout.Curve{Base: 0.15, Terms: []layout.Harmonic{layout.Sin(0.1, 0.3)}},
}

func buildParallelReasoning(b *compose.Builder, _ *rand.Rand) {
	darkWorld(b)
	overviewCamera(b, 12, 35)

	const streams = 7
	for s := 0; s < streams; s++ {
		params := reasoningStream
		params.Y = layout.Curve{Base: (float64(s) - streams/2.0) * 1.2}
		params.Z = layout.Waves(layout.Harmonic{Amp: 0.3, Freq: 0.5, Phase: float64(s) * 0.8})
		swatch := palette.Neon.At(s)
		for i := 0; i < 15; i++ {
			intensity := 6 + math.Abs(math.Sin(float64(i)*0.3))*6
			b.Place(compose.Cube, layout.Wave(i, params), palette.Glow(swatch.Name, swatch.Color, intensity))
		}
	}
}
