package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/neongallery/internal/scene"
)

var tokenWave = WaveParams{
	Center: 40,
	Step:   0.25,
	Div:    10,
	Y:      Waves(Sin(3, 1), Sin(1, 2), Cos(0.5, 0.7)),
	Z:      Waves(Cos(1, 0.5), Sin(0.3, 3)),
	Size:   Curve{Base: 0.15, Terms: []Harmonic{Sin(0.1, 1.5), AbsSin(0.05, 3)}},
	Aspect: scene.V(1, 2, 0.8),
	Spin:   [3]Curve{Waves(Sin(0.3, 1)), {Linear: 0.2}, Waves(Cos(0.5, 2))},
}

func TestWaveMatchesClosedForm(t *testing.T) {
	for _, i := range []int{0, 17, 40, 79} {
		tt := float64(i) / 10
		p := Wave(i, tokenWave)
		s := 0.15 + math.Sin(1.5*tt)*0.1 + math.Abs(math.Sin(3*tt))*0.05

		assert.InDelta(t, (float64(i)-40)*0.25, p.Position.X, 1e-12)
		assert.InDelta(t, math.Sin(tt)*3+math.Sin(2*tt)+math.Cos(0.7*tt)*0.5, p.Position.Y, 1e-12)
		assert.InDelta(t, math.Cos(0.5*tt)+math.Sin(3*tt)*0.3, p.Position.Z, 1e-12)
		assert.InDelta(t, s, p.Scale.X, 1e-12)
		assert.InDelta(t, 2*s, p.Scale.Y, 1e-12)
		assert.InDelta(t, tt*0.2, p.Rotation.Y, 1e-12)
	}
}

func TestPlacementsAreFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var all []Placement
	for i := 0; i < 80; i++ {
		all = append(all, Wave(i, tokenWave))
	}
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			all = append(all, Grid(i, j, 10, 1.5))
		}
	}
	for i := 0; i < 64; i++ {
		all = append(all,
			Ring(i, 64, 3, 0),
			Spiral(i, 64, SpiralParams{Turns: 1.5, RFrom: 3, RTo: 0, ZFrom: -1, ZTo: 1}),
			Helix(i, 64, HelixParams{Radius: 1, Turns: 3, Height: 6}),
			Layered(i%4, i%7, 7, LayerParams{LayerSpacing: 3, NodeSpacing: 1.5, Offset: -6, DepthJitter: 0.5}, rng),
			UniformCloud(rng, Cube(6)),
			GaussianCloud(rng, scene.V(0, 0, 0), scene.Uniform(2)),
			Disc(rng, 5, 0.3),
			Orbit(scene.V(1, 2, 3), i, 64, 0.5, 0.1),
		)
	}
	all = append(all, Beam(scene.V(0, 0, 0), scene.V(0, 0, 0), 0.02))
	all = append(all, SquareFrame(4, 0, 4)...)

	for k, p := range all {
		require.Truef(t, p.Finite(), "placement %d is not finite: %+v", k, p)
	}
}

func TestSeededGeneratorsAreDeterministic(t *testing.T) {
	gen := func(seed int64) []Placement {
		rng := rand.New(rand.NewSource(seed))
		var out []Placement
		for i := 0; i < 20; i++ {
			out = append(out, UniformCloud(rng, Cube(6)), GaussianCloud(rng, scene.V(1, 1, 1), scene.Uniform(0.5)), Disc(rng, 4, 0.2))
		}
		return out
	}
	if diff := cmp.Diff(gen(42), gen(42)); diff != "" {
		t.Fatalf("same seed produced different placements (-a +b):\n%s", diff)
	}
	assert.NotEmpty(t, cmp.Diff(gen(42), gen(43)))
}

func TestUniformCloudStaysInBox(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	box := Box{Min: scene.V(-6, -6, -1), Max: scene.V(6, 6, 1)}
	for i := 0; i < 500; i++ {
		p := UniformCloud(rng, box).Position
		assert.True(t, p.X >= -6 && p.X < 6 && p.Y >= -6 && p.Y < 6 && p.Z >= -1 && p.Z < 1, "%+v", p)
	}
}

func TestBeamSpansEndpoints(t *testing.T) {
	a, b := scene.V(1, 0, 0), scene.V(1, 4, 3)
	p := Beam(a, b, 0.02)

	assert.Equal(t, scene.V(1, 2, 1.5), p.Position)
	assert.InDelta(t, 2.5, p.Scale.Z, 1e-12)

	// The rotated +Z axis must point from a to b.
	sy, cy := math.Sincos(p.Rotation.Y)
	sz, cz := math.Sincos(p.Rotation.Z)
	dir := scene.V(sy*cz, sy*sz, cy)
	want := b.Sub(a).Scale(1 / 5.0)
	opt := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff(want, dir, opt); diff != "" {
		t.Fatalf("beam axis (-want +got):\n%s", diff)
	}
}

func TestGridIsCentred(t *testing.T) {
	assert.Equal(t, scene.V(-7.5, 6, 0), Grid(0, 9, 10, 1.5).Position)
	assert.Equal(t, scene.V(0, 0, 0), Grid(5, 5, 10, 1.5).Position)
}

func TestSquareFrameCount(t *testing.T) {
	frame := SquareFrame(2, 1, 4)
	require.Len(t, frame, 16)
	assert.Equal(t, scene.V(-2, -2, 1), frame[0].Position)
	assert.Equal(t, scene.V(-1, -2, 1), frame[1].Position)
}

func TestAttentionWeight(t *testing.T) {
	tests := []struct {
		name string
		i, j int
		want float64
	}{
		{"centre", 5, 5, 1},
		{"hotspot", 2, 7, 1},
		{"diagonal", 0, 0, 1},
		{"near diagonal", 1, 3, 0.8},
		{"off diagonal far corner", 0, 9, 0},
		{"centre falloff", 4, 7, 1 - math.Sqrt(5)/3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AttentionWeight(tt.i, tt.j, 10), 1e-12)
		})
	}
}

func TestJitterWeightRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		w := JitterWeight(0.5, rng)
		assert.GreaterOrEqual(t, w, 0.4)
		assert.Less(t, w, 0.6)
	}
}
