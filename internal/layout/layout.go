// Package layout computes where artwork elements go. Every function is a pure
// function of its arguments; randomness enters only through a caller-supplied
// *rand.Rand so a fixed seed always yields the same placements.
package layout

import (
	"math"
	"math/rand"

	"github.com/user/neongallery/internal/scene"
)

// Placement is the transform of one element. Rotation is Euler XYZ in radians.
type Placement struct {
	Position scene.Vec3
	Scale    scene.Vec3
	Rotation scene.Vec3
}

// At places an element at pos with a uniform scale.
func At(pos scene.Vec3, scale float64) Placement {
	return Placement{Position: pos, Scale: scene.Uniform(scale)}
}

// Sized returns p with a uniform scale.
func (p Placement) Sized(s float64) Placement {
	p.Scale = scene.Uniform(s)
	return p
}

// Stretched returns p with a per-axis scale.
func (p Placement) Stretched(s scene.Vec3) Placement {
	p.Scale = s
	return p
}

// Turned returns p with the given rotation.
func (p Placement) Turned(r scene.Vec3) Placement {
	p.Rotation = r
	return p
}

// Moved returns p translated by d.
func (p Placement) Moved(d scene.Vec3) Placement {
	p.Position = p.Position.Add(d)
	return p
}

// Finite reports whether every component of the transform is a finite number.
func (p Placement) Finite() bool {
	return p.Position.Finite() && p.Scale.Finite() && p.Rotation.Finite()
}

// Harmonic is one term Amp*sin(Freq*t+Phase), or its absolute value when Abs is set.
type Harmonic struct {
	Amp   float64
	Freq  float64
	Phase float64
	Abs   bool
}

// Sin returns amp*sin(freq*t).
func Sin(amp, freq float64) Harmonic { return Harmonic{Amp: amp, Freq: freq} }

// Cos returns amp*cos(freq*t).
func Cos(amp, freq float64) Harmonic { return Harmonic{Amp: amp, Freq: freq, Phase: math.Pi / 2} }

// AbsSin returns amp*|sin(freq*t)|.
func AbsSin(amp, freq float64) Harmonic { return Harmonic{Amp: amp, Freq: freq, Abs: true} }

func (h Harmonic) at(t float64) float64 {
	s := math.Sin(h.Freq*t + h.Phase)
	if h.Abs {
		s = math.Abs(s)
	}
	return h.Amp * s
}

// Curve is Base + Linear*t plus a sum of harmonics.
type Curve struct {
	Base   float64
	Linear float64
	Terms  []Harmonic
}

// Waves is a Curve made only of harmonic terms.
func Waves(terms ...Harmonic) Curve { return Curve{Terms: terms} }

// At evaluates the curve.
func (c Curve) At(t float64) float64 {
	v := c.Base + c.Linear*t
	for _, h := range c.Terms {
		v += h.at(t)
	}
	return v
}

// WaveParams describes a stream of elements marching along X while Y, Z, size and
// spin follow curves of the stream parameter t = i/Div.
type WaveParams struct {
	Center float64
	Step   float64
	Div    float64
	Y, Z   Curve
	Size   Curve
	// Aspect multiplies the size per axis; zero means (1,1,1).
	Aspect scene.Vec3
	Spin   [3]Curve
}

// Param returns the curve parameter of element i.
func (p WaveParams) Param(i int) float64 {
	if p.Div == 0 {
		return float64(i)
	}
	return float64(i) / p.Div
}

// Wave places element i of a flowing stream.
func Wave(i int, p WaveParams) Placement {
	t := p.Param(i)
	aspect := p.Aspect
	if aspect == (scene.Vec3{}) {
		aspect = scene.Uniform(1)
	}
	return Placement{
		Position: scene.V((float64(i)-p.Center)*p.Step, p.Y.At(t), p.Z.At(t)),
		Scale:    aspect.Scale(p.Size.At(t)),
		Rotation: scene.V(p.Spin[0].At(t), p.Spin[1].At(t), p.Spin[2].At(t)),
	}
}

// Grid places cell (i, j) of a size×size grid centred on the origin in the XY plane.
func Grid(i, j, size int, spacing float64) Placement {
	half := float64(size / 2)
	return At(scene.V((float64(i)-half)*spacing, (float64(j)-half)*spacing, 0), 1)
}

// Polar places an element at angle (radians) on a circle of radius in the plane z.
func Polar(angle, radius, z float64) Placement {
	return At(scene.V(math.Cos(angle)*radius, math.Sin(angle)*radius, z), 1)
}

// Angle returns the angle of element i when n elements are spread evenly round a circle.
func Angle(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * 2 * math.Pi
}

// Ring places element i of n evenly spaced on a circle.
func Ring(i, n int, radius, z float64) Placement {
	return Polar(Angle(i, n), radius, z)
}

// SpiralParams describes a planar spiral that rises through ZFrom..ZTo while its
// radius moves from RFrom to RTo over Turns full revolutions.
type SpiralParams struct {
	Turns      float64
	RFrom, RTo float64
	ZFrom, ZTo float64
}

// Spiral places element i of n along the spiral.
func Spiral(i, n int, p SpiralParams) Placement {
	f := fraction(i, n)
	angle := f * p.Turns * 2 * math.Pi
	r := p.RFrom + (p.RTo-p.RFrom)*f
	return Polar(angle, r, p.ZFrom+(p.ZTo-p.ZFrom)*f)
}

// HelixParams describes a helix around the Z axis.
type HelixParams struct {
	Radius float64
	Turns  float64
	Height float64 // total rise
	Phase  float64
}

// Helix places element i of n along the helix, centred vertically on z=0.
func Helix(i, n int, p HelixParams) Placement {
	f := fraction(i, n)
	angle := f*p.Turns*2*math.Pi + p.Phase
	return Polar(angle, p.Radius, (f-0.5)*p.Height)
}

func fraction(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n)
}

// LayerParams lays neural-network layers out along X.
type LayerParams struct {
	LayerSpacing float64
	NodeSpacing  float64
	Offset       float64 // x of layer 0
	DepthJitter  float64 // ±Z noise; 0 disables
}

// Layered places node index of a layer with layerSize nodes, centring every layer on Y=0.
// rng may be nil when DepthJitter is zero.
func Layered(layer, index, layerSize int, p LayerParams, rng *rand.Rand) Placement {
	x := p.Offset + float64(layer)*p.LayerSpacing
	y := (float64(index) - float64(layerSize-1)/2) * p.NodeSpacing
	z := 0.0
	if p.DepthJitter > 0 && rng != nil {
		z = uniform(rng, -p.DepthJitter, p.DepthJitter)
	}
	return At(scene.V(x, y, z), 1)
}

// Box is an axis-aligned volume.
type Box struct {
	Min, Max scene.Vec3
}

// Cube is the box [-h,h] on every axis.
func Cube(h float64) Box {
	return Box{Min: scene.Uniform(-h), Max: scene.Uniform(h)}
}

// UniformCloud places a particle uniformly inside box.
func UniformCloud(rng *rand.Rand, box Box) Placement {
	return At(scene.V(
		uniform(rng, box.Min.X, box.Max.X),
		uniform(rng, box.Min.Y, box.Max.Y),
		uniform(rng, box.Min.Z, box.Max.Z),
	), 1)
}

// GaussianCloud places a particle normally distributed around center.
func GaussianCloud(rng *rand.Rand, center, sigma scene.Vec3) Placement {
	return At(scene.V(
		center.X+rng.NormFloat64()*sigma.X,
		center.Y+rng.NormFloat64()*sigma.Y,
		center.Z+rng.NormFloat64()*sigma.Z,
	), 1)
}

// Disc places a particle on a flat disc of the given radius with ±thickness Z noise.
func Disc(rng *rand.Rand, radius, thickness float64) Placement {
	p := Polar(uniform(rng, 0, 2*math.Pi), uniform(rng, 0, radius), 0)
	p.Position.Z = uniform(rng, -thickness, thickness)
	return p
}

// Orbit places element i of n on a small wobbling ring around center.
func Orbit(center scene.Vec3, i, n int, radius, wobble float64) Placement {
	a := Angle(i, n)
	return At(center.Add(scene.V(math.Cos(a)*radius, math.Sin(a)*radius, math.Sin(2*a)*wobble)), 1)
}

// Beam returns the placement of a unit cylinder stretched from a to b.
// A degenerate beam (a == b) keeps zero length along Z.
func Beam(a, b scene.Vec3, thickness float64) Placement {
	d := b.Sub(a)
	length := d.Len()
	p := Placement{
		Position: a.Lerp(b, 0.5),
		Scale:    scene.V(thickness, thickness, length/2),
	}
	if length > 0 {
		// Rz(yaw)·Ry(pitch) takes +Z onto the beam direction.
		p.Rotation = scene.V(0, math.Acos(clamp(d.Z/length, -1, 1)), math.Atan2(d.Y, d.X))
	}
	return p
}

// SquareFrame places steps+1 markers along each edge of a square of half-size h in
// the plane z, corners included once.
func SquareFrame(h, z float64, steps int) []Placement {
	if steps < 1 {
		steps = 1
	}
	corners := [4]scene.Vec3{
		scene.V(-h, -h, z), scene.V(h, -h, z), scene.V(h, h, z), scene.V(-h, h, z),
	}
	out := make([]Placement, 0, 4*steps)
	for e := 0; e < 4; e++ {
		from, to := corners[e], corners[(e+1)%4]
		for k := 0; k < steps; k++ {
			out = append(out, At(from.Lerp(to, float64(k)/float64(steps)), 1))
		}
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Uniform draws from [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 { return uniform(rng, lo, hi) }

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
