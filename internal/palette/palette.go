// Package palette turns weights and indices into material descriptions.
package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaterialSpec describes a surface. It is one of Emissive, Principled or Glass.
type MaterialSpec interface {
	SpecName() string
	isMaterialSpec()
}

// Emissive is a pure light-emitting surface.
type Emissive struct {
	Name     string
	Color    colorful.Color
	Strength float64
}

// Principled is a general surface that may also emit.
type Principled struct {
	Name             string
	Color            colorful.Color
	Roughness        float64
	Metallic         float64
	Emission         colorful.Color
	EmissionStrength float64
}

// Glass is a clear refractive surface tinted by Color.
type Glass struct {
	Name  string
	Color colorful.Color
	IOR   float64
}

func (e Emissive) SpecName() string   { return e.Name }
func (p Principled) SpecName() string { return p.Name }
func (g Glass) SpecName() string      { return g.Name }

func (Emissive) isMaterialSpec()   {}
func (Principled) isMaterialSpec() {}
func (Glass) isMaterialSpec()      {}

// Glow returns an emissive material.
func Glow(name string, c colorful.Color, strength float64) Emissive {
	return Emissive{Name: name, Color: c, Strength: strength}
}

// Scaled multiplies the strength by w. Out-of-range weights are kept as they are.
func (e Emissive) Scaled(w float64) Emissive {
	e.Strength *= w
	return e
}

// Named returns e with another name.
func (e Emissive) Named(name string) Emissive {
	e.Name = name
	return e
}

// RGB builds a colour from linear channel values; channels above 1 are allowed.
func RGB(r, g, b float64) colorful.Color { return colorful.Color{R: r, G: g, B: b} }

// Hue returns a fully saturated colour at hue h in degrees.
func Hue(h float64) colorful.Color {
	return colorful.Hsv(math.Mod(math.Mod(h, 360)+360, 360), 1, 1)
}

// ParseHex parses "#rrggbb".
func ParseHex(s string) (colorful.Color, error) {
	return colorful.Hex(s)
}

// Gradient blends linearly through evenly spaced stops. t is clamped to [0, 1].
func Gradient(t float64, stops ...colorful.Color) colorful.Color {
	switch len(stops) {
	case 0:
		return colorful.Color{}
	case 1:
		return stops[0]
	}
	t = math.Max(0, math.Min(1, t))
	seg := t * float64(len(stops)-1)
	i := int(seg)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return stops[i].BlendRgb(stops[i+1], seg-float64(i))
}
