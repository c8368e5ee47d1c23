package palette

import colorful "github.com/lucasb-eyer/go-colorful"

// Swatch is a named colour.
type Swatch struct {
	Name  string
	Color colorful.Color
}

// Palette is an ordered list of swatches.
type Palette []Swatch

// Neon is the fixed neon palette shared by every artwork.
var Neon = Palette{
	{"cyan", RGB(0, 1, 1)},
	{"magenta", RGB(1, 0, 1)},
	{"yellow", RGB(1, 1, 0)},
	{"green", RGB(0, 1, 0)},
	{"blue", RGB(0, 0.5, 1)},
	{"orange", RGB(1, 0.5, 0)},
	{"purple", RGB(0.5, 0, 1)},
	{"pink", RGB(1, 0, 0.5)},
	{"white", RGB(1, 1, 1)},
	{"red", RGB(1, 0, 0)},
}

// At returns the swatch at index i, wrapping in both directions.
func (p Palette) At(i int) Swatch {
	if len(p) == 0 {
		return Swatch{}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Lookup finds a swatch by name.
func (p Palette) Lookup(name string) (colorful.Color, bool) {
	for _, s := range p {
		if s.Name == name {
			return s.Color, true
		}
	}
	return colorful.Color{}, false
}

// Color returns the named colour, or white when the name is unknown.
func (p Palette) Color(name string) colorful.Color {
	if c, ok := p.Lookup(name); ok {
		return c
	}
	return RGB(1, 1, 1)
}

// Glow returns an emissive material in the named colour.
func (p Palette) Glow(name string, strength float64) Emissive {
	return Glow(name, p.Color(name), strength)
}

// Cycle returns an emissive material in the colour at index i.
func (p Palette) Cycle(i int, strength float64) Emissive {
	s := p.At(i)
	return Glow(s.Name, s.Color, strength)
}
