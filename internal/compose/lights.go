package compose

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/user/neongallery/internal/layout"
	"github.com/user/neongallery/internal/palette"
	"github.com/user/neongallery/internal/scene"
)

// LightKind selects how a light's energy is interpreted.
type LightKind string

const (
	// Point and Area energies are radiant power in watts; Size is the radius (point)
	// or edge length (area).
	Point LightKind = "point"
	Area  LightKind = "area"
	// Sun energy is irradiance; the position only gives the direction.
	Sun LightKind = "sun"
)

// lightGain maps watts onto the renderer's radiance scale.
const lightGain = 25.0

const (
	sunDistance = 60.0
	sunRadius   = 12.0
)

// Light is an invisible emitter; it lights the scene but never shows in the image.
type Light struct {
	Kind     LightKind
	Position scene.Vec3
	Energy   float64
	Size     float64
	Color    colorful.Color
}

// AddLight places l as a spherical emitter.
func (b *Builder) AddLight(l Light) ObjectID {
	if l.Color == (colorful.Color{}) {
		l.Color = palette.RGB(1, 1, 1)
	}
	pos, radius, radiance := lightSphere(l)
	p := layout.At(pos, radius)
	return b.add(scene.ObjectSphereLight, p, palette.Glow(string(l.Kind)+"-light", l.Color, radiance))
}

// lightSphere returns the centre, radius and radiance of the sphere standing in for l.
func lightSphere(l Light) (scene.Vec3, float64, float64) {
	switch l.Kind {
	case Sun:
		dir := l.Position
		if n := dir.Len(); n > 0 {
			dir = dir.Scale(1 / n)
		} else {
			dir = scene.V(0, 0, 1)
		}
		// A distant sphere of radiance L subtends irradiance L·π·r²/d².
		radiance := l.Energy * sunDistance * sunDistance / (math.Pi * sunRadius * sunRadius)
		return dir.Scale(sunDistance), sunRadius, radiance
	case Area:
		r := math.Max(l.Size/2, 0.05)
		return l.Position, r, pointRadiance(l.Energy, r)
	default:
		r := math.Max(l.Size, 0.1)
		return l.Position, r, pointRadiance(l.Energy, r)
	}
}

func pointRadiance(watts, r float64) float64 {
	return watts / (4 * math.Pi * math.Pi * r * r) * lightGain
}
