package scene

import "math"

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }

// Scale multiplies every component by s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s} }

// Mul multiplies component-wise.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z} }

func (a Vec3) Len() float64 { return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

// Lerp interpolates between a (t=0) and b (t=1).
func (a Vec3) Lerp(b Vec3, t float64) Vec3 { return a.Add(b.Sub(a).Scale(t)) }

// Finite reports whether no component is NaN or infinite.
func (a Vec3) Finite() bool {
	for _, c := range [3]float64{a.X, a.Y, a.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color { return Color{R: c.R * s, G: c.G * s, B: c.B * s} }

// RotateXYZ applies Euler XYZ angles r (radians) to a: X first, then Y, then Z.
func (a Vec3) RotateXYZ(r Vec3) Vec3 {
	sx, cx := math.Sincos(r.X)
	sy, cy := math.Sincos(r.Y)
	sz, cz := math.Sincos(r.Z)

	x := a.X
	y, z := a.Y*cx-a.Z*sx, a.Y*sx+a.Z*cx
	x, z = x*cy+z*sy, -x*sy+z*cy
	x, y = x*cz-y*sz, x*sz+y*cz
	return V(x, y, z)
}
