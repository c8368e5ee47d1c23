package engine

import "math"

// unitShape is a primitive at the origin in its own local space.
// intersect returns the nearest t in [tMin, tMax] and the local outward normal.
type unitShape interface {
	intersect(o, d vec3, tMin, tMax float64) (float64, vec3, bool)
	boundRadius() float64
}

// nearestRoot returns the smaller root of a*t² + b*t + c inside [tMin, tMax] for which
// accept holds.
func nearestRoot(a, b, c, tMin, tMax float64, accept func(t float64) bool) (float64, bool) {
	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		t := -c / b
		if t >= tMin && t <= tMax && accept(t) {
			return t, true
		}
		return 0, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 >= tMin && t0 <= tMax && accept(t0) {
		return t0, true
	}
	if t1 >= tMin && t1 <= tMax && accept(t1) {
		return t1, true
	}
	return 0, false
}

type unitSphere struct{}

func (unitSphere) boundRadius() float64 { return 1 }

func (unitSphere) intersect(o, d vec3, tMin, tMax float64) (float64, vec3, bool) {
	t, ok := nearestRoot(d.dot(d), 2*o.dot(d), o.dot(o)-1, tMin, tMax, func(float64) bool { return true })
	if !ok {
		return 0, vec3{}, false
	}
	return t, o.add(d.mul(t)), true
}

// unitCube spans [-1,1] on every axis.
type unitCube struct{}

func (unitCube) boundRadius() float64 { return math.Sqrt(3) }

func (unitCube) intersect(o, d vec3, tMin, tMax float64) (float64, vec3, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	nearAxis, farAxis := 0, 0
	origin := [3]float64{o.x, o.y, o.z}
	dir := [3]float64{d.x, d.y, d.z}
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < -1 || origin[i] > 1 {
				return 0, vec3{}, false
			}
			continue
		}
		invD := 1 / dir[i]
		t0 := (-1 - origin[i]) * invD
		t1 := (1 - origin[i]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear, nearAxis = t0, i
		}
		if t1 < tFar {
			tFar, farAxis = t1, i
		}
		if tFar < tNear {
			return 0, vec3{}, false
		}
	}

	t, axis := tNear, nearAxis
	if t < tMin || t > tMax {
		t, axis = tFar, farAxis
		if t < tMin || t > tMax {
			return 0, vec3{}, false
		}
	}

	p := o.add(d.mul(t))
	var n vec3
	switch axis {
	case 0:
		n = v(math.Copysign(1, p.x), 0, 0)
	case 1:
		n = v(0, math.Copysign(1, p.y), 0)
	default:
		n = v(0, 0, math.Copysign(1, p.z))
	}
	return t, n, true
}

// unitCylinder has radius 1 around Z and spans z in [-1,1], capped.
type unitCylinder struct{}

func (unitCylinder) boundRadius() float64 { return math.Sqrt2 }

func (unitCylinder) intersect(o, d vec3, tMin, tMax float64) (float64, vec3, bool) {
	best, found := tMax, false
	var n vec3

	a := d.x*d.x + d.y*d.y
	b := 2 * (o.x*d.x + o.y*d.y)
	c := o.x*o.x + o.y*o.y - 1
	if a > 1e-12 {
		inSpan := func(t float64) bool {
			z := o.z + d.z*t
			return z >= -1 && z <= 1
		}
		if t, ok := nearestRoot(a, b, c, tMin, best, inSpan); ok {
			p := o.add(d.mul(t))
			best, found, n = t, true, v(p.x, p.y, 0)
		}
	}

	if d.z != 0 {
		for _, zc := range [2]float64{-1, 1} {
			t := (zc - o.z) / d.z
			if t < tMin || t > best {
				continue
			}
			x, y := o.x+d.x*t, o.y+d.y*t
			if x*x+y*y <= 1 {
				best, found, n = t, true, v(0, 0, zc)
			}
		}
	}
	return best, n, found
}

// unitCone has its base (radius 1) at z=-1 and its apex at z=1.
type unitCone struct{}

func (unitCone) boundRadius() float64 { return math.Sqrt2 }

func (unitCone) intersect(o, d vec3, tMin, tMax float64) (float64, vec3, bool) {
	const k2 = 0.25 // (radius/height)²
	best, found := tMax, false
	var n vec3

	h := 1 - o.z
	a := d.x*d.x + d.y*d.y - k2*d.z*d.z
	b := 2 * (o.x*d.x + o.y*d.y + k2*h*d.z)
	c := o.x*o.x + o.y*o.y - k2*h*h
	inSpan := func(t float64) bool {
		z := o.z + d.z*t
		return z >= -1 && z <= 1
	}
	if t, ok := nearestRoot(a, b, c, tMin, best, inSpan); ok {
		p := o.add(d.mul(t))
		best, found, n = t, true, v(p.x, p.y, k2*(1-p.z))
	}

	if d.z != 0 {
		t := (-1 - o.z) / d.z
		if t >= tMin && t <= best {
			x, y := o.x+d.x*t, o.y+d.y*t
			if x*x+y*y <= 1 {
				best, found, n = t, true, v(0, 0, -1)
			}
		}
	}
	return best, n, found
}

const (
	torusMajor = 1.0
	torusMinor = 0.25
	torusEps   = 1e-4
	torusSteps = 160
)

// unitTorus lies in the XY plane. It is intersected by sphere tracing its distance field.
type unitTorus struct{}

func (unitTorus) boundRadius() float64 { return torusMajor + torusMinor }

func torusSDF(p vec3) float64 {
	q := math.Hypot(p.x, p.y) - torusMajor
	return math.Hypot(q, p.z) - torusMinor
}

func torusNormal(p vec3) vec3 {
	ring := math.Hypot(p.x, p.y)
	if ring == 0 {
		return v(0, 0, math.Copysign(1, p.z))
	}
	s := torusMajor / ring
	return p.sub(v(p.x*s, p.y*s, 0)).unit()
}

func (unitTorus) intersect(o, d vec3, tMin, tMax float64) (float64, vec3, bool) {
	dl := d.length()
	if dl == 0 {
		return 0, vec3{}, false
	}
	enter, exit, ok := sphereInterval(o, d, torusMajor+torusMinor)
	if !ok {
		return 0, vec3{}, false
	}
	t := math.Max(enter, tMin)
	end := math.Min(exit, tMax)

	// Rays spawned on the surface must leave it before a hit counts.
	if enter < tMin && torusSDF(o.add(d.mul(t))) < torusEps {
		t += 8 * torusEps / dl
	}

	for i := 0; i < torusSteps && t <= end; i++ {
		p := o.add(d.mul(t))
		dist := torusSDF(p)
		if dist < torusEps {
			return t, torusNormal(p), true
		}
		t += dist / dl
	}
	return 0, vec3{}, false
}
