package engine

import "math"

type vec3 struct {
	x, y, z float64
}

func v(x, y, z float64) vec3 { return vec3{x, y, z} }

func (a vec3) add(b vec3) vec3    { return vec3{x: a.x + b.x, y: a.y + b.y, z: a.z + b.z} }
func (a vec3) sub(b vec3) vec3    { return vec3{x: a.x - b.x, y: a.y - b.y, z: a.z - b.z} }
func (a vec3) mul(t float64) vec3 { return vec3{x: a.x * t, y: a.y * t, z: a.z * t} }
func (a vec3) div(t float64) vec3 {
	invT := 1.0 / t
	return vec3{x: a.x * invT, y: a.y * invT, z: a.z * invT}
}

func (a vec3) dot(b vec3) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }

func (a vec3) cross(b vec3) vec3 {
	return v(
		a.y*b.z-a.z*b.y,
		a.z*b.x-a.x*b.z,
		a.x*b.y-a.y*b.x,
	)
}

func (a vec3) length() float64 { return math.Sqrt(a.dot(a)) }

func (a vec3) unit() vec3 {
	l := a.length()
	if l == 0 {
		return a
	}
	return a.div(l)
}

func reflectVec(d, n vec3) vec3 {
	return d.sub(n.mul(2 * d.dot(n)))
}

// refractVec bends the unit direction uv through a surface with normal n.
func refractVec(uv, n vec3, etaiOverEtat float64) vec3 {
	cosTheta := math.Min(-uv.dot(n), 1)
	perp := uv.add(n.mul(cosTheta)).mul(etaiOverEtat)
	parallel := n.mul(-math.Sqrt(math.Abs(1 - perp.dot(perp))))
	return perp.add(parallel)
}

func randomInUnitSphere(rng *randSource) vec3 {
	for {
		p := v(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
		if p.dot(p) < 1 {
			return p
		}
	}
}

// randomCosineDirection samples the hemisphere around normal with a cosine
// weighted density, the lambertian scattering distribution.
func randomCosineDirection(normal vec3, rng *randSource) vec3 {
	r1, r2 := rng.Float64(), rng.Float64()
	sinPhi, cosPhi := math.Sincos(2 * math.Pi * r1)
	sinTheta, cosTheta := math.Sqrt(1-r2), math.Sqrt(r2)

	helper := v(1, 0, 0)
	if math.Abs(normal.x) > 0.9 {
		helper = v(0, 1, 0)
	}
	b := normal.cross(helper).unit()
	t := b.cross(normal)

	return t.mul(sinTheta * cosPhi).add(b.mul(sinTheta * sinPhi)).add(normal.mul(cosTheta))
}

type ray struct {
	orig vec3
	dir  vec3
}

func (r ray) at(t float64) vec3 {
	return r.orig.add(r.dir.mul(t))
}

// mat3 is a row-major 3x3 rotation matrix.
type mat3 [3]vec3

// eulerXYZ builds the rotation applied as X, then Y, then Z (R = Rz*Ry*Rx).
func eulerXYZ(rx, ry, rz float64) mat3 {
	sx, cx := math.Sincos(rx)
	sy, cy := math.Sincos(ry)
	sz, cz := math.Sincos(rz)
	return mat3{
		v(cz*cy, cz*sy*sx-sz*cx, cz*sy*cx+sz*sx),
		v(sz*cy, sz*sy*sx+cz*cx, sz*sy*cx-cz*sx),
		v(-sy, cy*sx, cy*cx),
	}
}

func (m mat3) apply(a vec3) vec3 {
	return v(m[0].dot(a), m[1].dot(a), m[2].dot(a))
}

func (m mat3) transpose() mat3 {
	return mat3{
		v(m[0].x, m[1].x, m[2].x),
		v(m[0].y, m[1].y, m[2].y),
		v(m[0].z, m[1].z, m[2].z),
	}
}

func (a vec3) maxComponent() float64 {
	return math.Max(math.Abs(a.x), math.Max(math.Abs(a.y), math.Abs(a.z)))
}

func (a vec3) mulVec(b vec3) vec3 {
	return vec3{x: a.x * b.x, y: a.y * b.y, z: a.z * b.z}
}
