package engine

import (
	"math"

	"github.com/user/neongallery/internal/scene"
)

type hitRecord struct {
	p         vec3
	normal    vec3
	t         float64
	frontFace bool
	mat       material
}

func (h *hitRecord) setFaceNormal(r ray, outwardNormal vec3) {
	h.frontFace = r.dir.dot(outwardNormal) < 0
	if h.frontFace {
		h.normal = outwardNormal
	} else {
		h.normal = outwardNormal.mul(-1)
	}
}

type hittable interface {
	hit(r ray, tMin, tMax float64, rec *hitRecord) bool
}

// Sphere primitive. Uniformly scaled spheres skip the object transform entirely.
type sphere struct {
	center vec3
	radius float64
	mat    material
}

func (s sphere) hit(r ray, tMin, tMax float64, rec *hitRecord) bool {
	ocX := r.orig.x - s.center.x
	ocY := r.orig.y - s.center.y
	ocZ := r.orig.z - s.center.z

	a := r.dir.x*r.dir.x + r.dir.y*r.dir.y + r.dir.z*r.dir.z
	halfB := ocX*r.dir.x + ocY*r.dir.y + ocZ*r.dir.z
	c := ocX*ocX + ocY*ocY + ocZ*ocZ - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return false
		}
	}

	rec.t = root
	rec.p.x = r.orig.x + r.dir.x*root
	rec.p.y = r.orig.y + r.dir.y*root
	rec.p.z = r.orig.z + r.dir.z*root

	invRadius := 1.0 / s.radius
	outward := vec3{
		x: (rec.p.x - s.center.x) * invRadius,
		y: (rec.p.y - s.center.y) * invRadius,
		z: (rec.p.z - s.center.z) * invRadius,
	}
	rec.setFaceNormal(r, outward)
	rec.mat = s.mat
	return true
}

// Infinite plane.
type plane struct {
	point  vec3
	normal vec3
	mat    material
}

func (p plane) hit(r ray, tMin, tMax float64, rec *hitRecord) bool {
	denom := p.normal.dot(r.dir)
	if math.Abs(denom) < 1e-6 {
		return false
	}

	t := p.point.sub(r.orig).dot(p.normal) / denom
	if t < tMin || t > tMax {
		return false
	}

	rec.t = t
	rec.p = r.at(t)
	rec.setFaceNormal(r, p.normal)
	rec.mat = p.mat
	return true
}

// transformed places a unit primitive in the world with rotation and per-axis scale.
// The ray is mapped into the primitive's local space; the mapping is affine, so the ray
// parameter t is the same in both spaces.
type transformed struct {
	shape    unitShape
	center   vec3
	rot      mat3
	invRot   mat3
	invScale vec3
	bound    float64
	mat      material
}

func newTransformed(shape unitShape, center, scale, rotation vec3, mat material) transformed {
	rot := eulerXYZ(rotation.x, rotation.y, rotation.z)
	return transformed{
		shape:    shape,
		center:   center,
		rot:      rot,
		invRot:   rot.transpose(),
		invScale: v(1/scale.x, 1/scale.y, 1/scale.z),
		bound:    shape.boundRadius() * scale.maxComponent(),
		mat:      mat,
	}
}

func (o transformed) hit(r ray, tMin, tMax float64, rec *hitRecord) bool {
	if t0, t1, ok := sphereInterval(r.orig.sub(o.center), r.dir, o.bound); !ok || t1 < tMin || t0 > tMax {
		return false
	}

	lo := o.invRot.apply(r.orig.sub(o.center)).mulVec(o.invScale)
	ld := o.invRot.apply(r.dir).mulVec(o.invScale)
	t, n, ok := o.shape.intersect(lo, ld, tMin, tMax)
	if !ok {
		return false
	}

	rec.t = t
	rec.p = r.at(t)
	rec.setFaceNormal(r, o.rot.apply(n.mulVec(o.invScale)).unit())
	rec.mat = o.mat
	return true
}

// sphereInterval returns the ray parameters where o+t*d enters and leaves the sphere of
// the given radius centred at the origin.
func sphereInterval(o, d vec3, radius float64) (float64, float64, bool) {
	a := d.dot(d)
	if a == 0 {
		return 0, 0, false
	}
	halfB := o.dot(d)
	c := o.dot(o) - radius*radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-halfB - sq) / a, (-halfB + sq) / a, true
}

type objectBuild struct {
	h             hittable
	cameraVisible bool
}

// sceneToWorld builds the hittable lists from the scene description. primary holds
// what camera rays may hit, all additionally holds the lights.
func sceneToWorld(sc *scene.Scene) (primary, all []hittable) {
	materials := make(map[string]material, len(sc.Materials))
	for _, m := range sc.Materials {
		materials[m.ID] = convertMaterial(m)
	}

	primary = make([]hittable, 0, len(sc.Objects))
	all = make([]hittable, 0, len(sc.Objects))
	for _, o := range sc.Objects {
		b, ok := buildObject(o, materials)
		if !ok {
			continue
		}
		all = append(all, b.h)
		if b.cameraVisible {
			primary = append(primary, b.h)
		}
	}
	return primary, all
}

func buildObject(o scene.Object, materials map[string]material) (objectBuild, bool) {
	mat, ok := materials[o.MaterialID]
	if !ok {
		mat = defaultMaterial
	}
	pos := v(o.Position.X, o.Position.Y, o.Position.Z)
	scale := v(o.Scale.X, o.Scale.Y, o.Scale.Z)
	if scale == (vec3{}) {
		scale = v(1, 1, 1)
	}
	rot := v(o.Rotation.X, o.Rotation.Y, o.Rotation.Z)

	if o.Type == scene.ObjectPlane {
		n := eulerXYZ(rot.x, rot.y, rot.z).apply(v(0, 0, 1))
		return objectBuild{h: plane{point: pos, normal: n, mat: mat}, cameraVisible: true}, true
	}

	// A flattened axis would divide by zero in the local transform.
	if math.Abs(scale.x) < 1e-9 || math.Abs(scale.y) < 1e-9 || math.Abs(scale.z) < 1e-9 {
		return objectBuild{}, false
	}

	uniform := scale.x == scale.y && scale.y == scale.z
	switch o.Type {
	case scene.ObjectSphere, scene.ObjectIcoSphere, scene.ObjectSphereLight:
		visible := o.Type != scene.ObjectSphereLight
		if uniform {
			return objectBuild{h: sphere{center: pos, radius: math.Abs(scale.x), mat: mat}, cameraVisible: visible}, true
		}
		return objectBuild{h: newTransformed(unitSphere{}, pos, scale, rot, mat), cameraVisible: visible}, true
	case scene.ObjectCube:
		return objectBuild{h: newTransformed(unitCube{}, pos, scale, rot, mat), cameraVisible: true}, true
	case scene.ObjectCylinder:
		return objectBuild{h: newTransformed(unitCylinder{}, pos, scale, rot, mat), cameraVisible: true}, true
	case scene.ObjectCone:
		return objectBuild{h: newTransformed(unitCone{}, pos, scale, rot, mat), cameraVisible: true}, true
	case scene.ObjectTorus:
		return objectBuild{h: newTransformed(unitTorus{}, pos, scale, rot, mat), cameraVisible: true}, true
	}
	return objectBuild{}, false
}
