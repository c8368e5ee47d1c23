package scene

// Vec3 represents a simple 3D vector or point.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V is shorthand for constructing a Vec3.
func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Uniform returns a Vec3 with all components set to s.
func Uniform(s float64) Vec3 { return Vec3{X: s, Y: s, Z: s} }

// Color is an RGB color in linear space.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGB is shorthand for constructing a Color.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// Camera describes the viewpoint for the renderer.
type Camera struct {
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
	Up       Vec3    `json:"up"`
	FOV      float64 `json:"fov"` // vertical, degrees

	// LensMM, when set, overrides FOV with the focal length of a 36mm sensor
	// fitted to the longer image side.
	LensMM float64 `json:"lens_mm,omitempty"`

	Aperture    float64 `json:"aperture"`
	FocusDist   float64 `json:"focus_dist"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// MaterialType enumerates supported material kinds.
type MaterialType string

const (
	MaterialLambert    MaterialType = "lambert"
	MaterialMetal      MaterialType = "metal"
	MaterialDielectric MaterialType = "dielectric"
	MaterialEmissive   MaterialType = "emissive"
	MaterialMirror     MaterialType = "mirror"
)

// Material describes surface properties.
type Material struct {
	ID   string       `json:"id"`
	Type MaterialType `json:"type"`

	Albedo Color   `json:"albedo"`
	Rough  float64 `json:"rough"` // lambert and metal
	IOR    float64 `json:"ior"`   // dielectric

	// Emit is honoured for every type, so a diffuse surface can glow too.
	Emit  Color   `json:"emit"`
	Power float64 `json:"power"`
}

// ObjectType enumerates supported geometric primitives.
type ObjectType string

// Unit primitive dimensions follow the usual modelling-tool defaults: the cube spans
// [-1,1] on every axis, the sphere has radius 1, the cylinder radius 1 and depth 2, the
// cone base radius 1 and depth 2 with its apex on +Z, the torus major radius 1 and minor
// radius 0.25 lying in the XY plane. Object.Scale multiplies these.
const (
	ObjectSphere      ObjectType = "sphere"
	ObjectIcoSphere   ObjectType = "ico_sphere"
	ObjectCube        ObjectType = "cube"
	ObjectCylinder    ObjectType = "cylinder"
	ObjectCone        ObjectType = "cone"
	ObjectTorus       ObjectType = "torus"
	ObjectPlane       ObjectType = "plane"
	ObjectSphereLight ObjectType = "sphere_light"
)

// Object is a single entity in the scene.
type Object struct {
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`

	Position Vec3 `json:"position"`
	Scale    Vec3 `json:"scale"`
	Rotation Vec3 `json:"rotation"` // Euler XYZ, radians

	MaterialID string `json:"material_id"`
}

// RenderSettings defines quality/performance parameters.
type RenderSettings struct {
	Width        int   `json:"width"`
	Height       int   `json:"height"`
	SamplesPerPx int   `json:"samples_per_px"`
	MaxDepth     int   `json:"max_depth"`
	Seed         int64 `json:"seed"`

	// FilmTransparent makes camera rays that hit nothing produce alpha 0.
	FilmTransparent bool `json:"film_transparent"`
}

// Sky describes sky/environment settings.
type Sky struct {
	Type    string `json:"type"`    // "solid" or "gradient"
	Color   Color  `json:"color"`   // for solid type
	Horizon Color  `json:"horizon"` // for gradient type
	Zenith  Color  `json:"zenith"`  // for gradient type
}

// Scene holds everything needed to render an image.
type Scene struct {
	Name      string         `json:"name"`
	Camera    Camera         `json:"camera"`
	Objects   []Object       `json:"objects"`
	Materials []Material     `json:"materials"`
	Settings  RenderSettings `json:"settings"`

	Background Color `json:"background"`
	Sky        *Sky  `json:"sky,omitempty"`
}

// Material returns the material with the given id.
func (sc *Scene) Material(id string) (Material, bool) {
	for _, m := range sc.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

// CountObjects returns how many objects of type t the scene holds.
func (sc *Scene) CountObjects(t ObjectType) int {
	n := 0
	for _, o := range sc.Objects {
		if o.Type == t {
			n++
		}
	}
	return n
}
