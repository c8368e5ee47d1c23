// Package compose assembles artwork scenes and hands them to the renderer.
package compose

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/user/neongallery/internal/layout"
	"github.com/user/neongallery/internal/palette"
	"github.com/user/neongallery/internal/scene"
)

// ObjectID identifies a placed object within the current scene.
type ObjectID string

// Shape is a unit primitive kind.
type Shape = scene.ObjectType

const (
	Cube      = scene.ObjectCube
	Sphere    = scene.ObjectSphere
	IcoSphere = scene.ObjectIcoSphere
	Cylinder  = scene.ObjectCylinder
	Cone      = scene.ObjectCone
	Torus     = scene.ObjectTorus
	Plane     = scene.ObjectPlane
)

// Builder accumulates one scene. It is not safe for concurrent use.
type Builder struct {
	sc      scene.Scene
	matIDs  map[palette.MaterialSpec]string
	objects int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Reset("")
	return b
}

// Reset drops every object, material and light and restores the default camera
// and black background.
func (b *Builder) Reset(name string) {
	b.sc = scene.Scene{Name: name}
	b.matIDs = make(map[palette.MaterialSpec]string)
	b.objects = 0
	b.SetCameraEuler(scene.V(0, -10, 0), scene.V(math.Pi/2, 0, 0), 50)
}

// SetBackground sets a solid world colour.
func (b *Builder) SetBackground(c colorful.Color) {
	b.sc.Background = toColor(c)
	b.sc.Sky = &scene.Sky{Type: "solid", Color: toColor(c)}
}

// SetGradient sets a sky that blends from horizon to zenith.
func (b *Builder) SetGradient(horizon, zenith colorful.Color) {
	b.sc.Background = toColor(horizon)
	b.sc.Sky = &scene.Sky{Type: "gradient", Horizon: toColor(horizon), Zenith: toColor(zenith)}
}

// SetCamera aims the camera from pos at target with Z up.
func (b *Builder) SetCamera(pos, target scene.Vec3, lensMM float64) {
	b.sc.Camera = scene.Camera{Position: pos, Target: target, Up: scene.V(0, 0, 1), LensMM: lensMM}
}

// SetCameraEuler orients the camera like a modelling tool does: unrotated it looks
// down -Z with +Y up, then the Euler XYZ rotation is applied.
func (b *Builder) SetCameraEuler(pos, rot scene.Vec3, lensMM float64) {
	forward := scene.V(0, 0, -1).RotateXYZ(rot)
	up := scene.V(0, 1, 0).RotateXYZ(rot)
	b.sc.Camera = scene.Camera{Position: pos, Target: pos.Add(forward), Up: up, LensMM: lensMM}
}

// Place adds a primitive with the given transform and material.
func (b *Builder) Place(shape Shape, p layout.Placement, m palette.MaterialSpec) ObjectID {
	return b.add(shape, p, m)
}

func (b *Builder) add(shape Shape, p layout.Placement, m palette.MaterialSpec) ObjectID {
	b.objects++
	id := ObjectID(fmt.Sprintf("%s.%04d", shape, b.objects))
	b.sc.Objects = append(b.sc.Objects, scene.Object{
		ID:         string(id),
		Type:       shape,
		Position:   p.Position,
		Scale:      p.Scale,
		Rotation:   p.Rotation,
		MaterialID: b.material(m),
	})
	return id
}

// material registers m once and returns its id; equal specs share one material.
func (b *Builder) material(m palette.MaterialSpec) string {
	if m == nil {
		m = palette.Principled{Name: "default", Color: palette.RGB(0.8, 0.8, 0.8), Roughness: 1}
	}
	if id, ok := b.matIDs[m]; ok {
		return id
	}
	name := m.SpecName()
	if name == "" {
		name = "material"
	}
	id := fmt.Sprintf("%s.%03d", name, len(b.matIDs)+1)
	b.matIDs[m] = id
	mat := materialFor(m)
	mat.ID = id
	b.sc.Materials = append(b.sc.Materials, mat)
	return id
}

// Len returns the number of objects placed so far, lights included.
func (b *Builder) Len() int { return len(b.sc.Objects) }

// Scene returns a copy of the scene built so far.
func (b *Builder) Scene() *scene.Scene {
	sc := b.sc
	sc.Objects = append([]scene.Object(nil), b.sc.Objects...)
	sc.Materials = append([]scene.Material(nil), b.sc.Materials...)
	if b.sc.Sky != nil {
		sky := *b.sc.Sky
		sc.Sky = &sky
	}
	return &sc
}

// materialFor converts a material description into an engine material.
func materialFor(m palette.MaterialSpec) scene.Material {
	switch m := m.(type) {
	case palette.Emissive:
		return scene.Material{Type: scene.MaterialEmissive, Emit: toColor(m.Color), Power: m.Strength}
	case palette.Glass:
		ior := m.IOR
		if ior == 0 {
			ior = 1.45
		}
		return scene.Material{Type: scene.MaterialDielectric, Albedo: toColor(m.Color), IOR: ior}
	case palette.Principled:
		mat := scene.Material{
			Type:   scene.MaterialLambert,
			Albedo: toColor(m.Color),
			Rough:  m.Roughness,
			Emit:   toColor(m.Emission),
			Power:  m.EmissionStrength,
		}
		if m.Metallic >= 0.5 {
			mat.Type = scene.MaterialMetal
		}
		return mat
	default:
		return scene.Material{Type: scene.MaterialLambert, Albedo: scene.RGB(0.8, 0.8, 0.8)}
	}
}

func toColor(c colorful.Color) scene.Color { return scene.RGB(c.R, c.G, c.B) }
