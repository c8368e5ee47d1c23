package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/neongallery/internal/scene"
)

func glowScene() *scene.Scene {
	return &scene.Scene{
		Camera: scene.Camera{
			Position: scene.V(0, -5, 0),
			Target:   scene.V(0, 0, 0),
			Up:       scene.V(0, 0, 1),
			FOV:      40,
		},
		Materials: []scene.Material{
			{ID: "cyan", Type: scene.MaterialEmissive, Emit: scene.RGB(0, 1, 1), Power: 10},
		},
		Objects: []scene.Object{
			{ID: "orb", Type: scene.ObjectSphere, Scale: scene.Uniform(1), MaterialID: "cyan"},
		},
	}
}

func smallConfig() RenderConfig {
	return RenderConfig{Width: 17, Height: 17, SamplesPerPx: 4, MaxDepth: 4, Seed: 3, Workers: 2}
}

func TestRenderEmissiveCentre(t *testing.T) {
	img, err := Render(context.Background(), glowScene(), smallConfig())
	require.NoError(t, err)

	centre := img.NRGBAAt(8, 8)
	assert.Equal(t, uint8(0), centre.R)
	assert.Equal(t, uint8(255), centre.G)
	assert.Equal(t, uint8(255), centre.B)
	assert.Equal(t, uint8(255), centre.A)

	corner := img.NRGBAAt(0, 0)
	assert.Equal(t, uint8(0), corner.G)
	assert.Equal(t, uint8(255), corner.A)
}

func TestRenderTransparentFilm(t *testing.T) {
	cfg := smallConfig()
	cfg.Transparent = true
	sc := glowScene()
	sc.Background = scene.RGB(1, 1, 1)

	img, err := Render(context.Background(), sc, cfg)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A, "misses must be fully transparent")
	centre := img.NRGBAAt(8, 8)
	assert.Equal(t, uint8(255), centre.A)
	assert.Equal(t, uint8(0), centre.R, "background must not leak into hit pixels")
}

func litScene() *scene.Scene {
	sc := glowScene()
	sc.Materials = append(sc.Materials,
		scene.Material{ID: "matte", Type: scene.MaterialLambert, Albedo: scene.RGB(0.8, 0.3, 0.3)},
		scene.Material{ID: "lamp", Type: scene.MaterialEmissive, Emit: scene.RGB(1, 1, 1), Power: 4},
	)
	sc.Objects = []scene.Object{
		{ID: "ball", Type: scene.ObjectSphere, Scale: scene.Uniform(1), MaterialID: "matte"},
		{ID: "box", Type: scene.ObjectCube, Position: scene.V(1.5, 0, -1), Scale: scene.V(0.4, 0.4, 0.4), Rotation: scene.V(0.3, 0.2, 0.1), MaterialID: "matte"},
		{ID: "light", Type: scene.ObjectSphereLight, Position: scene.V(0, -3, 3), Scale: scene.Uniform(1), MaterialID: "lamp"},
	}
	return sc
}

func TestRenderDeterministicAcrossWorkerCounts(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 1
	a, err := Render(context.Background(), litScene(), cfg)
	require.NoError(t, err)

	cfg.Workers = 5
	b, err := Render(context.Background(), litScene(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderGradientSkyBlendsByElevation(t *testing.T) {
	sc := glowScene()
	sc.Background = scene.RGB(1, 0, 0)
	sc.Sky = &scene.Sky{Type: "gradient", Horizon: scene.RGB(1, 0, 0), Zenith: scene.RGB(0, 0, 1)}

	img, err := Render(context.Background(), sc, smallConfig())
	require.NoError(t, err)

	top, bottom := img.NRGBAAt(0, 0), img.NRGBAAt(0, 16)
	assert.Greater(t, top.B, top.R, "rays above the horizon lean to the zenith")
	assert.Greater(t, bottom.R, bottom.B, "rays below the horizon lean to the horizon colour")
	assert.Greater(t, top.B, bottom.B)
	assert.Equal(t, uint8(255), top.A)

	sc.Sky = &scene.Sky{Type: "solid", Color: scene.RGB(1, 0, 0)}
	flat, err := Render(context.Background(), sc, smallConfig())
	require.NoError(t, err)
	assert.Equal(t, flat.NRGBAAt(0, 0), flat.NRGBAAt(0, 16))
}

func TestSphereLightIsInvisibleToCamera(t *testing.T) {
	sc := glowScene()
	sc.Objects[0].Type = scene.ObjectSphereLight

	img, err := Render(context.Background(), sc, smallConfig())
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.NRGBAAt(8, 8).G)
}

func TestRenderRejectsInvalidSettings(t *testing.T) {
	cfg := smallConfig()
	cfg.SamplesPerPx = 0
	_, err := Render(context.Background(), glowScene(), cfg)
	require.ErrorIs(t, err, ErrInvalidSettings)

	cfg = smallConfig()
	cfg.Width = 0
	_, err = Render(context.Background(), glowScene(), cfg)
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestRenderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, glowScene(), smallConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnitShapeIntersections(t *testing.T) {
	tests := []struct {
		name   string
		shape  unitShape
		o, d   vec3
		wantT  float64
		wantN  vec3
		missed bool
	}{
		{name: "sphere", shape: unitSphere{}, o: v(0, 0, 5), d: v(0, 0, -1), wantT: 4, wantN: v(0, 0, 1)},
		{name: "cube side", shape: unitCube{}, o: v(5, 0.2, 0.3), d: v(-1, 0, 0), wantT: 4, wantN: v(1, 0, 0)},
		{name: "cube miss", shape: unitCube{}, o: v(5, 3, 0), d: v(-1, 0, 0), missed: true},
		{name: "cylinder side", shape: unitCylinder{}, o: v(5, 0, 0.5), d: v(-1, 0, 0), wantT: 4, wantN: v(1, 0, 0)},
		{name: "cylinder cap", shape: unitCylinder{}, o: v(0.2, 0, 5), d: v(0, 0, -1), wantT: 4, wantN: v(0, 0, 1)},
		{name: "cone side", shape: unitCone{}, o: v(5, 0, -0.5), d: v(-1, 0, 0), wantT: 4.25, wantN: v(0.75, 0, 0.375)},
		{name: "cone base", shape: unitCone{}, o: v(0, 0, -5), d: v(0, 0, 1), wantT: 4, wantN: v(0, 0, -1)},
		{name: "torus rim", shape: unitTorus{}, o: v(5, 0, 0), d: v(-1, 0, 0), wantT: 3.75, wantN: v(1, 0, 0)},
		{name: "torus hole", shape: unitTorus{}, o: v(0, 0, 5), d: v(0, 0, -1), missed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tHit, n, ok := tt.shape.intersect(tt.o, tt.d, 0.001, math.MaxFloat64)
			if tt.missed {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.InDelta(t, tt.wantT, tHit, 1e-3)
			got, want := n.unit(), tt.wantN.unit()
			assert.InDelta(t, want.x, got.x, 1e-3)
			assert.InDelta(t, want.y, got.y, 1e-3)
			assert.InDelta(t, want.z, got.z, 1e-3)
		})
	}
}

func TestTransformedScaleAndRotation(t *testing.T) {
	// A cube stretched along X and turned 90° about Z is only one unit wide along X.
	obj := newTransformed(unitCube{}, v(0, 0, 0), v(2, 1, 1), v(0, 0, math.Pi/2), defaultMaterial)
	var rec hitRecord
	require.True(t, obj.hit(ray{orig: v(5, 0, 0), dir: v(-1, 0, 0)}, 0.001, math.MaxFloat64, &rec))
	assert.InDelta(t, 4, rec.t, 1e-9)
	assert.InDelta(t, 1, rec.normal.x, 1e-9)

	require.True(t, obj.hit(ray{orig: v(0, 5, 0), dir: v(0, -1, 0)}, 0.001, math.MaxFloat64, &rec))
	assert.InDelta(t, 3, rec.t, 1e-9)
}

func TestEulerXYZ(t *testing.T) {
	got := eulerXYZ(0, 0, math.Pi/2).apply(v(1, 0, 0))
	assert.InDelta(t, 0, got.x, 1e-12)
	assert.InDelta(t, 1, got.y, 1e-12)

	got = eulerXYZ(math.Pi/2, 0, 0).apply(v(0, 0, -1))
	assert.InDelta(t, 1, got.y, 1e-12)
	assert.InDelta(t, 0, got.z, 1e-12)

	m := eulerXYZ(0.3, -1.1, 2.5)
	back := m.transpose().apply(m.apply(v(1, 2, 3)))
	assert.InDelta(t, 1, back.x, 1e-12)
	assert.InDelta(t, 2, back.y, 1e-12)
	assert.InDelta(t, 3, back.z, 1e-12)
}

func TestBuildObjectSkipsFlattenedAxis(t *testing.T) {
	_, ok := buildObject(scene.Object{Type: scene.ObjectCube, Scale: scene.V(1, 0, 1)}, nil)
	assert.False(t, ok)

	b, ok := buildObject(scene.Object{Type: scene.ObjectSphere}, nil)
	require.True(t, ok)
	assert.True(t, b.cameraVisible)
}

func TestCameraFocalLengthFitsLongerSide(t *testing.T) {
	cam := scene.Camera{
		Position: scene.V(0, -10, 0),
		Target:   scene.V(0, 0, 0),
		Up:       scene.V(0, 0, 1),
		LensMM:   36,
	}

	square := newCamera(cam, RenderConfig{Width: 100, Height: 100})
	assert.InDelta(t, 10, square.horizontal.length(), 1e-9)
	assert.InDelta(t, 10, square.vertical.length(), 1e-9)

	wide := newCamera(cam, RenderConfig{Width: 200, Height: 100})
	assert.InDelta(t, 10, wide.horizontal.length(), 1e-9)
	assert.InDelta(t, 5, wide.vertical.length(), 1e-9)

	tall := newCamera(cam, RenderConfig{Width: 100, Height: 200})
	assert.InDelta(t, 10, tall.vertical.length(), 1e-9)
	assert.InDelta(t, 5, tall.horizontal.length(), 1e-9)
}
