package scene

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScene() *Scene {
	return &Scene{
		Name: "sample",
		Camera: Camera{
			Position: V(0, -10, 0),
			Target:   V(0, 0, 0),
			Up:       V(0, 0, 1),
			FOV:      40,
		},
		Materials: []Material{
			{ID: "glow", Type: MaterialEmissive, Emit: RGB(0, 1, 1), Power: 10},
		},
		Objects: []Object{
			{ID: "a", Type: ObjectSphere, Position: V(1, 2, 3), Scale: Uniform(0.5), MaterialID: "glow"},
			{ID: "b", Type: ObjectTorus, Scale: Uniform(1), Rotation: V(1.57, 0, 0), MaterialID: "glow"},
		},
		Settings: RenderSettings{Width: 16, Height: 16, SamplesPerPx: 2, MaxDepth: 4, Seed: 7, FilmTransparent: true},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scene.json")
	sc := sampleScene()

	require.NoError(t, Save(path, sc))
	loaded, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(sc, loaded); diff != "" {
		t.Fatalf("scene mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewBufferString("{not json"))
	require.Error(t, err)
}

func TestMaterialLookupAndCount(t *testing.T) {
	sc := sampleScene()

	m, ok := sc.Material("glow")
	require.True(t, ok)
	require.Equal(t, MaterialEmissive, m.Type)

	_, ok = sc.Material("missing")
	require.False(t, ok)

	require.Equal(t, 1, sc.CountObjects(ObjectSphere))
	require.Equal(t, 0, sc.CountObjects(ObjectCone))
}

func TestRotateXYZ(t *testing.T) {
	forward := V(0, 0, -1).RotateXYZ(V(math.Pi/2, 0, 0))
	assert.InDelta(t, 0, forward.X, 1e-12)
	assert.InDelta(t, 1, forward.Y, 1e-12)
	assert.InDelta(t, 0, forward.Z, 1e-12)

	turned := V(1, 0, 0).RotateXYZ(V(0, 0, math.Pi/2))
	assert.InDelta(t, 1, turned.Y, 1e-12)
}
