package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults differ (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neongallery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_root: out
seed: 7
render:
  mode: draft
  samples: 4
post:
  background: "#ffffff"
server:
  addr: ":9000"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputRoot)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, ModeDraft, cfg.Render.Mode)
	assert.Equal(t, "#ffffff", cfg.Post.Background)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 1, cfg.Concurrency, "unset keys keep their defaults")
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render: [1, 2"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEONGALLERY_OUTPUT", "elsewhere")
	t.Setenv("NEONGALLERY_SEED", "123")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.OutputRoot)
	assert.Equal(t, int64(123), cfg.Seed)

	t.Setenv("NEONGALLERY_SEED", "many")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	want := Default()
	want.Render.Width = 320
	want.Smoke.Browser = true
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.OutputRoot = "" }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"unknown mode", func(c *Config) { c.Render.Mode = "cinematic" }},
		{"negative samples", func(c *Config) { c.Render.Samples = -1 }},
		{"bad background", func(c *Config) { c.Post.Background = "black" }},
		{"negative thumbnail", func(c *Config) { c.Post.ThumbnailSize = -5 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestResolved(t *testing.T) {
	r := RenderConfig{Mode: ModeFinal, Samples: 8}.Resolved()
	assert.Equal(t, 1920, r.Width)
	assert.Equal(t, 1080, r.Height)
	assert.Equal(t, 8, r.Samples)
	assert.Equal(t, 12, r.MaxDepth)

	d := RenderConfig{Mode: ModeDraft}.Resolved()
	assert.Equal(t, 400, d.Width)
}
