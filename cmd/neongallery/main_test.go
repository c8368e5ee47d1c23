package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/neongallery/internal/config"
)

func withConfigFile(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "neongallery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	oldPath, oldLogger, oldOut := configPath, logger, outputRoot
	configPath, logger, outputRoot = path, zap.NewNop(), ""
	t.Cleanup(func() { configPath, logger, outputRoot = oldPath, oldLogger, oldOut })
}

func TestLoadConfigValidatesAfterCommandOverrides(t *testing.T) {
	withConfigFile(t, "render:\n  mode: cinematic\n")
	cmd := &cobra.Command{}

	_, err := loadConfig(cmd)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg, err := loadConfig(cmd, func(c *config.Config) { c.Render.Mode = config.ModeDraft })
	require.NoError(t, err)
	assert.Equal(t, config.ModeDraft, cfg.Render.Mode)
}

func TestLoadConfigRejectsBadOverride(t *testing.T) {
	withConfigFile(t, "render:\n  mode: draft\n")

	_, err := loadConfig(&cobra.Command{}, func(c *config.Config) { c.Render.Mode = "cinematic" })
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRenderFlagsOverrideConfigMode(t *testing.T) {
	withConfigFile(t, "render:\n  mode: cinematic\n")
	old := renderMode
	renderMode = config.ModeFinal
	t.Cleanup(func() { renderMode = old })

	cmd := &cobra.Command{}
	cmd.Flags().Bool("enhance", false, "")
	cfg, err := loadConfig(cmd, func(c *config.Config) { applyRenderFlags(cmd, c) })
	require.NoError(t, err)
	assert.Equal(t, config.ModeFinal, cfg.Render.Mode)
}
