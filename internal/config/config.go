// Package config loads neongallery settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/neongallery/internal/engine"
	"github.com/user/neongallery/internal/palette"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "neongallery.yaml"

// Render modes.
const (
	ModeDraft   = "draft"
	ModeGallery = "gallery"
	ModeFinal   = "final"
)

// Config is the top-level configuration.
type Config struct {
	OutputRoot  string       `yaml:"output_root"`
	Seed        int64        `yaml:"seed"`
	Concurrency int          `yaml:"concurrency"`
	Render      RenderConfig `yaml:"render"`
	Post        PostConfig   `yaml:"post"`
	Server      ServerConfig `yaml:"server"`
	Smoke       SmokeConfig  `yaml:"smoke"`
}

// RenderConfig controls image quality. Zero sizes fall back to the mode's values.
type RenderConfig struct {
	Mode        string `yaml:"mode"`
	Width       int    `yaml:"width,omitempty"`
	Height      int    `yaml:"height,omitempty"`
	Samples     int    `yaml:"samples,omitempty"`
	MaxDepth    int    `yaml:"max_depth,omitempty"`
	Workers     int    `yaml:"workers,omitempty"`
	Transparent bool   `yaml:"transparent"`
}

// PostConfig controls what happens to a frame after rendering.
type PostConfig struct {
	// Background is the "#rrggbb" colour transparent renders are flattened onto.
	// Empty keeps the alpha channel.
	Background    string `yaml:"background"`
	Enhance       bool   `yaml:"enhance"`
	ThumbnailSize int    `yaml:"thumbnail_size"`
}

// ServerConfig configures the gallery file server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SmokeConfig configures the smoke tester.
type SmokeConfig struct {
	BaseURL string        `yaml:"base_url"`
	Output  string        `yaml:"output"`
	Timeout time.Duration `yaml:"timeout"`
	Browser bool          `yaml:"browser"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputRoot:  "public",
		Seed:        42,
		Concurrency: 1,
		Render: RenderConfig{
			Mode:        ModeGallery,
			Transparent: true,
		},
		Post: PostConfig{
			Background:    "#000000",
			ThumbnailSize: 360,
		},
		Server: ServerConfig{
			Addr:            ":8000",
			ShutdownTimeout: 5 * time.Second,
		},
		Smoke: SmokeConfig{
			BaseURL: "http://localhost:8000",
			Output:  "test-results.json",
			Timeout: 10 * time.Second,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if root := os.Getenv("NEONGALLERY_OUTPUT"); root != "" {
		c.OutputRoot = root
	}
	if s := os.Getenv("NEONGALLERY_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: NEONGALLERY_SEED: %v", ErrInvalidConfig, err)
		}
		c.Seed = seed
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.OutputRoot == "" {
		return fmt.Errorf("%w: output_root is empty", ErrInvalidConfig)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	switch c.Render.Mode {
	case ModeDraft, ModeGallery, ModeFinal:
	default:
		return fmt.Errorf("%w: unknown render mode %q (valid: %s, %s, %s)", ErrInvalidConfig, c.Render.Mode, ModeDraft, ModeGallery, ModeFinal)
	}
	r := c.Render
	if r.Width < 0 || r.Height < 0 || r.Samples < 0 || r.MaxDepth < 0 || r.Workers < 0 {
		return fmt.Errorf("%w: render sizes must not be negative", ErrInvalidConfig)
	}
	if c.Post.Background != "" {
		if _, err := palette.ParseHex(c.Post.Background); err != nil {
			return fmt.Errorf("%w: background %q: %v", ErrInvalidConfig, c.Post.Background, err)
		}
	}
	if c.Post.ThumbnailSize < 0 {
		return fmt.Errorf("%w: thumbnail_size must not be negative", ErrInvalidConfig)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr is empty", ErrInvalidConfig)
	}
	return nil
}

// Resolved fills zero sizes from the render mode.
func (r RenderConfig) Resolved() RenderConfig {
	mode := r.Mode
	if mode == ModeDraft {
		mode = ""
	}
	base := engine.RenderSettingsForMode(mode)
	if r.Width == 0 {
		r.Width = base.Width
	}
	if r.Height == 0 {
		r.Height = base.Height
	}
	if r.Samples == 0 {
		r.Samples = base.SamplesPerPx
	}
	if r.MaxDepth == 0 {
		r.MaxDepth = base.MaxDepth
	}
	return r
}
