package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/neongallery/internal/artwork"
	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/composite"
	"github.com/user/neongallery/internal/config"
	"github.com/user/neongallery/internal/engine"
	"github.com/user/neongallery/internal/pipeline"
	"github.com/user/neongallery/internal/preview"
	"github.com/user/neongallery/internal/scene"
)

var (
	traceMode   string
	previewMode string
)

var sceneCmd = &cobra.Command{
	Use:   "scene <name>",
	Short: "Print an artwork's scene as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := artwork.Lookup(args[0])
		if err != nil {
			return err
		}
		sc := a.Compose(compose.NewBuilder(), cfg.Seed)
		r := cfg.Render.Resolved()
		sc.Settings = scene.RenderSettings{
			Width:           r.Width,
			Height:          r.Height,
			SamplesPerPx:    r.Samples,
			MaxDepth:        r.MaxDepth,
			Seed:            a.Seed(cfg.Seed),
			FilmTransparent: r.Transparent,
		}
		return scene.Encode(cmd.OutOrStdout(), sc)
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace <scene.json> <out.png>",
	Short: "Render a saved scene with its own settings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scene.Load(args[0])
		if err != nil {
			return fmt.Errorf("load scene: %w", err)
		}

		settings := engine.RenderSettingsForMode(traceMode)
		if sc.Settings.Width > 0 && sc.Settings.Height > 0 {
			settings.Width = sc.Settings.Width
			settings.Height = sc.Settings.Height
			if sc.Settings.SamplesPerPx > 0 {
				settings.SamplesPerPx = sc.Settings.SamplesPerPx
			}
			if sc.Settings.MaxDepth > 0 {
				settings.MaxDepth = sc.Settings.MaxDepth
			}
		}
		settings.Seed = sc.Settings.Seed
		settings.FilmTransparent = sc.Settings.FilmTransparent

		logger.Info("tracing scene",
			zap.String("scene", args[0]),
			zap.Int("width", settings.Width),
			zap.Int("height", settings.Height),
			zap.Int("samples", settings.SamplesPerPx),
		)
		img, err := engine.RenderScene(cmd.Context(), sc, settings)
		if err != nil {
			return fmt.Errorf("render scene: %w", err)
		}
		return composite.Save(args[1], img)
	},
}

var enhanceCmd = &cobra.Command{
	Use:   "enhance <in.png> <out.png>",
	Short: "Apply the neon glow pass to an image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := composite.Load(args[0])
		if err != nil {
			return err
		}
		if err := composite.Save(args[1], composite.Enhance(img, composite.DefaultEnhance)); err != nil {
			return err
		}
		logger.Info("enhanced image", zap.String("in", args[0]), zap.String("out", args[1]))
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <name>",
	Short: "Open a window that renders one artwork progressively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, func(c *config.Config) { c.Render.Mode = previewMode })
		if err != nil {
			return err
		}
		a, err := artwork.Lookup(args[0])
		if err != nil {
			return err
		}
		opts, err := pipeline.OptionsFromConfig(cfg, logger)
		if err != nil {
			return err
		}
		return preview.Run(a, opts)
	},
}

func init() {
	traceCmd.Flags().StringVarP(&traceMode, "mode", "m", config.ModeDraft, "Settings used when the scene has none")
	previewCmd.Flags().StringVarP(&previewMode, "mode", "m", config.ModeDraft, "Preview quality: draft, gallery or final")
}
