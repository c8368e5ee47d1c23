package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/neongallery/internal/artwork"
	"github.com/user/neongallery/internal/config"
	"github.com/user/neongallery/internal/pipeline"
)

var (
	renderMode        string
	renderConcurrency int
	renderSamples     int
	renderEnhance     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the artwork catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tFILE\tTITLE")
		for _, a := range artwork.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Category, a.File(), a.Title)
		}
		return w.Flush()
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [names...]",
	Short: "Render artworks (all when no names are given) and rebuild the gallery",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, func(c *config.Config) { applyRenderFlags(cmd, c) })
		if err != nil {
			return err
		}

		arts, err := artwork.Select(args)
		if err != nil {
			return err
		}
		opts, err := pipeline.OptionsFromConfig(cfg, logger)
		if err != nil {
			return err
		}
		m, err := pipeline.Run(cmd.Context(), opts, arts)
		if err != nil {
			return err
		}
		logger.Info("gallery updated",
			zap.String("root", cfg.OutputRoot),
			zap.Int("images", len(m.Images)),
			zap.String("version", m.Version),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", "", "Render mode: draft, gallery or final")
	renderCmd.Flags().IntVarP(&renderConcurrency, "jobs", "j", 0, "Artworks rendered at once")
	renderCmd.Flags().IntVar(&renderSamples, "samples", 0, "Samples per pixel (0 keeps the mode's value)")
	renderCmd.Flags().BoolVar(&renderEnhance, "enhance", false, "Apply the neon glow pass")
}

func applyRenderFlags(cmd *cobra.Command, cfg *config.Config) {
	if renderMode != "" {
		cfg.Render.Mode = renderMode
	}
	if renderConcurrency > 0 {
		cfg.Concurrency = renderConcurrency
	}
	if renderSamples > 0 {
		cfg.Render.Samples = renderSamples
	}
	if cmd.Flags().Changed("enhance") {
		cfg.Post.Enhance = renderEnhance
	}
}
