// Command neongallery renders procedural neon artworks and publishes them as a
// static gallery.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/neongallery/internal/config"
	"github.com/user/neongallery/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	outputRoot string
	seed       int64

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "neongallery",
	Short: "Procedural neon artwork generator and gallery",
	Long: `neongallery builds 3D scenes of glowing primitives from procedural layouts,
path traces them, and publishes the frames as a static website.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outputRoot, "out", "o", "", "Output root (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Run seed (overrides config)")

	rootCmd.AddCommand(listCmd, renderCmd, sceneCmd, traceCmd, enhanceCmd, serveCmd, smokeCmd, previewCmd)
}

// loadConfig reads the config file, applies the global flag overrides and then
// the command's own, and validates the result.
func loadConfig(cmd *cobra.Command, overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if outputRoot != "" {
		cfg.OutputRoot = outputRoot
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.String("output_root", cfg.OutputRoot),
		zap.Int64("seed", cfg.Seed),
		zap.String("mode", cfg.Render.Mode),
	)
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
