package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/neongallery/internal/config"
	"github.com/user/neongallery/internal/gallery"
	"github.com/user/neongallery/internal/smoke"
)

var (
	serveAddr    string
	smokeURL     string
	smokeBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gallery with caching disabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, func(c *config.Config) {
			if serveAddr != "" {
				c.Server.Addr = serveAddr
			}
		})
		if err != nil {
			return err
		}
		srv, err := gallery.NewServer(cfg.OutputRoot, logger)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr, cfg.Server.ShutdownTimeout)
	},
}

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Check that a running gallery serves its page, images and assets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := smoke.DefaultOptions(cfg.Smoke.BaseURL)
		if smokeURL != "" {
			opts.BaseURL = smokeURL
		}
		opts.Timeout = cfg.Smoke.Timeout
		opts.Browser = cfg.Smoke.Browser || smokeBrowser
		opts.Logger = logger

		res := smoke.Run(cmd.Context(), opts)
		if err := res.Write(cfg.Smoke.Output); err != nil {
			return err
		}
		if !res.OK() {
			return fmt.Errorf("%d of %d checks failed, see %s", res.Failed, len(res.Tests), cfg.Smoke.Output)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	smokeCmd.Flags().StringVar(&smokeURL, "url", "", "Gallery base URL (overrides config)")
	smokeCmd.Flags().BoolVar(&smokeBrowser, "browser", false, "Also check the page in headless Chrome")
}
