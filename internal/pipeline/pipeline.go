// Package pipeline renders batches of artworks and publishes them as a gallery.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/neongallery/internal/artwork"
	"github.com/user/neongallery/internal/compose"
	"github.com/user/neongallery/internal/composite"
	"github.com/user/neongallery/internal/config"
	"github.com/user/neongallery/internal/gallery"
	"github.com/user/neongallery/internal/logging"
	"github.com/user/neongallery/internal/palette"
)

// ManifestFile is written at the output root after every run.
const ManifestFile = "manifest.json"

// Options controls a batch run.
type Options struct {
	OutputRoot  string
	Seed        int64
	Concurrency int
	Render      compose.RenderOptions

	// Background, when set, flattens renders onto a solid colour.
	Background *colorful.Color
	Enhance    bool
	// ThumbnailSize is the longer side of gallery thumbnails; 0 skips them.
	ThumbnailSize int

	Logger *zap.Logger
	// Now stamps the run. Defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig validates cfg and turns it into batch options.
func OptionsFromConfig(cfg *config.Config, log *zap.Logger) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	r := cfg.Render.Resolved()
	opts := Options{
		OutputRoot:  cfg.OutputRoot,
		Seed:        cfg.Seed,
		Concurrency: cfg.Concurrency,
		Render: compose.RenderOptions{
			Width:       r.Width,
			Height:      r.Height,
			Samples:     r.Samples,
			MaxDepth:    r.MaxDepth,
			Transparent: r.Transparent,
			Workers:     r.Workers,
			Logger:      log,
		},
		Enhance:       cfg.Post.Enhance,
		ThumbnailSize: cfg.Post.ThumbnailSize,
		Logger:        log,
	}
	if cfg.Post.Background != "" {
		bg, err := palette.ParseHex(cfg.Post.Background)
		if err != nil {
			return Options{}, fmt.Errorf("%w: background: %v", config.ErrInvalidConfig, err)
		}
		opts.Background = &bg
	}
	return opts, nil
}

// Image describes one rendered artwork in the manifest.
type Image struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	File        string `json:"file"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        int64  `json:"seed"`
	Objects     int    `json:"objects"`
	RenderMS    int64  `json:"render_ms"`
}

// Manifest records one batch run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	Version   string    `json:"version"`
	BuildTime time.Time `json:"build_time"`
	Seed      int64     `json:"seed"`
	Images    []Image   `json:"images"`
}

// Run renders artworks, at most opts.Concurrency at a time, then writes the
// manifest, version.json and the gallery site. The first failure cancels the rest
// and its error names the artwork.
func Run(ctx context.Context, opts Options, artworks []artwork.Artwork) (*Manifest, error) {
	log := logging.OrNop(opts.Logger)
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	started := now()
	m := &Manifest{
		RunID:     uuid.NewString(),
		Version:   gallery.Version(started),
		BuildTime: started.UTC(),
		Seed:      opts.Seed,
		Images:    make([]Image, len(artworks)),
	}
	log.Info("starting batch",
		zap.String("run_id", m.RunID),
		zap.Int("artworks", len(artworks)),
		zap.Int("concurrency", max(opts.Concurrency, 1)),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, a := range artworks {
		g.Go(func() error {
			img, err := renderOne(gctx, opts, a, log)
			if err != nil {
				return fmt.Errorf("artwork %s: %w", a.Name, err)
			}
			m.Images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := writeManifest(filepath.Join(opts.OutputRoot, ManifestFile), m); err != nil {
		return nil, err
	}
	cat, err := gallery.Scan(opts.OutputRoot)
	if err != nil {
		return nil, err
	}
	if err := gallery.WriteVersion(opts.OutputRoot, gallery.NewVersionInfo(started, cat.Len())); err != nil {
		return nil, err
	}
	if _, err := gallery.WriteSite(opts.OutputRoot); err != nil {
		return nil, err
	}
	log.Info("batch complete",
		zap.String("run_id", m.RunID),
		zap.String("version", m.Version),
		zap.Duration("elapsed", now().Sub(started)),
	)
	return m, nil
}

func renderOne(ctx context.Context, opts Options, a artwork.Artwork, log *zap.Logger) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	start := time.Now()
	sc := a.Compose(compose.NewBuilder(), opts.Seed)

	ropts := opts.Render
	ropts.Seed = a.Seed(opts.Seed)
	frame, err := compose.Render(ctx, sc, ropts)
	if err != nil {
		return Image{}, err
	}

	out := Finish(frame, opts)
	if err := compose.Export(filepath.Join(opts.OutputRoot, filepath.FromSlash(a.File())), out); err != nil {
		return Image{}, err
	}

	img := Image{
		Name:        a.Name,
		Category:    string(a.Category),
		Title:       a.Title,
		Description: a.Description,
		File:        a.File(),
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Seed:        ropts.Seed,
		Objects:     len(sc.Objects),
	}
	if opts.ThumbnailSize > 0 {
		img.Thumbnail = path.Join(gallery.ThumbDir, a.File())
		thumb := composite.Thumbnail(out, opts.ThumbnailSize)
		if err := composite.Save(filepath.Join(opts.OutputRoot, filepath.FromSlash(img.Thumbnail)), thumb); err != nil {
			return Image{}, err
		}
	}
	img.RenderMS = time.Since(start).Milliseconds()

	log.Info("rendered artwork",
		zap.String("name", a.Name),
		zap.String("file", img.File),
		zap.Int("objects", img.Objects),
		zap.Int64("ms", img.RenderMS),
	)
	return img, nil
}

// Finish applies the post-processing chosen in opts to a rendered frame.
func Finish(frame image.Image, opts Options) image.Image {
	out := frame
	if opts.Background != nil {
		out = composite.Over(out, *opts.Background)
	}
	if opts.Enhance {
		out = composite.Enhance(out, composite.DefaultEnhance)
	}
	return out
}

func writeManifest(p string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	if err := os.WriteFile(p, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest of the last run under root.
func ReadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
