package compose

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/user/neongallery/internal/composite"
	"github.com/user/neongallery/internal/engine"
	"github.com/user/neongallery/internal/logging"
	"github.com/user/neongallery/internal/scene"
)

// RenderOptions controls one render.
type RenderOptions struct {
	Width       int
	Height      int
	Samples     int
	MaxDepth    int
	Seed        int64
	Transparent bool
	Workers     int

	// Progress, when set, is called from render goroutines as tiles complete.
	Progress func()
	Logger   *zap.Logger
}

func (o RenderOptions) config() engine.RenderConfig {
	return engine.RenderConfig{
		Width:        o.Width,
		Height:       o.Height,
		SamplesPerPx: o.Samples,
		MaxDepth:     o.MaxDepth,
		Seed:         o.Seed,
		Transparent:  o.Transparent,
		Workers:      o.Workers,
	}
}

// Render renders sc. The returned image is non-premultiplied; with Transparent set,
// pixels whose camera rays all missed have alpha 0.
func Render(ctx context.Context, sc *scene.Scene, opts RenderOptions) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, max(opts.Width, 0), max(opts.Height, 0)))
	if err := RenderInto(ctx, sc, img, opts); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderInto renders sc into dst, whose size must match opts. Tiles land in dst as
// they finish, so dst can be displayed while the render runs.
func RenderInto(ctx context.Context, sc *scene.Scene, dst *image.NRGBA, opts RenderOptions) error {
	log := logging.OrNop(opts.Logger)
	cfg := opts.config()
	log.Debug("rendering scene",
		zap.String("scene", sc.Name),
		zap.Int("objects", len(sc.Objects)),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("samples", cfg.SamplesPerPx),
	)
	if err := engine.RenderInto(ctx, sc, cfg, dst, opts.Progress); err != nil {
		return fmt.Errorf("render %s: %w", sc.Name, err)
	}
	return nil
}

// Export writes img as PNG at path, creating parent directories and replacing any
// existing file.
func Export(path string, img image.Image) error {
	return composite.Save(path, img)
}
