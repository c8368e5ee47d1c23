package engine

import (
	"context"
	"image"

	"github.com/user/neongallery/internal/scene"
)

// RenderScene performs path tracing of the given scene using provided settings.
func RenderScene(ctx context.Context, sc *scene.Scene, settings scene.RenderSettings) (*image.NRGBA, error) {
	return Render(ctx, sc, ConfigFromSettings(settings))
}

// ConfigFromSettings converts the serialisable settings into a RenderConfig.
func ConfigFromSettings(settings scene.RenderSettings) RenderConfig {
	return RenderConfig{
		Width:        settings.Width,
		Height:       settings.Height,
		SamplesPerPx: settings.SamplesPerPx,
		MaxDepth:     settings.MaxDepth,
		Seed:         settings.Seed,
		Transparent:  settings.FilmTransparent,
	}
}

// RenderSettingsForMode returns reasonable defaults for preview/gallery/final modes.
func RenderSettingsForMode(mode string) scene.RenderSettings {
	switch mode {
	case "final":
		return scene.RenderSettings{
			Width:        1920,
			Height:       1080,
			SamplesPerPx: 256,
			MaxDepth:     12,
		}
	case "gallery":
		return scene.RenderSettings{
			Width:        1080,
			Height:       1080,
			SamplesPerPx: 64,
			MaxDepth:     8,
		}
	default:
		return scene.RenderSettings{
			Width:        400,
			Height:       400,
			SamplesPerPx: 16,
			MaxDepth:     6,
		}
	}
}
