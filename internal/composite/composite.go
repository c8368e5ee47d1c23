// Package composite post-processes rendered frames: flattening over a solid
// background, neon glow enhancement, thumbnails and PNG IO.
package composite

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Over flattens img onto a solid background. Opaque pixels keep their colour,
// fully transparent pixels become exactly bg and partial alpha blends linearly.
func Over(img image.Image, bg colorful.Color) *image.NRGBA {
	r, g, b := bg.Clamped().RGB255()
	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: 255}), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Over)
	return dst
}

// EnhanceOptions tunes the glow pass.
type EnhanceOptions struct {
	BlurRadius float64
	Saturation float64 // multiplier, 1 keeps saturation
	GlowMix    float64 // share of the glow layer in the result
	Brightness float64 // multiplier, 1 keeps brightness
}

// DefaultEnhance is the standard neon glow.
var DefaultEnhance = EnhanceOptions{BlurRadius: 5, Saturation: 1.5, GlowMix: 0.3, Brightness: 1.2}

// Enhance adds a soft glow: a blurred, more saturated copy is mixed into the image
// and the result is brightened.
func Enhance(img image.Image, opts EnhanceOptions) *image.RGBA {
	glow := blur.Gaussian(img, opts.BlurRadius)
	glow = adjust.Saturation(glow, opts.Saturation-1)
	out := blend.Opacity(img, glow, opts.GlowMix)
	return adjust.Brightness(out, opts.Brightness-1)
}

// Thumbnail scales img so its longer side is maxSide, keeping the aspect ratio.
// Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// Load decodes an image file.
func Load(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return img, nil
}

// Save writes img as PNG, creating parent directories and overwriting any
// existing file.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create png dir: %w", err)
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}
