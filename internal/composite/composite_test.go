package composite

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/neongallery/internal/palette"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 250, G: 0, B: 250, A: 0})
	img.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	return img
}

func TestOverKeepsOpaqueAndFillsTransparent(t *testing.T) {
	out := Over(checker(), palette.RGB(1, 1, 1))

	assert.Equal(t, color.NRGBA{R: 10, G: 200, B: 30, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(3, 3))
}

func TestOverBlendsPartialAlpha(t *testing.T) {
	out := Over(checker(), palette.RGB(0, 0, 0))
	px := out.NRGBAAt(2, 0)
	assert.Equal(t, uint8(255), px.A)
	assert.InDelta(t, 128, int(px.R), 1)
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(1, 0))
}

func TestEnhanceBrightensFlatGrey(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 100, 100, 100, 255
	}
	out := Enhance(img, DefaultEnhance)
	require.Equal(t, img.Bounds(), out.Bounds())

	px := out.RGBAAt(16, 16)
	assert.InDelta(t, 120, int(px.R), 2)
	assert.Equal(t, px.R, px.G)
	assert.Equal(t, px.G, px.B)
}

func TestThumbnail(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	thumb := Thumbnail(img, 50)
	assert.Equal(t, 50, thumb.Bounds().Dx())
	assert.Equal(t, 25, thumb.Bounds().Dy())

	small := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	assert.Same(t, small, Thumbnail(small, 50))
}

func TestSaveCreatesDirectoriesAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "art.png")

	first := Over(checker(), palette.RGB(0, 0, 0))
	require.NoError(t, Save(path, first))

	second := Over(checker(), palette.RGB(1, 1, 1))
	require.NoError(t, Save(path, second))

	loaded, err := Load(path)
	require.NoError(t, err)
	got := color.NRGBAModel.Convert(loaded.At(1, 0)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
