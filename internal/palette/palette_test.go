package palette

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiersPickBoundaries(t *testing.T) {
	tests := []struct {
		w        float64
		tier     string
		color    colorful.Color
		strength float64
	}{
		{w: 0.9, tier: "attention-strong", color: RGB(1, 0, 0.9), strength: 18},
		{w: 0.8, tier: "attention-medium", color: RGB(0, 0.8, 1), strength: 12},
		{w: 0.6, tier: "attention-medium", color: RGB(0, 0.6, 1), strength: 9},
		{w: 0.5, tier: "attention-weak", color: RGB(0.5, 0.5, 1), strength: 4},
		{w: 0.2, tier: "attention-weak", color: RGB(0.2, 0.2, 1), strength: 1.6},
	}
	for _, tt := range tests {
		got := AttentionTiers.Pick(tt.w)
		assert.Equal(t, tt.tier, got.Name, "w=%v", tt.w)
		assert.Equal(t, tt.color, got.Color, "w=%v", tt.w)
		assert.InDelta(t, tt.strength, got.Strength, 1e-9, "w=%v", tt.w)
	}
}

func TestTiersKeepOutOfRangeWeights(t *testing.T) {
	got := AttentionTiers.Pick(1.1)
	assert.Equal(t, "attention-strong", got.Name)
	assert.InDelta(t, 22, got.Strength, 1e-9)
}

func TestStarTiersGlowIgnoresTemperature(t *testing.T) {
	tests := []struct {
		temp     float64
		tier     string
		strength float64
	}{
		{temp: 0.95, tier: "star-hot", strength: 4},
		{temp: 0.7, tier: "star-medium", strength: 3},
		{temp: 0.31, tier: "star-medium", strength: 3},
		{temp: 0.3, tier: "star-cool", strength: 2},
		{temp: 0, tier: "star-cool", strength: 2},
	}
	for _, tt := range tests {
		got := StarTiers.Bucket(tt.temp).Glow(tt.temp)
		assert.Equal(t, tt.tier, got.Name, "temp=%v", tt.temp)
		assert.Equal(t, tt.strength, got.Strength, "temp=%v", tt.temp)
	}
	assert.Equal(t, RGB(1, 0.3, 0.1), StarTiers.Bucket(0.8).Glow(0.8).Color)
	assert.Equal(t, RGB(0.5, 0.7, 1), StarTiers.Bucket(0.1).Glow(0.1).Color)
}

func TestNeonPalette(t *testing.T) {
	require.Len(t, Neon, 10)
	assert.Equal(t, "cyan", Neon.At(0).Name)
	assert.Equal(t, "cyan", Neon.At(10).Name)
	assert.Equal(t, "red", Neon.At(-1).Name)

	c, ok := Neon.Lookup("blue")
	require.True(t, ok)
	assert.Equal(t, RGB(0, 0.5, 1), c)

	_, ok = Neon.Lookup("chartreuse")
	assert.False(t, ok)
	assert.Equal(t, RGB(1, 1, 1), Neon.Color("chartreuse"))
}

func TestGradient(t *testing.T) {
	cyan, purple, gold := RGB(0, 1, 1), RGB(0.5, 0, 1), RGB(1, 0.8, 0)

	assert.Equal(t, cyan, Gradient(0, cyan, purple, gold))
	assert.Equal(t, gold, Gradient(1, cyan, purple, gold))
	assert.Equal(t, gold, Gradient(3, cyan, purple, gold))

	mid := Gradient(0.25, cyan, purple, gold)
	assert.InDelta(t, 0.25, mid.R, 1e-12)
	assert.InDelta(t, 0.5, mid.G, 1e-12)
	assert.InDelta(t, 1, mid.B, 1e-12)
}

func TestHueWraps(t *testing.T) {
	assert.True(t, Hue(0).AlmostEqualRgb(Hue(360)))
	assert.True(t, Hue(-120).AlmostEqualRgb(Hue(240)))
	assert.True(t, Hue(0).AlmostEqualRgb(RGB(1, 0, 0)))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff00ff")
	require.NoError(t, err)
	assert.True(t, c.AlmostEqualRgb(RGB(1, 0, 1)))

	_, err = ParseHex("not a colour")
	assert.Error(t, err)
}

func TestSpecNames(t *testing.T) {
	specs := []MaterialSpec{
		Glow("core", RGB(1, 1, 1), 5),
		Principled{Name: "chrome", Metallic: 1},
		Glass{Name: "lens", IOR: 1.45},
	}
	var names []string
	for _, s := range specs {
		names = append(names, s.SpecName())
	}
	assert.Equal(t, []string{"core", "chrome", "lens"}, names)
}
