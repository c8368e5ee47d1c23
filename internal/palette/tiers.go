package palette

import colorful "github.com/lucasb-eyer/go-colorful"

// Tier is one bucket of a Tiers table.
type Tier struct {
	Name string
	// Above is the exclusive lower bound of the bucket.
	Above    float64
	Color    func(w float64) colorful.Color
	Strength float64
}

// Tiers maps a weight to a material through descending breakpoints.
type Tiers struct {
	Levels []Tier // ordered by Above, highest first
	Else   Tier
}

// Pick returns the emissive material of the first tier whose bound w strictly
// exceeds, so a weight exactly on a breakpoint lands in the lower bucket. The
// strength is the tier strength scaled by w.
func (t Tiers) Pick(w float64) Emissive {
	return t.Bucket(w).emissive(w)
}

// Bucket returns the tier w falls into.
func (t Tiers) Bucket(w float64) Tier {
	for _, tier := range t.Levels {
		if w > tier.Above {
			return tier
		}
	}
	return t.Else
}

func (tier Tier) emissive(w float64) Emissive {
	return tier.Glow(w).Scaled(w)
}

// Glow returns the tier's material at w with the tier strength left unscaled.
func (tier Tier) Glow(w float64) Emissive {
	var c colorful.Color
	if tier.Color != nil {
		c = tier.Color(w)
	}
	return Glow(tier.Name, c, tier.Strength)
}

// AttentionTiers colours attention weights: strong links magenta, medium cyan,
// weak ones pale blue.
var AttentionTiers = Tiers{
	Levels: []Tier{
		{Name: "attention-strong", Above: 0.8, Strength: 20, Color: func(w float64) colorful.Color { return RGB(1, 0, w) }},
		{Name: "attention-medium", Above: 0.5, Strength: 15, Color: func(w float64) colorful.Color { return RGB(0, w, 1) }},
	},
	Else: Tier{Name: "attention-weak", Strength: 8, Color: func(w float64) colorful.Color { return RGB(w, w, 1) }},
}

func fixed(c colorful.Color) func(float64) colorful.Color {
	return func(float64) colorful.Color { return c }
}

// StarTiers colours stars by a temperature draw in [0,1): the hottest burn red,
// mid stars warm white and the rest cool blue.
var StarTiers = Tiers{
	Levels: []Tier{
		{Name: "star-hot", Above: 0.7, Strength: 4, Color: fixed(RGB(1, 0.3, 0.1))},
		{Name: "star-medium", Above: 0.3, Strength: 3, Color: fixed(RGB(1, 1, 0.8))},
	},
	Else: Tier{Name: "star-cool", Strength: 2, Color: fixed(RGB(0.5, 0.7, 1))},
}
