package customer

import opensimplex "github.com/ojrac/opensimplex-go"

// Footfall modulates customer arrival intensity with smooth noise so traffic
// varies across the day and between days without hard jumps. Deterministic
// from the game seed.
type Footfall struct {
	noise opensimplex.Noise
}

// NewFootfall creates a footfall curve from a seed.
func NewFootfall(seed int64) *Footfall {
	return &Footfall{noise: opensimplex.NewNormalized(seed)}
}

// Intensity returns an arrival-rate multiplier in [0.6, 1.4] for the given
// day and in-day hour. Spawn interval is divided by this value.
func (f *Footfall) Intensity(day int, hour float64) float64 {
	// Two octaves: a slow day-to-day drift and a faster intra-day wobble.
	n := f.noise.Eval2(float64(day)*0.35, hour*0.18)
	n += 0.5 * f.noise.Eval2(float64(day)*0.9+100, hour*0.45)
	n /= 1.5 // back to [0,1]

	return 0.6 + n*0.8
}
