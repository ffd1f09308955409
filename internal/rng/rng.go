// Package rng provides the injectable randomness source used by every
// stochastic subsystem. The simulation core never touches a global random
// generator; a Provider is threaded in so runs are reproducible from a seed.
package rng

import "math/rand"

// Provider is the randomness contract consumed by spawn, order, and event
// generation. Implementations must be deterministic for a fixed seed.
type Provider interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
	// Range returns a value in [lo, hi).
	Range(lo, hi float64) float64
}

// Seeded is the standard Provider backed by math/rand with an explicit seed.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a deterministic provider from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) Float64() float64 { return s.rng.Float64() }

func (s *Seeded) IntN(n int) int { return s.rng.Intn(n) }

func (s *Seeded) Range(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// WeightedIndex picks an index from a weight slice proportionally to each
// weight. Zero and negative weights are treated as ineligible. Returns -1
// when no weight is positive.
func WeightedIndex(p Provider, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := p.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return len(weights) - 1
}
