package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededIsDeterministic(t *testing.T) {
	a, b := NewSeeded(7), NewSeeded(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestRangeBounds(t *testing.T) {
	p := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		v := p.Range(40, 70)
		assert.GreaterOrEqual(t, v, 40.0)
		assert.Less(t, v, 70.0)
	}
}

func TestWeightedIndex(t *testing.T) {
	p := NewSeeded(1)

	// A single positive weight always wins.
	for i := 0; i < 20; i++ {
		assert.Equal(t, 2, WeightedIndex(p, []float64{0, -1, 5}))
	}

	// No positive weight means no pick.
	assert.Equal(t, -1, WeightedIndex(p, []float64{0, 0}))
	assert.Equal(t, -1, WeightedIndex(p, nil))
}

func TestWeightedIndexStaysInRange(t *testing.T) {
	p := NewSeeded(9)
	weights := []float64{10, 0, 30, 60}
	counts := make([]int, len(weights))
	for i := 0; i < 5000; i++ {
		idx := WeightedIndex(p, weights)
		counts[idx]++
	}

	assert.Zero(t, counts[1], "zero-weight index was picked")
	// The heaviest weight should dominate.
	assert.Greater(t, counts[3], counts[2])
	assert.Greater(t, counts[2], counts[0])
}
