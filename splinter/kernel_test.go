package splinter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupport(t *testing.T) {
	assert.Equal(t, 1, Support(0))
	assert.Equal(t, 2, Support(1))
	assert.Equal(t, 4, Support(3))
	assert.Equal(t, 17, Support(MaxOrder))
}

func TestWeightVanishesOutsideSupport(t *testing.T) {
	for order := 0; order <= MaxOrder; order++ {
		radius := float64(order+1) / 2
		assert.Equal(t, 0.0, Weight(radius+0.001, order), "order %d", order)
		assert.Equal(t, 0.0, Weight(-radius-0.001, order), "order %d", order)
		assert.Equal(t, 0.0, Weight(radius+10, order), "order %d", order)
	}
}

func TestWeightSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for order := 1; order <= MaxOrder; order++ {
		for i := 0; i < 20; i++ {
			x := (rng.Float64() - 0.5) * float64(order+1)
			assert.InDelta(t, Weight(x, order), Weight(-x, order), 1e-12,
				"order %d x %g", order, x)
		}
	}
}

func TestWeightKnownValues(t *testing.T) {
	tests := []struct {
		x        float64
		order    int
		expected float64
	}{
		{0, 0, 1},
		{0, 1, 1},
		{0.5, 1, 0.5},
		{0, 2, 0.75},
		{0.5, 2, 0.5},
		{1, 2, 0.125},
		{0, 3, 2.0 / 3.0},
		{1, 3, 1.0 / 6.0},
		{0.5, 3, 23.0 / 48.0},
		// Integer samples of the quartic and quintic, exercising the
		// convolution recursion against textbook values.
		{0, 4, 115.0 / 192.0},
		{1, 4, 19.0 / 96.0},
		{2, 4, 1.0 / 384.0},
		{0, 5, 11.0 / 20.0},
		{1, 5, 13.0 / 60.0},
		{2, 5, 1.0 / 120.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Weight(tt.x, tt.order), 1e-14,
			"order %d at %g", tt.order, tt.x)
	}
}

func TestKernelWeightsPartitionOfUnity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var w [MaxOrder + 1]float64
	for order := 0; order <= MaxOrder; order++ {
		for i := 0; i < 50; i++ {
			x := (rng.Float64() - 0.5) * 100
			kernelWeights(x, order, w[:])
			sum := 0.0
			for k := 0; k <= order; k++ {
				sum += w[k]
			}
			assert.InDelta(t, 1.0, sum, 1e-11, "order %d x %g", order, x)
		}
	}
}

func TestKernelWeightsMatchWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var w [MaxOrder + 1]float64
	for order := 0; order <= MaxOrder; order++ {
		for i := 0; i < 20; i++ {
			x := (rng.Float64() - 0.5) * 20
			first := kernelWeights(x, order, w[:])
			for k := 0; k <= order; k++ {
				assert.InDelta(t, Weight(x-float64(first+k), order), w[k], 1e-12,
					"order %d x %g k %d", order, x, k)
			}
		}
	}
}

func TestKernelWeightsCentering(t *testing.T) {
	// Odd orders anchor at floor(x), even orders at the nearest integer.
	var w [MaxOrder + 1]float64
	first := kernelWeights(5.3, 3, w[:])
	assert.Equal(t, 4, first)
	first = kernelWeights(5.7, 3, w[:])
	assert.Equal(t, 4, first)
	first = kernelWeights(5.3, 2, w[:])
	assert.Equal(t, 4, first)
	first = kernelWeights(5.7, 2, w[:])
	assert.Equal(t, 5, first)
}
