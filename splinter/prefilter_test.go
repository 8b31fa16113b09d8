package splinter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesTerms(t *testing.T) {
	// z^k/(1-z) <= eps first holds at k=21 for z=-0.5, eps=1e-6.
	assert.Equal(t, 21, seriesTerms(-0.5, 1e-6))

	prev := 0
	for _, eps := range []float64{1e-2, 1e-4, 1e-6, 1e-8, 1e-10} {
		k := seriesTerms(math.Sqrt(3)-2, eps)
		assert.GreaterOrEqual(t, k, prev, "eps %g", eps)
		prev = k
	}
}

func TestCausalInitFlatSignal(t *testing.T) {
	line := []float64{5, 5, 5, 5, 5, 5}
	z := math.Sqrt(3) - 2
	for _, b := range []Boundary{Constant, Periodic, HalfSymmetric, WholeSymmetric} {
		got := causalInit(line, z, 1e-12, b)
		assert.InDelta(t, 5/(1-z), got, 1e-9, "boundary %v", b)
	}
}

func TestAntiCausalInitFlatSignal(t *testing.T) {
	line := []float64{5, 5, 5, 5, 5, 5}
	z := math.Sqrt(3) - 2
	for _, b := range []Boundary{Constant, Periodic, HalfSymmetric, WholeSymmetric} {
		got := antiCausalInit(line, z, 1e-12, b)
		assert.InDelta(t, -z*5/((1-z)*(1-z)), got, 1e-9, "boundary %v", b)
	}
}

// reconstruct1D sums kernel-weighted coefficients at an integer position,
// extending the coefficient line by the boundary rule.
func reconstruct1D(coeffs []float64, i, order int, b Boundary) float64 {
	n := len(coeffs)
	m := Support(order)
	var w [MaxOrder + 1]float64
	first := kernelWeights(float64(i), order, w[:])
	sum := 0.0
	for k := 0; k < m; k++ {
		sum += w[k] * coeffs[extendIndex(first+k, n, b)]
	}
	return sum
}

func TestPrefilterLineReproducesSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	src := make([]float64, 17)
	for i := range src {
		src[i] = rng.Float64()
	}
	const eps = 1e-10
	for _, order := range []int{2, 3, 4, 5, 7, 11, 16} {
		poles := polesFor(order)
		gain := prefilterGain(poles)
		for _, b := range []Boundary{Periodic, HalfSymmetric, WholeSymmetric} {
			line := append([]float64(nil), src...)
			prefilterLine(line, poles, gain, eps, b)
			tol := 1e-7
			if b == Periodic {
				tol = 1e-10
			}
			for i := range src {
				got := reconstruct1D(line, i, order, b)
				require.InDelta(t, src[i], got, tol,
					"order %d boundary %v sample %d", order, b, i)
			}
		}
	}
}

func TestPrefilterLineDegenerate(t *testing.T) {
	// No poles: coefficients are the samples.
	line := []float64{1, 2, 3}
	prefilterLine(line, nil, 1, 1e-6, Periodic)
	assert.Equal(t, []float64{1, 2, 3}, line)

	// Single sample: the spline through any extension of it is flat.
	single := []float64{7}
	prefilterLine(single, polesFor(3), 6, 1e-6, WholeSymmetric)
	assert.Equal(t, []float64{7}, single)
}

func TestPrefilterPrecisionMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src := make([]float64, 32)
	for i := range src {
		src[i] = 0.5 + rng.Float64()
	}
	poles := polesFor(7)
	gain := prefilterGain(poles)

	ref := append([]float64(nil), src...)
	prefilterLine(ref, poles, gain, 1e-15, WholeSymmetric)

	prevErr := math.Inf(1)
	for _, eps := range []float64{1e-2, 1e-4, 1e-6, 1e-8, 1e-10} {
		line := append([]float64(nil), src...)
		prefilterLine(line, poles, gain, eps, WholeSymmetric)
		maxErr := 0.0
		for i := range line {
			maxErr = math.Max(maxErr, math.Abs(line[i]-ref[i]))
		}
		assert.LessOrEqual(t, maxErr, prevErr+1e-12, "eps %g", eps)
		prevErr = maxErr
	}
}
