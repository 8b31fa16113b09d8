package splinter

import (
	"math"
)

// seriesTerms reports how many terms of the geometric initialization series
// must be summed before the remaining tail, bounded by |z|^k/(1-|z|) relative
// to the signal magnitude, drops below eps.
func seriesTerms(z, eps float64) int {
	az := math.Abs(z)
	k := int(math.Ceil(math.Log(eps*(1-az)) / math.Log(az)))
	if k < 1 {
		k = 1
	}
	return k
}

// causalInit computes the first value of the causal recursion,
//
//	sum_{j>=0} z^j ext(-j)
//
// over the boundary extension of line. The periodic extension is summed in
// closed form over one period, which is exact. The other extensions are
// summed term by term until the eps tail bound is met; if the sum outlives
// one full extension period the infinite remainder collapses analytically
// through the extension's exact periodicity, so the truncation error stays
// below eps no matter the signal length. The constant extension is flat
// beyond the edge and always closes immediately.
func causalInit(line []float64, z, eps float64, b Boundary) float64 {
	n := len(line)
	period := extensionPeriod(b, n)
	horizon := seriesTerms(z, eps)
	if b == Periodic || horizon >= period {
		sum, zj := 0.0, 1.0
		for j := 0; j < period; j++ {
			sum += zj * line[extendIndex(-j, n, b)]
			zj *= z
		}
		return sum / (1 - math.Pow(z, float64(period)))
	}
	sum, zj := 0.0, 1.0
	for j := 0; j < horizon; j++ {
		sum += zj * line[extendIndex(-j, n, b)]
		zj *= z
	}
	return sum
}

// antiCausalInit computes the last value of the anticausal recursion. For the
// cascade of one causal and one anticausal first-order section the exact
// filtered value at the last sample is
//
//	-z/(1-z^2) * sum_{t in Z} z^|t| ext(n-1+t),
//
// a two-sided geometric sum over the extended signal, truncated and closed
// under the same eps regime as causalInit.
func antiCausalInit(line []float64, z, eps float64, b Boundary) float64 {
	n := len(line)
	horizon := seriesTerms(z, eps)
	scale := -z / (1 - z*z)
	var sum float64
	switch {
	case b == Constant:
		// Flat to the right of the edge: exact geometric sum.
		sum = line[n-1] / (1 - z)
		zt := z
		t := 1
		for ; t < n && t <= horizon; t++ {
			sum += zt * line[n-1-t]
			zt *= z
		}
		if t == n && horizon >= n {
			// Flat to the left as well once the samples run out.
			sum += line[0] * zt / (1 - z)
		}
	case b == Periodic || horizon >= extensionPeriod(b, n):
		p := extensionPeriod(b, n)
		zp := math.Pow(z, float64(p))
		for r := 0; r < p; r++ {
			w := (math.Pow(z, float64(r)) + math.Pow(z, float64(p-r))) / (1 - zp)
			sum += w * line[extendIndex(n-1+r, n, b)]
		}
	default:
		sum = line[n-1]
		zt := z
		for t := 1; t <= horizon; t++ {
			sum += zt * (line[extendIndex(n-1+t, n, b)] + line[extendIndex(n-1-t, n, b)])
			zt *= z
		}
	}
	return scale * sum
}

// prefilterLine turns the samples of one row or column into spline
// coefficients in place: scale by the gain, then per pole run the causal
// recursion c[i] = x[i] + z*c[i-1] forward and the anticausal recursion
// c[i] = z*(c[i+1] - c+[i]) backward, each seeded by its boundary- and
// precision-dependent initial value.
func prefilterLine(line []float64, poles []float64, gain, eps float64, b Boundary) {
	if len(poles) == 0 || len(line) < 2 {
		return
	}
	n := len(line)
	for i := range line {
		line[i] *= gain
	}
	for _, z := range poles {
		// Both seeds read the pole's input samples, so take them before
		// the forward pass starts overwriting the line.
		first := causalInit(line, z, eps, b)
		last := antiCausalInit(line, z, eps, b)
		line[0] = first
		for i := 1; i < n; i++ {
			line[i] += z * line[i-1]
		}
		line[n-1] = last
		for i := n - 2; i >= 0; i-- {
			line[i] = z * (line[i+1] - line[i])
		}
	}
}
