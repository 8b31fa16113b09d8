package splinter

import (
	"math"
	"sort"
)

// polesFor derives the prefilter poles of a spline order: the roots inside
// the unit circle of the symmetric polynomial whose coefficients are the
// kernel sampled at the integers. Orders 0 and 1 interpolate their samples
// directly and have no poles. All poles are real, negative and simple, in
// reciprocal pairs with their mirrors outside the unit circle, so exactly
// order/2 of them live in (-1,0).
func polesFor(order int) []float64 {
	m := order / 2
	if m == 0 {
		return nil
	}
	// c[j] is the coefficient of z^j in z^m * sum_k kernel(k) z^k.
	c := make([]float64, 2*m+1)
	for j := range c {
		c[j] = Weight(float64(j-m), order)
	}
	poles := findNegativeRoots(c, m, 4000)
	if len(poles) != m {
		// Pathologically close brackets; retry on a denser grid.
		poles = findNegativeRoots(c, m, 200000)
	}
	if len(poles) != m {
		panic("splinter: pole search failed")
	}
	sort.Float64s(poles)
	return poles
}

// findNegativeRoots brackets the sign changes of the polynomial on (-1,0)
// over a log-magnitude grid and bisects each bracket. Successive pole
// magnitudes of a B-spline differ by large multiplicative factors, which a
// uniform grid in log|z| resolves at any order.
func findNegativeRoots(c []float64, want, steps int) []float64 {
	const (
		loMag = 1e-14
		hiMag = 1 - 1e-9
	)
	eval := func(z float64) float64 {
		v := 0.0
		for j := len(c) - 1; j >= 0; j-- {
			v = v*z + c[j]
		}
		return v
	}
	roots := make([]float64, 0, want)
	logLo, logHi := math.Log(loMag), math.Log(hiMag)
	prevZ := -loMag
	prevV := eval(prevZ)
	for i := 1; i <= steps; i++ {
		mag := math.Exp(logLo + (logHi-logLo)*float64(i)/float64(steps))
		z := -mag
		v := eval(z)
		if v == 0 {
			roots = append(roots, z)
		} else if (v < 0) != (prevV < 0) && prevV != 0 {
			roots = append(roots, bisect(eval, z, prevZ))
		}
		prevZ, prevV = z, v
	}
	return roots
}

func bisect(f func(float64) float64, lo, hi float64) float64 {
	flo := f(lo)
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if mid == lo || mid == hi {
			break
		}
		fm := f(mid)
		if fm == 0 {
			return mid
		}
		if (fm < 0) == (flo < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// prefilterGain is the normalization applied once per 1-D pass so the
// cascaded pole recursions invert the integer-sampled kernel exactly at DC.
func prefilterGain(poles []float64) float64 {
	gain := 1.0
	for _, z := range poles {
		gain *= (1 - z) * (1 - 1/z)
	}
	return gain
}
