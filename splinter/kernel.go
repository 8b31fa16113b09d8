package splinter

import (
	"math"
)

const (
	// MaxOrder is the highest accepted spline order.
	MaxOrder = 16
	// DefaultOrder is the order used when the caller does not pick one.
	DefaultOrder = 11
)

// Support is the number of lattice points a spline of the given order
// touches along one axis.
func Support(order int) int {
	return order + 1
}

// Weight evaluates the centered B-spline basis of the given order at offset
// x. The basis is the order-fold self-convolution of the unit box, nonzero
// only for |x| < (order+1)/2. Orders 0 to 3 use their closed piecewise
// polynomials; higher orders go through the convolution recursion.
//
// The box uses the half-open convention (1 on [-1/2,1/2)) so that weights at
// half-integer offsets still sum to one.
func Weight(x float64, order int) float64 {
	switch order {
	case 0:
		if x >= -0.5 && x < 0.5 {
			return 1
		}
		return 0
	case 1:
		if x < 0 {
			x = -x
		}
		if x < 1 {
			return 1 - x
		}
		return 0
	case 2:
		if x < 0 {
			x = -x
		}
		if x < 0.5 {
			return 0.75 - x*x
		}
		if x < 1.5 {
			x = 1.5 - x
			return 0.5 * x * x
		}
		return 0
	case 3:
		if x < 0 {
			x = -x
		}
		if x < 1 {
			return 2.0/3.0 - x*x + 0.5*x*x*x
		}
		if x < 2 {
			x = 2 - x
			return x * x * x / 6.0
		}
		return 0
	}
	if 2*math.Abs(x) >= float64(order+1) {
		return 0
	}
	var w [MaxOrder + 1]float64
	triangle(x, order, 0, w[:1])
	return w[0]
}

// triangle runs the self-convolution recursion
//
//	b[j](q) = ((q+(j+1)/2) b[j-1](q+1/2) + ((j+1)/2-q) b[j-1](q-1/2)) / j
//
// bottom-up over the half-integer lattice of points x-k, k = 0..count,
// leaving the order-n values in w[0:count+1]. Evaluating the whole window in
// one pass is both cheaper and better conditioned than the one-sided
// truncated-power formula, which cancels catastrophically at high orders.
func triangle(x float64, n, count int, w []float64) {
	var v [3*MaxOrder + 1]float64
	width := n + count // number of level-0 cells minus one
	for i := 0; i <= width; i++ {
		p := x + float64(n)/2 - float64(i)
		if p >= -0.5 && p < 0.5 {
			v[i] = 1
		} else {
			v[i] = 0
		}
	}
	for j := 1; j <= n; j++ {
		half := float64(j+1) / 2
		base := x + float64(n-j)/2
		for i := 0; i <= width-j; i++ {
			q := base - float64(i)
			v[i] = ((q+half)*v[i] + (half-q)*v[i+1]) / float64(j)
		}
	}
	copy(w, v[:count+1])
}

// kernelWeights fills w[0..order] with the kernel values at every lattice
// point of the support window around x and returns the first lattice index.
// Even orders center the window on the nearest integer, odd orders on
// floor(x).
func kernelWeights(x float64, order int, w []float64) int {
	var first int
	if order%2 == 1 {
		first = int(math.Floor(x)) - (order-1)/2
	} else {
		first = int(math.Floor(x+0.5)) - order/2
	}
	if order <= 3 {
		for k := 0; k <= order; k++ {
			w[k] = Weight(x-float64(first+k), order)
		}
		return first
	}
	triangle(x-float64(first), order, order, w)
	return first
}
