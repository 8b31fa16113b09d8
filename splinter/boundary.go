package splinter

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Boundary selects the extension rule used for sample indices outside the
// image domain, both while prefiltering and while evaluating.
type Boundary int

const (
	// Constant replicates the edge sample outward. It cannot be combined
	// with exact-domain computation, see NewPlan.
	Constant Boundary = iota
	// Periodic tiles the signal with period n.
	Periodic
	// HalfSymmetric mirrors between samples, axis at -1/2 (period 2n).
	HalfSymmetric
	// WholeSymmetric mirrors on samples, axis at 0 (period 2n-2).
	WholeSymmetric
)

var ErrUnknownBoundary = errors.New("unknown boundary extension")

var boundaryNames = []struct {
	name string
	b    Boundary
}{
	{"constant", Constant},
	{"periodic", Periodic},
	{"hsymmetric", HalfSymmetric},
	{"wsymmetric", WholeSymmetric},
}

// ParseBoundary accepts any non-empty prefix of the boundary names, so
// "hsym" and "w" are valid.
func ParseBoundary(name string) (Boundary, error) {
	if name != "" {
		for _, bn := range boundaryNames {
			if strings.HasPrefix(bn.name, name) {
				return bn.b, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBoundary, name)
}

func (b Boundary) String() string {
	for _, bn := range boundaryNames {
		if bn.b == b {
			return bn.name
		}
	}
	return fmt.Sprintf("Boundary(%d)", int(b))
}

// extensionPeriod is the exact period of the extended signal. The constant
// extension is flat beyond either edge, which behaves as period 1 for the
// one-sided initialization sums.
func extensionPeriod(b Boundary, n int) int {
	switch b {
	case Constant:
		return 1
	case Periodic:
		return n
	case HalfSymmetric:
		return 2 * n
	case WholeSymmetric:
		if n == 1 {
			return 1
		}
		return 2*n - 2
	}
	panic("splinter: invalid boundary")
}

// extendIndex maps any integer index onto [0,n) following the extension rule.
func extendIndex(i, n int, b Boundary) int {
	if i >= 0 && i < n {
		return i
	}
	switch b {
	case Constant:
		if i < 0 {
			return 0
		}
		return n - 1
	case Periodic:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case HalfSymmetric:
		p := 2 * n
		i %= p
		if i < 0 {
			i += p
		}
		if i >= n {
			i = p - 1 - i
		}
		return i
	case WholeSymmetric:
		if n == 1 {
			return 0
		}
		p := 2*n - 2
		i %= p
		if i < 0 {
			i += p
		}
		if i >= n {
			i = p - i
		}
		return i
	}
	panic("splinter: invalid boundary")
}

// foldCoord maps a continuous coordinate onto the principal domain of the
// extended signal of n samples, so that evaluation far outside the image
// follows the extension's true period even when the coefficient buffer is
// enlarged. The constant extension does not fold; its far field is the fill
// value.
func foldCoord(x float64, n int, b Boundary) float64 {
	switch b {
	case Periodic:
		x = math.Mod(x, float64(n))
		if x < 0 {
			x += float64(n)
		}
		return x
	case HalfSymmetric:
		// Mirror axes at -1/2 and n-1/2, period 2n.
		p := float64(2 * n)
		t := math.Mod(x+0.5, p)
		if t < 0 {
			t += p
		}
		if t > float64(n) {
			t = p - t
		}
		return t - 0.5
	case WholeSymmetric:
		if n == 1 {
			return 0
		}
		// Mirror axes at 0 and n-1, period 2n-2.
		p := float64(2*n - 2)
		t := math.Mod(x, p)
		if t < 0 {
			t += p
		}
		if t > float64(n-1) {
			t = p - t
		}
		return t
	}
	return x
}

// resolveCoeff maps a lattice index onto the coefficient buffer during
// evaluation. For the constant extension an out-of-buffer position is not
// indexed at all: the caller substitutes the plan's fill value.
func resolveCoeff(i, n int, b Boundary) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	if b == Constant {
		return 0, false
	}
	return extendIndex(i, n, b), true
}
