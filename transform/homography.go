// Package transform applies projective coordinate remappings to images by
// inverse-mapping every output pixel through a homography and evaluating a
// prefiltered spline plan at the resulting continuous position.
package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadHomography = errors.New("homography needs 9 coefficients")

// Homography is a projective 2-D transform, a 3x3 matrix in row-major order
// defined up to scale.
type Homography [9]float64

// Identity returns the identity transform.
func Identity() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// ParseHomography reads 9 coefficients from a string. Any run of characters
// that cannot start a number acts as a separator, so both
// "h11 h12 h13; h21 ..." and comma-separated forms parse.
func ParseHomography(s string) (Homography, error) {
	var h Homography
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' ||
			(r >= '0' && r <= '9'))
	})
	vals := make([]float64, 0, 9)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return h, fmt.Errorf("%w: bad coefficient %q", ErrBadHomography, f)
		}
		vals = append(vals, v)
	}
	if len(vals) != 9 {
		return h, fmt.Errorf("%w: got %d", ErrBadHomography, len(vals))
	}
	copy(h[:], vals)
	return h, nil
}

// Apply maps the point (x,y) through the transform.
func (h Homography) Apply(x, y float64) (float64, float64) {
	z := h[6]*x + h[7]*y + h[8]
	return (h[0]*x + h[1]*y + h[2]) / z, (h[3]*x + h[4]*y + h[5]) / z
}

// Mul composes two transforms: (h.Mul(g)).Apply == h.Apply after g.Apply.
func (h Homography) Mul(g Homography) Homography {
	var r Homography
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				s += h[3*i+k] * g[3*k+j]
			}
			r[3*i+j] = s
		}
	}
	return r
}

// Invert returns the inverse transform via the adjugate, which is enough
// since a homography is defined up to scale.
func (h Homography) Invert() (Homography, error) {
	adj := Homography{
		h[4]*h[8] - h[5]*h[7], h[2]*h[7] - h[1]*h[8], h[1]*h[5] - h[2]*h[4],
		h[5]*h[6] - h[3]*h[8], h[0]*h[8] - h[2]*h[6], h[2]*h[3] - h[0]*h[5],
		h[3]*h[7] - h[4]*h[6], h[1]*h[6] - h[0]*h[7], h[0]*h[4] - h[1]*h[3],
	}
	det := h[0]*adj[0] + h[1]*adj[3] + h[2]*adj[6]
	if det == 0 {
		return h, errors.New("homography is singular")
	}
	return adj, nil
}

// FromCorrespondences builds the homography sending the four src points to
// the four dst points, by composing the map from the unit square to each
// quadrilateral.
func FromCorrespondences(src, dst [4][2]float64) (Homography, error) {
	stoq, err := squareToQuad(src)
	if err != nil {
		return Homography{}, err
	}
	qtos, err := stoq.Invert()
	if err != nil {
		return Homography{}, err
	}
	stod, err := squareToQuad(dst)
	if err != nil {
		return Homography{}, err
	}
	return stod.Mul(qtos), nil
}

// squareToQuad maps the unit square corners (0,0),(1,0),(1,1),(0,1) to q.
func squareToQuad(q [4][2]float64) (Homography, error) {
	x0, y0 := q[0][0], q[0][1]
	x1, y1 := q[1][0], q[1][1]
	x2, y2 := q[2][0], q[2][1]
	x3, y3 := q[3][0], q[3][1]
	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		// Affine case.
		return Homography{
			x1 - x0, x2 - x1, x0,
			y1 - y0, y2 - y1, y0,
			0, 0, 1,
		}, nil
	}
	dx1, dy1 := x1-x2, y1-y2
	dx2, dy2 := x3-x2, y3-y2
	den := dx1*dy2 - dx2*dy1
	if den == 0 {
		return Homography{}, errors.New("degenerate quadrilateral")
	}
	g := (dx3*dy2 - dx2*dy3) / den
	h := (dx1*dy3 - dx3*dy1) / den
	return Homography{
		x1 - x0 + g*x1, x3 - x0 + h*x3, x0,
		y1 - y0 + g*y1, y3 - y0 + h*y3, y0,
		g, h, 1,
	}, nil
}
