package transform

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrBadGeometry = errors.New("malformed geometry")

// Geometry is the output area of a warp: Width x Height pixels whose pixel
// (i,j) sits at continuous position (i+X0, j+Y0).
type Geometry struct {
	X0, Y0        float64
	Width, Height int
}

// ParseGeometry decodes an output-geometry specification against an input of
// w x h pixels transformed by hom:
//
//	"WxH"       explicit size anchored at the origin
//	"WxH+x+y"   explicit size and offset (use - for negative offsets)
//	"auto"      bounding box of the four transformed corners
//	"center"    input size, anchored so the transformed center stays put
//
// "auto" and "center" match on any non-empty prefix.
func ParseGeometry(spec string, hom Homography, w, h int) (Geometry, error) {
	if spec != "" && strings.HasPrefix("center", spec) {
		cx, cy := hom.Apply(float64(w)/2, float64(h)/2)
		return Geometry{
			X0:    cx - float64(w)/2,
			Y0:    cy - float64(h)/2,
			Width: w, Height: h,
		}, nil
	}
	if spec != "" && strings.HasPrefix("auto", spec) {
		return boundingBox(hom, w, h), nil
	}
	g := Geometry{}
	n, err := fmt.Sscanf(spec, "%dx%d%g%g", &g.Width, &g.Height, &g.X0, &g.Y0)
	if err != nil && n != 2 {
		return g, fmt.Errorf("%w: %q", ErrBadGeometry, spec)
	}
	if n != 2 && n != 4 {
		return g, fmt.Errorf("%w: %q", ErrBadGeometry, spec)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return g, fmt.Errorf("%w: %q", ErrBadGeometry, spec)
	}
	return g, nil
}

// boundingBox transforms the four corners of the w x h domain and returns
// the smallest pixel grid covering them.
func boundingBox(hom Homography, w, h int) Geometry {
	corners := [4][2]float64{
		{0, 0},
		{float64(w), 0},
		{0, float64(h)},
		{float64(w), float64(h)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := hom.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Geometry{
		X0:     minX,
		Y0:     minY,
		Width:  int(math.Ceil(maxX - minX)),
		Height: int(math.Ceil(maxY - minY)),
	}
}
