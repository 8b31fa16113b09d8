package transform

import (
	"github.com/pmonasse/splinter-go/imgio"
	"github.com/pmonasse/splinter-go/splinter"
	"github.com/pmonasse/splinter-go/util"
)

// Warp applies the homography to the image with spline interpolation: build
// one plan for the input, inverse-map every output pixel to a continuous
// source position, evaluate, tear the plan down. geom selects the output
// area; nil keeps the input size anchored at the origin.
func Warp(im *imgio.Image, hom Homography, geom *Geometry, opts *splinter.PlanOptions) (*imgio.Image, error) {
	if geom == nil {
		geom = &Geometry{Width: im.Width, Height: im.Height}
	}
	inv, err := hom.Invert()
	if err != nil {
		return nil, err
	}
	opt := splinter.NewPlanOptions(opts)
	plan, err := splinter.NewPlan(im.Pix, im.Width, im.Height, opt)
	if err != nil {
		return nil, err
	}
	defer plan.Destroy()

	out := imgio.NewImage(geom.Width, geom.Height, im.Channels)

	// Evaluation is pure, so output rows fan out over a bounded worker set.
	util.ParallelBands(geom.Height, opt.MaxGoroutines, func(sy, ey int) {
		vals := make([]float64, im.Channels)
		for j := sy; j < ey; j++ {
			py := float64(j) + geom.Y0
			for i := 0; i < geom.Width; i++ {
				qx, qy := inv.Apply(float64(i)+geom.X0, py)
				plan.Evaluate(qx, qy, vals)
				for c := 0; c < im.Channels; c++ {
					out.Pix[c][j*geom.Width+i] = vals[c]
				}
			}
		}
	})

	return out, nil
}
