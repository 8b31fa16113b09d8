package splinter

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/pmonasse/splinter-go/util"
)

var ErrOrderRange = errors.New("spline order out of range")

// PlanOptions configures plan construction.
type PlanOptions struct {
	// Order of the interpolating spline, 0..MaxOrder.
	Order int
	// Boundary extension rule.
	Boundary Boundary
	// Eps is the relative truncation tolerance of the recursive-filter
	// initialization series, in (0,1). Meaningless for Periodic, whose
	// initialization is exact.
	Eps float64
	// Larger widens the working buffer by a margin of explicitly extended
	// and filtered samples, so in-domain evaluations never touch
	// boundary-approximated coefficients.
	Larger bool
	// Fill is returned for coefficient positions outside the enlarged
	// buffer under the Constant extension.
	Fill float64
	// MaxGoroutines bounds the workers used for the row and column passes.
	MaxGoroutines int
}

// NewPlanOptions copies options and fills in defaults for zero fields.
func NewPlanOptions(options *PlanOptions) *PlanOptions {
	opt := &PlanOptions{
		Order:         DefaultOrder,
		Boundary:      HalfSymmetric,
		Eps:           1e-6,
		MaxGoroutines: runtime.NumCPU(),
	}
	if options != nil {
		*opt = *options
		if opt.Eps == 0 {
			opt.Eps = 1e-6
		}
		if opt.MaxGoroutines < 1 {
			opt.MaxGoroutines = runtime.NumCPU()
		}
	}
	return opt
}

// Plan holds the spline-coefficient representation of one image: the
// separable prefilter applied to every channel, plus everything needed to
// evaluate the spline at arbitrary coordinates. Build once, evaluate any
// number of times (concurrently if desired), then Destroy.
type Plan struct {
	width    int // working dimensions, margin included
	height   int
	channels int
	margin   int

	order    int
	boundary Boundary
	eps      float64
	fill     float64

	poles []float64
	gain  float64

	coeff     []*util.Matrix[float64]
	destroyed bool
}

// NewPlan prefilters the planar image pix (one w*h slice per channel) into a
// ready-to-evaluate Plan. The input buffers are only read, never retained.
func NewPlan(pix [][]float64, w, h int, opts *PlanOptions) (*Plan, error) {
	opt := NewPlanOptions(opts)
	if opt.Order < 0 || opt.Order > MaxOrder {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrOrderRange, opt.Order, MaxOrder)
	}
	if opt.Eps <= 0 || opt.Eps >= 1 {
		return nil, fmt.Errorf("eps must be in (0,1), got %g", opt.Eps)
	}
	if w < 1 || h < 1 || len(pix) < 1 {
		return nil, fmt.Errorf("empty image %dx%dx%d", w, h, len(pix))
	}
	for c := range pix {
		if len(pix[c]) != w*h {
			return nil, fmt.Errorf("channel %d has %d samples, want %d", c, len(pix[c]), w*h)
		}
	}
	if opt.Boundary == Constant && !opt.Larger {
		log.Warnf("constant extension is incompatible with exact-domain computation, enlarging the domain")
		opt.Larger = true
	}

	p := &Plan{
		channels: len(pix),
		order:    opt.Order,
		boundary: opt.Boundary,
		eps:      opt.Eps,
		fill:     opt.Fill,
		poles:    polesFor(opt.Order),
	}
	p.gain = prefilterGain(p.poles)
	if opt.Larger {
		p.margin = enlargeMargin(p.order, p.poles, p.eps)
	}
	p.width = w + 2*p.margin
	p.height = h + 2*p.margin

	p.coeff = make([]*util.Matrix[float64], p.channels)
	for c := range p.coeff {
		p.coeff[c] = util.NewMatrix[float64](p.height, p.width)
		src := util.NewMatrixFromData(h, w, pix[c])
		fillWorking(p.coeff[c], src, p.margin, p.boundary)
	}

	p.prefilter(opt.MaxGoroutines)
	return p, nil
}

// enlargeMargin sizes the enlarged-domain border: the evaluation support
// reach plus the decay length of the slowest pole at precision eps, so the
// coefficients indexed by any in-domain query are converged.
func enlargeMargin(order int, poles []float64, eps float64) int {
	m := Support(order)/2 + 1
	if len(poles) > 0 {
		zmax := 0.0
		for _, z := range poles {
			if a := math.Abs(z); a > zmax {
				zmax = a
			}
		}
		m += int(math.Ceil(math.Log(eps) / math.Log(zmax)))
	}
	return m
}

// fillWorking copies the image into the working buffer, materializing the
// margin through the boundary extension of the original domain.
func fillWorking(dst *util.Matrix[float64], src *util.Matrix[float64], margin int, b Boundary) {
	if margin == 0 {
		copy(dst.Data, src.Data)
		return
	}
	for y := 0; y < dst.Height; y++ {
		sy := extendIndex(y-margin, src.Height, b)
		row := dst.Row(y)
		srow := src.Row(sy)
		for x := 0; x < dst.Width; x++ {
			row[x] = srow[extendIndex(x-margin, src.Width, b)]
		}
	}
}

// prefilter runs the separable filter over every channel: all rows, then all
// columns. Lines within a pass are independent, so each pass fans out over a
// bounded set of workers with a barrier in between.
func (p *Plan) prefilter(workers int) {
	if len(p.poles) == 0 {
		return
	}
	for _, plane := range p.coeff {
		plane := plane
		util.ParallelBands(p.height, workers, func(start, end int) {
			for y := start; y < end; y++ {
				prefilterLine(plane.Row(y), p.poles, p.gain, p.eps, p.boundary)
			}
		})
		util.ParallelBands(p.width, workers, func(start, end int) {
			col := make([]float64, p.height)
			for x := start; x < end; x++ {
				plane.Column(x, col)
				prefilterLine(col, p.poles, p.gain, p.eps, p.boundary)
				plane.SetColumn(x, col)
			}
		})
	}
}

// Channels reports the number of image channels the plan interpolates.
func (p *Plan) Channels() int {
	return p.channels
}

// Evaluate reconstructs the interpolated value of every channel at the
// continuous position (x,y), given in the coordinate system of the original
// image; the enlarged-domain offset, if any, is applied internally.
// Coordinates far outside the image fold through the extension's true
// period, so periodicity and mirror symmetry hold regardless of the working
// buffer size. out must have room for Channels() values. The call mutates no
// plan state and is safe to issue concurrently.
func (p *Plan) Evaluate(x, y float64, out []float64) {
	if p.destroyed {
		panic("splinter: Evaluate on a destroyed Plan")
	}
	x = foldCoord(x, p.width-2*p.margin, p.boundary)
	y = foldCoord(y, p.height-2*p.margin, p.boundary)
	x += float64(p.margin)
	y += float64(p.margin)

	var wx, wy [MaxOrder + 1]float64
	ix := kernelWeights(x, p.order, wx[:])
	iy := kernelWeights(y, p.order, wy[:])
	n := Support(p.order)

	for c := 0; c < p.channels; c++ {
		out[c] = 0
	}
	for l := 0; l < n; l++ {
		ry, okY := resolveCoeff(iy+l, p.height, p.boundary)
		for k := 0; k < n; k++ {
			w := wx[k] * wy[l]
			if w == 0 {
				continue
			}
			rx, okX := resolveCoeff(ix+k, p.width, p.boundary)
			if !okX || !okY {
				for c := 0; c < p.channels; c++ {
					out[c] += w * p.fill
				}
				continue
			}
			for c := 0; c < p.channels; c++ {
				out[c] += w * p.coeff[c].Get(ry, rx)
			}
		}
	}
}

// Coefficient exposes one prefiltered coefficient for inspection, indexed in
// original-image coordinates.
func (p *Plan) Coefficient(c, x, y int) float64 {
	if p.destroyed {
		panic("splinter: Coefficient on a destroyed Plan")
	}
	return p.coeff[c].Get(y+p.margin, x+p.margin)
}

// Destroy releases the coefficient buffers and pole table. The plan is
// invalid afterwards; further evaluation panics rather than reading freed
// state.
func (p *Plan) Destroy() {
	p.coeff = nil
	p.poles = nil
	p.destroyed = true
}
