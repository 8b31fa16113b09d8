package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/pmonasse/splinter-go/imgio"
	"github.com/pmonasse/splinter-go/splinter"
	"github.com/pmonasse/splinter-go/transform"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] \"homography\" in out\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Homographic transformation of an image using B-spline interpolation\n\n")
	fmt.Fprintf(os.Stderr, "homography: 9 matrix coefficients (\"h11 h12 h13; h21 h22 h23; h31 h32 h33\")\n")
	fmt.Fprintf(os.Stderr, "in        : input image (png, jpeg or pfm)\n")
	fmt.Fprintf(os.Stderr, "out       : output image (png, or pfm for float samples)\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	order := flag.Int("order", splinter.DefaultOrder,
		fmt.Sprintf("order of interpolation (0 to %d)", splinter.MaxOrder))
	boundaryName := flag.String("boundary", "hsymmetric",
		"boundary extension (constant, periodic, hsymmetric, wsymmetric)")
	eps := flag.Float64("eps", 6, "relative precision (eps>=1 means 10^-eps)")
	larger := flag.Bool("larger", false, "compute on larger domain instead of exact domain")
	geometry := flag.String("geometry", "", "area of output: wxh, wxh+x0+y0, auto or center")
	fill := flag.Float64("fill", 0, "fill value outside the enlarged domain (constant extension)")
	jobs := flag.Int("jobs", 0, "max goroutines for prefiltering and warping (0 = all CPUs)")
	profileCPU := flag.Bool("profile", false, "write a CPU profile to the current directory")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(1)
	}

	if *profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if *order < 0 || *order > splinter.MaxOrder {
		log.Fatalf("the maximal order authorized is %d", splinter.MaxOrder)
	}
	boundary, err := splinter.ParseBoundary(*boundaryName)
	if err != nil {
		log.Fatalf("%v", err)
	}
	hom, err := transform.ParseHomography(flag.Arg(0))
	if err != nil {
		log.Fatalf("wrong homography: %v", err)
	}

	im, err := imgio.Load(flag.Arg(1))
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	var geom *transform.Geometry
	if *geometry != "" {
		g, err := transform.ParseGeometry(*geometry, hom, im.Width, im.Height)
		if err != nil {
			log.Fatalf("wrong format for geometry: %v", err)
		}
		geom = &g
	}

	opts := &splinter.PlanOptions{
		Order:         *order,
		Boundary:      boundary,
		Eps:           fixPrecision(*eps),
		Larger:        *larger,
		Fill:          *fill,
		MaxGoroutines: *jobs,
	}

	start := time.Now()
	out, err := transform.Warp(im, hom, geom, opts)
	if err != nil {
		log.Fatalf("interpolation failed: %v", err)
	}
	log.Infof("interpolation: %d ms", time.Since(start).Milliseconds())

	if err := imgio.Save(out, flag.Arg(2)); err != nil {
		log.Fatalf("writing output: %v", err)
	}
}

// fixPrecision maps user-friendly precision values: eps >= 1 means 10^-eps.
func fixPrecision(eps float64) float64 {
	if eps >= 1 {
		return math.Pow(10, -eps)
	}
	return eps
}
