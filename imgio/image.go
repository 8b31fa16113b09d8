// Package imgio materializes decoded images as planar per-channel float
// buffers, the representation the interpolation core consumes, and writes
// them back out. Channels are stored as contiguous blocks (R...RG...GB...B),
// never interleaved.
package imgio

import (
	"image"
	"image/color"

	"github.com/pmonasse/splinter-go/util"
)

// Image is a planar real-valued multi-channel image. Pix[c][y*Width+x]
// holds the sample of channel c at (x,y), in the 0..255 range for images
// decoded from 8-bit sources.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      [][]float64
}

// NewImage allocates a zeroed planar image.
func NewImage(width, height, channels int) *Image {
	pix := make([][]float64, channels)
	for c := range pix {
		pix[c] = make([]float64, width*height)
	}
	return &Image{Width: width, Height: height, Channels: channels, Pix: pix}
}

// Plane is a 2-D view of one channel.
func (im *Image) Plane(c int) *util.Matrix[float64] {
	return util.NewMatrixFromData(im.Height, im.Width, im.Pix[c])
}

// At returns the sample of channel c at (x,y).
func (im *Image) At(c, x, y int) float64 {
	return im.Pix[c][y*im.Width+x]
}

// Set stores the sample of channel c at (x,y).
func (im *Image) Set(c, x, y int, v float64) {
	im.Pix[c][y*im.Width+x] = v
}

// FromImage converts a decoded image.Image into planar channels: one channel
// for grayscale sources, three for opaque color, four when alpha carries
// information.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if g, ok := src.(*image.Gray); ok {
		im := NewImage(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				im.Pix[0][y*w+x] = float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
		return im
	}

	opaque := true
	if o, ok := src.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}
	channels := 3
	if !opaque {
		channels = 4
	}
	im := NewImage(w, h, channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := y*w + x
			im.Pix[0][i] = float64(c.R)
			im.Pix[1][i] = float64(c.G)
			im.Pix[2][i] = float64(c.B)
			if channels == 4 {
				im.Pix[3][i] = float64(c.A)
			}
		}
	}
	return im
}

// ToImage converts back to an image.Image, clamping and rounding samples to
// 8 bits. One channel maps to Gray, three to opaque NRGBA, four to NRGBA.
func (im *Image) ToImage() image.Image {
	quantize := func(v float64) uint8 {
		return uint8(util.Clamp(v+0.5, 0, 255))
	}
	if im.Channels < 3 {
		g := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
		for i, v := range im.Pix[0] {
			g.Pix[i] = quantize(v)
		}
		return g
	}
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			i := y*im.Width + x
			a := uint8(255)
			if im.Channels >= 4 {
				a = quantize(im.Pix[3][i])
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: quantize(im.Pix[0][i]),
				G: quantize(im.Pix[1][i]),
				B: quantize(im.Pix[2][i]),
				A: a,
			})
		}
	}
	return out
}
