package imgio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WritePFM encodes the image as a portable float map: "Pf" for one channel,
// "PF" for three, big-endian float32 samples, scanlines bottom-up. PFM keeps
// the interpolated values lossless where PNG would quantize them.
func WritePFM(im *Image, output io.Writer) error {
	gray := im.Channels == 1
	if !gray && im.Channels != 3 {
		return fmt.Errorf("pfm supports 1 or 3 channels, have %d", im.Channels)
	}
	pf := "PF"
	if gray {
		pf = "Pf"
	}
	w := bufio.NewWriter(output)
	fmt.Fprintf(w, "%s\n%d %d\n1.0\n", pf, im.Width, im.Height)
	var scratch [4]byte
	for y := im.Height - 1; y >= 0; y-- {
		for x := 0; x < im.Width; x++ {
			p := y*im.Width + x
			for c := 0; c < im.Channels; c++ {
				binary.BigEndian.PutUint32(scratch[:], math.Float32bits(float32(im.Pix[c][p])))
				if _, err := w.Write(scratch[:]); err != nil {
					return err
				}
			}
		}
	}
	return w.Flush()
}

// ReadPFM decodes a portable float map. The sign of the scale line selects
// the sample endianness.
func ReadPFM(input io.Reader) (*Image, error) {
	r := bufio.NewReader(input)
	var magic string
	var width, height int
	var scale float64
	if _, err := fmt.Fscan(r, &magic, &width, &height, &scale); err != nil {
		return nil, fmt.Errorf("pfm header: %w", err)
	}
	var channels int
	switch magic {
	case "Pf":
		channels = 1
	case "PF":
		channels = 3
	default:
		return nil, fmt.Errorf("pfm: bad magic %q", magic)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("pfm: bad dimensions %dx%d", width, height)
	}
	// Single whitespace byte separates the header from the raster.
	if _, err := r.ReadByte(); err != nil {
		return nil, err
	}
	order := binary.ByteOrder(binary.BigEndian)
	if scale < 0 {
		order = binary.LittleEndian
	}
	im := NewImage(width, height, channels)
	var scratch [4]byte
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			p := y*width + x
			for c := 0; c < channels; c++ {
				if _, err := io.ReadFull(r, scratch[:]); err != nil {
					return nil, fmt.Errorf("pfm raster: %w", err)
				}
				im.Pix[c][p] = float64(math.Float32frombits(order.Uint32(scratch[:])))
			}
		}
	}
	return im, nil
}
