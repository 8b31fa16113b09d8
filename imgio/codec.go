package imgio

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/jpegn"
)

// Load reads a PNG, JPEG or PFM file into planar channels, sniffing the
// format from its magic bytes.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return FromImage(img), nil
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		img, err := jpegn.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return FromImage(img), nil
	case bytes.HasPrefix(data, []byte("Pf")) || bytes.HasPrefix(data, []byte("PF")):
		im, err := ReadPFM(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return im, nil
	}
	return nil, fmt.Errorf("%s: unrecognized image format", path)
}

// Save writes the image to path, choosing the codec from the extension:
// .pfm for float output, anything else is PNG.
func Save(im *Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".pfm") {
		if err := WritePFM(im, f); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return nil
	}
	if err := png.Encode(f, im.ToImage()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
