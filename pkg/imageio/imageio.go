// Package imageio reads cover images into steg grids and writes stego images
// back out as PNG or BMP. Lossy containers are deliberately absent.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/op/go-logging"
	"golang.org/x/image/bmp"
)

var log = logging.MustGetLogger("stegegg/imageio")

// Decode reads a PNG or BMP image. The detected format name is returned along
// with the normalised canvas.
func Decode(r io.Reader) (*Canvas, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	c := NewCanvas(img)
	log.Debugf("decoded %s image %dx%d (%T)", format, c.Width(), c.Height(), img)
	return c, format, nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte) (*Canvas, string, error) {
	return Decode(bytes.NewReader(data))
}

// Load opens and decodes the image at path.
func Load(path string) (*Canvas, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	c, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return c, format, nil
}

// Encode writes img to w in format f. BMP output keeps the RGB channels
// exactly but does not round-trip alpha.
func Encode(w io.Writer, img image.Image, f Format) error {
	// Encoders must see the concrete *image.NRGBA.
	if c, ok := img.(*Canvas); ok {
		img = c.NRGBA
	}

	switch f {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case BMP:
		// Decoders read BMP pixels back as fully opaque.
		if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
			log.Warningf("BMP output flattens alpha to opaque; use PNG to keep transparency")
		}
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encode BMP: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: use png or bmp", f)
	}
	return nil
}

// Save encodes img to a file at path.
func Save(path string, img image.Image, f Format) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Debugf("wrote %s image to %s", f, path)
	return nil
}
