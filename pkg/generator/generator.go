// Package generator creates cover images for steganography.
//
// All output follows one pipeline: render an *image.NRGBA (solid colour or
// key-seeded noise, optionally captioned), then write it as PNG or BMP.
package generator

import (
	"fmt"
	"image"
	"io"

	"github.com/op/go-logging"

	"github.com/mr152here/stegegg/pkg/imageio"
)

var log = logging.MustGetLogger("stegegg/generator")

const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Config holds parameters for cover generation.
type Config struct {
	Width    int    // Pixel width (default: 640)
	Height   int    // Pixel height (default: 480)
	Color    string // Hex "#rgb"/"#rrggbb" or "random"; ignored when Noise is set
	Noise    bool   // Fill with pseudo-random pixels derived from Seed
	Seed     string // Noise seed; equal seeds give identical covers
	Caption  string // Optional text drawn near the bottom edge
	FontPath string // TTF/OTF for the caption; empty uses the embedded Go font
}

// Generate renders a cover and writes it to output. The format is inferred
// from the file extension (".png" or ".bmp").
func Generate(output string, cfg Config) error {
	f, err := imageio.FormatFromPath(output)
	if err != nil {
		return err
	}
	img, err := Render(cfg)
	if err != nil {
		return err
	}
	return imageio.Save(output, img, f)
}

// GenerateToWriter renders a cover and writes it to w in format f.
func GenerateToWriter(w io.Writer, f imageio.Format, cfg Config) error {
	img, err := Render(cfg)
	if err != nil {
		return err
	}
	return imageio.Encode(w, img, f)
}

// Render builds the cover image described by cfg.
func Render(cfg Config) (*image.NRGBA, error) {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}

	var img *image.NRGBA
	if cfg.Noise {
		img = NewNoiseImage(w, h, []byte(cfg.Seed))
	} else {
		c, err := ParseColor(cfg.Color)
		if err != nil {
			return nil, err
		}
		img = NewSolidImage(w, h, c)
	}

	if cfg.Caption != "" {
		if err := drawCaption(img, cfg.Caption, cfg.FontPath); err != nil {
			return nil, fmt.Errorf("caption: %w", err)
		}
	}

	log.Debugf("rendered %dx%d cover (noise=%v, caption=%q)", w, h, cfg.Noise, cfg.Caption)
	return img, nil
}
