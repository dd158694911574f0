// caption.go — caption text rendering with x/image/font.
// Falls back to the embedded Go Regular font when no custom font is given.
package generator

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// loadFont parses the font at path, or the embedded Go font when path is empty
// or unreadable.
func loadFont(path string) (*opentype.Font, error) {
	data := goregular.TTF
	if path != "" {
		custom, err := os.ReadFile(path)
		if err != nil {
			log.Warningf("could not load font %q, using default: %v", path, err)
		} else {
			data = custom
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// drawCaption writes text centred near the bottom of img, shrinking the font
// until the line fits the width. The text colour contrasts with the pixel
// under the caption baseline.
func drawCaption(img *image.NRGBA, text, fontPath string) error {
	f, err := loadFont(fontPath)
	if err != nil {
		return err
	}

	b := img.Bounds()
	size := max(float64(b.Dy())/10, 6)
	var face font.Face
	for {
		face, err = opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return fmt.Errorf("create font face: %w", err)
		}
		if font.MeasureString(face, text).Ceil() <= b.Dx()*9/10 || size*0.8 < 6 {
			break
		}
		face.Close()
		size *= 0.8
	}
	defer face.Close()

	width := font.MeasureString(face, text).Ceil()
	x := b.Min.X + (b.Dx()-width)/2
	y := b.Max.Y - b.Dy()/12

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(contrast(img.NRGBAAt(b.Min.X+b.Dx()/2, y))),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
	return nil
}

// contrast picks black or white against c by perceived luminance.
func contrast(c color.NRGBA) color.NRGBA {
	lum := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if lum > 128*1000 {
		return color.NRGBA{0, 0, 0, 255}
	}
	return color.NRGBA{255, 255, 255, 255}
}
