// canvas.go — 8-bit NRGBA pixel buffer exposed as a steg.Grid.
package imageio

import (
	"image"
	"image/draw"
)

// Canvas is a decoded image normalised to non-premultiplied 8-bit RGBA with
// its origin at (0, 0). Only the R, G and B channels are exposed as hiding
// spots; alpha is carried through untouched.
type Canvas struct {
	*image.NRGBA
}

// NewCanvas converts img into a Canvas. An *image.NRGBA already anchored at
// the origin is used in place; anything else is copied.
func NewCanvas(img image.Image) *Canvas {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return &Canvas{NRGBA: n}
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Canvas{NRGBA: dst}
}

func (c *Canvas) Width() int  { return c.Rect.Dx() }
func (c *Canvas) Height() int { return c.Rect.Dy() }

func (c *Canvas) Channel(x, y, ch int) uint8 {
	return c.Pix[c.PixOffset(x, y)+ch]
}

func (c *Canvas) SetChannel(x, y, ch int, v uint8) {
	c.Pix[c.PixOffset(x, y)+ch] = v
}
