// grid.go — pixel grid abstraction and hiding spot addressing.
package steg

import (
	"fmt"
	"math"
)

// Channels is the number of color channels per pixel that carry data.
const Channels = 3

// Grid is a mutable width×height raster of 3-channel pixels.
// Channel c is 0 (R), 1 (G) or 2 (B).
type Grid interface {
	Width() int
	Height() int
	Channel(x, y, c int) uint8
	SetChannel(x, y, c int, v uint8)
}

// RGB is an in-memory Grid with 3 bytes per pixel, rows top to bottom.
type RGB struct {
	Pix []uint8
	W   int
	H   int
}

// NewRGB allocates a zeroed w×h grid.
func NewRGB(w, h int) *RGB {
	return &RGB{Pix: make([]uint8, w*h*Channels), W: w, H: h}
}

func (g *RGB) Width() int  { return g.W }
func (g *RGB) Height() int { return g.H }

func (g *RGB) Channel(x, y, c int) uint8 {
	return g.Pix[(y*g.W+x)*Channels+c]
}

func (g *RGB) SetChannel(x, y, c int, v uint8) {
	g.Pix[(y*g.W+x)*Channels+c] = v
}

// Spots returns the number of hiding spots in g.
func Spots(g Grid) uint64 {
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return uint64(w) * uint64(h) * Channels
}

// Capacity returns the largest payload in bytes that fits into g.
func Capacity(g Grid) int {
	bytes := Spots(g) / 8
	if bytes <= HeaderSize {
		return 0
	}
	return int(min(bytes-HeaderSize, MaxPayload))
}

// spotCount is Spots narrowed to the 32-bit index space of Permutation.
func spotCount(g Grid) (uint32, error) {
	n := Spots(g)
	if n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrImageTooLarge, n)
	}
	return uint32(n), nil
}

// locate resolves a spot index to its pixel coordinates and channel.
func locate(spot uint32, width int) (x, y, c int) {
	c = int(spot % Channels)
	pixel := int(spot / Channels)
	return pixel % width, pixel / width, c
}
