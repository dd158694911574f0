// color.go — colour parsing and solid/noise fills.
package generator

import (
	"crypto/rand"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/mr152here/stegegg/pkg/steg"
)

// ParseColor parses "#rgb", "#rrggbb", "random" or "" (treated as random).
// The result is always opaque.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" || s == "random" {
		var buf [3]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return color.NRGBA{}, fmt.Errorf("random color: %w", err)
		}
		return color.NRGBA{buf[0], buf[1], buf[2], 255}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// NewSolidImage creates a uniform image using draw.Draw.
func NewSolidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// NewNoiseImage fills an opaque image with bytes from the xoshiro256++
// stream seeded by seed, so the same seed always yields the same cover.
func NewNoiseImage(w, h int, seed []byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	st := steg.Seed(seed)

	var word uint64
	for i := 0; i < len(img.Pix); i += 4 {
		word = st.Next()
		img.Pix[i] = uint8(word >> 56)
		img.Pix[i+1] = uint8(word >> 48)
		img.Pix[i+2] = uint8(word >> 40)
		img.Pix[i+3] = 255
	}
	return img
}
