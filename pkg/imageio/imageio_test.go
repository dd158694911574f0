package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr152here/stegegg/pkg/steg"
)

// testImage builds a w×h image with varied channel values.
func testImage(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 13), uint8(x ^ y), alpha})
		}
	}
	return img
}

func TestRoundTripThroughContainers(t *testing.T) {
	payload := []byte("Hello world!")
	key := []byte("container")

	tests := []struct {
		format Format
		alpha  uint8
	}{
		{PNG, 255},
		{PNG, 128},
		{BMP, 255},
		{BMP, 128},
		{BMP, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/alpha%d", tt.format, tt.alpha), func(t *testing.T) {
			c := NewCanvas(testImage(40, 30, tt.alpha))
			require.NoError(t, steg.Hide(key, payload, c))

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, c, tt.format))

			decoded, format, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, string(tt.format), format)
			if tt.format == BMP {
				for i := 0; i < len(c.Pix); i += 4 {
					require.Equal(t, c.Pix[i:i+3], decoded.Pix[i:i+3])
					require.Equal(t, uint8(0xff), decoded.Pix[i+3])
				}
			} else {
				assert.Equal(t, c.Pix, decoded.Pix)
			}

			got, err := steg.Reveal(key, decoded)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestNewCanvasNormalisesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 9, 8))
	src.Set(5, 5, color.RGBA{1, 2, 3, 255})
	src.Set(8, 7, color.RGBA{4, 5, 6, 255})

	c := NewCanvas(src)
	assert.Equal(t, 4, c.Width())
	assert.Equal(t, 3, c.Height())
	assert.Equal(t, uint8(1), c.Channel(0, 0, 0))
	assert.Equal(t, uint8(3), c.Channel(0, 0, 2))
	assert.Equal(t, uint8(5), c.Channel(3, 2, 1))
}

func TestNewCanvasSharesNRGBA(t *testing.T) {
	src := testImage(3, 3, 255)
	c := NewCanvas(src)

	c.SetChannel(1, 1, 2, 0x42)
	assert.Equal(t, uint8(0x42), src.NRGBAAt(1, 1).B)
	assert.Equal(t, uint8(255), src.NRGBAAt(1, 1).A)
}

func TestNewCanvasFromPaletted(t *testing.T) {
	pal := color.Palette{color.Black, color.RGBA{200, 100, 50, 255}}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	src.SetColorIndex(1, 0, 1)

	c := NewCanvas(src)
	assert.Equal(t, uint8(0), c.Channel(0, 0, 0))
	assert.Equal(t, uint8(200), c.Channel(1, 0, 0))
	assert.Equal(t, uint8(100), c.Channel(1, 0, 1))
	assert.Equal(t, uint8(50), c.Channel(1, 0, 2))
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	src := NewCanvas(testImage(8, 8, 255))

	for _, f := range []Format{PNG, BMP} {
		path := filepath.Join(dir, "out"+f.Ext())
		require.NoError(t, Save(path, src, f))

		c, format, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, string(f), format)
		assert.Equal(t, src.Pix, c.Pix)
	}

	_, _, err := Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := DecodeBytes([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": PNG, ".PNG": PNG, "bmp": BMP, ".bmp": BMP} {
		f, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f)
	}

	_, err := ParseFormat("jpg")
	assert.Error(t, err)

	f, err := FormatFromPath("/tmp/cover.BMP")
	require.NoError(t, err)
	assert.Equal(t, BMP, f)
	assert.Equal(t, "image/bmp", f.MIME())
	assert.Equal(t, "image/png", PNG.MIME())
}
