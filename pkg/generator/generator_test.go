package generator

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr152here/stegegg/pkg/imageio"
	"github.com/mr152here/stegegg/pkg/steg"
)

func TestParseColor(t *testing.T) {
	tests := map[string]color.NRGBA{
		"#ff0000": {255, 0, 0, 255},
		"1a1a2e":  {0x1a, 0x1a, 0x2e, 255},
		"#0f8":    {0, 0xff, 0x88, 255},
	}
	for in, want := range tests {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"#12345", "zzzzzz", "#ff00ff00"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}

	c, err := ParseColor("random")
	require.NoError(t, err)
	assert.Equal(t, uint8(255), c.A)
}

func TestNewSolidImage(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 255}
	img := NewSolidImage(4, 3, c)

	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	assert.Equal(t, c, img.NRGBAAt(3, 2))
}

func TestNewNoiseImage(t *testing.T) {
	a := NewNoiseImage(16, 16, []byte("seed"))
	b := NewNoiseImage(16, 16, []byte("seed"))
	c := NewNoiseImage(16, 16, []byte("other"))

	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)
	assert.True(t, a.Opaque())
}

func TestRenderDefaults(t *testing.T) {
	img, err := Render(Config{Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, DefaultHeight, img.Bounds().Dy())

	_, err = Render(Config{Color: "nope"})
	assert.Error(t, err)
}

func TestRenderCaption(t *testing.T) {
	plain, err := Render(Config{Width: 200, Height: 120, Color: "#000000"})
	require.NoError(t, err)
	captioned, err := Render(Config{Width: 200, Height: 120, Color: "#000000", Caption: "holiday 2024"})
	require.NoError(t, err)

	assert.NotEqual(t, plain.Pix, captioned.Pix)

	// Missing custom font falls back to the embedded one.
	_, err = Render(Config{Width: 50, Height: 20, Color: "#fff", Caption: "a long caption that will not fit", FontPath: "/nonexistent.ttf"})
	assert.NoError(t, err)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Width: 32, Height: 24, Noise: true, Seed: "cover"}

	for _, name := range []string{"cover.png", "cover.bmp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Generate(path, cfg))

		c, _, err := imageio.Load(path)
		require.NoError(t, err)
		assert.Equal(t, NewNoiseImage(32, 24, []byte("cover")).Pix, c.Pix)
	}

	err := Generate(filepath.Join(dir, "cover.avi"), cfg)
	assert.Error(t, err)
}

func TestGeneratedCoverCarriesPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateToWriter(&buf, imageio.PNG, Config{Width: 64, Height: 64, Noise: true}))

	c, _, err := imageio.Decode(&buf)
	require.NoError(t, err)

	payload := []byte("hidden in generated noise")
	require.NoError(t, steg.Hide([]byte("k"), payload, c))
	got, err := steg.Reveal([]byte("k"), c)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
