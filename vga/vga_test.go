package vga

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/retrogfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaletteContent() []byte {
	content := make([]byte, 256*3)
	for i := range content {
		content[i] = byte(i) & 0x3f
	}
	return content
}

func TestPaletteIdentify(t *testing.T) {
	content := testPaletteContent()
	assert.Equal(t, retrogfx.PossibleMatch, PaletteHandler.Identify(content))

	// An 8-bit component rules the format out entirely
	content[17] = 0x40
	assert.Equal(t, retrogfx.NoMatch, PaletteHandler.Identify(content))

	assert.Equal(t, retrogfx.NoMatch, PaletteHandler.Identify(content[:100]))
	assert.Equal(t, retrogfx.NoMatch, PaletteHandler.Identify(nil))
}

func TestPaletteRoundTrip(t *testing.T) {
	content := testPaletteContent()

	asset, err := PaletteHandler.Parse(content, nil)
	require.NoError(t, err)
	require.Len(t, asset.Palette, 256)

	// 0x3F scales to full intensity
	r, _, _, _ := asset.Palette[255].RGBA()
	assert.Equal(t, uint32(0xffff), r)

	got, err := PaletteHandler.Generate(asset)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestPaletteGenerateNoPalette(t *testing.T) {
	_, err := PaletteHandler.Generate(&retrogfx.Asset{})
	assert.Error(t, err)
}

func TestFullscreenIdentify(t *testing.T) {
	assert.Equal(t, retrogfx.PossibleMatch, FullscreenHandler.Identify(make([]byte, screenSize)))
	assert.Equal(t, retrogfx.NoMatch, FullscreenHandler.Identify(make([]byte, screenSize-1)))
	assert.Equal(t, retrogfx.NoMatch, FullscreenHandler.Identify(nil))
}

func TestFullscreenSupps(t *testing.T) {
	supps := FullscreenHandler.Supps("TITLE.RAW", nil)
	require.NotNil(t, supps)
	// The base name keeps its case, the suffix is lowercase
	assert.Equal(t, "TITLE.pal", supps[SuppPalette])

	supps = FullscreenHandler.Supps("screen", nil)
	assert.Equal(t, "screen.pal", supps[SuppPalette])
}

func TestFullscreenRoundTrip(t *testing.T) {
	content := make([]byte, screenSize)
	for i := range content {
		content[i] = byte(i * 7)
	}

	asset, err := FullscreenHandler.Parse(content, map[string][]byte{
		SuppPalette: testPaletteContent(),
	})
	require.NoError(t, err)
	require.NotNil(t, asset.Image)

	assert.Equal(t, Width, asset.Image.Rect.Dx())
	assert.Equal(t, Height, asset.Image.Rect.Dy())
	assert.Len(t, asset.Image.Palette, 256)

	got, err := FullscreenHandler.Generate(asset)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFullscreenParseWithoutPalette(t *testing.T) {
	asset, err := FullscreenHandler.Parse(make([]byte, screenSize), nil)
	require.NoError(t, err)

	// Grayscale ramp fallback
	assert.Equal(t, color.Gray{0x80}, asset.Image.Palette[0x80])
}

func TestFullscreenGenerateWrongSize(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 16, 16), color.Palette{color.Black})
	_, err := FullscreenHandler.Generate(&retrogfx.Asset{Image: m})
	assert.Error(t, err)
}

func TestFullscreenCheckLimits(t *testing.T) {
	issues := FullscreenHandler.CheckLimits(retrogfx.Collection{
		{Name: "MUCHTOOLONGNAME.RAW", NativeSize: screenSize},
	})
	assert.Len(t, issues, 1)
}
