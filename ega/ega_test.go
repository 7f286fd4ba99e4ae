package ega

import (
	"image"
	"testing"

	"github.com/bodgit/retrogfx"
	"github.com/bodgit/retrogfx/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullscreenIdentify(t *testing.T) {
	assert.Equal(t, retrogfx.PossibleMatch, FullscreenHandler.Identify(make([]byte, screenSize)))
	assert.Equal(t, retrogfx.NoMatch, FullscreenHandler.Identify(make([]byte, screenSize+1)))
	assert.Equal(t, retrogfx.NoMatch, FullscreenHandler.Identify(nil))
}

func TestFullscreenRoundTrip(t *testing.T) {
	pix := make([]byte, Width*Height)
	for i := range pix {
		pix[i] = byte(i*5) & 0x0f
	}
	content, err := planar.ToPlanar(pix, planes, Width, true)
	require.NoError(t, err)
	require.Len(t, content, screenSize)

	asset, err := FullscreenHandler.Parse(content, nil)
	require.NoError(t, err)
	require.NotNil(t, asset.Image)

	assert.Equal(t, pix, asset.Image.Pix)
	assert.Equal(t, DefaultPalette, asset.Image.Palette)

	got, err := FullscreenHandler.Generate(asset)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestTilesetIdentify(t *testing.T) {
	assert.Equal(t, retrogfx.PossibleMatch, TilesetHandler.Identify(make([]byte, tileSize)))
	assert.Equal(t, retrogfx.PossibleMatch, TilesetHandler.Identify(make([]byte, 40*tileSize)))
	assert.Equal(t, retrogfx.NoMatch, TilesetHandler.Identify(make([]byte, tileSize+1)))
	assert.Equal(t, retrogfx.NoMatch, TilesetHandler.Identify(nil))
}

func TestTilesetRoundTrip(t *testing.T) {
	// Three tiles of byte-interleaved planes
	content := make([]byte, 3*tileSize)
	for i := range content {
		content[i] = byte(i*11 + 5)
	}

	asset, err := TilesetHandler.Parse(content, nil)
	require.NoError(t, err)
	require.NotNil(t, asset.Image)

	assert.Equal(t, TileWidth, asset.Image.Rect.Dx())
	assert.Equal(t, 3*TileHeight, asset.Image.Rect.Dy())

	got, err := TilesetHandler.Generate(asset)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestTilesetParseBadLength(t *testing.T) {
	_, err := TilesetHandler.Parse(make([]byte, tileSize+1), nil)
	assert.Equal(t, errBadLength, err)

	_, err = TilesetHandler.Parse(nil, nil)
	assert.Equal(t, errBadLength, err)
}

func TestTilesetGenerateWrongSize(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 16, 16), DefaultPalette)
	_, err := TilesetHandler.Generate(&retrogfx.Asset{Image: m})
	assert.Equal(t, errTileSize, err)
}

func TestTilesetCheckLimits(t *testing.T) {
	c := make(retrogfx.Collection, 300)
	for i := range c {
		c[i] = retrogfx.Entry{Name: "tile.tls", NativeSize: tileSize}
	}

	issues := TilesetHandler.CheckLimits(c)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "300")
	assert.Contains(t, issues[0], "256")
}
