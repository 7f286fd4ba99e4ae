/*
Package ega implements handlers for raw EGA planar graphics data.

Two formats are covered: a full 320 by 200 16 color screen stored as four
row-interleaved bit-planes (32000 bytes, each pixel row holding its four
plane rows consecutively), and tilesets of 8 by 8 16 color tiles stored
byte-interleaved (the four planes alternating every byte, 32 bytes per
tile). Neither carries a header so identification is by size alone and the
standard EGA palette is assumed.
*/
package ega

import (
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/retrogfx"
	"github.com/bodgit/retrogfx/planar"
)

const (
	// Width and Height are the dimensions of a fullscreen image.
	Width  = 320
	Height = 200

	planes     = 4
	screenSize = Width * Height * planes / 8

	// TileWidth and TileHeight are the dimensions of a single tile.
	TileWidth  = 8
	TileHeight = 8

	tileSize = TileWidth * TileHeight * planes / 8
)

var (
	errNoImage    = errors.New("ega: asset has no image")
	errScreenSize = errors.New("ega: image is not 320x200")
	errTileSize   = errors.New("ega: image is not an 8 pixel wide tile strip")
	errBadLength  = errors.New("ega: data is not a whole number of tiles")
)

// DefaultPalette is the standard 16 color EGA palette.
var DefaultPalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0xaa, 0xff},
	color.RGBA{0x00, 0xaa, 0x00, 0xff},
	color.RGBA{0x00, 0xaa, 0xaa, 0xff},
	color.RGBA{0xaa, 0x00, 0x00, 0xff},
	color.RGBA{0xaa, 0x00, 0xaa, 0xff},
	color.RGBA{0xaa, 0x55, 0x00, 0xff},
	color.RGBA{0xaa, 0xaa, 0xaa, 0xff},
	color.RGBA{0x55, 0x55, 0x55, 0xff},
	color.RGBA{0x55, 0x55, 0xff, 0xff},
	color.RGBA{0x55, 0xff, 0x55, 0xff},
	color.RGBA{0x55, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0x55, 0x55, 0xff},
	color.RGBA{0xff, 0x55, 0xff, 0xff},
	color.RGBA{0xff, 0xff, 0x55, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

var fullscreenDescriptor = &retrogfx.Descriptor{
	ID:    "ega-raw",
	Title: "Raw EGA fullscreen image",
	Games: []string{"Captain Comic", "Commander Keen"},
	Glob:  []string{"*.ega", "*.scn"},
	Limits: retrogfx.Limits{
		MaxFilenameLen: 12, // DOS 8.3
	},
}

var tilesetDescriptor = &retrogfx.Descriptor{
	ID:    "ega-tiles",
	Title: "EGA byte-planar tileset",
	Games: []string{"Commander Keen", "Duke Nukem"},
	Glob:  []string{"*.tls", "*.gfx"},
	Limits: retrogfx.Limits{
		MaxFilenameLen: 12, // DOS 8.3
		MaxFileCount:   256,
	},
}

type fullscreenHandler struct {
	retrogfx.UnimplementedHandler
}

// FullscreenHandler decodes and encodes raw EGA fullscreen images.
var FullscreenHandler retrogfx.Handler = fullscreenHandler{}

func (fullscreenHandler) Metadata() *retrogfx.Descriptor { return fullscreenDescriptor }

func (fullscreenHandler) Identify(content []byte) retrogfx.Confidence {
	if len(content) == screenSize {
		return retrogfx.PossibleMatch
	}
	return retrogfx.NoMatch
}

func (fullscreenHandler) Parse(content []byte, _ map[string][]byte) (*retrogfx.Asset, error) {
	if len(content) != screenSize {
		return nil, errScreenSize
	}

	pix, err := planar.FromPlanar(content, planes, Width, true)
	if err != nil {
		return nil, err
	}

	m := image.NewPaletted(image.Rect(0, 0, Width, Height), DefaultPalette)
	copy(m.Pix, pix)

	return &retrogfx.Asset{Image: m}, nil
}

func (fullscreenHandler) Generate(asset *retrogfx.Asset) ([]byte, error) {
	if asset == nil || asset.Image == nil {
		return nil, errNoImage
	}

	m := asset.Image
	if m.Rect.Dx() != Width || m.Rect.Dy() != Height {
		return nil, errScreenSize
	}

	pix := make([]byte, Width*Height)
	for y := 0; y < Height; y++ {
		off := m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y+y)
		copy(pix[y*Width:], m.Pix[off:off+Width])
	}

	return planar.ToPlanar(pix, planes, Width, true)
}

func (fullscreenHandler) CheckLimits(c retrogfx.Collection) []string {
	return retrogfx.CheckLimits(c, fullscreenDescriptor.Limits)
}

type tilesetHandler struct {
	retrogfx.UnimplementedHandler
}

// TilesetHandler decodes and encodes byte-planar tilesets. Tiles decode to a
// vertical strip one tile wide.
var TilesetHandler retrogfx.Handler = tilesetHandler{}

func (tilesetHandler) Metadata() *retrogfx.Descriptor { return tilesetDescriptor }

func (tilesetHandler) Identify(content []byte) retrogfx.Confidence {
	// The weakest possible check; this handler belongs at the end of the
	// registry.
	if len(content) > 0 && len(content)%tileSize == 0 {
		return retrogfx.PossibleMatch
	}
	return retrogfx.NoMatch
}

func (tilesetHandler) Parse(content []byte, _ map[string][]byte) (*retrogfx.Asset, error) {
	if len(content) == 0 || len(content)%tileSize != 0 {
		return nil, errBadLength
	}

	pix, err := planar.FromPlanar(content, planes, TileWidth, true)
	if err != nil {
		return nil, err
	}

	tiles := len(content) / tileSize
	m := image.NewPaletted(image.Rect(0, 0, TileWidth, TileHeight*tiles), DefaultPalette)
	copy(m.Pix, pix)

	return &retrogfx.Asset{Image: m}, nil
}

func (tilesetHandler) Generate(asset *retrogfx.Asset) ([]byte, error) {
	if asset == nil || asset.Image == nil {
		return nil, errNoImage
	}

	m := asset.Image
	if m.Rect.Dx() != TileWidth || m.Rect.Dy()%TileHeight != 0 {
		return nil, errTileSize
	}

	pix := make([]byte, m.Rect.Dx()*m.Rect.Dy())
	for y := 0; y < m.Rect.Dy(); y++ {
		off := m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y+y)
		copy(pix[y*TileWidth:], m.Pix[off:off+TileWidth])
	}

	return planar.ToPlanar(pix, planes, TileWidth, true)
}

func (tilesetHandler) CheckLimits(c retrogfx.Collection) []string {
	return retrogfx.CheckLimits(c, tilesetDescriptor.Limits)
}
