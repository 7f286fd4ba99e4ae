/*
Package vga implements handlers for raw VGA mode 13h graphics data.

Two formats are covered: the 768 byte 6-bit RGB palette dumped straight from
the DAC registers, and the raw 64000 byte linear framebuffer of a 320 by 200
256 color screen. Neither carries any header, so identification is by size
and, for palettes, by the 6-bit range of every component. A raw screen is
normally accompanied by a palette file alongside it.
*/
package vga

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/bodgit/retrogfx"
)

const (
	// Width and Height are the dimensions of a mode 13h screen.
	Width  = 320
	Height = 200

	screenSize  = Width * Height
	paletteSize = 256 * 3

	// SuppPalette keys the companion palette file in a supps map.
	SuppPalette = "pal"
)

var (
	errPaletteSize  = errors.New("vga: palette is not 768 bytes")
	errPaletteRange = errors.New("vga: palette component out of 6-bit range")
	errNoPalette    = errors.New("vga: asset has no palette")
	errNoImage      = errors.New("vga: asset has no image")
	errScreenSize   = errors.New("vga: image is not 320x200")
)

var paletteDescriptor = &retrogfx.Descriptor{
	ID:    "vga-pal",
	Title: "VGA 6-bit palette",
	Games: []string{"Dangerous Dave", "Hugo's House of Horrors"},
	Glob:  []string{"*.pal"},
}

var fullscreenDescriptor = &retrogfx.Descriptor{
	ID:    "vga-raw",
	Title: "Raw VGA fullscreen image",
	Games: []string{"Dangerous Dave", "Halloween Harry"},
	Glob:  []string{"*.raw", "*.dat"},
	Limits: retrogfx.Limits{
		MaxFilenameLen: 12, // DOS 8.3
	},
}

type paletteHandler struct {
	retrogfx.UnimplementedHandler
}

// PaletteHandler decodes and encodes raw VGA palettes.
var PaletteHandler retrogfx.Handler = paletteHandler{}

func (paletteHandler) Metadata() *retrogfx.Descriptor { return paletteDescriptor }

func (paletteHandler) Identify(content []byte) retrogfx.Confidence {
	if len(content) != paletteSize {
		return retrogfx.NoMatch
	}
	for _, b := range content {
		if b > 0x3f {
			return retrogfx.NoMatch
		}
	}
	// Any 768 bytes of 6-bit values qualify, so never more than possible
	return retrogfx.PossibleMatch
}

func (paletteHandler) Parse(content []byte, _ map[string][]byte) (*retrogfx.Asset, error) {
	p, err := parsePalette(content)
	if err != nil {
		return nil, err
	}
	return &retrogfx.Asset{Palette: p}, nil
}

func (paletteHandler) Generate(asset *retrogfx.Asset) ([]byte, error) {
	if asset == nil || asset.Palette == nil {
		return nil, errNoPalette
	}

	out := make([]byte, paletteSize)
	for i, c := range asset.Palette {
		if i == 256 {
			break
		}
		r, g, b, _ := c.RGBA()
		out[i*3+0] = byte(r >> 10)
		out[i*3+1] = byte(g >> 10)
		out[i*3+2] = byte(b >> 10)
	}
	return out, nil
}

func (paletteHandler) CheckLimits(c retrogfx.Collection) []string {
	return retrogfx.CheckLimits(c, paletteDescriptor.Limits)
}

func parsePalette(content []byte) (color.Palette, error) {
	if len(content) != paletteSize {
		return nil, errPaletteSize
	}

	p := make(color.Palette, 256)
	for i := range p {
		r, g, b := content[i*3], content[i*3+1], content[i*3+2]
		if r > 0x3f || g > 0x3f || b > 0x3f {
			return nil, errPaletteRange
		}
		// Scale 6-bit DAC values to 8 bits
		p[i] = color.RGBA{r<<2 | r>>4, g<<2 | g>>4, b<<2 | b>>4, 0xff}
	}
	return p, nil
}

type fullscreenHandler struct {
	retrogfx.UnimplementedHandler
}

// FullscreenHandler decodes and encodes raw mode 13h framebuffers.
var FullscreenHandler retrogfx.Handler = fullscreenHandler{}

func (fullscreenHandler) Metadata() *retrogfx.Descriptor { return fullscreenDescriptor }

func (fullscreenHandler) Identify(content []byte) retrogfx.Confidence {
	if len(content) == screenSize {
		return retrogfx.PossibleMatch
	}
	return retrogfx.NoMatch
}

// Supps declares the companion palette file: the base name with its
// extension replaced by a lowercase ".pal". The caller's base name keeps its
// case.
func (fullscreenHandler) Supps(name string, _ []byte) map[string]string {
	base := name
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return map[string]string{
		SuppPalette: base + ".pal",
	}
}

func (fullscreenHandler) Parse(content []byte, supps map[string][]byte) (*retrogfx.Asset, error) {
	if len(content) != screenSize {
		return nil, errScreenSize
	}

	var palette color.Palette
	if pal, ok := supps[SuppPalette]; ok {
		p, err := parsePalette(pal)
		if err != nil {
			return nil, err
		}
		palette = p
	} else {
		palette = make(color.Palette, 256)
		for i := range palette {
			palette[i] = color.Gray{uint8(i)}
		}
	}

	m := image.NewPaletted(image.Rect(0, 0, Width, Height), palette)
	copy(m.Pix, content)

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

	out := make([]byte, screenSize)
	for y := 0; y < Height; y++ {
		off := m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y+y)
		copy(out[y*Width:], m.Pix[off:off+Width])
	}
	return out, nil
}

func (fullscreenHandler) CheckLimits(c retrogfx.Collection) []string {
	return retrogfx.CheckLimits(c, fullscreenDescriptor.Limits)
}
