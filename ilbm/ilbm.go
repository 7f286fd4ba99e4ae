/*
Package ilbm implements a decoder and encoder for the IFF ILBM interleaved
bitmap format used on the Amiga and by DOS ports of Deluxe Paint.

An ILBM file is a FORM container holding at least a BMHD header, usually a
CMAP palette and a BODY chunk of row-interleaved planar pixel data. Rows are
padded to a multiple of 16 pixels and each row stores all of its bit-planes
consecutively, optionally compressed with the ByteRun1 scheme.
*/
package ilbm

import (
	"bytes"

	"github.com/bodgit/retrogfx"
)

const (
	formMagic = "FORM"
	ilbmMagic = "ILBM"

	chunkBMHD = "BMHD"
	chunkCMAP = "CMAP"
	chunkBODY = "BODY"

	headerSize = 20

	cmpNone     = 0
	cmpByteRun1 = 1

	mskNone                = 0
	mskHasMask             = 1
	mskHasTransparentColor = 2
)

var descriptor = &retrogfx.Descriptor{
	ID:    "ilbm",
	Title: "IFF interleaved bitmap",
	Games: []string{"Deluxe Paint", "Monkey Island", "Another World"},
	Glob:  []string{"*.lbm", "*.bbm", "*.iff"},
}

type handler struct {
	retrogfx.UnimplementedHandler
}

// Handler decodes and encodes IFF ILBM images.
var Handler retrogfx.Handler = handler{}

func (handler) Metadata() *retrogfx.Descriptor { return descriptor }

func (handler) Identify(content []byte) retrogfx.Confidence {
	if len(content) >= 12 &&
		bytes.Equal(content[0:4], []byte(formMagic)) &&
		bytes.Equal(content[8:12], []byte(ilbmMagic)) {
		return retrogfx.DefiniteMatch
	}
	return retrogfx.NoMatch
}

func (handler) CheckLimits(c retrogfx.Collection) []string {
	return retrogfx.CheckLimits(c, descriptor.Limits)
}

// rowBytes returns the byte width of one plane row; ILBM rows are padded to
// a multiple of 16 pixels.
func rowBytes(width int) int {
	return (width + 15) / 16 * 2
}
