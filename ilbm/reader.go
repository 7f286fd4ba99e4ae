package ilbm

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/retrogfx"
	"github.com/bodgit/retrogfx/planar"
)

var (
	errNotILBM     = errors.New("ilbm: not an ILBM file")
	errNotEnough   = errors.New("ilbm: not enough data")
	errNoHeader    = errors.New("ilbm: missing BMHD chunk")
	errNoBody      = errors.New("ilbm: missing BODY chunk")
	errCompression = errors.New("ilbm: unsupported compression")
	errMasking     = errors.New("ilbm: unsupported masking")
	errDepth       = errors.New("ilbm: unsupported plane count")
)

type header struct {
	width, height    int
	planes           int
	masking          byte
	compression      byte
	transparentColor uint16
}

func parseHeader(b []byte) (*header, error) {
	if len(b) < headerSize {
		return nil, errNotEnough
	}
	return &header{
		width:            int(binary.BigEndian.Uint16(b[0:2])),
		height:           int(binary.BigEndian.Uint16(b[2:4])),
		planes:           int(b[8]),
		masking:          b[9],
		compression:      b[10],
		transparentColor: binary.BigEndian.Uint16(b[12:14]),
	}, nil
}

func parsePalette(b []byte) color.Palette {
	p := make(color.Palette, 0, len(b)/3)
	for i := 0; i+2 < len(b); i += 3 {
		p = append(p, color.RGBA{b[i], b[i+1], b[i+2], 0xff})
	}
	return p
}

// unpackByteRun1 decompresses ByteRun1 data to exactly size bytes. A control
// byte n of 0..127 copies n+1 literal bytes, -1..-127 repeats the next byte
// 1-n times and -128 is a no-op.
func unpackByteRun1(src []byte, size int) ([]byte, error) {
	dst := make([]byte, 0, size)
	for i := 0; i < len(src) && len(dst) < size; {
		switch n := int(int8(src[i])); {
		case n >= 0:
			if i+n+2 > len(src) {
				return nil, errNotEnough
			}
			dst = append(dst, src[i+1:i+n+2]...)
			i += n + 2
		case n > -128:
			if i+1 >= len(src) {
				return nil, errNotEnough
			}
			for j := 0; j < 1-n; j++ {
				dst = append(dst, src[i+1])
			}
			i += 2
		default:
			i++
		}
	}
	if len(dst) < size {
		return nil, errNotEnough
	}
	return dst[:size], nil
}

func grayRamp(n int) color.Palette {
	p := make(color.Palette, n)
	for i := range p {
		v := uint8(i * 0xff / (n - 1))
		p[i] = color.RGBA{v, v, v, 0xff}
	}
	return p
}

func (handler) Parse(content []byte, _ map[string][]byte) (*retrogfx.Asset, error) {
	if Handler.Identify(content) != retrogfx.DefiniteMatch {
		return nil, errNotILBM
	}

	var (
		hdr     *header
		palette color.Palette
		body    []byte
		err     error
	)

	// Walk the chunks inside the FORM
	for pos := 12; pos+8 <= len(content); {
		id := string(content[pos : pos+4])
		size := int(binary.BigEndian.Uint32(content[pos+4 : pos+8]))
		data := content[pos+8:]
		if size > len(data) {
			return nil, errNotEnough
		}
		data = data[:size]

		switch id {
		case chunkBMHD:
			if hdr, err = parseHeader(data); err != nil {
				return nil, err
			}
		case chunkCMAP:
			palette = parsePalette(data)
		case chunkBODY:
			body = data
		}

		// Chunks are padded to even offsets
		pos += 8 + size + size&1
	}

	switch {
	case hdr == nil:
		return nil, errNoHeader
	case body == nil:
		return nil, errNoBody
	case hdr.planes < 1 || hdr.planes > 8:
		return nil, errDepth
	case hdr.masking == mskHasMask:
		return nil, errMasking
	}

	rb := rowBytes(hdr.width)
	rawSize := rb * hdr.planes * hdr.height

	switch hdr.compression {
	case cmpNone:
		if len(body) < rawSize {
			return nil, errNotEnough
		}
		body = body[:rawSize]
	case cmpByteRun1:
		if body, err = unpackByteRun1(body, rawSize); err != nil {
			return nil, err
		}
	default:
		return nil, errCompression
	}

	// Decode at the padded row width, then crop each row down to the
	// visible width.
	padded, err := planar.FromPlanar(body, hdr.planes, rb*8, true)
	if err != nil {
		return nil, err
	}

	if len(palette) == 0 {
		palette = grayRamp(1 << uint(hdr.planes))
	}
	// Indices can legitimately exceed the CMAP length
	for len(palette) < 1<<uint(hdr.planes) {
		palette = append(palette, color.RGBA{A: 0xff})
	}

	m := image.NewPaletted(image.Rect(0, 0, hdr.width, hdr.height), palette)
	for y := 0; y < hdr.height; y++ {
		copy(m.Pix[y*m.Stride:y*m.Stride+hdr.width], padded[y*rb*8:])
	}

	return &retrogfx.Asset{Image: m}, nil
}
