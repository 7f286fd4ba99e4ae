package ilbm

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/bodgit/retrogfx"
	"github.com/bodgit/retrogfx/planar"
)

var errNoImage = errors.New("ilbm: asset has no image")

// depth returns the number of planes needed to index n colors.
func depth(n int) int {
	planes := 1
	for 1<<uint(planes) < n {
		planes++
	}
	return planes
}

func writeChunk(w *bytes.Buffer, id string, data []byte) {
	w.WriteString(id)
	binary.Write(w, binary.BigEndian, uint32(len(data)))
	w.Write(data)
	if len(data)&1 == 1 {
		w.WriteByte(0x00)
	}
}

func (handler) Generate(asset *retrogfx.Asset) ([]byte, error) {
	if asset == nil || asset.Image == nil {
		return nil, errNoImage
	}

	m := asset.Image
	width, height := m.Rect.Dx(), m.Rect.Dy()
	planes := depth(len(m.Palette))
	rb := rowBytes(width)

	bmhd := make([]byte, headerSize)
	binary.BigEndian.PutUint16(bmhd[0:2], uint16(width))
	binary.BigEndian.PutUint16(bmhd[2:4], uint16(height))
	bmhd[8] = byte(planes)
	bmhd[9] = mskNone
	bmhd[10] = cmpNone
	bmhd[14] = 10 // x aspect
	bmhd[15] = 11 // y aspect
	binary.BigEndian.PutUint16(bmhd[16:18], uint16(width))
	binary.BigEndian.PutUint16(bmhd[18:20], uint16(height))

	cmap := make([]byte, 0, len(m.Palette)*3)
	for _, c := range m.Palette {
		r, g, b, _ := c.RGBA()
		cmap = append(cmap, byte(r>>8), byte(g>>8), byte(b>>8))
	}

	// Pad each row out to the stored width before packing
	padded := make([]byte, rb*8*height)
	for y := 0; y < height; y++ {
		off := m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y+y)
		copy(padded[y*rb*8:], m.Pix[off:off+width])
	}

	body, err := planar.ToPlanar(padded, planes, rb*8, true)
	if err != nil {
		return nil, err
	}

	inner := new(bytes.Buffer)
	inner.WriteString(ilbmMagic)
	writeChunk(inner, chunkBMHD, bmhd)
	writeChunk(inner, chunkCMAP, cmap)
	writeChunk(inner, chunkBODY, body)

	out := new(bytes.Buffer)
	out.WriteString(formMagic)
	binary.Write(out, binary.BigEndian, uint32(inner.Len()))
	out.Write(inner.Bytes())

	return out.Bytes(), nil
}
