/*
Package planar converts between packed bit-plane pixel data and linear
one-byte-per-pixel data.

Planar formats store bits of the same significance across many pixels
together: a run of planeWidth pixels is split into planes strips, where strip
p holds bit p of every pixel in the run. With planeWidth of 8 the planes
alternate every byte (byte-interleaved, as used by EGA tile data); with
planeWidth equal to the image width whole rows of each plane follow each
other (row-interleaved, as used by IFF ILBM).

The transforms are bit-exact: they model real on-disk layouts and any two
implementations must agree byte for byte.
*/
package planar

import "errors"

var (
	errPlanes     = errors.New("planar: plane count must be at least one")
	errPlaneWidth = errors.New("planar: plane width must be positive")
)

func check(planes, planeWidth int) error {
	if planes < 1 {
		return errPlanes
	}
	if planeWidth < 1 {
		return errPlaneWidth
	}
	return nil
}

// FromPlanar unpacks planar content into one byte per pixel, where each
// output byte holds the full palette index assembled from one bit per plane;
// plane p contributes bit p. planes is the bit depth, planeWidth the number
// of pixels before the data switches to the next plane and msbFirst selects
// whether bit 7 or bit 0 of a byte is the leftmost pixel.
//
// The output holds len(content)*8/planes pixels. Content whose length is not
// a multiple of the natural block size of the geometry yields a silently
// truncated result; such input is best avoided.
func FromPlanar(content []byte, planes, planeWidth int, msbFirst bool) ([]byte, error) {
	if err := check(planes, planeWidth); err != nil {
		return nil, err
	}

	widthBytes := (planeWidth + 7) >> 3
	out := make([]byte, len(content)*8/planes)

	outpos := 0
	plane := 0
	for stride := 0; stride < len(content); stride += widthBytes {
		for b := 0; b < planeWidth; b++ {
			i := stride + b>>3
			if i >= len(content) || outpos+b >= len(out) {
				break
			}

			bit := uint(b & 7)
			if msbFirst {
				bit = 7 - bit
			}

			out[outpos+b] |= content[i] >> bit & 1 << uint(plane)
		}

		// All planes of a run accumulate into the same output window
		// before it advances.
		if plane++; plane == planes {
			plane = 0
			outpos += planeWidth
		}
	}

	return out, nil
}

// ToPlanar packs linear one-byte-per-pixel content into the planar layout
// described by planes, planeWidth and msbFirst. It is the exact inverse of
// FromPlanar for the same parameters.
//
// The output is len(content)*planes/8 bytes.
func ToPlanar(content []byte, planes, planeWidth int, msbFirst bool) ([]byte, error) {
	if err := check(planes, planeWidth); err != nil {
		return nil, err
	}

	widthBytes := (planeWidth + 7) >> 3
	out := make([]byte, len(content)*planes/8)

	outpos := 0
	for i, pixel := range content {
		pixelByte := i >> 3 % widthBytes
		pixelBit := uint(i & 7)
		if msbFirst {
			pixelBit = 7 - pixelBit
		}

		for b := 0; b < planes; b++ {
			o := outpos + pixelByte + b*widthBytes
			if o >= len(out) {
				break
			}
			out[o] |= pixel >> uint(b) & 1 << pixelBit
		}

		if i%planeWidth == planeWidth-1 {
			outpos += planes * widthBytes
		}
	}

	return out, nil
}
