// Package bitmap implements the 1-bpp bitmap primitives behind glyph
// rasterization: bit addressing with byte-padded rows, nearest-neighbour
// scaling in integer arithmetic and palette colourisation.
//
// All bitmaps are square, row-major, most significant bit first, with each
// row padded to a whole number of bytes.
package bitmap

import (
	"image"

	"github.com/gogpu/tinydisplay/pixel"
)

// Stride returns the number of bytes in one row of a size-pixel-wide bitmap.
func Stride(size int) int {
	return (size + 7) >> 3
}

// Len returns the number of bytes of a size x size bitmap.
func Len(size int) int {
	return Stride(size) * size
}

// Bit reports whether pixel (x, y) is set. Pixels outside src read as clear.
func Bit(src []byte, stride, x, y int) bool {
	i := y*stride + x>>3
	if i < 0 || i >= len(src) {
		return false
	}
	return src[i]&(0x80>>uint(x&7)) != 0
}

// Set sets pixel (x, y) in dst.
func Set(dst []byte, stride, x, y int) {
	dst[y*stride+x>>3] |= 0x80 >> uint(x&7)
}

// Scale resamples a native x native bitmap to target x target using
// nearest neighbour: destination pixel (dx, dy) copies source pixel
// (dx*native/target, dy*native/target). When the sizes match src is
// returned unchanged.
func Scale(src []byte, native, target int) []byte {
	if native == target {
		return src
	}
	ss := Stride(native)
	ds := Stride(target)
	dst := make([]byte, ds*target)
	for dy := 0; dy < target; dy++ {
		sy := dy * native / target
		for dx := 0; dx < target; dx++ {
			if Bit(src, ss, dx*native/target, sy) {
				Set(dst, ds, dx, dy)
			}
		}
	}
	return dst
}

// ScaleColored performs the same mapping as Scale but writes the palette
// entry of each source bit, producing target*target RGB565 pixels.
func ScaleColored(src []byte, native, target int, p pixel.Palette) []byte {
	ss := Stride(native)
	dst := make([]byte, target*target*2)
	n := 0
	for dy := 0; dy < target; dy++ {
		sy := dy * native / target
		for dx := 0; dx < target; dx++ {
			var v byte
			if Bit(src, ss, dx*native/target, sy) {
				v = 1
			}
			e := p[v]
			dst[n] = e[0]
			dst[n+1] = e[1]
			n += 2
		}
	}
	return dst
}

// Colorize converts a size x size bitmap to RGB565 without scaling.
// Rows without padding take the FlattenBits fast path.
func Colorize(src []byte, size int, p pixel.Palette) []byte {
	if Stride(size)*8 == size && len(src) >= Len(size) {
		return pixel.FlattenBits(src[:Len(size)], p)
	}
	return ScaleColored(src, size, size, p)
}

// Alpha converts a size x size bitmap to an *image.Alpha mask with set
// pixels fully opaque.
func Alpha(src []byte, size int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, size, size))
	stride := Stride(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if Bit(src, stride, x, y) {
				m.Pix[y*m.Stride+x] = 0xFF
			}
		}
	}
	return m
}
