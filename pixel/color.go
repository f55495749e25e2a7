// Package pixel defines the colour model shared by fonts, decoders and
// display sinks: 16-bit truecolour values, two-entry palettes and the
// 1-bpp bitmap helpers used to colourise monochrome data.
//
// # Byte order
//
// A Color holds an RGB565 value in sink order: the two bytes of the plain
// RGB565 value are swapped, so that writing a Color little-endian (which is
// how every pixel buffer in this module stores it) puts RGB565 big-endian on
// the wire. Panels fed over SPI and pre-rendered raw streams both expect that
// byte sequence.
//
//	c := pixel.PackColor(255, 0, 0) // red
//	b := c.Bytes()                  // [0xF8, 0x00], RGB565 big-endian
package pixel

import (
	stdcolor "image/color"

	"github.com/gogpu/tinydisplay/internal/color"
)

// Color is a 16-bit truecolour value in sink order.
// On monochrome targets only zero (clear) and non-zero (set) are meaningful.
type Color uint16

// Common colours.
const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// PackColor converts 8-bit RGB channels to a Color.
func PackColor(r, g, b uint8) Color {
	return Color(color.Swap16(color.Pack565(r, g, b)))
}

// FromRGB565 converts a plain RGB565 value (red in the high bits) to a Color.
func FromRGB565(v uint16) Color {
	return Color(color.Swap16(v))
}

// RGB565 returns the plain RGB565 value of c.
func (c Color) RGB565() uint16 {
	return color.Swap16(uint16(c))
}

// Bytes returns the wire encoding of c (little-endian Color,
// big-endian RGB565).
func (c Color) Bytes() [2]byte {
	return [2]byte{byte(c), byte(c >> 8)}
}

// FromBytes decodes a Color from its wire encoding.
func FromBytes(lo, hi byte) Color {
	return Color(lo) | Color(hi)<<8
}

// RGB8 expands c to 8-bit channels.
func (c Color) RGB8() (r, g, b uint8) {
	return color.Unpack565(c.RGB565())
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB8()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Model converts arbitrary colours to Color.
var Model = stdcolor.ModelFunc(func(c stdcolor.Color) stdcolor.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	r, g, b, _ := c.RGBA()
	return PackColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})

// ColorOf converts an arbitrary colour to a Color.
func ColorOf(c stdcolor.Color) Color {
	return Model.Convert(c).(Color)
}
