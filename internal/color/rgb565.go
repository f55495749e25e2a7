// Package color holds the channel arithmetic behind the RGB565 colour model:
// packing, byte order and the one-bit threshold.
package color

// Threshold is the average channel value at or above which a pixel is
// treated as foreground when a colour image is reduced to one bit.
const Threshold = 127

// Pack565 packs 8-bit channels into a plain RGB565 value
// (red in the high bits, blue in the low bits).
func Pack565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)
}

// Unpack565 expands an RGB565 value back to 8-bit channels.
// The low bits are filled by replicating the high bits so that
// 0x1F maps to 0xFF and 0 maps to 0.
func Unpack565(v uint16) (r, g, b uint8) {
	r5 := uint8(v>>11) & 0x1F
	g6 := uint8(v>>5) & 0x3F
	b5 := uint8(v) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Swap16 exchanges the two bytes of v.
func Swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// Invert returns the channel-wise complement of an RGB triplet.
func Invert(r, g, b uint8) (uint8, uint8, uint8) {
	return 255 - r, 255 - g, 255 - b
}

// Luma approximates luminance as the integer mean of the three channels.
func Luma(r, g, b uint8) uint8 {
	return uint8((int(r) + int(g) + int(b)) / 3)
}

// IsLight reports whether the triplet reaches Threshold.
func IsLight(r, g, b uint8) bool {
	return Luma(r, g, b) >= Threshold
}
