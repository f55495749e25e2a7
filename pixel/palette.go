package pixel

// Palette is a two-entry colour lookup indexed by a single bit:
// entry 0 is the background, entry 1 the foreground. Each entry is the
// wire encoding of a Color.
type Palette [2][2]byte

// BuildPalette returns the palette {bg, fg}.
func BuildPalette(fg, bg Color) Palette {
	return Palette{bg.Bytes(), fg.Bytes()}
}

// Background returns entry 0 as a Color.
func (p Palette) Background() Color {
	return FromBytes(p[0][0], p[0][1])
}

// Foreground returns entry 1 as a Color.
func (p Palette) Foreground() Color {
	return FromBytes(p[1][0], p[1][1])
}

// Swapped returns the palette with foreground and background exchanged.
func (p Palette) Swapped() Palette {
	return Palette{p[1], p[0]}
}

// Lookup returns the Color for bit value v (0 or 1).
func (p Palette) Lookup(v byte) Color {
	e := p[v&1]
	return FromBytes(e[0], e[1])
}

// FlattenBits expands a 1-bpp MSB-first bitmap into truecolour pixels,
// two bytes per source bit. The result is 16 times the size of bits.
func FlattenBits(bits []byte, p Palette) []byte {
	dst := make([]byte, len(bits)*16)
	FlattenBitsInto(dst, bits, p)
	return dst
}

// FlattenBitsInto is FlattenBits writing into dst, which must hold at least
// 16*len(bits) bytes. It returns the number of bytes written.
func FlattenBitsInto(dst, bits []byte, p Palette) int {
	n := 0
	for _, b := range bits {
		for shift := 7; shift >= 0; shift-- {
			e := p[(b>>uint(shift))&1]
			dst[n] = e[0]
			dst[n+1] = e[1]
			n += 2
		}
	}
	return n
}

// InvertBits complements every byte of bits in place and returns it.
// Applying it twice restores the original bitmap.
func InvertBits(bits []byte) []byte {
	for i := range bits {
		bits[i] = ^bits[i]
	}
	return bits
}
