package bmf

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/gogpu/tinydisplay/internal/bitmap"
)

// Substitute is the code point stored for runes outside the Basic
// Multilingual Plane, which the 2-byte code table cannot represent.
const Substitute = '？'

// Encoder collects glyph bitmaps and writes them as a BMF v3 font.
//
//	enc := bmf.NewEncoder(16)
//	enc.Add('A', bitsA)
//	enc.Add('B', bitsB)
//	_, err := enc.WriteTo(w)
type Encoder struct {
	size    int
	mapMode int
	glyphs  map[rune][]byte
}

// NewEncoder returns an Encoder for glyphs of size x size pixels.
func NewEncoder(size int) *Encoder {
	return &Encoder{size: size, glyphs: make(map[rune][]byte)}
}

// SetMapMode sets the map mode byte written to the header.
func (e *Encoder) SetMapMode(mode int) { e.mapMode = mode }

// Size returns the glyph size.
func (e *Encoder) Size() int { return e.size }

// Len returns the number of distinct code points added so far.
func (e *Encoder) Len() int { return len(e.glyphs) }

// Add stores the bitmap for r. Runes above U+FFFF are stored as
// Substitute. The first bitmap added for a code point wins.
func (e *Encoder) Add(r rune, bits []byte) error {
	if len(bits) != bitmap.Len(e.size) {
		return fmt.Errorf("%w: %U has %d bytes, want %d", ErrGlyphSize, r, len(bits), bitmap.Len(e.size))
	}
	if r > 0xFFFF || r < 0 {
		r = Substitute
	}
	if _, ok := e.glyphs[r]; ok {
		return nil
	}
	e.glyphs[r] = slices.Clone(bits)
	return nil
}

// WriteTo writes the font to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	gb := bitmap.Len(e.size)
	switch {
	case e.size <= 0 || e.size > 255:
		return 0, &FormatError{Reason: fmt.Sprintf("glyph size %d out of range", e.size)}
	case gb > 255:
		return 0, &FormatError{Reason: fmt.Sprintf("glyph size %d needs %d bytes per glyph", e.size, gb)}
	}

	codes := make([]rune, 0, len(e.glyphs))
	for r := range e.glyphs {
		codes = append(codes, r)
	}
	slices.Sort(codes)

	off := HeaderSize + 2*len(codes)
	if off > 0xFFFFFF {
		return 0, &FormatError{Reason: "too many glyphs"}
	}

	bw := bufio.NewWriter(w)
	var hdr [HeaderSize]byte
	copy(hdr[:], magic)
	hdr[2] = Version
	hdr[3] = byte(e.mapMode)
	hdr[4] = byte(off >> 16)
	hdr[5] = byte(off >> 8)
	hdr[6] = byte(off)
	hdr[7] = byte(e.size)
	hdr[8] = byte(gb)
	n, _ := bw.Write(hdr[:])
	total := int64(n)

	for _, r := range codes {
		n, _ = bw.Write([]byte{byte(r >> 8), byte(r)})
		total += int64(n)
	}
	for _, r := range codes {
		n, _ = bw.Write(e.glyphs[r])
		total += int64(n)
	}
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("bmf: write: %w", err)
	}
	return total, nil
}

// Encode writes a font of size x size glyphs to w.
func Encode(w io.Writer, size int, glyphs map[rune][]byte) error {
	enc := NewEncoder(size)
	for r, bits := range glyphs {
		if err := enc.Add(r, bits); err != nil {
			return err
		}
	}
	_, err := enc.WriteTo(w)
	return err
}
