package bmf

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/tinydisplay/internal/bitmap"
	"github.com/gogpu/tinydisplay/internal/logging"
)

const (
	// Version is the only supported format version.
	Version = 3

	// HeaderSize is the size of the fixed header and the offset of the
	// code table.
	HeaderSize = 0x10

	magic = "BM"
)

// placeholder is the 16x16 glyph drawn for code points missing from a
// font: a filled box with a question mark cut out.
var placeholder = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xf0, 0x0f, 0xcf, 0xf3, 0xcf, 0xf3, 0xff, 0xf3,
	0xff, 0xcf, 0xff, 0x3f, 0xff, 0x3f, 0xff, 0xff,
	0xff, 0x3f, 0xff, 0x3f, 0xff, 0xff, 0xff, 0xff,
}

const placeholderSize = 16

// Placeholder returns a copy of the missing-glyph bitmap scaled to size.
func Placeholder(size int) []byte {
	if size == placeholderSize {
		b := placeholder
		return b[:]
	}
	return bitmap.Scale(placeholder[:], placeholderSize, size)
}

// Header is the parsed fixed header of a BMF font.
type Header struct {
	Version      int
	MapMode      int
	BitmapOffset int // absolute offset of the bitmap section
	Size         int // glyph width and height in pixels
	GlyphBytes   int // bytes per glyph bitmap
}

// Font is an open BMF font.
type Font struct {
	r      io.ReaderAt
	closer io.Closer
	hdr    Header
	buf    [2]byte
}

// Open opens the BMF font at path. The file stays open until Close.
func Open(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bmf: open: %w", err)
	}
	font, err := Load(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return font, nil
}

// Load parses the header of a BMF font read from r. If r implements
// io.Closer it is closed by Font.Close.
func Load(r io.ReaderAt) (*Font, error) {
	var raw [HeaderSize]byte
	if _, err := r.ReadAt(raw[:], 0); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, &FormatError{Reason: "short header"}
		}
		return nil, fmt.Errorf("bmf: read header: %w", err)
	}
	hdr, err := parseHeader(raw[:])
	if err != nil {
		return nil, err
	}
	f := &Font{r: r, hdr: hdr}
	if c, ok := r.(io.Closer); ok {
		f.closer = c
	}
	logging.L().Debug("bmf: font loaded",
		"size", hdr.Size,
		"glyph_bytes", hdr.GlyphBytes,
		"glyphs", f.Len(),
		"map_mode", hdr.MapMode)
	return f, nil
}

func parseHeader(raw []byte) (Header, error) {
	if string(raw[0:2]) != magic {
		return Header{}, &FormatError{Reason: fmt.Sprintf("bad magic %q", raw[0:2])}
	}
	if raw[2] != Version {
		return Header{}, &VersionError{Version: int(raw[2])}
	}
	hdr := Header{
		Version:      int(raw[2]),
		MapMode:      int(raw[3]),
		BitmapOffset: int(raw[4])<<16 | int(raw[5])<<8 | int(raw[6]),
		Size:         int(raw[7]),
		GlyphBytes:   int(raw[8]),
	}
	switch {
	case hdr.BitmapOffset < HeaderSize || (hdr.BitmapOffset-HeaderSize)%2 != 0:
		return Header{}, &FormatError{Reason: fmt.Sprintf("bitmap offset %#x", hdr.BitmapOffset)}
	case hdr.Size == 0:
		return Header{}, &FormatError{Reason: "zero glyph size"}
	case hdr.GlyphBytes < bitmap.Len(hdr.Size):
		return Header{}, &FormatError{Reason: fmt.Sprintf("glyph bytes %d too small for size %d", hdr.GlyphBytes, hdr.Size)}
	}
	return hdr, nil
}

// Header returns the parsed header.
func (f *Font) Header() Header { return f.hdr }

// Size returns the native glyph size in pixels.
func (f *Font) Size() int { return f.hdr.Size }

// GlyphBytes returns the number of bytes per native glyph.
func (f *Font) GlyphBytes() int { return f.hdr.GlyphBytes }

// Len returns the number of glyphs in the font.
func (f *Font) Len() int { return (f.hdr.BitmapOffset - HeaderSize) / 2 }

// Close releases the underlying source.
func (f *Font) Close() error {
	if f.closer == nil {
		return nil
	}
	c := f.closer
	f.closer = nil
	return c.Close()
}

func (f *Font) codeAt(off int) (rune, error) {
	if _, err := f.r.ReadAt(f.buf[:], int64(off)); err != nil {
		return 0, fmt.Errorf("bmf: read code table: %w", err)
	}
	return rune(binary.BigEndian.Uint16(f.buf[:])), nil
}

// Index returns the glyph index of r. The search works on byte offsets
// into the code table, keeping the midpoint aligned to the 2-byte entry
// stride.
func (f *Font) Index(r rune) (int, bool, error) {
	if r < 0 || r > 0xFFFF {
		return 0, false, nil
	}
	start, end := HeaderSize, f.hdr.BitmapOffset
	for start <= end {
		mid := ((start + end) / 4) * 2
		if mid >= f.hdr.BitmapOffset {
			break
		}
		code, err := f.codeAt(mid)
		if err != nil {
			return 0, false, err
		}
		switch {
		case code == r:
			return (mid - HeaderSize) / 2, true, nil
		case r < code:
			end = mid - 2
		default:
			start = mid + 2
		}
	}
	return 0, false, nil
}

// Lookup returns the native bitmap of r and whether r is in the font.
// Missing code points yield the placeholder glyph.
func (f *Font) Lookup(r rune) (bits []byte, found bool, err error) {
	idx, ok, err := f.Index(r)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		logging.L().Debug("bmf: glyph not found", "rune", r)
		return Placeholder(f.hdr.Size), false, nil
	}
	bits = make([]byte, f.hdr.GlyphBytes)
	off := int64(f.hdr.BitmapOffset + idx*f.hdr.GlyphBytes)
	if _, err := f.r.ReadAt(bits, off); err != nil {
		return nil, false, fmt.Errorf("bmf: read glyph %U: %w", r, err)
	}
	return bits, true, nil
}

// Bitmap returns the native bitmap of r, or the placeholder glyph when r
// is not in the font.
func (f *Font) Bitmap(r rune) ([]byte, error) {
	bits, _, err := f.Lookup(r)
	return bits, err
}

// Runes returns the code table in file order.
func (f *Font) Runes() ([]rune, error) {
	n := f.Len()
	if n == 0 {
		return nil, nil
	}
	raw := make([]byte, n*2)
	if _, err := f.r.ReadAt(raw, HeaderSize); err != nil {
		return nil, fmt.Errorf("bmf: read code table: %w", err)
	}
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = rune(binary.BigEndian.Uint16(raw[i*2:]))
	}
	return runes, nil
}

// Verify checks the invariants lookups rely on but do not validate: the
// code table is strictly ascending and the bitmap section holds a glyph
// for every entry.
func Verify(f *Font) error {
	runes, err := f.Runes()
	if err != nil {
		return err
	}
	for i := 1; i < len(runes); i++ {
		if runes[i] <= runes[i-1] {
			return &FormatError{Reason: fmt.Sprintf("code table not ascending at entry %d (%U after %U)", i, runes[i], runes[i-1])}
		}
	}
	if len(runes) == 0 {
		return nil
	}
	last := make([]byte, f.hdr.GlyphBytes)
	off := int64(f.hdr.BitmapOffset + (len(runes)-1)*f.hdr.GlyphBytes)
	if _, err := f.r.ReadAt(last, off); err != nil {
		return &FormatError{Reason: fmt.Sprintf("bitmap section truncated: %v", err)}
	}
	return nil
}
