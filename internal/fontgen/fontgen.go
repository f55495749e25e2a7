// Package fontgen rasterizes outline or bitmap faces into BMF fonts.
package fontgen

import (
	"fmt"
	"image"
	"io"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/internal/bitmap"
	"github.com/gogpu/tinydisplay/internal/logging"
)

// DefaultThreshold is the mask alpha at or above which a pixel is set.
const DefaultThreshold = 0x80

// Options controls glyph rasterization.
type Options struct {
	// Size is the glyph cell width and height in pixels.
	Size int

	// Offset moves the glyph inside its cell. With a zero offset the
	// ascent of the face touches the top of the cell.
	Offset image.Point

	// Threshold is the mask alpha that sets a pixel. Zero means
	// DefaultThreshold.
	Threshold uint8

	// Has reports whether the source font covers r. Faces that substitute
	// a replacement glyph for missing code points need it; nil trusts the
	// face.
	Has func(r rune) bool
}

func (o Options) threshold() uint8 {
	if o.Threshold == 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Glyph draws r with face into a Size x Size 1-bpp bitmap. It reports
// false when face has no glyph for r.
func Glyph(face font.Face, r rune, opts Options) ([]byte, bool) {
	if opts.Has != nil && !opts.Has(r) {
		return nil, false
	}
	if _, ok := face.GlyphAdvance(r); !ok {
		return nil, false
	}
	size := opts.Size
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(opts.Offset.X, opts.Offset.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(string(r))

	bits := make([]byte, bitmap.Len(size))
	stride := bitmap.Stride(size)
	th := opts.threshold()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if mask.Pix[y*mask.Stride+x] >= th {
				bitmap.Set(bits, stride, x, y)
			}
		}
	}
	return bits, true
}

// Runes returns the distinct code points of s in ascending order, without
// control characters.
func Runes(s string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s {
		if r < 0x20 || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Stats summarises a Build.
type Stats struct {
	Glyphs  int    // glyphs written
	Skipped []rune // code points the face lacks
	Bytes   int64  // size of the font file
}

// Build rasterizes runes with face and writes a BMF font to w. Code points
// the face has no glyph for are skipped and reported.
func Build(w io.Writer, face font.Face, runes []rune, opts Options) (Stats, error) {
	if opts.Size <= 0 {
		return Stats{}, fmt.Errorf("fontgen: invalid size %d", opts.Size)
	}
	enc := bmf.NewEncoder(opts.Size)
	var st Stats
	for _, r := range runes {
		bits, ok := Glyph(face, r, opts)
		if !ok {
			st.Skipped = append(st.Skipped, r)
			continue
		}
		if err := enc.Add(r, bits); err != nil {
			return st, err
		}
	}
	st.Glyphs = enc.Len()
	n, err := enc.WriteTo(w)
	st.Bytes = n
	if err != nil {
		return st, err
	}
	logging.L().Debug("fontgen: font built",
		"size", opts.Size,
		"glyphs", st.Glyphs,
		"skipped", len(st.Skipped),
		"bytes", n)
	return st, nil
}
