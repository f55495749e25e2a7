package bmf

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/tinydisplay/internal/bitmap"
)

// FaceOptions configures a Face.
type FaceOptions struct {
	// Size is the rendered glyph size in pixels. Zero uses the font's
	// native size.
	Size int

	// HalfWidth advances ASCII glyphs by half the size.
	HalfWidth bool
}

// Face adapts a Font to golang.org/x/image/font.Face so BMF fonts can be
// drawn with font.Drawer onto any draw.Image. Glyphs sit on the baseline
// with no descent. Missing code points draw the placeholder glyph.
type Face struct {
	f    *Font
	size int
	half bool
}

var _ font.Face = (*Face)(nil)

// NewFace returns a Face for f.
func NewFace(f *Font, opts *FaceOptions) *Face {
	face := &Face{f: f, size: f.Size()}
	if opts != nil {
		if opts.Size > 0 {
			face.size = opts.Size
		}
		face.half = opts.HalfWidth
	}
	return face
}

// Close is a no-op; the Font remains owned by the caller.
func (*Face) Close() error { return nil }

func (face *Face) advance(r rune) fixed.Int26_6 {
	if face.half && r < 128 {
		return fixed.I(face.size / 2)
	}
	return fixed.I(face.size)
}

// Glyph implements font.Face.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	bits, err := face.f.Bitmap(r)
	if err != nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	bits = bitmap.Scale(bits, face.f.Size(), face.size)
	x := dot.X.Floor()
	y := dot.Y.Floor() - face.size
	dr = image.Rect(x, y, x+face.size, y+face.size)
	return dr, bitmap.Alpha(bits, face.size), image.Point{}, face.advance(r), true
}

// GlyphBounds implements font.Face.
func (face *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	bounds = fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: 0, Y: -fixed.I(face.size)},
		Max: fixed.Point26_6{X: fixed.I(face.size), Y: 0},
	}
	return bounds, face.advance(r), true
}

// GlyphAdvance implements font.Face.
func (face *Face) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return face.advance(r), true
}

// Kern implements font.Face. BMF fonts carry no kerning.
func (*Face) Kern(_, _ rune) fixed.Int26_6 { return 0 }

// Metrics implements font.Face.
func (face *Face) Metrics() font.Metrics {
	s := fixed.I(face.size)
	return font.Metrics{
		Height:     s,
		Ascent:     s,
		Descent:    0,
		XHeight:    s / 2,
		CapHeight:  s,
		CaretSlope: image.Point{X: 0, Y: 1},
	}
}
