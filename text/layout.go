package text

// Params configures a layout walk.
type Params struct {
	// X and Y are the top-left corner of the first glyph. X is also the
	// column lines return to.
	X, Y int

	// Width and Height bound the drawable area.
	Width, Height int

	// Size is the glyph size in pixels.
	Size int

	// HalfWidth advances ASCII (below 128) by half the size.
	HalfWidth bool

	// AutoWrap breaks lines before a glyph would cross Width.
	AutoWrap bool

	// LineSpacing is added to Size on every line break.
	LineSpacing int
}

// Placement is one printable code point positioned by Layout.
type Placement struct {
	Rune rune
	X, Y int

	// Visible is false when the cursor is past the drawable area; the
	// glyph is not drawn but the cursor still advances.
	Visible bool
}

// Layout walks s and calls fn for every printable code point in order.
// Newlines and tabs move the cursor without a placement; other code
// points below 16 are dropped. An error from fn stops the walk and is
// returned.
func Layout(s string, p Params, fn func(Placement) error) error {
	size := p.Size
	if size <= 0 {
		return nil
	}
	half := size / 2
	x, y := p.X, p.Y
	for _, r := range s {
		if p.AutoWrap {
			narrow := p.HalfWidth && r < 128
			if (narrow && x+half > p.Width) || (!narrow && x+size > p.Width) {
				y += size + p.LineSpacing
				x = p.X
			}
		}

		switch {
		case r == '\n':
			y += size + p.LineSpacing
			x = p.X
			continue
		case r == '\t':
			x = nextTabStop(x, p.X, size)
			continue
		case r < 16:
			continue
		}

		pl := Placement{Rune: r, X: x, Y: y, Visible: x <= p.Width && y <= p.Height}
		if err := fn(pl); err != nil {
			return err
		}

		if p.HalfWidth && r < 128 {
			x += half
		} else {
			x += size
		}
	}
	return nil
}

// nextTabStop rounds x up to the grid of size-wide columns anchored at x0.
func nextTabStop(x, x0, size int) int {
	phase := floorMod(x0, size)
	d := x - phase
	k := d / size
	if d > k*size {
		k++
	}
	return phase + k*size
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
