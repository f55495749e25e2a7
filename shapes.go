package tinydisplay

import "github.com/gogpu/tinydisplay/pixel"

// Pixel sets one pixel.
func (e *Engine) Pixel(x, y int, c pixel.Color) {
	e.sink.Pixel(x, y, c)
}

// HLine draws a horizontal line of length pixels starting at (x, y).
func (e *Engine) HLine(x, y, length int, c pixel.Color) {
	e.sink.HLine(x, y, length, c)
}

// VLine draws a vertical line of length pixels starting at (x, y).
func (e *Engine) VLine(x, y, length int, c pixel.Color) {
	e.sink.FillRect(x, y, 1, length, c)
}

// FillRect fills a w x h rectangle.
func (e *Engine) FillRect(x, y, w, h int, c pixel.Color) {
	e.sink.FillRect(x, y, w, h, c)
}

// Rect draws the one pixel outline of a w x h rectangle.
func (e *Engine) Rect(x, y, w, h int, c pixel.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	e.sink.HLine(x, y, w, c)
	if h > 1 {
		e.sink.HLine(x, y+h-1, w, c)
	}
	if h > 2 {
		e.sink.FillRect(x, y+1, 1, h-2, c)
		if w > 1 {
			e.sink.FillRect(x+w-1, y+1, 1, h-2, c)
		}
	}
}

// Line draws a line from (x0, y0) to (x1, y1) inclusive.
func (e *Engine) Line(x0, y0, x1, y1 int, c pixel.Color) {
	switch {
	case y0 == y1:
		e.sink.HLine(min(x0, x1), y0, abs(x1-x0)+1, c)
		return
	case x0 == x1:
		e.sink.FillRect(x0, min(y0, y1), 1, abs(y1-y0)+1, c)
		return
	}

	// Bresenham.
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		e.sink.Pixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
