// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"

	"github.com/gogpu/tinydisplay/pixel"
)

// Sink is the drawing contract of a display.
//
// Colors are interpreted according to Capabilities().Format: on RGB565
// sinks a Color is stored as-is, on monochrome sinks any non-zero Color
// sets the pixel. Coordinates outside the display are clipped silently.
type Sink interface {
	// Width returns the display width in pixels.
	Width() int

	// Height returns the display height in pixels.
	Height() int

	// Capabilities describes the sink.
	Capabilities() Capabilities

	// Pixel sets a single pixel.
	Pixel(x, y int, c pixel.Color)

	// FillRect fills a w x h rectangle.
	FillRect(x, y, w, h int, c pixel.Color)

	// HLine draws a horizontal line of length pixels.
	HLine(x, y, length int, c pixel.Color)

	// Blit copies b to (x, y). If opts is nil the buffer is copied
	// unchanged; see BlitOptions.
	Blit(b *Buffer, x, y int, opts *BlitOptions)
}

// Streamer is implemented by direct targets that accept raw pixel data
// for a rectangular address window.
type Streamer interface {
	// SetWindow selects the inclusive window (x0, y0)-(x1, y1). Following
	// WriteData calls fill it row-major.
	SetWindow(x0, y0, x1, y1 int) error

	// WriteData sends pixel bytes in wire order (little-endian Colors).
	WriteData(p []byte) error
}

// Shower is implemented by buffered targets that must be told to push
// their frame buffer to the panel.
type Shower interface {
	Show() error
}

// Capabilities describes a sink.
type Capabilities struct {
	// FrameBuffer indicates a local frame buffer. Sinks without one must
	// implement Streamer.
	FrameBuffer bool

	// Format is the pixel format the sink stores.
	Format pixel.Format
}

// BlitOptions controls Blit.
type BlitOptions struct {
	// Key is the transparency key: source pixels whose (palette-mapped)
	// value equals *Key are skipped.
	Key *pixel.Color

	// Palette maps the bits of a FormatMono source to Colors.
	// Without a palette a mono source yields 0 and 1.
	Palette *pixel.Palette
}

// Errors.
var (
	// ErrNoStreamer is returned when a sink without a frame buffer does not
	// implement Streamer.
	ErrNoStreamer = errors.New("surface: direct sink does not implement Streamer")

	// ErrNoSinkAvailable is returned when no registered sink can be created.
	ErrNoSinkAvailable = errors.New("surface: no sink available")
)

// Check reports whether s satisfies the sink contract: a sink without a
// frame buffer must implement Streamer.
func Check(s Sink) error {
	if s.Capabilities().FrameBuffer {
		return nil
	}
	if _, ok := s.(Streamer); !ok {
		return ErrNoStreamer
	}
	return nil
}

// Show calls s.Show when s implements Shower.
func Show(s Sink) error {
	if sh, ok := s.(Shower); ok {
		return sh.Show()
	}
	return nil
}

// Clear fills the whole sink with c.
func Clear(s Sink, c pixel.Color) {
	s.FillRect(0, 0, s.Width(), s.Height(), c)
}

// clipRect intersects (x, y, w, h) with a width x height display.
func clipRect(x, y, w, h, width, height int) (int, int, int, int, bool) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > width {
		w = width - x
	}
	if y+h > height {
		h = height - y
	}
	return x, y, w, h, w > 0 && h > 0
}
