// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"io"

	"github.com/gogpu/tinydisplay/pixel"
)

// Commands of the MIPI DCS subset spoken by StreamDisplay.
const (
	CmdColumnAddressSet byte = 0x2A
	CmdRowAddressSet    byte = 0x2B
	CmdMemoryWrite      byte = 0x2C
)

// streamChunk bounds the bytes StreamDisplay buffers for fills and blits.
const streamChunk = 512

// StreamDisplay is a direct sink without a frame buffer. Every drawing
// call becomes an address window followed by pixel data on the transport,
// the way RGB565 SPI panels are driven:
//
//	0x2A x0 x1   column address set, 16-bit big-endian
//	0x2B y0 y1   row address set, 16-bit big-endian
//	0x2C         memory write, followed by WriteData payloads
//
// Pixel, FillRect, HLine and Blit cannot return errors; the first
// transport error is kept and reported by Err. Later writes are dropped.
type StreamDisplay struct {
	w      io.Writer
	width  int
	height int
	err    error
	chunk  []byte
}

var (
	_ Sink     = (*StreamDisplay)(nil)
	_ Streamer = (*StreamDisplay)(nil)
)

// NewStreamDisplay creates a width x height RGB565 direct sink writing to w.
func NewStreamDisplay(w io.Writer, width, height int) *StreamDisplay {
	return &StreamDisplay{
		w:      w,
		width:  width,
		height: height,
		chunk:  make([]byte, 0, streamChunk),
	}
}

// Width returns the display width.
func (s *StreamDisplay) Width() int { return s.width }

// Height returns the display height.
func (s *StreamDisplay) Height() int { return s.height }

// Capabilities reports a direct RGB565 sink.
func (s *StreamDisplay) Capabilities() Capabilities {
	return Capabilities{Format: pixel.FormatRGB565}
}

// Err returns the first transport error.
func (s *StreamDisplay) Err() error { return s.err }

func (s *StreamDisplay) write(p []byte) error {
	if s.err != nil {
		return s.err
	}
	if _, err := s.w.Write(p); err != nil {
		s.err = fmt.Errorf("surface: stream write: %w", err)
	}
	return s.err
}

// SetWindow sends the address window commands.
func (s *StreamDisplay) SetWindow(x0, y0, x1, y1 int) error {
	cmd := [...]byte{
		CmdColumnAddressSet, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1),
		CmdRowAddressSet, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1),
		CmdMemoryWrite,
	}
	return s.write(cmd[:])
}

// WriteData sends pixel bytes.
func (s *StreamDisplay) WriteData(p []byte) error {
	if len(p) == 0 {
		return s.err
	}
	return s.write(p)
}

// Pixel sets a single pixel through a 1x1 window.
func (s *StreamDisplay) Pixel(x, y int, c pixel.Color) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	e := c.Bytes()
	if s.SetWindow(x, y, x, y) == nil {
		_ = s.WriteData(e[:])
	}
}

// FillRect streams w*h copies of c.
func (s *StreamDisplay) FillRect(x, y, w, h int, c pixel.Color) {
	x, y, w, h, ok := clipRect(x, y, w, h, s.width, s.height)
	if !ok {
		return
	}
	if s.SetWindow(x, y, x+w-1, y+h-1) != nil {
		return
	}
	e := c.Bytes()
	for n := w * h; n > 0; {
		s.chunk = s.chunk[:0]
		for ; n > 0 && len(s.chunk) < streamChunk; n-- {
			s.chunk = append(s.chunk, e[0], e[1])
		}
		if s.WriteData(s.chunk) != nil {
			return
		}
	}
}

// HLine draws a horizontal line.
func (s *StreamDisplay) HLine(x, y, length int, c pixel.Color) {
	s.FillRect(x, y, length, 1, c)
}

// Blit streams the visible part of b. Pixels equal to the key split rows
// into runs, each sent through its own window in chunks of at most
// streamChunk bytes.
func (s *StreamDisplay) Blit(b *Buffer, x, y int, opts *BlitOptions) {
	if b == nil {
		return
	}
	var key *pixel.Color
	if opts != nil {
		key = opts.Key
	}
	keyed := func(dx, sy int) bool {
		return key != nil && b.source(dx-x, sy, opts) == *key
	}
	x0 := max(x, 0)
	x1 := min(x+b.Width, s.width)
	for sy := 0; sy < b.Height; sy++ {
		dy := y + sy
		if dy < 0 || x0 >= x1 {
			continue
		}
		if dy >= s.height {
			break
		}
		for dx := x0; dx < x1; {
			if keyed(dx, sy) {
				dx++
				continue
			}
			end := dx + 1
			for end < x1 && !keyed(end, sy) {
				end++
			}
			if s.writeRun(b, x, sy, opts, dx, end, dy) != nil {
				return
			}
			dx = end
		}
	}
}

// writeRun streams columns x0..x1-1 of display row y, taken from row sy of
// b placed at column bx.
func (s *StreamDisplay) writeRun(b *Buffer, bx, sy int, opts *BlitOptions, x0, x1, y int) error {
	if err := s.SetWindow(x0, y, x1-1, y); err != nil {
		return err
	}
	s.chunk = s.chunk[:0]
	for dx := x0; dx < x1; dx++ {
		e := b.source(dx-bx, sy, opts).Bytes()
		s.chunk = append(s.chunk, e[0], e[1])
		if len(s.chunk) >= streamChunk || dx == x1-1 {
			if err := s.WriteData(s.chunk); err != nil {
				return err
			}
			s.chunk = s.chunk[:0]
		}
	}
	return nil
}
