// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/tinydisplay/pixel"
)

// FrameBuffer is a buffered sink backed by memory.
//
// It stands in for the frame buffer of panel drivers such as SSD1306
// (FormatMono) or ST7735 (FormatRGB565) and is the default sink on hosts.
//
// Example:
//
//	fb := surface.NewFrameBuffer(160, 128, pixel.FormatRGB565)
//	fb.FillRect(0, 0, 160, 128, pixel.Black)
//	img := fb.Snapshot()
type FrameBuffer struct {
	buf *Buffer

	// OnShow, if set, is called by Show.
	OnShow func(fb *FrameBuffer) error

	shows int
}

var (
	_ Sink   = (*FrameBuffer)(nil)
	_ Shower = (*FrameBuffer)(nil)
)

// NewFrameBuffer creates a zeroed frame buffer.
func NewFrameBuffer(width, height int, f pixel.Format) *FrameBuffer {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if !f.IsValid() {
		f = pixel.FormatRGB565
	}
	return &FrameBuffer{buf: NewBuffer(width, height, f)}
}

// NewFrameBufferFromBuffer creates a sink drawing into b directly.
func NewFrameBufferFromBuffer(b *Buffer) *FrameBuffer {
	return &FrameBuffer{buf: b}
}

// Width returns the display width.
func (fb *FrameBuffer) Width() int { return fb.buf.Width }

// Height returns the display height.
func (fb *FrameBuffer) Height() int { return fb.buf.Height }

// Capabilities reports a frame buffer of the buffer's format.
func (fb *FrameBuffer) Capabilities() Capabilities {
	return Capabilities{FrameBuffer: true, Format: fb.buf.Format}
}

// Buffer returns the backing buffer.
func (fb *FrameBuffer) Buffer() *Buffer { return fb.buf }

// At returns the stored value at (x, y), or 0 outside the display.
func (fb *FrameBuffer) At(x, y int) pixel.Color {
	if x < 0 || y < 0 || x >= fb.buf.Width || y >= fb.buf.Height {
		return 0
	}
	return fb.buf.At(x, y)
}

// Pixel sets a single pixel.
func (fb *FrameBuffer) Pixel(x, y int, c pixel.Color) {
	if x < 0 || y < 0 || x >= fb.buf.Width || y >= fb.buf.Height {
		return
	}
	fb.buf.Set(x, y, c)
}

// FillRect fills a rectangle.
func (fb *FrameBuffer) FillRect(x, y, w, h int, c pixel.Color) {
	x, y, w, h, ok := clipRect(x, y, w, h, fb.buf.Width, fb.buf.Height)
	if !ok {
		return
	}
	if fb.buf.Format == pixel.FormatRGB565 {
		e := c.Bytes()
		row := fb.buf.Pix[y*fb.buf.Stride+x*2 : y*fb.buf.Stride+(x+w)*2]
		for i := 0; i < len(row); i += 2 {
			row[i] = e[0]
			row[i+1] = e[1]
		}
		for yy := y + 1; yy < y+h; yy++ {
			copy(fb.buf.Pix[yy*fb.buf.Stride+x*2:], row)
		}
		return
	}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			fb.buf.Set(xx, yy, c)
		}
	}
}

// HLine draws a horizontal line.
func (fb *FrameBuffer) HLine(x, y, length int, c pixel.Color) {
	fb.FillRect(x, y, length, 1, c)
}

// Blit copies b to (x, y), applying the palette and key in opts.
func (fb *FrameBuffer) Blit(b *Buffer, x, y int, opts *BlitOptions) {
	if b == nil {
		return
	}
	var key *pixel.Color
	if opts != nil {
		key = opts.Key
	}
	for sy := 0; sy < b.Height; sy++ {
		dy := y + sy
		if dy < 0 {
			continue
		}
		if dy >= fb.buf.Height {
			break
		}
		for sx := 0; sx < b.Width; sx++ {
			dx := x + sx
			if dx < 0 {
				continue
			}
			if dx >= fb.buf.Width {
				break
			}
			c := b.source(sx, sy, opts)
			if key != nil && c == *key {
				continue
			}
			fb.buf.Set(dx, dy, c)
		}
	}
}

// Show calls OnShow, if set.
func (fb *FrameBuffer) Show() error {
	fb.shows++
	if fb.OnShow != nil {
		return fb.OnShow(fb)
	}
	return nil
}

// ShowCount returns the number of Show calls.
func (fb *FrameBuffer) ShowCount() int { return fb.shows }

// Image returns a read-only image.Image view of the frame buffer. RGB565
// buffers use pixel.Model; mono buffers render set pixels white.
func (fb *FrameBuffer) Image() image.Image {
	return frameImage{fb.buf}
}

// Snapshot returns a copy of the frame buffer as RGBA.
func (fb *FrameBuffer) Snapshot() *image.RGBA {
	src := fb.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst
}

type frameImage struct {
	buf *Buffer
}

func (m frameImage) ColorModel() color.Model {
	if m.buf.Format == pixel.FormatMono {
		return color.GrayModel
	}
	return pixel.Model
}

func (m frameImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.buf.Width, m.buf.Height)
}

func (m frameImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return color.Gray{}
	}
	v := m.buf.At(x, y)
	if m.buf.Format == pixel.FormatMono {
		if v != 0 {
			return color.Gray{Y: 0xFF}
		}
		return color.Gray{}
	}
	return v
}
