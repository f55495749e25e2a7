// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"

	"github.com/gogpu/tinydisplay/pixel"
)

// Buffer is a rectangular block of pixels in one of the pixel formats.
// FormatMono rows are byte-padded, MSB first; FormatRGB565 pixels are
// little-endian Colors.
type Buffer struct {
	Width  int
	Height int
	Format pixel.Format
	Stride int // bytes per row
	Pix    []byte
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height int, f pixel.Format) *Buffer {
	stride := f.RowBytes(width)
	return &Buffer{
		Width:  width,
		Height: height,
		Format: f,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}
}

// WrapBuffer wraps existing pixel data without copying.
func WrapBuffer(pix []byte, width, height int, f pixel.Format) (*Buffer, error) {
	stride := f.RowBytes(width)
	if len(pix) < stride*height {
		return nil, fmt.Errorf("surface: buffer too small: %d bytes for %dx%d %v", len(pix), width, height, f)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Format: f,
		Stride: stride,
		Pix:    pix,
	}, nil
}

// At returns the raw value at (x, y): 0 or 1 for mono buffers, the Color
// for RGB565 buffers.
func (b *Buffer) At(x, y int) pixel.Color {
	if b.Format == pixel.FormatMono {
		if b.Pix[y*b.Stride+x>>3]&(0x80>>uint(x&7)) != 0 {
			return 1
		}
		return 0
	}
	i := y*b.Stride + x*2
	return pixel.FromBytes(b.Pix[i], b.Pix[i+1])
}

// Set stores c at (x, y). Mono buffers set the bit for any non-zero c.
func (b *Buffer) Set(x, y int, c pixel.Color) {
	if b.Format == pixel.FormatMono {
		i := y*b.Stride + x>>3
		m := byte(0x80 >> uint(x&7))
		if c != 0 {
			b.Pix[i] |= m
		} else {
			b.Pix[i] &^= m
		}
		return
	}
	i := y*b.Stride + x*2
	e := c.Bytes()
	b.Pix[i] = e[0]
	b.Pix[i+1] = e[1]
}

// source returns the value blitted for (x, y) after palette mapping.
func (b *Buffer) source(x, y int, opts *BlitOptions) pixel.Color {
	v := b.At(x, y)
	if b.Format == pixel.FormatMono && opts != nil && opts.Palette != nil {
		return opts.Palette.Lookup(byte(v))
	}
	return v
}
