package codec

import (
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// DefaultChunkSize is the number of P4 bytes streamed per transfer to a
// direct sink. Raw streams use ten times as much.
const DefaultChunkSize = 32

// maxDimension bounds image width and height read from headers.
const maxDimension = 1 << 15

// Options controls decoding.
type Options struct {
	// X and Y place the top-left corner of the image.
	X, Y int

	// Key skips pixels of this colour on Blit and Pixel paths.
	Key *pixel.Color

	// Invert swaps foreground and background for monochrome data and
	// complements the channels of truecolour data.
	Invert bool

	// FG and BG colour monochrome data on RGB565 sinks and are the two
	// levels written for thresholded truecolour data on monochrome sinks.
	FG, BG pixel.Color

	// ChunkSize is the direct-streaming chunk in bytes of 1-bpp data.
	// Zero means DefaultChunkSize.
	ChunkSize int

	// BeforeDraw, when set, runs once the header has been read and
	// accepted, before the first pixel reaches the sink. Rejected input
	// never calls it.
	BeforeDraw func()
}

// DefaultOptions returns options drawing at the origin with white on black.
func DefaultOptions() *Options {
	return &Options{FG: pixel.White, BG: pixel.Black}
}

func (o *Options) beforeDraw() {
	if o.BeforeDraw != nil {
		o.BeforeDraw()
	}
}

func (o *Options) chunk() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return DefaultChunkSize
}

// palette returns the {bg, fg} palette, swapped when inverting.
func (o *Options) palette() pixel.Palette {
	p := pixel.BuildPalette(o.FG, o.BG)
	if o.Invert {
		return p.Swapped()
	}
	return p
}

// monoLevel thresholds an RGB triplet to FG or BG.
func (o *Options) monoLevel(r, g, b uint8) pixel.Color {
	if pixel.IsForeground(r, g, b) != o.Invert {
		return o.FG
	}
	return o.BG
}

// truecolor converts an RGB triplet, complementing it when inverting.
func (o *Options) truecolor(r, g, b uint8) pixel.Color {
	if o.Invert {
		r, g, b = pixel.InvertRGB(r, g, b)
	}
	return pixel.PackColor(r, g, b)
}

func (o *Options) blitOptions() *surface.BlitOptions {
	if o.Key == nil {
		return nil
	}
	return &surface.BlitOptions{Key: o.Key}
}

// target captures how a decoder talks to a sink.
type target struct {
	sink   surface.Sink
	stream surface.Streamer // non-nil for direct RGB565 sinks
	mono   bool
}

func newTarget(s surface.Sink) target {
	caps := s.Capabilities()
	t := target{sink: s, mono: caps.Format == pixel.FormatMono}
	if !caps.FrameBuffer && !t.mono {
		t.stream, _ = s.(surface.Streamer)
	}
	return t
}

// canStream reports whether a w x h image at (x, y) can be streamed
// through a single window.
func (t target) canStream(x, y, w, h int) bool {
	return t.stream != nil && x >= 0 && y >= 0 &&
		x+w <= t.sink.Width() && y+h <= t.sink.Height()
}

// plot writes one thresholded pixel unless it matches the key.
func (t target) plot(x, y int, c pixel.Color, o *Options) {
	if o.Key != nil && c == *o.Key {
		return
	}
	t.sink.Pixel(x, y, c)
}
