package tinydisplay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/codec"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
	"github.com/gogpu/tinydisplay/text"
)

// Engine draws text and images on a sink.
//
// An Engine owns its font: LoadFont and SetFont close the previous one
// and Close releases the current one. Image files are opened and closed
// within each draw call.
type Engine struct {
	sink   surface.Sink
	cfg    Config
	raster *text.Rasterizer
}

// New creates an engine drawing on sink with the given defaults. When
// WithFont is given the font is loaded before New returns.
func New(sink surface.Sink, opts ...Option) (*Engine, error) {
	if err := surface.Check(sink); err != nil {
		return nil, err
	}
	e := &Engine{
		sink: sink,
		cfg:  DefaultConfig().with(opts),
	}
	if e.cfg.FontPath != "" {
		if err := e.LoadFont(e.cfg.FontPath); err != nil {
			return nil, err
		}
	}
	Logger().Debug("tinydisplay: engine created",
		"width", sink.Width(),
		"height", sink.Height(),
		"format", sink.Capabilities().Format)
	return e, nil
}

// Sink returns the sink the engine draws on.
func (e *Engine) Sink() surface.Sink { return e.sink }

// Config returns a copy of the engine defaults.
func (e *Engine) Config() Config { return e.cfg }

// LoadFont opens a BMF font and makes it current.
func (e *Engine) LoadFont(path string) error {
	f, err := bmf.Open(path)
	if err != nil {
		return err
	}
	e.cfg.FontPath = path
	return e.SetFont(f)
}

// SetFont makes f the current font, closing the previous one. A nil f
// unloads the font.
func (e *Engine) SetFont(f *bmf.Font) error {
	var old *bmf.Font
	if e.raster != nil {
		old = e.raster.Font()
	}
	e.raster = nil
	if f != nil {
		e.raster = text.NewRasterizer(f, e.cfg.CacheSize)
	}
	if old != nil && old != f {
		if err := old.Close(); err != nil {
			return fmt.Errorf("tinydisplay: close font: %w", err)
		}
	}
	return nil
}

// Font returns the current font, or nil.
func (e *Engine) Font() *bmf.Font {
	if e.raster == nil {
		return nil
	}
	return e.raster.Font()
}

// CacheStats reports the glyph cache counters of the current font.
func (e *Engine) CacheStats() text.CacheStats {
	if e.raster == nil {
		return text.CacheStats{}
	}
	return e.raster.CacheStats()
}

// draw runs fn between the optional clear and show of cfg. Nothing is
// shown when fn fails.
func (e *Engine) draw(cfg Config, fn func() error) error {
	if cfg.Clear {
		surface.Clear(e.sink, 0)
	}
	return e.finish(cfg, fn())
}

// drawImage is draw for the decoders: the clear is deferred until the
// decoder has accepted the header, so rejected input leaves the display
// untouched.
func (e *Engine) drawImage(cfg Config, x, y int, fn func(*codec.Options) error) error {
	opts := cfg.codecOptions(x, y)
	if cfg.Clear {
		opts.BeforeDraw = func() { surface.Clear(e.sink, 0) }
	}
	return e.finish(cfg, fn(opts))
}

func (e *Engine) finish(cfg Config, err error) error {
	if err != nil {
		return err
	}
	if cfg.Show {
		return surface.Show(e.sink)
	}
	return nil
}

func (e *Engine) textParams(cfg Config, x, y int) (text.Params, text.Style) {
	p := text.Params{
		X:           x,
		Y:           y,
		Size:        cfg.Size,
		HalfWidth:   cfg.HalfWidth,
		AutoWrap:    cfg.AutoWrap,
		LineSpacing: cfg.LineSpacing,
	}
	st := text.Style{
		FG:            cfg.FG,
		BG:            cfg.BG,
		Invert:        cfg.Invert,
		TransparentBG: cfg.TransparentBG,
		Format:        e.sink.Capabilities().Format,
	}
	return p, st
}

// Text draws s with its first glyph at (x, y).
func (e *Engine) Text(s string, x, y int, opts ...TextOption) error {
	cfg := e.cfg.with(opts)
	if e.raster == nil {
		return &ResourceError{Op: "text", Err: ErrNoFont}
	}
	if cfg.Normalize {
		s = norm.NFC.String(s)
	}
	p, st := e.textParams(cfg, x, y)
	return e.draw(cfg, func() error {
		return text.Draw(e.sink, e.raster, s, p, st)
	})
}

// Placements returns where Text would put each glyph of s, without
// drawing.
func (e *Engine) Placements(s string, x, y int, opts ...TextOption) ([]text.Placement, error) {
	cfg := e.cfg.with(opts)
	if e.raster == nil {
		return nil, &ResourceError{Op: "layout", Err: ErrNoFont}
	}
	if cfg.Normalize {
		s = norm.NFC.String(s)
	}
	p, _ := e.textParams(cfg, x, y)
	p.Width, p.Height = e.sink.Width(), e.sink.Height()
	if p.Size <= 0 {
		p.Size = e.raster.Font().Size()
	}
	var out []text.Placement
	err := text.Layout(s, p, func(pl text.Placement) error {
		out = append(out, pl)
		return nil
	})
	return out, err
}

func (cfg Config) codecOptions(x, y int) *codec.Options {
	return &codec.Options{
		X:         x,
		Y:         y,
		Key:       cfg.Key,
		Invert:    cfg.Invert,
		FG:        cfg.FG,
		BG:        cfg.BG,
		ChunkSize: cfg.ChunkSize,
	}
}

// withFile opens path and hands it to fn, closing it on every path.
func withFile(path string, fn func(*os.File) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

// PBM draws a P4 or P6 image file with its top-left corner at (x, y).
func (e *Engine) PBM(path string, x, y int, opts ...ImageOption) error {
	return withFile(path, func(f *os.File) error {
		return e.PBMFrom(f, x, y, opts...)
	})
}

// PBMFrom draws a P4 or P6 image read from r.
func (e *Engine) PBMFrom(r io.Reader, x, y int, opts ...ImageOption) error {
	cfg := e.cfg.with(opts)
	return e.drawImage(cfg, x, y, func(o *codec.Options) error {
		return codec.DrawPBM(e.sink, r, o)
	})
}

// BMP draws a 24-bit BMP file with its top-left corner at (x, y).
func (e *Engine) BMP(path string, x, y int, opts ...ImageOption) error {
	return withFile(path, func(f *os.File) error {
		return e.BMPFrom(f, x, y, opts...)
	})
}

// BMPFrom draws a 24-bit BMP read from r.
func (e *Engine) BMPFrom(r io.ReadSeeker, x, y int, opts ...ImageOption) error {
	cfg := e.cfg.with(opts)
	return e.drawImage(cfg, x, y, func(o *codec.Options) error {
		return codec.DrawBMP(e.sink, r, o)
	})
}

// Raw draws a raw RGB565 stream file with its top-left corner at (x, y).
func (e *Engine) Raw(path string, x, y int, opts ...ImageOption) error {
	return withFile(path, func(f *os.File) error {
		return e.RawFrom(f, x, y, opts...)
	})
}

// RawFrom draws a raw RGB565 stream read from r.
func (e *Engine) RawFrom(r io.Reader, x, y int, opts ...ImageOption) error {
	cfg := e.cfg.with(opts)
	return e.drawImage(cfg, x, y, func(o *codec.Options) error {
		return codec.DrawRaw(e.sink, r, o)
	})
}

// Image draws a PBM, BMP or raw stream file, detected from its content.
func (e *Engine) Image(path string, x, y int, opts ...ImageOption) error {
	return withFile(path, func(f *os.File) error {
		return e.ImageFrom(f, x, y, opts...)
	})
}

// ImageFrom detects the format of r and draws it. r is rewound to its
// starting position before decoding.
func (e *Engine) ImageFrom(r io.ReadSeeker, x, y int, opts ...ImageOption) error {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("tinydisplay: image: %w", err)
	}
	head := make([]byte, codec.SniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("tinydisplay: image: %w", err)
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return fmt.Errorf("tinydisplay: image: %w", err)
	}

	kind := codec.Sniff(head[:n])
	Logger().Debug("tinydisplay: image detected", "kind", kind)
	switch kind {
	case codec.KindPBM:
		return e.PBMFrom(r, x, y, opts...)
	case codec.KindBMP:
		return e.BMPFrom(r, x, y, opts...)
	case codec.KindRaw:
		return e.RawFrom(r, x, y, opts...)
	}
	return &codec.UnsupportedFormatError{Format: "image", Reason: fmt.Sprintf("unrecognised header %q", head[:n])}
}

// Clear fills the display with 0.
func (e *Engine) Clear() {
	surface.Clear(e.sink, 0)
}

// Show presents the display. It is a no-op for sinks that draw directly.
func (e *Engine) Show() error {
	return surface.Show(e.sink)
}

// Close releases the font. The sink is left to the caller.
func (e *Engine) Close() error {
	return e.SetFont(nil)
}

// Fill fills the whole display with c.
func (e *Engine) Fill(c pixel.Color) {
	surface.Clear(e.sink, c)
}
