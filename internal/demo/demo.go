// Package demo renders the frame shown by the tdemo and tdpreview
// commands.
package demo

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/tinydisplay"
	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/internal/fontgen"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// Config describes the demo frame.
type Config struct {
	Width, Height int
	Mono          bool
	FontPath      string // empty uses BuiltinFont
	Text          string
	Size          int // 0 uses the native font size
	Image         string
	ImageX        int
	ImageY        int
	Wrap          bool
}

// DefaultText is drawn when Config.Text is empty.
const DefaultText = "tinydisplay\nBMF text, PBM/BMP/DAT images\n\tand RGB565 colour."

// BuiltinFont builds a 16 px ASCII font from the Go basic 7x13 face.
func BuiltinFont() (*bmf.Font, error) {
	var chars strings.Builder
	for r := rune(0x20); r < 0x7F; r++ {
		chars.WriteRune(r)
	}
	var buf bytes.Buffer
	opts := fontgen.Options{
		Size:   16,
		Offset: image.Pt(0, 1),
		Has:    func(r rune) bool { return r < 0x80 },
	}
	if _, err := fontgen.Build(&buf, basicfont.Face7x13, fontgen.Runes(chars.String()), opts); err != nil {
		return nil, err
	}
	return bmf.Load(bytes.NewReader(buf.Bytes()))
}

// Render draws the demo frame into a new frame buffer.
func Render(cfg Config) (*surface.FrameBuffer, error) {
	name := "framebuffer"
	if cfg.Mono {
		name = "framebuffer-mono"
	}
	sink, err := surface.NewSinkByName(name, surface.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	if err != nil {
		return nil, err
	}
	fb, ok := sink.(*surface.FrameBuffer)
	if !ok {
		return nil, fmt.Errorf("demo: sink %q is %T, not a frame buffer", name, sink)
	}

	e, err := tinydisplay.New(fb, tinydisplay.WithAutoWrap(cfg.Wrap))
	if err != nil {
		return nil, err
	}
	defer e.Close()

	if cfg.FontPath != "" {
		err = e.LoadFont(cfg.FontPath)
	} else {
		var f *bmf.Font
		if f, err = BuiltinFont(); err == nil {
			err = e.SetFont(f)
		}
	}
	if err != nil {
		return nil, err
	}

	accent := pixel.PackColor(0x30, 0x90, 0xFF)
	e.Rect(0, 0, cfg.Width, cfg.Height, accent)
	e.Line(0, cfg.Height-1, cfg.Width-1, 0, pixel.PackColor(0x40, 0x40, 0x40))

	s := cfg.Text
	if s == "" {
		s = DefaultText
	}
	if err := e.Text(s, 2, 2, tinydisplay.WithSize(cfg.Size), tinydisplay.WithTransparentBG(true)); err != nil {
		return nil, err
	}
	if cfg.Image != "" {
		if err := e.Image(cfg.Image, cfg.ImageX, cfg.ImageY); err != nil {
			return nil, err
		}
	}
	if err := e.Show(); err != nil {
		return nil, err
	}
	st := e.CacheStats()
	tinydisplay.Logger().Debug("demo: frame rendered",
		"glyph_cache_hits", st.Hits,
		"glyph_cache_misses", st.Misses)
	return fb, nil
}

// shades maps luminance to characters, darkest first.
const shades = " .:-=+*#%@"

// Preview writes img as ASCII art at most cols characters wide. Each
// character covers a cell twice as tall as it is wide.
func Preview(w io.Writer, img image.Image, cols int) error {
	b := img.Bounds()
	if cols <= 0 || b.Empty() {
		return nil
	}
	cols = min(cols, b.Dx())
	cellW := (b.Dx() + cols - 1) / cols
	cellH := cellW * 2

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += cellH {
		for x := b.Min.X; x < b.Max.X; x += cellW {
			var sum, n uint32
			for cy := y; cy < min(y+cellH, b.Max.Y); cy++ {
				for cx := x; cx < min(x+cellW, b.Max.X); cx++ {
					r, g, bl, _ := img.At(cx, cy).RGBA()
					sum += (r + g + bl) / 3 >> 8
					n++
				}
			}
			sb.WriteByte(shades[int(sum/n)*(len(shades)-1)/255])
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
