//go:build !headless

// Command tdpreview renders the demo frame and shows it in a desktop
// window, scaled up so single pixels stay visible.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/tinydisplay"
	"github.com/gogpu/tinydisplay/internal/demo"
	"github.com/gogpu/tinydisplay/surface"
)

// previewGame shows one frame buffer until the window is closed.
type previewGame struct {
	fb    *surface.FrameBuffer
	frame *ebiten.Image
	dirty bool
}

func (g *previewGame) Update() error { return nil }

func (g *previewGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.fb.Width(), g.fb.Height())
		g.dirty = true
	}
	if g.dirty {
		g.frame.WritePixels(g.fb.Snapshot().Pix)
		g.dirty = false
	}
	screen.DrawImage(g.frame, nil)
}

func (g *previewGame) Layout(_, _ int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}

func main() {
	var (
		width  = flag.Int("width", 160, "display width")
		height = flag.Int("height", 128, "display height")
		mono   = flag.Bool("mono", false, "monochrome display")
		font   = flag.String("font", "", "BMF font file (default: built-in 16 px ASCII)")
		text   = flag.String("text", "", "text to draw")
		size   = flag.Int("size", 0, "text size in pixels (0: native)")
		img    = flag.String("image", "", "PBM, BMP or DAT image to draw")
		scale  = flag.Int("scale", 4, "window scale")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	tinydisplay.SetLogger(logger)

	fb, err := demo.Render(demo.Config{
		Width:    *width,
		Height:   *height,
		Mono:     *mono,
		FontPath: *font,
		Text:     *text,
		Size:     *size,
		Wrap:     true,
		Image:    *img,
		ImageY:   *height / 2,
	})
	if err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}

	s := max(*scale, 1)
	ebiten.SetWindowSize(fb.Width()*s, fb.Height()*s)
	ebiten.SetWindowTitle("tinydisplay preview")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(&previewGame{fb: fb}); err != nil {
		logger.Error("preview window", "err", err)
		os.Exit(1)
	}
}
