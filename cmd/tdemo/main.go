// Command tdemo renders text and an optional image into a frame buffer
// and saves it as PNG.
package main

import (
	"flag"
	"image/png"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/gogpu/tinydisplay"
	"github.com/gogpu/tinydisplay/internal/demo"
)

func main() {
	var (
		width   = flag.Int("width", 160, "display width")
		height  = flag.Int("height", 128, "display height")
		mono    = flag.Bool("mono", false, "monochrome display")
		font    = flag.String("font", "", "BMF font file (default: built-in 16 px ASCII)")
		text    = flag.String("text", "", "text to draw")
		size    = flag.Int("size", 0, "text size in pixels (0: native)")
		wrap    = flag.Bool("wrap", true, "wrap text at the right edge")
		img     = flag.String("image", "", "PBM, BMP or DAT image to draw")
		imgX    = flag.Int("x", 0, "image x")
		imgY    = flag.Int("y", 64, "image y")
		output  = flag.String("o", "tdemo.png", "output file")
		preview = flag.Bool("term", false, "print an ASCII preview sized to the terminal")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	tinydisplay.SetLogger(logger)

	fb, err := demo.Render(demo.Config{
		Width:    *width,
		Height:   *height,
		Mono:     *mono,
		FontPath: *font,
		Text:     *text,
		Size:     *size,
		Wrap:     *wrap,
		Image:    *img,
		ImageX:   *imgX,
		ImageY:   *imgY,
	})
	if err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}

	f, err := os.Create(*output)
	if err != nil {
		logger.Error("create output", "err", err)
		os.Exit(1)
	}
	err = png.Encode(f, fb.Snapshot())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("save png", "err", err)
		os.Exit(1)
	}
	logger.Info("demo saved", "file", *output, "width", *width, "height", *height)

	if *preview {
		cols := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			cols = w
		}
		if err := demo.Preview(os.Stdout, fb.Image(), cols); err != nil {
			logger.Error("preview", "err", err)
			os.Exit(1)
		}
	}
}
