// Command bmfgen rasterizes a TrueType or OpenType font into a BMF v3
// bitmap font.
//
// Usage:
//
//	bmfgen -font unifont.ttf -text-file chars.txt -size 16 -o text_16px.bmf
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"strings"

	gotext "github.com/go-text/typesetting/font"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/gogpu/tinydisplay"
	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/internal/fontgen"
)

func main() {
	var (
		fontFile  = flag.String("font", "", "TrueType/OpenType font file")
		text      = flag.String("text", "", "characters to include")
		textFile  = flag.String("text-file", "", "file holding the characters to include")
		size      = flag.Int("size", 16, "glyph size in pixels")
		offset    = flag.String("offset", "0,0", "glyph offset inside the cell as x,y")
		engine    = flag.String("engine", "opentype", "rasterizer: opentype or freetype")
		threshold = flag.Int("threshold", fontgen.DefaultThreshold, "coverage (1-255) at which a pixel is set")
		output    = flag.String("o", "", "output file (default <font>_<size>px.v3.bmf)")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	tinydisplay.SetLogger(logger)

	cfg := config{
		fontFile:  *fontFile,
		text:      *text,
		textFile:  *textFile,
		size:      *size,
		offset:    *offset,
		engine:    *engine,
		threshold: *threshold,
		output:    *output,
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("bmfgen failed", "err", err)
		os.Exit(1)
	}
}

type config struct {
	fontFile, text, textFile string
	size                     int
	offset                   string
	engine                   string
	threshold                int
	output                   string
}

func run(cfg config, logger *slog.Logger) error {
	if cfg.fontFile == "" {
		return errors.New("-font is required")
	}
	if cfg.size <= 0 || cfg.size > 255 {
		return fmt.Errorf("invalid -size %d", cfg.size)
	}
	if cfg.threshold < 1 || cfg.threshold > 255 {
		return fmt.Errorf("invalid -threshold %d", cfg.threshold)
	}
	off, err := parseOffset(cfg.offset)
	if err != nil {
		return err
	}
	chars := cfg.text
	if cfg.textFile != "" {
		b, err := os.ReadFile(cfg.textFile)
		if err != nil {
			return err
		}
		chars += string(b)
	}
	runes := fontgen.Runes(chars)
	if len(runes) == 0 {
		return errors.New("no characters given, use -text or -text-file")
	}

	data, err := os.ReadFile(cfg.fontFile)
	if err != nil {
		return err
	}
	face, err := newFace(cfg.engine, data, cfg.size)
	if err != nil {
		return err
	}
	defer face.Close()

	opts := fontgen.Options{
		Size:      cfg.size,
		Offset:    off,
		Threshold: uint8(cfg.threshold),
		Has:       coverage(data, logger),
	}

	out := cfg.output
	if out == "" {
		base := strings.TrimSuffix(cfg.fontFile, "."+extension(cfg.fontFile))
		out = fmt.Sprintf("%s_%dpx.v%d.bmf", base, cfg.size, bmf.Version)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	st, err := fontgen.Build(f, face, runes, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if len(st.Skipped) > 0 {
		logger.Warn("characters missing from font were skipped",
			"count", len(st.Skipped),
			"chars", string(st.Skipped))
	}

	written, err := bmf.Open(out)
	if err != nil {
		return err
	}
	defer written.Close()
	if err := bmf.Verify(written); err != nil {
		return err
	}
	logger.Info("font written",
		"file", out,
		"glyphs", st.Glyphs,
		"size", cfg.size,
		"kib", fmt.Sprintf("%.2f", float64(st.Bytes)/1024))
	return nil
}

func extension(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 && !strings.ContainsRune(path[i:], os.PathSeparator) {
		return path[i+1:]
	}
	return ""
}

func parseOffset(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid -offset %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid -offset %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid -offset %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}

// newFace opens data with the chosen rasterizer at size pixels per em.
func newFace(engine string, data []byte, size int) (font.Face, error) {
	switch engine {
	case "opentype":
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
	case "freetype":
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		return truetype.NewFace(f, &truetype.Options{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		}), nil
	}
	return nil, fmt.Errorf("unknown -engine %q, want opentype or freetype", engine)
}

// coverage returns a cmap lookup for the font in data, or nil when the
// font cannot be read for it.
func coverage(data []byte, logger *slog.Logger) func(rune) bool {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		logger.Warn("no coverage information, keeping every character", "err", err)
		return nil
	}
	return func(r rune) bool {
		_, ok := face.NominalGlyph(r)
		return ok
	}
}
