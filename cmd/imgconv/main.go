// Command imgconv converts host images into the formats the display
// decoders read: PBM (P4), PPM (P6), 24-bit BMP and raw RGB565 streams.
//
// Usage:
//
//	imgconv -in logo.png -format pbm -size 64x64
//	imgconv -in logo.pbm -format dat -fg '#ff8000' -bg '#000000'
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	stdcolor "image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/tinydisplay"
	"github.com/gogpu/tinydisplay/codec"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

var extensions = map[string]string{
	"pbm": "pbm",
	"ppm": "ppm",
	"bmp": "bmp",
	"dat": "dat",
}

type config struct {
	in, out, format string
	size            string
	fg, bg          string
	invert          bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "", "input image (png, jpeg, gif, bmp, pbm, ppm or dat)")
	flag.StringVar(&cfg.format, "format", "pbm", "output format: pbm, ppm, bmp or dat")
	flag.StringVar(&cfg.size, "size", "", "resize to WxH before converting")
	flag.StringVar(&cfg.fg, "fg", "#ffffff", "foreground colour of monochrome input")
	flag.StringVar(&cfg.bg, "bg", "#000000", "background colour of monochrome input")
	flag.BoolVar(&cfg.invert, "invert", false, "invert colours")
	flag.StringVar(&cfg.out, "o", "", "output file (default: input name with the format's extension)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	tinydisplay.SetLogger(logger)

	if err := run(cfg); err != nil {
		logger.Error("imgconv failed", "err", err)
		os.Exit(1)
	}
	logger.Info("image written", "file", outputPath(cfg))
}

func outputPath(cfg config) string {
	if cfg.out != "" {
		return cfg.out
	}
	return strings.TrimSuffix(cfg.in, filepath.Ext(cfg.in)) + "." + extensions[cfg.format]
}

func run(cfg config) error {
	if cfg.in == "" {
		return errors.New("-in is required")
	}
	if _, ok := extensions[cfg.format]; !ok {
		return fmt.Errorf("unknown -format %q", cfg.format)
	}
	fg, err := parseColor(cfg.fg)
	if err != nil {
		return err
	}
	bg, err := parseColor(cfg.bg)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(cfg.in)
	if err != nil {
		return err
	}
	out := outputPath(cfg)
	if out == cfg.in {
		return fmt.Errorf("output would overwrite %s", cfg.in)
	}

	// PBM to raw streams without decoding the whole image.
	if cfg.format == "dat" && cfg.size == "" && codec.Sniff(data) == codec.KindPBM {
		return writeFile(out, func(w io.Writer) error {
			return codec.ConvertToRaw(w, bytes.NewReader(data), codec.ConvertOptions{FG: fg, BG: bg, Invert: cfg.invert})
		})
	}

	img, err := decode(data, fg, bg)
	if err != nil {
		return err
	}
	if cfg.size != "" {
		w, h, err := parseSize(cfg.size)
		if err != nil {
			return err
		}
		img = resize(img, w, h)
	}
	if cfg.invert {
		img = invert(img)
	}

	return writeFile(out, func(w io.Writer) error {
		switch cfg.format {
		case "pbm":
			return codec.EncodePBM(w, img, true)
		case "ppm":
			return codec.EncodePBM(w, img, false)
		case "bmp":
			return codec.EncodeBMP(w, img)
		default:
			return codec.EncodeRaw(w, img)
		}
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	err = fn(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// decode reads any stdlib or x/image format, plus the display formats
// through a frame buffer.
func decode(data []byte, fg, bg pixel.Color) (image.Image, error) {
	opts := &codec.Options{FG: fg, BG: bg}
	switch codec.Sniff(data) {
	case codec.KindPBM:
		h, err := codec.ReadPNMHeader(bufio.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, err
		}
		fb := surface.NewFrameBuffer(h.Width, h.Height, pixel.FormatRGB565)
		if err := codec.DrawPBM(fb, bytes.NewReader(data), opts); err != nil {
			return nil, err
		}
		return fb.Snapshot(), nil
	case codec.KindRaw:
		h, err := codec.ReadRawHeader(bufio.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, err
		}
		fb := surface.NewFrameBuffer(h.Width, h.Height, pixel.FormatRGB565)
		if err := codec.DrawRaw(fb, bytes.NewReader(data), opts); err != nil {
			return nil, err
		}
		return fb.Snapshot(), nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func resize(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func invert(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := stdcolor.RGBAModel.Convert(src.At(x, y)).(stdcolor.RGBA)
			r, g, bl := pixel.InvertRGB(c.R, c.G, c.B)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, stdcolor.RGBA{R: r, G: g, B: bl, A: 0xFF})
		}
	}
	return dst
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid -size %q, want WxH", s)
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid -size %q, want WxH", s)
	}
	return w, h, nil
}

// parseColor reads #rrggbb into a display colour.
func parseColor(s string) (pixel.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return 0, fmt.Errorf("invalid colour %q, want #rrggbb", s)
	}
	return pixel.PackColor(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
