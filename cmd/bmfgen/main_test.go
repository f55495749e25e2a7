package main

import (
	"bytes"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/tinydisplay/bmf"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    image.Point
		wantErr bool
	}{
		{"0,0", image.Pt(0, 0), false},
		{"1, -2", image.Pt(1, -2), false},
		{"3", image.Point{}, true},
		{"a,1", image.Point{}, true},
	}
	for _, tt := range tests {
		got, err := parseOffset(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseOffset(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	ttf := filepath.Join(dir, "goregular.ttf")
	if err := os.WriteFile(ttf, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	for _, engine := range []string{"opentype", "freetype"} {
		t.Run(engine, func(t *testing.T) {
			out := filepath.Join(dir, engine+".bmf")
			cfg := config{
				fontFile:  ttf,
				text:      "Hello 世界",
				size:      16,
				offset:    "0,0",
				engine:    engine,
				threshold: 0x80,
				output:    out,
			}
			if err := run(cfg, logger); err != nil {
				t.Fatalf("run: %v", err)
			}
			f, err := bmf.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			runes, err := f.Runes()
			if err != nil {
				t.Fatal(err)
			}
			// Go Regular has no CJK glyphs.
			if string(runes) != " Helo" {
				t.Errorf("runes = %q, want %q", string(runes), " Helo")
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	tests := []struct {
		name string
		cfg  config
	}{
		{"no font", config{text: "a", size: 16, offset: "0,0", threshold: 1}},
		{"bad size", config{fontFile: "x.ttf", text: "a", size: 0, offset: "0,0", threshold: 1}},
		{"no text", config{fontFile: "x.ttf", size: 16, offset: "0,0", threshold: 1}},
		{"bad engine", config{fontFile: "x.ttf", text: "a", size: 16, offset: "0,0", threshold: 1, engine: "cairo"}},
	}
	ttf := filepath.Join(t.TempDir(), "x.ttf")
	if err := os.WriteFile(ttf, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.fontFile != "" {
				tt.cfg.fontFile = ttf
			}
			if err := run(tt.cfg, logger); err == nil {
				t.Error("run succeeded")
			}
		})
	}
}
