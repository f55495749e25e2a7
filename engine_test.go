package tinydisplay

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/codec"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/recording"
	"github.com/gogpu/tinydisplay/surface"
)

var red = pixel.PackColor(255, 0, 0)

// fontData returns an 8 px font: 'A' a filled box, 'B' the main
// diagonal, 'é' the top row.
func fontData(t *testing.T) []byte {
	t.Helper()
	enc := bmf.NewEncoder(8)
	box := bytes.Repeat([]byte{0xFF}, 8)
	diag := make([]byte, 8)
	for i := range diag {
		diag[i] = 0x80 >> uint(i)
	}
	top := make([]byte, 8)
	top[0] = 0xFF
	for r, bits := range map[rune][]byte{'A': box, 'B': diag, 'é': top} {
		if err := enc.Add(r, bits); err != nil {
			t.Fatalf("Add(%q): %v", r, err)
		}
	}
	var buf bytes.Buffer
	if _, err := enc.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testFont(t *testing.T) *bmf.Font {
	t.Helper()
	f, err := bmf.Load(bytes.NewReader(fontData(t)))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func fontFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bmf")
	if err := os.WriteFile(path, fontData(t), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newEngine(t *testing.T, s surface.Sink, opts ...Option) *Engine {
	t.Helper()
	e, err := New(s, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

// unstreamable claims to draw directly but cannot stream.
type unstreamable struct {
	*surface.FrameBuffer
}

func (unstreamable) Capabilities() surface.Capabilities {
	return surface.Capabilities{Format: pixel.FormatRGB565}
}

func TestNewChecksSink(t *testing.T) {
	_, err := New(unstreamable{surface.NewFrameBuffer(8, 8, pixel.FormatRGB565)})
	if !errors.Is(err, surface.ErrNoStreamer) {
		t.Errorf("New = %v, want ErrNoStreamer", err)
	}
}

func TestNewLoadsFont(t *testing.T) {
	fb := surface.NewFrameBuffer(16, 16, pixel.FormatRGB565)
	e := newEngine(t, fb, WithFont(fontFile(t)))
	if e.Font() == nil || e.Font().Size() != 8 {
		t.Fatalf("Font() = %v, want the 8 px font", e.Font())
	}

	if _, err := New(fb, WithFont(filepath.Join(t.TempDir(), "missing.bmf"))); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing font: err = %v, want ErrNotExist", err)
	}
}

func TestLoadFontClosesPrevious(t *testing.T) {
	e := newEngine(t, surface.NewFrameBuffer(16, 16, pixel.FormatRGB565))
	path := fontFile(t)
	if err := e.LoadFont(path); err != nil {
		t.Fatal(err)
	}
	old := e.Font()
	if err := e.LoadFont(path); err != nil {
		t.Fatal(err)
	}
	if e.Font() == old {
		t.Fatal("LoadFont did not replace the font")
	}
	if _, _, err := old.Lookup('A'); err == nil {
		t.Error("previous font still readable after LoadFont")
	}
	if e.Config().FontPath != path {
		t.Errorf("FontPath = %q, want %q", e.Config().FontPath, path)
	}
}

func TestTextNoFont(t *testing.T) {
	fb := surface.NewFrameBuffer(16, 16, pixel.FormatRGB565)
	e := newEngine(t, fb, WithShow(true))
	err := e.Text("A", 0, 0)
	if !errors.Is(err, ErrNoFont) {
		t.Fatalf("Text = %v, want ErrNoFont", err)
	}
	var rerr *ResourceError
	if !errors.As(err, &rerr) || rerr.Op != "text" {
		t.Errorf("error = %#v, want ResourceError{Op: text}", err)
	}
	if fb.ShowCount() != 0 {
		t.Error("failed draw call was shown")
	}
}

func TestText(t *testing.T) {
	fb := surface.NewFrameBuffer(32, 16, pixel.FormatRGB565)
	e := newEngine(t, fb, WithHalfWidth(false))
	if err := e.SetFont(testFont(t)); err != nil {
		t.Fatal(err)
	}
	if err := e.Text("AB", 0, 0, WithColors(red, pixel.Black)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	tests := []struct {
		x, y int
		want pixel.Color
	}{
		{0, 0, red}, {7, 7, red}, // box
		{9, 1, red}, {10, 1, pixel.Black}, // diagonal at x = 8
		{16, 0, 0}, // nothing past the second glyph
	}
	for _, tt := range tests {
		if got := fb.At(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %#04x, want %#04x", tt.x, tt.y, got, tt.want)
		}
	}
	if e.Config().FG != pixel.White {
		t.Error("per-call WithColors changed the engine defaults")
	}
	if st := e.CacheStats(); st.Misses != 2 {
		t.Errorf("cache misses = %d, want 2", st.Misses)
	}
}

func TestTextScaledOnMonoSink(t *testing.T) {
	fb := surface.NewFrameBuffer(32, 32, pixel.FormatMono)
	e := newEngine(t, fb)
	e.SetFont(testFont(t))
	if err := e.Text("B", 0, 0, WithSize(16)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	// Source pixel (3, 3) covers (6..7, 6..7) at twice the size.
	for _, p := range []image.Point{{6, 6}, {7, 7}, {6, 7}} {
		if fb.At(p.X, p.Y) != 1 {
			t.Errorf("pixel %v clear, want set", p)
		}
	}
	if fb.At(8, 6) != 0 {
		t.Error("pixel (8, 6) set, want clear")
	}
}

func TestTextClearAndShow(t *testing.T) {
	fb := surface.NewFrameBuffer(16, 16, pixel.FormatRGB565)
	e := newEngine(t, fb, WithClear(true), WithShow(true))
	e.SetFont(testFont(t))
	fb.Pixel(15, 15, red)

	if err := e.Text("B", 0, 0); err != nil {
		t.Fatal(err)
	}
	if fb.At(15, 15) != 0 {
		t.Error("display not cleared before drawing")
	}
	if fb.ShowCount() != 1 {
		t.Errorf("ShowCount = %d, want 1", fb.ShowCount())
	}
	if err := e.Text("B", 0, 0, WithShow(false)); err != nil {
		t.Fatal(err)
	}
	if fb.ShowCount() != 1 {
		t.Error("WithShow(false) still showed")
	}
}

func TestTextDirectSink(t *testing.T) {
	rec := recording.NewRecorder(32, 16, surface.Capabilities{Format: pixel.FormatRGB565})
	e := newEngine(t, rec, WithHalfWidth(false))
	e.SetFont(testFont(t))
	if err := e.Text("AB", 0, 0); err != nil {
		t.Fatal(err)
	}
	if n := rec.Count(recording.CmdSetWindow); n != 2 {
		t.Errorf("windows = %d, want 2", n)
	}
	if n := rec.Count(recording.CmdWriteData); n != 2 {
		t.Errorf("writes = %d, want 2", n)
	}
}

func TestPlacements(t *testing.T) {
	e := newEngine(t, surface.NewFrameBuffer(64, 32, pixel.FormatRGB565))
	e.SetFont(testFont(t))

	pls, err := e.Placements("AB\tC", 0, 0, WithSize(16))
	if err != nil {
		t.Fatal(err)
	}
	var xs []int
	for _, pl := range pls {
		xs = append(xs, pl.X)
	}
	if len(xs) != 3 || xs[0] != 0 || xs[1] != 8 || xs[2] != 16 {
		t.Errorf("x positions = %v, want [0 8 16]", xs)
	}
}

func TestTextNormalize(t *testing.T) {
	e := newEngine(t, surface.NewFrameBuffer(64, 32, pixel.FormatRGB565))
	e.SetFont(testFont(t))

	decomposed := "e\u0301"
	pls, err := e.Placements(decomposed, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pls) != 1 || pls[0].Rune != 'é' {
		t.Errorf("normalized placements = %+v, want one é", pls)
	}
	pls, _ = e.Placements(decomposed, 0, 0, WithNormalize(false))
	if len(pls) != 2 {
		t.Errorf("unnormalized placements = %d, want 2", len(pls))
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 1, color.White)
	return img
}

func TestImageFromSniffs(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer) error{
		"pbm": func(b *bytes.Buffer) error { return codec.EncodePBM(b, testImage(), false) },
		"bmp": func(b *bytes.Buffer) error { return codec.EncodeBMP(b, testImage()) },
		"dat": func(b *bytes.Buffer) error { return codec.EncodeRaw(b, testImage()) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := enc(&buf); err != nil {
				t.Fatal(err)
			}
			fb := surface.NewFrameBuffer(4, 4, pixel.FormatRGB565)
			e := newEngine(t, fb)
			if err := e.ImageFrom(bytes.NewReader(buf.Bytes()), 1, 1); err != nil {
				t.Fatalf("ImageFrom: %v", err)
			}
			if got := fb.At(1, 1); got != red {
				t.Errorf("pixel (1, 1) = %#04x, want red", got)
			}
			if got := fb.At(2, 2); got != pixel.White {
				t.Errorf("pixel (2, 2) = %#04x, want white", got)
			}
		})
	}

	e := newEngine(t, surface.NewFrameBuffer(4, 4, pixel.FormatRGB565))
	err := e.ImageFrom(bytes.NewReader([]byte("GIF89a")), 0, 0)
	if !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Errorf("gif: err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.pbm")
	var buf bytes.Buffer
	if err := codec.EncodePBM(&buf, testImage(), true); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	fb := surface.NewFrameBuffer(4, 4, pixel.FormatRGB565)
	e := newEngine(t, fb, WithShow(true))
	if err := e.Image(path, 0, 0, WithColors(red, pixel.Black)); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if fb.At(1, 1) != red || fb.At(0, 0) != pixel.Black {
		t.Errorf("pixels = %#04x %#04x, want red at (1, 1) only", fb.At(1, 1), fb.At(0, 0))
	}
	if fb.ShowCount() != 1 {
		t.Errorf("ShowCount = %d, want 1", fb.ShowCount())
	}

	if err := e.PBM(filepath.Join(t.TempDir(), "none.pbm"), 0, 0); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
	if fb.ShowCount() != 1 {
		t.Error("failed draw call was shown")
	}
}

func TestImageKey(t *testing.T) {
	var buf bytes.Buffer
	if err := codec.EncodeRaw(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	fb := surface.NewFrameBuffer(2, 2, pixel.FormatRGB565)
	e := newEngine(t, fb, WithKey(pixel.Black))
	e.Fill(pixel.White)
	if err := e.RawFrom(&buf, 0, 0); err != nil {
		t.Fatal(err)
	}
	if fb.At(1, 0) != pixel.White {
		t.Error("keyed black pixel overwrote the background")
	}
	if fb.At(0, 0) != red {
		t.Error("red pixel not drawn")
	}
}

func TestShapes(t *testing.T) {
	fb := surface.NewFrameBuffer(8, 8, pixel.FormatMono)
	e := newEngine(t, fb)

	e.Rect(1, 1, 4, 3, pixel.White)
	for _, p := range []image.Point{{1, 1}, {4, 1}, {1, 3}, {4, 3}, {1, 2}, {4, 2}} {
		if fb.At(p.X, p.Y) != 1 {
			t.Errorf("Rect: pixel %v clear", p)
		}
	}
	if fb.At(2, 2) != 0 {
		t.Error("Rect filled its interior")
	}

	e.Clear()
	e.Line(0, 0, 7, 7, pixel.White)
	for i := 0; i < 8; i++ {
		if fb.At(i, i) != 1 {
			t.Errorf("Line: pixel (%d, %d) clear", i, i)
		}
	}
	if fb.At(1, 0) != 0 {
		t.Error("Line: pixel (1, 0) set")
	}

	e.Clear()
	e.Line(5, 2, 1, 2, pixel.White)
	e.VLine(7, 0, 8, pixel.White)
	if fb.At(1, 2) != 1 || fb.At(5, 2) != 1 || fb.At(7, 7) != 1 {
		t.Error("horizontal or vertical line incomplete")
	}
}

func TestClearSkippedForRejectedImage(t *testing.T) {
	encode := func(enc func(*bytes.Buffer) error) []byte {
		var buf bytes.Buffer
		if err := enc(&buf); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	bmp8 := encode(func(b *bytes.Buffer) error { return codec.EncodeBMP(b, testImage()) })
	bmp8[28] = 8
	bmpRLE := encode(func(b *bytes.Buffer) error { return codec.EncodeBMP(b, testImage()) })
	bmpRLE[30] = 1
	dat := encode(func(b *bytes.Buffer) error { return codec.EncodeRaw(b, testImage()) })
	datV2 := bytes.Replace(dat, []byte("\nV1\n"), []byte("\nV2\n"), 1)

	tests := []struct {
		name string
		draw func(*Engine, []byte) error
		data []byte
		want error
	}{
		{"bmp 8 bit", func(e *Engine, d []byte) error { return e.BMPFrom(bytes.NewReader(d), 0, 0) }, bmp8, codec.ErrUnsupportedFormat},
		{"bmp compressed", func(e *Engine, d []byte) error { return e.BMPFrom(bytes.NewReader(d), 0, 0) }, bmpRLE, codec.ErrUnsupportedFormat},
		{"pbm P5", func(e *Engine, d []byte) error { return e.PBMFrom(bytes.NewReader(d), 0, 0) }, []byte("P5\n2 2\n255\n\x00\x00\x00\x00"), codec.ErrUnsupportedFormat},
		{"dat V2", func(e *Engine, d []byte) error { return e.RawFrom(bytes.NewReader(d), 0, 0) }, datV2, codec.ErrUnsupportedVersion},
		{"image V2", func(e *Engine, d []byte) error { return e.ImageFrom(bytes.NewReader(d), 0, 0) }, datV2, codec.ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := surface.NewFrameBuffer(4, 4, pixel.FormatRGB565)
			e := newEngine(t, fb, WithClear(true), WithShow(true))
			e.Fill(pixel.White)
			if err := tt.draw(e, tt.data); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					if got := fb.At(x, y); got != pixel.White {
						t.Fatalf("pixel (%d, %d) = %#04x, rejected image changed the display", x, y, got)
					}
				}
			}
			if fb.ShowCount() != 0 {
				t.Error("rejected image was shown")
			}
		})
	}
}

func TestClearBeforeAcceptedImage(t *testing.T) {
	var buf bytes.Buffer
	if err := codec.EncodeBMP(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	fb := surface.NewFrameBuffer(4, 4, pixel.FormatRGB565)
	e := newEngine(t, fb, WithClear(true))
	e.Fill(pixel.White)
	if err := e.BMPFrom(bytes.NewReader(buf.Bytes()), 0, 0); err != nil {
		t.Fatal(err)
	}
	if got := fb.At(3, 3); got != 0 {
		t.Errorf("pixel (3, 3) = %#04x, want cleared", got)
	}
	if got := fb.At(0, 0); got != red {
		t.Errorf("pixel (0, 0) = %#04x, want red", got)
	}
}
