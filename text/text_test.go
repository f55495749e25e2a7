package text

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/internal/bitmap"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/recording"
	"github.com/gogpu/tinydisplay/surface"
)

// testFont builds an 8px font whose glyphs have only the top-left pixel set.
func testFont(t *testing.T, runes ...rune) *bmf.Font {
	t.Helper()
	enc := bmf.NewEncoder(8)
	for _, r := range runes {
		bits := make([]byte, bitmap.Len(8))
		bits[0] = 0x80
		if err := enc.Add(r, bits); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if _, err := enc.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	f, err := bmf.Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func collect(t *testing.T, s string, p Params) []Placement {
	t.Helper()
	var got []Placement
	if err := Layout(s, p, func(pl Placement) error {
		got = append(got, pl)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return got
}

type pos struct{ x, y int }

func positions(pls []Placement) []pos {
	out := make([]pos, len(pls))
	for i, pl := range pls {
		out[i] = pos{pl.X, pl.Y}
	}
	return out
}

func TestLayoutTab(t *testing.T) {
	got := collect(t, "AB\tC", Params{Width: 128, Height: 64, Size: 16, HalfWidth: true})
	want := []pos{{0, 0}, {8, 0}, {16, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %d placements, want %d", len(got), len(want))
	}
	for i, w := range want {
		if (pos{got[i].X, got[i].Y}) != w {
			t.Errorf("placement %d (%q) at %v, want %v", i, got[i].Rune, pos{got[i].X, got[i].Y}, w)
		}
	}
}

func TestNextTabStop(t *testing.T) {
	tests := []struct{ x, x0, size, want int }{
		{0, 0, 16, 0},
		{8, 0, 16, 16},
		{16, 0, 16, 16},
		{17, 0, 16, 32},
		{12, 4, 16, 20},
		{20, 4, 16, 20},
		{21, 4, 16, 36},
	}
	for _, tt := range tests {
		if got := nextTabStop(tt.x, tt.x0, tt.size); got != tt.want {
			t.Errorf("nextTabStop(%d, %d, %d) = %d, want %d", tt.x, tt.x0, tt.size, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name string
		s    string
		p    Params
		want []pos
	}{
		{
			name: "newline resets to initial column",
			s:    "A\nB",
			p:    Params{X: 4, Y: 2, Width: 100, Height: 100, Size: 8, HalfWidth: true, LineSpacing: 1},
			want: []pos{{4, 2}, {4, 11}},
		},
		{
			name: "full width advance",
			s:    "AB中",
			p:    Params{Width: 100, Height: 100, Size: 8},
			want: []pos{{0, 0}, {8, 0}, {16, 0}},
		},
		{
			name: "half width only for ascii",
			s:    "A中B",
			p:    Params{Width: 100, Height: 100, Size: 8, HalfWidth: true},
			want: []pos{{0, 0}, {4, 0}, {12, 0}},
		},
		{
			name: "control characters dropped",
			s:    "A\x01\x0fB",
			p:    Params{Width: 100, Height: 100, Size: 8},
			want: []pos{{0, 0}, {8, 0}},
		},
		{
			name: "auto wrap full width",
			s:    "中中中",
			p:    Params{Width: 20, Height: 100, Size: 8, AutoWrap: true},
			want: []pos{{0, 0}, {8, 0}, {0, 8}},
		},
		{
			name: "auto wrap half width threshold",
			s:    "AAAAA中",
			p:    Params{Width: 20, Height: 100, Size: 8, HalfWidth: true, AutoWrap: true},
			want: []pos{{0, 0}, {4, 0}, {8, 0}, {12, 0}, {16, 0}, {0, 8}},
		},
		{
			name: "no wrap without auto wrap",
			s:    "中中中",
			p:    Params{Width: 20, Height: 100, Size: 8},
			want: []pos{{0, 0}, {8, 0}, {16, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := positions(collect(t, tt.s, tt.p))
			if len(got) != len(tt.want) {
				t.Fatalf("positions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("positions = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestLayoutOutOfBoundsAdvances(t *testing.T) {
	got := collect(t, "ABCD", Params{Width: 12, Height: 100, Size: 8})
	if len(got) != 4 {
		t.Fatalf("got %d placements, want 4", len(got))
	}
	wantVisible := []bool{true, true, false, false}
	for i, pl := range got {
		if pl.Visible != wantVisible[i] {
			t.Errorf("placement %d visible = %v, want %v", i, pl.Visible, wantVisible[i])
		}
		if pl.X != i*8 {
			t.Errorf("placement %d at x=%d, want %d", i, pl.X, i*8)
		}
	}
}

func TestLayoutStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	n := 0
	err := Layout("ABC", Params{Width: 100, Height: 100, Size: 8}, func(Placement) error {
		n++
		return boom
	})
	if !errors.Is(err, boom) || n != 1 {
		t.Errorf("Layout = %v after %d calls, want boom after 1", err, n)
	}
}

func TestRenderMono(t *testing.T) {
	r := NewRasterizer(testFont(t, 'A'), 0)
	g, err := r.Render('A', Style{FG: 1, Format: pixel.FormatMono})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size != 8 || g.Buffer.Format != pixel.FormatMono || !g.Found {
		t.Fatalf("glyph = %+v", g)
	}
	if g.Buffer.At(0, 0) != 1 || g.Buffer.At(1, 0) != 0 {
		t.Error("mono mask wrong")
	}
	if g.Key != nil {
		t.Error("opaque glyph has a key")
	}

	inv, _ := r.Render('A', Style{FG: 1, Format: pixel.FormatMono, Invert: true})
	if inv.Buffer.At(0, 0) != 0 || inv.Buffer.At(1, 0) != 1 {
		t.Error("inverted mask wrong")
	}
}

func TestRenderRGB565Scaled(t *testing.T) {
	r := NewRasterizer(testFont(t, 'A'), 0)
	fg := pixel.PackColor(255, 0, 0)
	bg := pixel.PackColor(0, 0, 255)
	g, err := r.Render('A', Style{Size: 16, FG: fg, BG: bg, TransparentBG: true, Format: pixel.FormatRGB565})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Buffer.Pix) != 16*16*2 {
		t.Fatalf("len(Pix) = %d, want %d", len(g.Buffer.Pix), 16*16*2)
	}
	for _, p := range []pos{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if got := g.Buffer.At(p.x, p.y); got != fg {
			t.Errorf("At%v = %#04x, want fg", p, got)
		}
	}
	if got := g.Buffer.At(2, 0); got != bg {
		t.Errorf("At(2, 0) = %#04x, want bg", got)
	}
	if g.Key == nil || *g.Key != bg {
		t.Error("transparent glyph key should be bg")
	}
}

func TestRenderMissingGlyph(t *testing.T) {
	r := NewRasterizer(testFont(t, 'A'), 0)
	g, err := r.Render('Z', Style{Format: pixel.FormatMono})
	if err != nil {
		t.Fatal(err)
	}
	if g.Found {
		t.Error("missing glyph reported found")
	}
	if g.Size != 8 {
		t.Errorf("placeholder size = %d, want 8", g.Size)
	}
}

func TestRenderCache(t *testing.T) {
	r := NewRasterizer(testFont(t, 'A', 'B'), 4)
	st := Style{FG: pixel.White, Format: pixel.FormatRGB565}
	a1, _ := r.Render('A', st)
	a2, _ := r.Render('A', st)
	if a1 != a2 {
		t.Error("second render not served from cache")
	}
	st.FG = pixel.Black
	if a3, _ := r.Render('A', st); a3 == a1 {
		t.Error("different style shared a cache entry")
	}
	s := r.CacheStats()
	if s.Hits != 1 || s.Misses != 2 || s.Len != 2 {
		t.Errorf("CacheStats = %+v", s)
	}
	r.Reset()
	if r.CacheStats().Len != 0 {
		t.Error("Reset did not empty the cache")
	}
}

func TestDrawBuffered(t *testing.T) {
	rec := recording.NewRecorder(64, 32, surface.Capabilities{FrameBuffer: true, Format: pixel.FormatRGB565})
	r := NewRasterizer(testFont(t, 'A', 'B', 'C'), 16)
	err := Draw(rec, r, "AB\tC", Params{Size: 16, HalfWidth: true}, Style{FG: pixel.White, Format: pixel.FormatRGB565})
	if err != nil {
		t.Fatal(err)
	}
	want := []pos{{0, 0}, {8, 0}, {16, 0}}
	cmds := rec.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("recorded %d commands, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		b, ok := c.(recording.BlitCommand)
		if !ok {
			t.Fatalf("command %d = %v, want Blit", i, c.Type())
		}
		if (pos{b.X, b.Y}) != want[i] {
			t.Errorf("blit %d at (%d, %d), want %v", i, b.X, b.Y, want[i])
		}
		if b.Buffer.Width != 16 {
			t.Errorf("blit %d width = %d, want 16", i, b.Buffer.Width)
		}
	}
}

func TestDrawDirectStreams(t *testing.T) {
	rec := recording.NewRecorder(32, 16, surface.Capabilities{Format: pixel.FormatRGB565})
	r := NewRasterizer(testFont(t, 'A'), 0)
	st := Style{FG: pixel.White, Format: pixel.FormatRGB565}
	if err := Draw(rec, r, "AAAAA", Params{}, st); err != nil {
		t.Fatal(err)
	}
	// Four glyphs fit, the fifth starts at x=32 and overhangs.
	if got := rec.Count(recording.CmdSetWindow); got != 4 {
		t.Errorf("SetWindow count = %d, want 4", got)
	}
	if got := rec.Count(recording.CmdBlit); got != 1 {
		t.Errorf("Blit count = %d, want 1 for the clipped glyph", got)
	}
	w := rec.Commands()[2].(recording.SetWindowCommand)
	if w != (recording.SetWindowCommand{X0: 8, Y0: 0, X1: 15, Y1: 7}) {
		t.Errorf("second window = %+v", w)
	}
	if n := len(rec.Commands()[1].(recording.WriteDataCommand).Data); n != 8*8*2 {
		t.Errorf("WriteData length = %d, want %d", n, 8*8*2)
	}

	rec.Reset()
	st.TransparentBG = true
	if err := Draw(rec, r, "A", Params{}, st); err != nil {
		t.Fatal(err)
	}
	if rec.Count(recording.CmdBlit) != 1 || rec.Count(recording.CmdWriteData) != 0 {
		t.Error("keyed glyph must be blitted, not streamed")
	}
}

func TestDrawOntoFrameBuffer(t *testing.T) {
	fb := surface.NewFrameBuffer(16, 8, pixel.FormatMono)
	r := NewRasterizer(testFont(t, 'A'), 0)
	err := Draw(fb, r, "AA", Params{}, Style{FG: 1, BG: 0, Format: pixel.FormatMono})
	if err != nil {
		t.Fatal(err)
	}
	if fb.At(0, 0) == 0 || fb.At(8, 0) == 0 {
		t.Error("glyph pixels not set")
	}
	if fb.At(1, 0) != 0 {
		t.Error("background pixel set")
	}
}
