package fontgen

import (
	"bytes"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/internal/bitmap"
)

func TestRunes(t *testing.T) {
	got := Runes("hello\n\tworld 世")
	want := []rune{' ', 'd', 'e', 'h', 'l', 'o', 'r', 'w', '世'}
	if string(got) != string(want) {
		t.Errorf("Runes = %q, want %q", string(got), string(want))
	}
}

func TestGlyph(t *testing.T) {
	face := basicfont.Face7x13
	bits, ok := Glyph(face, 'I', Options{Size: 16})
	if !ok {
		t.Fatal("Glyph('I') not found")
	}
	if len(bits) != bitmap.Len(16) {
		t.Fatalf("len = %d, want %d", len(bits), bitmap.Len(16))
	}
	set := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if bitmap.Bit(bits, 2, x, y) {
				set++
				if x >= 7 {
					t.Errorf("pixel (%d, %d) outside the 7 px cell", x, y)
				}
			}
		}
	}
	if set == 0 {
		t.Error("glyph is empty")
	}

	space, _ := Glyph(face, ' ', Options{Size: 16})
	for _, b := range space {
		if b != 0 {
			t.Fatal("space has set pixels")
		}
	}
}

func TestBuild(t *testing.T) {
	var buf bytes.Buffer
	// basicfont draws a replacement glyph for everything beyond ASCII.
	ascii := func(r rune) bool { return r < 0x80 }
	st, err := Build(&buf, basicfont.Face7x13, Runes("AB世"), Options{Size: 12, Has: ascii})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Glyphs != 2 || len(st.Skipped) != 1 || st.Skipped[0] != '世' {
		t.Errorf("stats = %+v, want 2 glyphs and 世 skipped", st)
	}
	if st.Bytes != int64(buf.Len()) {
		t.Errorf("Bytes = %d, want %d", st.Bytes, buf.Len())
	}

	f, err := bmf.Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if err := bmf.Verify(f); err != nil {
		t.Errorf("Verify: %v", err)
	}
	want, _ := Glyph(basicfont.Face7x13, 'B', Options{Size: 12})
	got, found, err := f.Lookup('B')
	if err != nil || !found || !bytes.Equal(got, want) {
		t.Errorf("Lookup('B') = %x, %v, %v", got, found, err)
	}

	if _, err := Build(&buf, basicfont.Face7x13, nil, Options{}); err == nil {
		t.Error("Build with size 0 succeeded")
	}
}
