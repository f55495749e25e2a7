package pixel

import (
	"bytes"
	stdcolor "image/color"
	"testing"
)

func TestPackColorWireOrder(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		wire    [2]byte
	}{
		{"red", 255, 0, 0, [2]byte{0xF8, 0x00}},
		{"green", 0, 255, 0, [2]byte{0x07, 0xE0}},
		{"blue", 0, 0, 255, [2]byte{0x00, 0x1F}},
		{"white", 255, 255, 255, [2]byte{0xFF, 0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PackColor(tt.r, tt.g, tt.b)
			if got := c.Bytes(); got != tt.wire {
				t.Errorf("PackColor(%d, %d, %d).Bytes() = %x, want %x", tt.r, tt.g, tt.b, got, tt.wire)
			}
			if got := FromBytes(tt.wire[0], tt.wire[1]); got != c {
				t.Errorf("FromBytes(%x) = %#04x, want %#04x", tt.wire, got, c)
			}
		})
	}
}

func TestColorRGB565RoundTrip(t *testing.T) {
	c := FromRGB565(0xF81F)
	if c.RGB565() != 0xF81F {
		t.Errorf("RGB565() = %#04x, want 0xf81f", c.RGB565())
	}
	if c != 0x1FF8 {
		t.Errorf("FromRGB565(0xF81F) = %#04x, want 0x1ff8", uint16(c))
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := PackColor(255, 0, 0).RGBA()
	if r != 0xFFFF || g != 0 || b != 0 || a != 0xFFFF {
		t.Errorf("red RGBA() = (%#x, %#x, %#x, %#x)", r, g, b, a)
	}
}

func TestModelConvert(t *testing.T) {
	got := ColorOf(stdcolor.RGBA{R: 0, G: 255, B: 0, A: 255})
	if want := PackColor(0, 255, 0); got != want {
		t.Errorf("ColorOf(green) = %#04x, want %#04x", got, want)
	}
	if got := ColorOf(White); got != White {
		t.Errorf("ColorOf(White) = %#04x, want White", got)
	}
}

func TestBuildPalette(t *testing.T) {
	fg := Color(0x1234)
	bg := Color(0xABCD)
	p := BuildPalette(fg, bg)

	if len(p) != 2 {
		t.Fatalf("palette has %d entries, want 2", len(p))
	}
	if p[0] != [2]byte{0xCD, 0xAB} {
		t.Errorf("entry 0 = %x, want bg little-endian cdab", p[0])
	}
	if p[1] != [2]byte{0x34, 0x12} {
		t.Errorf("entry 1 = %x, want fg little-endian 3412", p[1])
	}
	if p.Background() != bg || p.Foreground() != fg {
		t.Errorf("Background/Foreground = %#04x/%#04x", p.Background(), p.Foreground())
	}
	if s := p.Swapped(); s.Foreground() != bg || s.Background() != fg {
		t.Error("Swapped did not exchange entries")
	}
}

func TestFlattenBits(t *testing.T) {
	p := BuildPalette(White, Black)
	got := FlattenBits([]byte{0b10000001}, p)
	want := []byte{
		0xFF, 0xFF,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0xFF, 0xFF,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlattenBits = %x, want %x", got, want)
	}
}

func TestFlattenBitsSize(t *testing.T) {
	in := make([]byte, 32)
	if got := len(FlattenBits(in, Palette{})); got != 512 {
		t.Errorf("len(FlattenBits(32 bytes)) = %d, want 512", got)
	}
}

func TestInvertBitsInvolution(t *testing.T) {
	orig := []byte{0x00, 0xFF, 0x5A, 0x81, 0x3C}
	data := append([]byte(nil), orig...)

	InvertBits(data)
	if bytes.Equal(data, orig) {
		t.Fatal("InvertBits left data unchanged")
	}
	if data[2] != 0xA5 {
		t.Errorf("InvertBits(0x5a) = %#02x, want 0xa5", data[2])
	}
	InvertBits(data)
	if !bytes.Equal(data, orig) {
		t.Errorf("InvertBits twice = %x, want %x", data, orig)
	}
}

func TestFormatRowBytes(t *testing.T) {
	tests := []struct {
		f     Format
		width int
		want  int
	}{
		{FormatMono, 1, 1},
		{FormatMono, 8, 1},
		{FormatMono, 9, 2},
		{FormatMono, 16, 2},
		{FormatRGB565, 3, 6},
	}
	for _, tt := range tests {
		if got := tt.f.RowBytes(tt.width); got != tt.want {
			t.Errorf("%v.RowBytes(%d) = %d, want %d", tt.f, tt.width, got, tt.want)
		}
	}
	if !FormatMono.Info().IsMonochrome || FormatRGB565.Info().IsMonochrome {
		t.Error("IsMonochrome flags wrong")
	}
	if Format(9).IsValid() {
		t.Error("Format(9) should be invalid")
	}
}
