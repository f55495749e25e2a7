package bitmap

import (
	"bytes"
	"testing"

	"github.com/gogpu/tinydisplay/pixel"
)

// diagonal returns a size x size bitmap with the main diagonal set.
func diagonal(size int) []byte {
	b := make([]byte, Len(size))
	for i := 0; i < size; i++ {
		Set(b, Stride(size), i, i)
	}
	return b
}

func TestStride(t *testing.T) {
	tests := []struct{ size, want int }{
		{1, 1}, {7, 1}, {8, 1}, {12, 2}, {16, 2}, {17, 3}, {32, 4},
	}
	for _, tt := range tests {
		if got := Stride(tt.size); got != tt.want {
			t.Errorf("Stride(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
	if got := Len(12); got != 24 {
		t.Errorf("Len(12) = %d, want 24", got)
	}
}

func TestScaleIdentity(t *testing.T) {
	for _, n := range []int{8, 12, 16, 24} {
		src := diagonal(n)
		src[0] = 0xA5
		got := Scale(src, n, n)
		if !bytes.Equal(got, src) {
			t.Errorf("Scale(bitmap, %d, %d) changed the bitmap", n, n)
		}
	}
}

func TestScaleDoubleNearestNeighbour(t *testing.T) {
	const s = 8
	src := diagonal(s)
	// Add an off-diagonal pixel to catch swapped axes.
	Set(src, Stride(s), 5, 1)

	dst := Scale(src, s, 2*s)
	if len(dst) != Len(2*s) {
		t.Fatalf("len(dst) = %d, want %d", len(dst), Len(2*s))
	}
	for y := 0; y < 2*s; y++ {
		for x := 0; x < 2*s; x++ {
			want := Bit(src, Stride(s), x/2, y/2)
			if got := Bit(dst, Stride(2*s), x, y); got != want {
				t.Errorf("dst(%d, %d) = %v, want src(%d, %d) = %v", x, y, got, x/2, y/2, want)
			}
		}
	}
}

func TestScaleDown(t *testing.T) {
	const s = 16
	src := make([]byte, Len(s))
	for i := range src {
		src[i] = 0xFF
	}
	dst := Scale(src, s, 8)
	for i, b := range dst {
		if b != 0xFF {
			t.Errorf("dst[%d] = %#02x, want 0xff", i, b)
		}
	}
}

func TestScaleHonoursRowPadding(t *testing.T) {
	// 12 px rows occupy two bytes; pixel (0, 1) lives in byte 2.
	const s = 12
	src := make([]byte, Len(s))
	Set(src, Stride(s), 0, 1)

	dst := Scale(src, s, 24)
	if !Bit(dst, Stride(24), 0, 2) || !Bit(dst, Stride(24), 1, 3) {
		t.Error("scaled pixel block for source (0, 1) not set")
	}
	if Bit(dst, Stride(24), 0, 0) {
		t.Error("pixel (0, 0) set, padding was read as image data")
	}
}

func TestScaleColored(t *testing.T) {
	const s = 8
	src := diagonal(s)
	p := pixel.BuildPalette(pixel.White, pixel.Black)
	dst := ScaleColored(src, s, 2*s, p)

	if len(dst) != 2*s*2*s*2 {
		t.Fatalf("len = %d, want %d", len(dst), 2*s*2*s*2)
	}
	for y := 0; y < 2*s; y++ {
		for x := 0; x < 2*s; x++ {
			i := (y*2*s + x) * 2
			got := pixel.FromBytes(dst[i], dst[i+1])
			want := pixel.Black
			if x/2 == y/2 {
				want = pixel.White
			}
			if got != want {
				t.Errorf("pixel (%d, %d) = %#04x, want %#04x", x, y, got, want)
			}
		}
	}
}

func TestColorizeMatchesFlatten(t *testing.T) {
	src := diagonal(16)
	p := pixel.BuildPalette(0x1234, 0x5678)
	if !bytes.Equal(Colorize(src, 16, p), pixel.FlattenBits(src, p)) {
		t.Error("Colorize(16) differs from FlattenBits")
	}
	if got := len(Colorize(diagonal(12), 12, p)); got != 12*12*2 {
		t.Errorf("len(Colorize(12)) = %d, want %d", got, 12*12*2)
	}
}

func TestAlpha(t *testing.T) {
	m := Alpha(diagonal(8), 8)
	if m.AlphaAt(3, 3).A != 0xFF {
		t.Error("diagonal pixel not opaque")
	}
	if m.AlphaAt(3, 4).A != 0 {
		t.Error("off-diagonal pixel not transparent")
	}
}
