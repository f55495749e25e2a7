package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/tinydisplay/pixel"
)

// rgb8 returns the 8-bit channels of the pixel at (x, y).
func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

// EncodePBM writes img as a binary PNM. With mono set it writes P4 with a
// bit set for every pixel that thresholds to the foreground; otherwise it
// writes P6 with a maximum value of 255.
func EncodePBM(w io.Writer, img image.Image, mono bool) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if mono {
		fmt.Fprintf(bw, "P4\n%d %d\n", b.Dx(), b.Dy())
		row := make([]byte, pixel.FormatMono.RowBytes(b.Dx()))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			clear(row)
			for x := b.Min.X; x < b.Max.X; x++ {
				if pixel.IsForeground(rgb8(img, x, y)) {
					i := x - b.Min.X
					row[i>>3] |= 0x80 >> uint(i&7)
				}
			}
			bw.Write(row)
		}
	} else {
		fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Dx(), b.Dy())
		row := make([]byte, b.Dx()*3)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := (x - b.Min.X) * 3
				row[i], row[i+1], row[i+2] = rgb8(img, x, y)
			}
			bw.Write(row)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: encode pbm: %w", err)
	}
	return nil
}

// EncodeBMP writes img as an uncompressed 24-bit bottom-up BMP.
func EncodeBMP(w io.Writer, img image.Image) error {
	b := img.Bounds()
	h := BMPHeader{Width: b.Dx(), Height: b.Dy()}
	stride := h.Stride()
	offset := bmpFileHeaderSize + bmpInfoHeaderSize

	var hdr [bmpFileHeaderSize + bmpInfoHeaderSize]byte
	le := binary.LittleEndian
	copy(hdr[:2], "BM")
	le.PutUint32(hdr[2:], uint32(offset+stride*h.Height))
	le.PutUint32(hdr[10:], uint32(offset))
	le.PutUint32(hdr[14:], bmpInfoHeaderSize)
	le.PutUint32(hdr[18:], uint32(h.Width))
	le.PutUint32(hdr[22:], uint32(h.Height))
	le.PutUint16(hdr[26:], 1)
	le.PutUint16(hdr[28:], 24)
	le.PutUint32(hdr[34:], uint32(stride*h.Height))

	bw := bufio.NewWriter(w)
	bw.Write(hdr[:])
	row := make([]byte, stride)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := (x - b.Min.X) * 3
			r, g, bl := rgb8(img, x, y)
			row[i], row[i+1], row[i+2] = bl, g, r
		}
		bw.Write(row)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: encode bmp: %w", err)
	}
	return nil
}

func writeRawHeader(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n%d %d\n", RawSignature, RawVersion, width, height)
	return err
}

// EncodeRaw writes img as a V1 raw stream of wire-order RGB565 pixels.
func EncodeRaw(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	writeRawHeader(bw, b.Dx(), b.Dy())
	row := make([]byte, b.Dx()*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := pixel.PackColor(rgb8(img, x, y)).Bytes()
			i := (x - b.Min.X) * 2
			row[i], row[i+1] = c[0], c[1]
		}
		bw.Write(row)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: encode dat: %w", err)
	}
	return nil
}
