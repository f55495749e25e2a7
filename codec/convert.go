package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gogpu/tinydisplay/pixel"
)

// convertChunk is the number of P4 bytes flattened at a time.
const convertChunk = 4096

// ConvertOptions colours monochrome input for ConvertToRaw.
type ConvertOptions struct {
	FG, BG pixel.Color
	Invert bool
}

// ConvertToRaw converts a P4 or P6 image read from r into a V1 raw stream.
// P4 rows are flattened through the {BG, FG} palette with their padding
// bits dropped; P6 pixels are packed to RGB565.
func ConvertToRaw(w io.Writer, r io.Reader, opts ConvertOptions) error {
	br := bufio.NewReader(r)
	h, err := ReadPNMHeader(br)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if err := writeRawHeader(bw, h.Width, h.Height); err != nil {
		return fmt.Errorf("codec: convert: %w", err)
	}
	if h.Magic == "P4" {
		err = convertP4(bw, br, h, opts)
	} else {
		err = convertP6(bw, br, h, opts)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: convert: %w", err)
	}
	return nil
}

func convertP4(w io.Writer, r io.Reader, h PNMHeader, opts ConvertOptions) error {
	p := pixel.BuildPalette(opts.FG, opts.BG)
	if opts.Invert {
		p = p.Swapped()
	}
	rowBytes := pixel.FormatMono.RowBytes(h.Width)
	rows := max(convertChunk/rowBytes, 1)
	in := make([]byte, rows*rowBytes)
	flat := make([]byte, rowBytes*16)
	for y := 0; y < h.Height; y += rows {
		n := min(rows, h.Height-y)
		chunk := in[:n*rowBytes]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return pixelErr("pbm", err)
		}
		for i := 0; i < n; i++ {
			pixel.FlattenBitsInto(flat, chunk[i*rowBytes:(i+1)*rowBytes], p)
			if _, err := w.Write(flat[:h.Width*2]); err != nil {
				return fmt.Errorf("codec: convert: %w", err)
			}
		}
	}
	return nil
}

func convertP6(w io.Writer, r io.Reader, h PNMHeader, opts ConvertOptions) error {
	src := make([]byte, h.Width*3)
	dst := make([]byte, h.Width*2)
	o := Options{Invert: opts.Invert}
	for y := 0; y < h.Height; y++ {
		if _, err := io.ReadFull(r, src); err != nil {
			return pixelErr("ppm", err)
		}
		for x := 0; x < h.Width; x++ {
			c := o.truecolor(src[x*3], src[x*3+1], src[x*3+2]).Bytes()
			dst[x*2], dst[x*2+1] = c[0], c[1]
		}
		if _, err := w.Write(dst); err != nil {
			return fmt.Errorf("codec: convert: %w", err)
		}
	}
	return nil
}
