package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gogpu/tinydisplay/internal/logging"
	"github.com/gogpu/tinydisplay/internal/pool"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
)

// BMPHeader holds the fields of a BMP header the decoder uses.
type BMPHeader struct {
	Offset      int // start of pixel data
	Width       int
	Height      int  // always positive
	TopDown     bool // negative height on disk
	Planes      int
	BitCount    int
	Compression int
}

// Stride returns the padded size in bytes of one row of pixel data.
func (h BMPHeader) Stride() int {
	return (h.Width*3 + 3) &^ 3
}

// bmpHeaderErr reports a short header as a format error and passes other
// read failures through.
func bmpHeaderErr(err error, reason string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &UnsupportedFormatError{Format: "bmp", Reason: reason}
	}
	return fmt.Errorf("codec: read bmp header: %w", err)
}

// ReadBMPHeader reads and validates a BMP header. Only single-plane,
// uncompressed 24-bit images are accepted.
func ReadBMPHeader(r io.Reader) (BMPHeader, error) {
	var raw [bmpFileHeaderSize + bmpInfoHeaderSize]byte
	if _, err := io.ReadFull(r, raw[:2]); err != nil {
		return BMPHeader{}, bmpHeaderErr(err, "missing BM signature")
	}
	if string(raw[:2]) != "BM" {
		return BMPHeader{}, &UnsupportedFormatError{Format: "bmp", Reason: "missing BM signature"}
	}
	if _, err := io.ReadFull(r, raw[2:]); err != nil {
		return BMPHeader{}, bmpHeaderErr(err, "truncated header")
	}
	le := binary.LittleEndian
	dib := le.Uint32(raw[14:])
	width := int32(le.Uint32(raw[18:]))
	height := int32(le.Uint32(raw[22:]))
	h := BMPHeader{
		Offset:      int(le.Uint32(raw[10:])),
		Width:       int(width),
		Height:      int(height),
		Planes:      int(le.Uint16(raw[26:])),
		BitCount:    int(le.Uint16(raw[28:])),
		Compression: int(le.Uint32(raw[30:])),
	}
	if h.Height < 0 {
		h.Height = -h.Height
		h.TopDown = true
	}
	switch {
	case dib < bmpInfoHeaderSize:
		return BMPHeader{}, &UnsupportedFormatError{Format: "bmp", Reason: fmt.Sprintf("DIB header of %d bytes", dib)}
	case h.Planes != 1:
		return BMPHeader{}, &UnsupportedFormatError{Format: "bmp", Reason: fmt.Sprintf("%d planes", h.Planes)}
	case h.BitCount != 24:
		return BMPHeader{}, &UnsupportedFormatError{Format: "bmp", Reason: fmt.Sprintf("%d bits per pixel, only 24 is supported", h.BitCount)}
	case h.Compression != 0:
		return BMPHeader{}, &UnsupportedFormatError{Format: "bmp", Reason: fmt.Sprintf("compression method %d", h.Compression)}
	case h.Width <= 0 || h.Width > maxDimension || h.Height == 0 || h.Height > maxDimension:
		return BMPHeader{}, &UnsupportedFormatError{Format: "bmp", Reason: fmt.Sprintf("bad size %dx%d", h.Width, h.Height)}
	case h.Offset < bmpFileHeaderSize+bmpInfoHeaderSize:
		return BMPHeader{}, &UnsupportedFormatError{Format: "bmp", Reason: fmt.Sprintf("pixel offset %d", h.Offset)}
	}
	return h, nil
}

// DrawBMP decodes a 24-bit BMP from r onto s. The image is clipped to the
// sink; rows are read with seeks so bottom-up files need no buffering.
// Offsets in the header are relative to the position of r on entry.
func DrawBMP(s surface.Sink, r io.ReadSeeker, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	base, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("codec: bmp: %w", err)
	}
	h, err := ReadBMPHeader(r)
	if err != nil {
		return err
	}
	opts.beforeDraw()

	w, ht := h.Width, h.Height
	if opts.X >= 0 {
		w = min(w, s.Width()-opts.X)
	}
	if opts.Y >= 0 {
		ht = min(ht, s.Height()-opts.Y)
	}
	logger := logging.L()
	logger.Debug("codec: bmp header",
		"width", h.Width,
		"height", h.Height,
		"top_down", h.TopDown)
	if w <= 0 || ht <= 0 {
		logger.Warn("codec: bmp outside display", "x", opts.X, "y", opts.Y)
		return nil
	}
	if w != h.Width || ht != h.Height {
		logger.Warn("codec: bmp clipped",
			"width", h.Width, "height", h.Height,
			"visible_width", w, "visible_height", ht)
	}

	t := newTarget(s)
	src := pool.Get(w * 3)
	defer pool.Put(src)

	var row *surface.Buffer
	stream := false
	if !t.mono {
		row = surface.NewBuffer(w, 1, pixel.FormatRGB565)
		stream = t.canStream(opts.X, opts.Y, w, ht)
		if stream {
			if err := t.stream.SetWindow(opts.X, opts.Y, opts.X+w-1, opts.Y+ht-1); err != nil {
				return err
			}
		}
	}
	bo := opts.blitOptions()

	stride := h.Stride()
	for y := 0; y < ht; y++ {
		fileRow := y
		if !h.TopDown {
			fileRow = h.Height - 1 - y
		}
		if _, err := r.Seek(base+int64(h.Offset+fileRow*stride), io.SeekStart); err != nil {
			return fmt.Errorf("codec: seek bmp row %d: %w", y, err)
		}
		if _, err := io.ReadFull(r, src); err != nil {
			return pixelErr("bmp", err)
		}
		for x := 0; x < w; x++ {
			b, g, rr := src[x*3], src[x*3+1], src[x*3+2]
			if t.mono {
				t.plot(opts.X+x, opts.Y+y, opts.monoLevel(rr, g, b), opts)
				continue
			}
			row.Set(x, 0, opts.truecolor(rr, g, b))
		}
		switch {
		case t.mono:
		case stream:
			if err := t.stream.WriteData(row.Pix); err != nil {
				return err
			}
		default:
			t.sink.Blit(row, opts.X, opts.Y+y, bo)
		}
	}
	return nil
}
