package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/tinydisplay/internal/logging"
	"github.com/gogpu/tinydisplay/internal/pool"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// PNMHeader is the parsed header of a P4 or P6 image.
type PNMHeader struct {
	Magic  string // "P4" or "P6"
	Width  int
	Height int
	MaxVal int // P6 only
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// readToken returns the next header token, skipping whitespace and
// comments. The single whitespace byte ending the token is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#' && len(tok) == 0:
			if err := skipLine(br); err != nil {
				return "", err
			}
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
			if len(tok) > 16 {
				return "", &UnsupportedFormatError{Format: "pbm", Reason: "header token too long"}
			}
		}
	}
}

func skipLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

func readDimension(br *bufio.Reader, name string, limit int) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, headerErr(err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v <= 0 || v > limit {
		return 0, &UnsupportedFormatError{Format: "pbm", Reason: fmt.Sprintf("bad %s %q", name, tok)}
	}
	return v, nil
}

func headerErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &UnsupportedFormatError{Format: "pbm", Reason: "truncated header"}
	}
	return fmt.Errorf("codec: read pbm header: %w", err)
}

// ReadPNMHeader parses a P4 or P6 header from br, leaving br at the first
// pixel byte.
func ReadPNMHeader(br *bufio.Reader) (PNMHeader, error) {
	magic, err := readToken(br)
	if err != nil {
		return PNMHeader{}, headerErr(err)
	}
	if magic != "P4" && magic != "P6" {
		return PNMHeader{}, &UnsupportedFormatError{Format: "pbm", Reason: fmt.Sprintf("magic %q", magic)}
	}
	h := PNMHeader{Magic: magic}
	if h.Width, err = readDimension(br, "width", maxDimension); err != nil {
		return PNMHeader{}, err
	}
	if h.Height, err = readDimension(br, "height", maxDimension); err != nil {
		return PNMHeader{}, err
	}
	if magic == "P6" {
		if h.MaxVal, err = readDimension(br, "maxval", 255); err != nil {
			return PNMHeader{}, err
		}
	}
	return h, nil
}

// DrawPBM decodes a P4 or P6 image from r onto s.
func DrawPBM(s surface.Sink, r io.Reader, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	br := bufio.NewReader(r)
	h, err := ReadPNMHeader(br)
	if err != nil {
		return err
	}
	logging.L().Debug("codec: pbm header",
		"magic", h.Magic,
		"width", h.Width,
		"height", h.Height)

	opts.beforeDraw()
	t := newTarget(s)
	if h.Magic == "P4" {
		if t.canStream(opts.X, opts.Y, h.Width, h.Height) {
			return streamP4(t, br, h, opts)
		}
		return blitP4(t, br, h, opts)
	}
	return drawP6(t, br, h, opts)
}

func pixelErr(format string, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("codec: read %s pixels: %w", format, err)
}

// blitP4 reads the whole bitmap and blits it through the palette.
func blitP4(t target, r io.Reader, h PNMHeader, opts *Options) error {
	b := surface.NewBuffer(h.Width, h.Height, pixel.FormatMono)
	if _, err := io.ReadFull(r, b.Pix); err != nil {
		return pixelErr("pbm", err)
	}
	p := opts.palette()
	t.sink.Blit(b, opts.X, opts.Y, &surface.BlitOptions{Key: opts.Key, Palette: &p})
	return nil
}

// streamP4 pushes the bitmap to a direct sink in chunks of whole rows,
// flattening each through the palette. Row padding bits are dropped.
func streamP4(t target, r io.Reader, h PNMHeader, opts *Options) error {
	rowBytes := pixel.FormatMono.RowBytes(h.Width)
	rows := max(opts.chunk()/rowBytes, 1)
	p := opts.palette()

	in := pool.Get(rows * rowBytes)
	defer pool.Put(in)
	// Room for the padding of the last row, overwritten row by row.
	out := pool.Get(rows*h.Width*2 + 16)
	defer pool.Put(out)

	if err := t.stream.SetWindow(opts.X, opts.Y, opts.X+h.Width-1, opts.Y+h.Height-1); err != nil {
		return err
	}
	for y := 0; y < h.Height; y += rows {
		n := min(rows, h.Height-y)
		chunk := in[:n*rowBytes]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return pixelErr("pbm", err)
		}
		for i := 0; i < n; i++ {
			pixel.FlattenBitsInto(out[i*h.Width*2:], chunk[i*rowBytes:(i+1)*rowBytes], p)
		}
		if err := t.stream.WriteData(out[:n*h.Width*2]); err != nil {
			return err
		}
	}
	return nil
}

// drawP6 converts one row of RGB triplets at a time.
func drawP6(t target, r io.Reader, h PNMHeader, opts *Options) error {
	src := pool.Get(h.Width * 3)
	defer pool.Put(src)

	if t.mono {
		for y := 0; y < h.Height; y++ {
			if _, err := io.ReadFull(r, src); err != nil {
				return pixelErr("ppm", err)
			}
			for x := 0; x < h.Width; x++ {
				c := opts.monoLevel(src[x*3], src[x*3+1], src[x*3+2])
				t.plot(opts.X+x, opts.Y+y, c, opts)
			}
		}
		return nil
	}

	row := surface.NewBuffer(h.Width, 1, pixel.FormatRGB565)
	stream := t.canStream(opts.X, opts.Y, h.Width, h.Height)
	if stream {
		if err := t.stream.SetWindow(opts.X, opts.Y, opts.X+h.Width-1, opts.Y+h.Height-1); err != nil {
			return err
		}
	}
	bo := opts.blitOptions()
	for y := 0; y < h.Height; y++ {
		if _, err := io.ReadFull(r, src); err != nil {
			return pixelErr("ppm", err)
		}
		for x := 0; x < h.Width; x++ {
			row.Set(x, 0, opts.truecolor(src[x*3], src[x*3+1], src[x*3+2]))
		}
		if stream {
			if err := t.stream.WriteData(row.Pix); err != nil {
				return err
			}
			continue
		}
		t.sink.Blit(row, opts.X, opts.Y+y, bo)
	}
	return nil
}
