package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/tinydisplay/internal/logging"
	"github.com/gogpu/tinydisplay/internal/pool"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// Raw stream header lines.
const (
	RawSignature = "EasyDisplay"
	RawVersion   = "V1"
)

// maxRawLine bounds a raw stream header line.
const maxRawLine = 64

// RawHeader is the parsed header of a raw stream.
type RawHeader struct {
	Version string
	Width   int
	Height  int
}

func readRawLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadSlice('\n')
	switch {
	case errors.Is(err, bufio.ErrBufferFull) || len(line) > maxRawLine:
		return nil, &UnsupportedFormatError{Format: "dat", Reason: "header line too long"}
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return nil, &UnsupportedFormatError{Format: "dat", Reason: "truncated header"}
	case err != nil:
		return nil, fmt.Errorf("codec: read dat header: %w", err)
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// ReadRawHeader parses the three header lines of a raw stream, leaving br
// at the first pixel byte.
func ReadRawHeader(br *bufio.Reader) (RawHeader, error) {
	sig, err := readRawLine(br)
	if err != nil {
		return RawHeader{}, err
	}
	if string(sig) != RawSignature {
		return RawHeader{}, &UnsupportedFormatError{Format: "dat", Reason: fmt.Sprintf("signature %q", sig)}
	}
	ver, err := readRawLine(br)
	if err != nil {
		return RawHeader{}, err
	}
	if string(ver) != RawVersion {
		return RawHeader{}, &UnsupportedVersionError{Version: string(ver)}
	}
	dims, err := readRawLine(br)
	if err != nil {
		return RawHeader{}, err
	}
	f := bytes.Fields(dims)
	if len(f) != 2 {
		return RawHeader{}, &UnsupportedFormatError{Format: "dat", Reason: fmt.Sprintf("size line %q", dims)}
	}
	h := RawHeader{Version: string(ver)}
	h.Width, err = strconv.Atoi(string(f[0]))
	if err != nil || h.Width <= 0 || h.Width > maxDimension {
		return RawHeader{}, &UnsupportedFormatError{Format: "dat", Reason: fmt.Sprintf("bad width %q", f[0])}
	}
	h.Height, err = strconv.Atoi(string(f[1]))
	if err != nil || h.Height <= 0 || h.Height > maxDimension {
		return RawHeader{}, &UnsupportedFormatError{Format: "dat", Reason: fmt.Sprintf("bad height %q", f[1])}
	}
	return h, nil
}

// DrawRaw draws a pre-rendered RGB565 raw stream from r onto s.
//
// Sinks without a frame buffer receive the payload unchanged through a
// single window, so the key is ignored there. A stream that ends early on
// a row boundary draws the rows it has.
func DrawRaw(s surface.Sink, r io.Reader, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	br := bufio.NewReader(r)
	h, err := ReadRawHeader(br)
	if err != nil {
		return err
	}
	logging.L().Debug("codec: dat header", "width", h.Width, "height", h.Height)

	t := newTarget(s)
	if t.mono {
		return &UnsupportedFormatError{Format: "dat", Reason: "raw streams need an RGB565 sink"}
	}
	opts.beforeDraw()
	if t.canStream(opts.X, opts.Y, h.Width, h.Height) {
		return streamRaw(t, br, h, opts)
	}
	return blitRaw(t, br, h, opts)
}

// rawEnd maps a short read to nil when it stopped on a row boundary.
func rawEnd(err error, total, rowBytes int) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if total%rowBytes == 0 {
			return nil
		}
		return pixelErr("dat", io.ErrUnexpectedEOF)
	}
	return pixelErr("dat", err)
}

func blitRaw(t target, r io.Reader, h RawHeader, opts *Options) error {
	row := surface.NewBuffer(h.Width, 1, pixel.FormatRGB565)
	bo := opts.blitOptions()
	for y := 0; y < h.Height; y++ {
		n, err := io.ReadFull(r, row.Pix)
		if err != nil {
			return rawEnd(err, n, len(row.Pix))
		}
		t.sink.Blit(row, opts.X, opts.Y+y, bo)
	}
	return nil
}

func streamRaw(t target, r io.Reader, h RawHeader, opts *Options) error {
	buf := pool.Get(opts.chunk() * 10)
	defer pool.Put(buf)

	if err := t.stream.SetWindow(opts.X, opts.Y, opts.X+h.Width-1, opts.Y+h.Height-1); err != nil {
		return err
	}
	rowBytes := h.Width * 2
	total := 0
	for remaining := rowBytes * h.Height; remaining > 0; {
		n, err := io.ReadFull(r, buf[:min(len(buf), remaining)])
		if n > 0 {
			if werr := t.stream.WriteData(buf[:n]); werr != nil {
				return werr
			}
		}
		total += n
		remaining -= n
		if err != nil {
			return rawEnd(err, total, rowBytes)
		}
	}
	return nil
}
