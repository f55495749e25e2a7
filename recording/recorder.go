package recording

import (
	"bytes"
	"slices"

	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// Recorder captures sink calls as commands.
//
// Capabilities are chosen at construction, so one Recorder type can stand
// in for buffered and direct targets of either pixel format. A Recorder
// always implements Streamer; callers decide how to draw from
// Capabilities().FrameBuffer.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	caps          surface.Capabilities
	commands      []Command
}

var (
	_ surface.Sink     = (*Recorder)(nil)
	_ surface.Streamer = (*Recorder)(nil)
	_ surface.Shower   = (*Recorder)(nil)
)

// NewRecorder creates a Recorder for a width x height display.
func NewRecorder(width, height int, caps surface.Capabilities) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		caps:     caps,
		commands: make([]Command, 0, 64),
	}
}

// Width returns the display width.
func (r *Recorder) Width() int { return r.width }

// Height returns the display height.
func (r *Recorder) Height() int { return r.height }

// Capabilities returns the capabilities given to NewRecorder.
func (r *Recorder) Capabilities() surface.Capabilities { return r.caps }

// Pixel records a Pixel call.
func (r *Recorder) Pixel(x, y int, c pixel.Color) {
	r.commands = append(r.commands, PixelCommand{X: x, Y: y, Color: c})
}

// FillRect records a FillRect call.
func (r *Recorder) FillRect(x, y, w, h int, c pixel.Color) {
	r.commands = append(r.commands, FillRectCommand{X: x, Y: y, W: w, H: h, Color: c})
}

// HLine records an HLine call.
func (r *Recorder) HLine(x, y, length int, c pixel.Color) {
	r.commands = append(r.commands, HLineCommand{X: x, Y: y, Length: length, Color: c})
}

// Blit records a Blit call. The buffer is copied.
func (r *Recorder) Blit(b *surface.Buffer, x, y int, opts *surface.BlitOptions) {
	cmd := BlitCommand{X: x, Y: y}
	if b != nil {
		cp := *b
		cp.Pix = bytes.Clone(b.Pix)
		cmd.Buffer = &cp
	}
	if opts != nil {
		if opts.Key != nil {
			k := *opts.Key
			cmd.Key = &k
		}
		if opts.Palette != nil {
			p := *opts.Palette
			cmd.Palette = &p
		}
	}
	r.commands = append(r.commands, cmd)
}

// SetWindow records a SetWindow call.
func (r *Recorder) SetWindow(x0, y0, x1, y1 int) error {
	r.commands = append(r.commands, SetWindowCommand{X0: x0, Y0: y0, X1: x1, Y1: y1})
	return nil
}

// WriteData records a WriteData call. The data is copied.
func (r *Recorder) WriteData(p []byte) error {
	r.commands = append(r.commands, WriteDataCommand{Data: bytes.Clone(p)})
	return nil
}

// Show records a Show call.
func (r *Recorder) Show() error {
	r.commands = append(r.commands, ShowCommand{})
	return nil
}

// Commands returns the commands recorded so far.
func (r *Recorder) Commands() []Command { return r.commands }

// Count returns the number of recorded commands of type t.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() { r.commands = r.commands[:0] }

// FinishRecording returns an immutable Recording of the commands so far.
// The Recorder may continue to be used.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: slices.Clone(r.commands),
	}
}

// Recording is an immutable list of recorded sink calls.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recorded display.
func (r *Recording) Width() int { return r.width }

// Height returns the height of the recorded display.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Playback replays the recording onto s. Streaming commands require s to
// implement surface.Streamer; Show is skipped when s is not a Shower.
func (r *Recording) Playback(s surface.Sink) error {
	st, _ := s.(surface.Streamer)
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case PixelCommand:
			s.Pixel(c.X, c.Y, c.Color)
		case FillRectCommand:
			s.FillRect(c.X, c.Y, c.W, c.H, c.Color)
		case HLineCommand:
			s.HLine(c.X, c.Y, c.Length, c.Color)
		case BlitCommand:
			s.Blit(c.Buffer, c.X, c.Y, c.Options())
		case SetWindowCommand:
			if st == nil {
				return surface.ErrNoStreamer
			}
			if err := st.SetWindow(c.X0, c.Y0, c.X1, c.Y1); err != nil {
				return err
			}
		case WriteDataCommand:
			if st == nil {
				return surface.ErrNoStreamer
			}
			if err := st.WriteData(c.Data); err != nil {
				return err
			}
		case ShowCommand:
			if err := surface.Show(s); err != nil {
				return err
			}
		}
	}
	return nil
}
