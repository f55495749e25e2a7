package recording

import (
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Drawing commands
	CmdPixel    CommandType = iota // Set one pixel
	CmdFillRect                    // Fill a rectangle
	CmdHLine                       // Horizontal line
	CmdBlit                        // Copy a buffer

	// Streaming commands
	CmdSetWindow // Select address window
	CmdWriteData // Push pixel bytes

	// Frame commands
	CmdShow // Push frame buffer to the panel
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdPixel:     "Pixel",
	CmdFillRect:  "FillRect",
	CmdHLine:     "HLine",
	CmdBlit:      "Blit",
	CmdSetWindow: "SetWindow",
	CmdWriteData: "WriteData",
	CmdShow:      "Show",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// PixelCommand records Sink.Pixel.
type PixelCommand struct {
	X, Y  int
	Color pixel.Color
}

// Type implements Command.
func (PixelCommand) Type() CommandType { return CmdPixel }

// FillRectCommand records Sink.FillRect.
type FillRectCommand struct {
	X, Y, W, H int
	Color      pixel.Color
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// HLineCommand records Sink.HLine.
type HLineCommand struct {
	X, Y, Length int
	Color        pixel.Color
}

// Type implements Command.
func (HLineCommand) Type() CommandType { return CmdHLine }

// BlitCommand records Sink.Blit. Buffer, Key and Palette are copies taken
// at record time.
type BlitCommand struct {
	Buffer  *surface.Buffer
	X, Y    int
	Key     *pixel.Color
	Palette *pixel.Palette
}

// Type implements Command.
func (BlitCommand) Type() CommandType { return CmdBlit }

// Options returns the blit options of the command, or nil.
func (c BlitCommand) Options() *surface.BlitOptions {
	if c.Key == nil && c.Palette == nil {
		return nil
	}
	return &surface.BlitOptions{Key: c.Key, Palette: c.Palette}
}

// SetWindowCommand records Streamer.SetWindow.
type SetWindowCommand struct {
	X0, Y0, X1, Y1 int
}

// Type implements Command.
func (SetWindowCommand) Type() CommandType { return CmdSetWindow }

// WriteDataCommand records Streamer.WriteData. Data is a copy.
type WriteDataCommand struct {
	Data []byte
}

// Type implements Command.
func (WriteDataCommand) Type() CommandType { return CmdWriteData }

// ShowCommand records Shower.Show.
type ShowCommand struct{}

// Type implements Command.
func (ShowCommand) Type() CommandType { return CmdShow }
