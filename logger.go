package tinydisplay

import (
	"log/slog"

	"github.com/gogpu/tinydisplay/internal/logging"
)

// SetLogger configures the logger for tinydisplay and all its sub-packages.
// By default, tinydisplay produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by tinydisplay:
//   - [slog.LevelDebug]: font headers, decoder headers, glyph cache summaries
//   - [slog.LevelWarn]: clipped images, glyphs drawn with the placeholder
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	tinydisplay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by tinydisplay.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.L()
}
