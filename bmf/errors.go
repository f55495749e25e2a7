package bmf

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bmf package.
var (
	// ErrFontFormat is returned when data is not a BMF font.
	ErrFontFormat = errors.New("bmf: invalid font format")

	// ErrFontVersion is returned for a BMF font of an unsupported version.
	ErrFontVersion = errors.New("bmf: unsupported font version")

	// ErrGlyphSize is returned by the Encoder when a glyph bitmap does not
	// match the font's glyph size.
	ErrGlyphSize = errors.New("bmf: glyph bitmap size mismatch")
)

// FormatError describes why data was rejected as a BMF font.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "bmf: invalid font format: " + e.Reason
}

// Is reports whether target is ErrFontFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFontFormat
}

// VersionError is returned when the header carries a version other than 3.
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("bmf: unsupported font version %d", e.Version)
}

// Is reports whether target is ErrFontVersion.
func (e *VersionError) Is(target error) bool {
	return target == ErrFontVersion
}
