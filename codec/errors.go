package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for the codec package.
var (
	// ErrUnsupportedFormat is returned for data this package cannot decode.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")

	// ErrUnsupportedVersion is returned for a raw stream of unknown version.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")
)

// UnsupportedFormatError describes rejected image data.
type UnsupportedFormatError struct {
	Format string // "pbm", "bmp" or "dat"
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("codec: unsupported %s image: %s", e.Format, e.Reason)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// UnsupportedVersionError is returned when a raw stream header names a
// version other than V1.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("codec: unsupported raw stream version %q", e.Version)
}

// Is reports whether target is ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}
