package pixel

import "github.com/gogpu/tinydisplay/internal/color"

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatMono is 1 bit per pixel, rows padded to a byte boundary,
	// most significant bit first (horizontal, MONO_HLSB).
	FormatMono Format = iota

	// FormatRGB565 is 16 bits per pixel, each pixel a little-endian Color.
	FormatRGB565

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BitsPerPixel is the storage size of one pixel.
	BitsPerPixel int

	// IsMonochrome indicates a two-level format.
	IsMonochrome bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatMono:   {BitsPerPixel: 1, IsMonochrome: true},
	FormatRGB565: {BitsPerPixel: 16},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes returns the number of bytes needed for one row of width pixels.
func (f Format) RowBytes(width int) int {
	return (width*f.Info().BitsPerPixel + 7) / 8
}

// ImageBytes returns the number of bytes needed for a width x height image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatMono:
		return "Mono"
	case FormatRGB565:
		return "RGB565"
	default:
		return "Unknown"
	}
}

// IsForeground reports whether an RGB triplet reduces to the foreground
// colour on a monochrome target: the integer mean of the channels is at
// least 127.
func IsForeground(r, g, b uint8) bool {
	return color.IsLight(r, g, b)
}

// InvertRGB returns the channel-wise complement of a triplet.
func InvertRGB(r, g, b uint8) (uint8, uint8, uint8) {
	return color.Invert(r, g, b)
}
