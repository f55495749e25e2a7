package tinydisplay

import "github.com/gogpu/tinydisplay/pixel"

// Default engine settings.
const (
	// DefaultCacheSize is the number of rendered glyphs kept by the engine.
	DefaultCacheSize = 128
)

// Config holds the engine defaults. Draw calls work on a copy.
type Config struct {
	// FontPath names a BMF font loaded by New. Empty means no font.
	FontPath string

	// Size is the text size in pixels; 0 uses the font's native size.
	Size int

	// FG and BG colour text and monochrome images.
	FG, BG pixel.Color

	// Key is a colour treated as transparent when blitting images.
	Key *pixel.Color

	// Invert swaps text and monochrome image colours and complements
	// truecolour images.
	Invert bool

	// TransparentBG skips the background pixels of glyphs.
	TransparentBG bool

	// HalfWidth draws code points below 128 at half the text size.
	HalfWidth bool

	// AutoWrap breaks text lines at the right edge of the display.
	AutoWrap bool

	// LineSpacing is added between text lines.
	LineSpacing int

	// Clear fills the display with 0 before each draw call.
	Clear bool

	// Show presents the display after each successful draw call.
	Show bool

	// CacheSize is the glyph cache capacity used when a font is loaded.
	CacheSize int

	// Normalize applies Unicode NFC to text before layout.
	Normalize bool

	// ChunkSize is the direct-streaming chunk size of the image decoders.
	ChunkSize int
}

// DefaultConfig returns the engine defaults: white on black, half-width
// ASCII, native font size, NFC normalisation on.
func DefaultConfig() Config {
	return Config{
		FG:        pixel.White,
		BG:        pixel.Black,
		HalfWidth: true,
		CacheSize: DefaultCacheSize,
		Normalize: true,
	}
}

// Option configures an Engine in New, or a single draw call.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	e, _ := tinydisplay.New(sink, tinydisplay.WithFont("16px.bmf"), tinydisplay.WithShow(true))
//
//	// Per call: red 24 px text over whatever is already drawn.
//	e.Text("Hi", 0, 0,
//	    tinydisplay.WithSize(24),
//	    tinydisplay.WithColors(pixel.PackColor(255, 0, 0), pixel.Black),
//	    tinydisplay.WithTransparentBG(true))
//
// WithFont and WithCacheSize only take effect in New.
type Option func(*Config)

// TextOption and ImageOption name the options of Text and the image
// calls. Both are plain Options.
type (
	TextOption  = Option
	ImageOption = Option
)

func (c Config) with(opts []Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithFont sets the font loaded by New.
func WithFont(path string) Option {
	return func(c *Config) {
		c.FontPath = path
	}
}

// WithSize sets the text size in pixels. 0 means the font's native size.
func WithSize(size int) Option {
	return func(c *Config) {
		c.Size = size
	}
}

// WithColors sets the foreground and background colours.
func WithColors(fg, bg pixel.Color) Option {
	return func(c *Config) {
		c.FG = fg
		c.BG = bg
	}
}

// WithKey makes key transparent when blitting images.
func WithKey(key pixel.Color) Option {
	return func(c *Config) {
		c.Key = &key
	}
}

// WithoutKey disables the transparency key.
func WithoutKey() Option {
	return func(c *Config) {
		c.Key = nil
	}
}

// WithInvert sets colour inversion.
func WithInvert(invert bool) Option {
	return func(c *Config) {
		c.Invert = invert
	}
}

// WithTransparentBG sets whether glyph backgrounds are skipped.
func WithTransparentBG(transparent bool) Option {
	return func(c *Config) {
		c.TransparentBG = transparent
	}
}

// WithHalfWidth sets whether ASCII is drawn at half width.
func WithHalfWidth(half bool) Option {
	return func(c *Config) {
		c.HalfWidth = half
	}
}

// WithAutoWrap sets automatic line wrapping.
func WithAutoWrap(wrap bool) Option {
	return func(c *Config) {
		c.AutoWrap = wrap
	}
}

// WithLineSpacing sets the extra space between text lines.
func WithLineSpacing(spacing int) Option {
	return func(c *Config) {
		c.LineSpacing = spacing
	}
}

// WithClear sets whether the display is cleared before drawing.
func WithClear(clear bool) Option {
	return func(c *Config) {
		c.Clear = clear
	}
}

// WithShow sets whether the display is presented after drawing.
func WithShow(show bool) Option {
	return func(c *Config) {
		c.Show = show
	}
}

// WithCacheSize sets the glyph cache capacity. 0 disables caching.
func WithCacheSize(n int) Option {
	return func(c *Config) {
		c.CacheSize = n
	}
}

// WithNormalize sets Unicode NFC normalisation of text.
func WithNormalize(normalize bool) Option {
	return func(c *Config) {
		c.Normalize = normalize
	}
}

// WithChunkSize sets the decoder streaming chunk size in bytes.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		c.ChunkSize = n
	}
}
