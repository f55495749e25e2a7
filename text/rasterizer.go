package text

import (
	"github.com/gogpu/tinydisplay/bmf"
	"github.com/gogpu/tinydisplay/internal/bitmap"
	"github.com/gogpu/tinydisplay/internal/cache"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// Style selects how a glyph is rendered.
type Style struct {
	// Size is the rendered glyph size in pixels; 0 uses the native size.
	Size int

	// FG and BG are the foreground and background colours.
	FG, BG pixel.Color

	// Invert complements the glyph bitmap before colouring.
	Invert bool

	// TransparentBG makes BG the blit key so background pixels are skipped.
	TransparentBG bool

	// Format is the glyph buffer format: FormatMono keeps a 1-bpp mask
	// blitted through a palette, FormatRGB565 flattens to truecolour.
	Format pixel.Format
}

// Glyph is a rendered glyph. Glyphs may be shared through the cache and
// must not be modified.
type Glyph struct {
	Rune    rune
	Size    int
	Found   bool // false when the placeholder was drawn
	Buffer  *surface.Buffer
	Palette *pixel.Palette // set for FormatMono buffers
	Key     *pixel.Color   // set when the background is transparent
}

// BlitOptions returns the options to blit g with.
func (g *Glyph) BlitOptions() *surface.BlitOptions {
	if g.Palette == nil && g.Key == nil {
		return nil
	}
	return &surface.BlitOptions{Key: g.Key, Palette: g.Palette}
}

// Scale resamples a native x native glyph bitmap to target x target with
// nearest neighbour in integer arithmetic. Equal sizes return bits as is.
func Scale(bits []byte, native, target int) []byte {
	return bitmap.Scale(bits, native, target)
}

// ScaleColored is Scale producing an RGB565 buffer through p.
func ScaleColored(bits []byte, native, target int, p pixel.Palette) []byte {
	return bitmap.ScaleColored(bits, native, target, p)
}

type glyphKey struct {
	r     rune
	style Style
}

// CacheStats reports glyph cache usage.
type CacheStats struct {
	Len, Capacity        int
	Hits, Misses, Evicts uint64
}

// Rasterizer renders glyphs of one font, memoising results in an LRU
// cache.
type Rasterizer struct {
	font  *bmf.Font
	cache *cache.Cache[glyphKey, *Glyph]
}

// NewRasterizer creates a Rasterizer for f caching up to cacheSize
// glyphs. A cacheSize of 0 disables caching.
func NewRasterizer(f *bmf.Font, cacheSize int) *Rasterizer {
	return &Rasterizer{
		font:  f,
		cache: cache.New[glyphKey, *Glyph](cacheSize),
	}
}

// Font returns the font being rendered.
func (r *Rasterizer) Font() *bmf.Font { return r.font }

// Reset empties the glyph cache.
func (r *Rasterizer) Reset() { r.cache.Clear() }

// CacheStats returns glyph cache statistics.
func (r *Rasterizer) CacheStats() CacheStats {
	s := r.cache.Stats()
	return CacheStats{
		Len:      s.Len,
		Capacity: s.Capacity,
		Hits:     s.Hits,
		Misses:   s.Misses,
		Evicts:   s.Evictions,
	}
}

// Render rasterizes ch. Code points missing from the font render the
// placeholder glyph; only I/O errors are returned.
func (r *Rasterizer) Render(ch rune, st Style) (*Glyph, error) {
	if st.Size <= 0 {
		st.Size = r.font.Size()
	}
	return r.cache.GetOrCreate(glyphKey{r: ch, style: st}, func() (*Glyph, error) {
		return r.render(ch, st)
	})
}

func (r *Rasterizer) render(ch rune, st Style) (*Glyph, error) {
	bits, found, err := r.font.Lookup(ch)
	if err != nil {
		return nil, err
	}
	native := r.font.Size()
	bits = bits[:bitmap.Len(native)]
	if st.Invert {
		pixel.InvertBits(bits)
	}

	g := &Glyph{Rune: ch, Size: st.Size, Found: found}
	if st.TransparentBG {
		k := st.BG
		g.Key = &k
	}
	p := pixel.BuildPalette(st.FG, st.BG)

	var buf *surface.Buffer
	if st.Format == pixel.FormatMono {
		buf, err = surface.WrapBuffer(bitmap.Scale(bits, native, st.Size), st.Size, st.Size, pixel.FormatMono)
		g.Palette = &p
	} else {
		var pix []byte
		if native == st.Size {
			pix = bitmap.Colorize(bits, native, p)
		} else {
			pix = bitmap.ScaleColored(bits, native, st.Size, p)
		}
		buf, err = surface.WrapBuffer(pix, st.Size, st.Size, pixel.FormatRGB565)
	}
	if err != nil {
		return nil, err
	}
	g.Buffer = buf
	return g, nil
}
