// Package text rasterizes and lays out BMF glyphs onto display sinks.
//
// Rendering a string has two halves. Layout walks the string and decides
// where each glyph goes: it handles newlines, tabs, auto-wrap and the
// half-width advance of ASCII. A Rasterizer turns one code point into a
// glyph buffer: it fetches the native bitmap from the font, optionally
// inverts it, scales it with nearest neighbour and either keeps it as a
// 1-bpp mask or colourises it to RGB565.
//
// Draw combines both and hands every glyph to a surface.Sink, streaming
// straight to the transport on direct sinks.
//
//	r := text.NewRasterizer(font, 128)
//	err := text.Draw(sink, r, "Hello, 世界", text.Params{X: 0, Y: 0, Size: 16, HalfWidth: true}, style)
//
// Nothing in this package is safe for concurrent use.
package text
