// Package bmf reads and writes BMF v3 bitmap fonts.
//
// A BMF file is a 16-byte header, a table of 2-byte big-endian code points
// in ascending order, and a section of fixed-size 1-bpp glyph bitmaps in
// the same order as the table:
//
//	offset  size  field
//	0       2     magic "BM"
//	2       1     format version (3)
//	3       1     map mode
//	4       3     bitmap section offset, big-endian
//	7       1     glyph size in pixels (square)
//	8       1     bytes per glyph, ceil(size/8)*size
//	9       7     reserved
//	16      ...   code table
//
// Lookups binary-search the table directly through an io.ReaderAt, so a
// Font never holds more than one glyph in memory. Code points that are not
// in the table resolve to a built-in placeholder glyph instead of an error.
//
// A Font is not safe for concurrent use.
package bmf
