// Package codec decodes PBM (P4, P6), 24-bit BMP and raw RGB565 ("DAT")
// images straight onto a display sink, and encodes host images into those
// formats.
//
// Decoders never hold more than a row or a transfer chunk of pixel data,
// except for P4 on buffered sinks, where the whole 1-bpp bitmap is blitted
// at once. The output pixel format follows the sink: RGB565 sinks receive
// truecolour rows, monochrome sinks receive thresholded pixels.
//
// Direct sinks (no frame buffer) are fed with one SetWindow for the image
// and WriteData chunks, provided the image lies fully on screen. Streaming
// cannot skip pixels, so a transparency key only takes effect on the
// paths that go through Blit or Pixel.
//
// # Raw stream format
//
//	EasyDisplay\n
//	V1\n
//	<width> <height>\n
//	width*height RGB565 pixels, big-endian
//
// Functions take readers; callers own opening and closing the source.
package codec
