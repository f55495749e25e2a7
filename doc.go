// Package tinydisplay draws text and images on small displays.
//
// # Overview
//
// tinydisplay renders bitmap-font text and PBM, BMP and raw RGB565 images
// onto a display sink: a host frame buffer, a panel fed over a byte
// transport, or a recorder in tests. Everything streams; decoders hold a
// row or a transfer chunk of pixels at a time, so the same code runs
// within the memory budget of a microcontroller-class panel driver.
//
// # Quick Start
//
//	import "github.com/gogpu/tinydisplay"
//
//	fb := surface.NewFrameBuffer(160, 128, pixel.FormatRGB565)
//	e, err := tinydisplay.New(fb, tinydisplay.WithFont("text_16px.bmf"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	e.Text("Hello, 世界", 0, 0, tinydisplay.WithColors(pixel.White, pixel.Black))
//	e.Image("logo.pbm", 0, 32)
//	e.Show()
//
// # Options
//
// New takes functional options that set the engine defaults. Every draw
// call accepts the same options again; they apply to a copy of the
// defaults for that call only.
//
// # Architecture
//
// The library is organized into:
//   - bmf: the BMF v3 bitmap font container
//   - text: glyph rasterization, scaling and layout
//   - codec: image decoders and encoders
//   - surface: the display sink contract and reference sinks
//   - pixel: the RGB565 colour model and palettes
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Concurrency
//
// An Engine, its sink and its font are not safe for concurrent use.
package tinydisplay

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
