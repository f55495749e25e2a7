// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the display sink abstraction that fonts and
// image decoders draw onto, and provides reference sinks.
//
// A Sink is the minimal drawing contract of a small pixel display: plot a
// pixel, fill a rectangle, draw a horizontal line and blit a buffer. Two
// kinds of targets exist:
//
//   - Buffered targets keep a local frame buffer; drawing mutates memory
//     and Show pushes it to the panel.
//   - Direct targets have no frame buffer; they implement Streamer so that
//     callers can open an address window and push pixel bytes straight to
//     the transport.
//
// Capabilities tells callers which kind a sink is and which pixel format it
// stores.
//
// # Sink Types
//
//   - FrameBuffer: in-memory MONO_HLSB or RGB565 buffer
//   - StreamDisplay: direct-streaming sink over an io.Writer transport
//   - recording.Recorder: records calls for tests and traces
//
// # Registry
//
// Sinks can be created by name:
//
//	s, err := surface.NewSinkByName("framebuffer", surface.Options{Width: 160, Height: 128})
//
// Third-party drivers may register their own factories:
//
//	func init() {
//	    surface.Register("st7735", 100, newST7735, st7735Present)
//	}
//
// # Usage
//
//	fb := surface.NewFrameBuffer(128, 64, pixel.FormatMono)
//	fb.FillRect(0, 0, 128, 64, 0)
//	fb.HLine(0, 10, 128, 1)
//	img := fb.Snapshot()
//
// Sinks are NOT thread-safe.
package surface
