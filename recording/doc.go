// Package recording provides a display sink that records drawing calls.
//
// A Recorder implements surface.Sink, surface.Streamer and surface.Shower
// and stores each call as a typed command instead of touching pixels.
// Recordings are used to assert the exact sink traffic of text layout and
// image decoding, and can be replayed onto a real sink.
//
// Design follows Cairo's approach of typed command structs for
// inspectability and debuggability.
//
// # Example
//
//	rec := recording.NewRecorder(160, 128, surface.Capabilities{Format: pixel.FormatRGB565})
//	// ... draw onto rec ...
//	r := rec.FinishRecording()
//	for _, cmd := range r.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
//	// Replay to a frame buffer
//	fb := surface.NewFrameBuffer(160, 128, pixel.FormatRGB565)
//	err := r.Playback(fb)
package recording
