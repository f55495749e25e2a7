package text

import (
	"github.com/gogpu/tinydisplay/internal/logging"
	"github.com/gogpu/tinydisplay/pixel"
	"github.com/gogpu/tinydisplay/surface"
)

// Draw lays out s and renders every visible glyph onto sink.
//
// Params.Width and Params.Height default to the sink size, Params.Size and
// Style.Size to the font's native size. Buffered sinks receive one Blit per
// glyph. On direct sinks an opaque RGB565 glyph that fits on screen is
// streamed through a SetWindow and WriteData pair; everything else is
// blitted so the sink can clip and honour the key.
func Draw(sink surface.Sink, r *Rasterizer, s string, p Params, st Style) error {
	if p.Width == 0 {
		p.Width = sink.Width()
	}
	if p.Height == 0 {
		p.Height = sink.Height()
	}
	if p.Size <= 0 {
		p.Size = r.Font().Size()
	}
	st.Size = p.Size

	caps := sink.Capabilities()
	stream, _ := sink.(surface.Streamer)
	if caps.FrameBuffer {
		stream = nil
	}

	drawn, missing := 0, 0
	err := Layout(s, p, func(pl Placement) error {
		if !pl.Visible {
			return nil
		}
		g, err := r.Render(pl.Rune, st)
		if err != nil {
			return err
		}
		drawn++
		if !g.Found {
			missing++
		}

		if stream != nil && g.Key == nil && g.Buffer.Format == pixel.FormatRGB565 &&
			pl.X >= 0 && pl.Y >= 0 && pl.X+g.Size <= sink.Width() && pl.Y+g.Size <= sink.Height() {
			if err := stream.SetWindow(pl.X, pl.Y, pl.X+g.Size-1, pl.Y+g.Size-1); err != nil {
				return err
			}
			return stream.WriteData(g.Buffer.Pix)
		}
		sink.Blit(g.Buffer, pl.X, pl.Y, g.BlitOptions())
		return nil
	})
	logger := logging.L()
	logger.Debug("text: drawn",
		"glyphs", drawn,
		"missing", missing,
		"size", p.Size)
	if missing > 0 {
		logger.Warn("text: glyphs missing from font, drew placeholder", "missing", missing)
	}
	return err
}
