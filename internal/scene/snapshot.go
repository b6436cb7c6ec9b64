package scene

import "github.com/iburimskiy/wobble-rings/internal/polar"

// RingFrame is one ring as last rendered.
type RingFrame struct {
	Fill     string
	PathData string
	// Points are relative to Frame.Center.
	Points []polar.Point
}

// Frame is a detached copy of what the scene last rendered, for rasterizers
// and overlays that should not read the live tree.
type Frame struct {
	Width      float64
	Height     float64
	Center     polar.Point
	Background string
	BlendMode  string
	Rings      []RingFrame
}

// Snapshot copies the current render state.
func (s *Scene) Snapshot() Frame {
	f := Frame{
		Width:      s.viewW,
		Height:     s.viewH,
		Center:     s.Center(),
		Background: s.cfg.background(),
		BlendMode:  s.cfg.blendMode(),
		Rings:      make([]RingFrame, len(s.rings)),
	}
	for i, r := range s.rings {
		el := r.Element()
		f.Rings[i] = RingFrame{
			Fill:     el.SelectAttrValue("fill", ""),
			PathData: el.SelectAttrValue("d", ""),
			Points:   append([]polar.Point(nil), r.Points()...),
		}
	}
	return f
}
