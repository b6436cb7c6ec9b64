package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/wobble-rings/internal/polar"
	"github.com/iburimskiy/wobble-rings/internal/scene"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

var (
	blendMultiply = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
	blendScreen = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
	blendDarken = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationMin,
		BlendOperationAlpha:         ebiten.BlendOperationMax,
	}
	blendLighten = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationMax,
		BlendOperationAlpha:         ebiten.BlendOperationMax,
	}
)

// blendFor maps a CSS mix-blend-mode to the closest fixed-function blend.
// Modes the GPU blender cannot express fall back to source-over and report
// exact=false.
func blendFor(mode string) (blend ebiten.Blend, exact bool) {
	switch mode {
	case "normal":
		return ebiten.BlendSourceOver, true
	case "multiply":
		return blendMultiply, true
	case "screen":
		return blendScreen, true
	case "darken":
		return blendDarken, true
	case "lighten":
		return blendLighten, true
	default:
		return ebiten.BlendSourceOver, false
	}
}

// fanVertices triangulates a ring from its center. Ring points are relative
// to center and star-shaped around it, so the fan covers the outline with no
// overlap.
func fanVertices(center polar.Point, points []polar.Point, fill color.RGBA) ([]ebiten.Vertex, []uint16) {
	if len(points) < 3 {
		return nil, nil
	}
	r := float32(fill.R) / 0xff
	g := float32(fill.G) / 0xff
	b := float32(fill.B) / 0xff
	a := float32(fill.A) / 0xff
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}

	vs := make([]ebiten.Vertex, 0, len(points)+1)
	vs = append(vs, vertex(center.X, center.Y))
	for _, p := range points {
		vs = append(vs, vertex(center.X+p.X, center.Y+p.Y))
	}

	n := uint16(len(points))
	is := make([]uint16, 0, 3*len(points))
	for i := uint16(1); i <= n; i++ {
		next := i + 1
		if next > n {
			next = 1
		}
		is = append(is, 0, i, next)
	}
	return vs, is
}

func drawRing(screen *ebiten.Image, center polar.Point, ring scene.RingFrame, fill color.RGBA, blend ebiten.Blend) {
	vs, is := fanVertices(center, ring.Points, fill)
	if len(vs) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{Blend: blend, AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}
