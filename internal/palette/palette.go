// Package palette covers the styling inputs the scene receives from its
// controls: fill colors, background and blend mode.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// BlendModes is the fixed set of compositing modes the controls offer.
var BlendModes = []string{
	"normal",
	"multiply",
	"screen",
	"overlay",
	"darken",
	"lighten",
	"color-dodge",
	"color-burn",
	"hard-light",
	"soft-light",
	"difference",
	"exclusion",
	"hue",
	"saturation",
	"color",
	"luminosity",
}

// DefaultColors are the three ring fills.
var DefaultColors = [3]string{"#F00", "#0F0", "#00F"}

const (
	DefaultBlendMode  = "screen"
	DefaultBackground = "#000"
)

// IsBlendMode reports whether mode is one of BlendModes.
func IsBlendMode(mode string) bool {
	return indexOf(mode) >= 0
}

// NextBlendMode returns the mode after current, wrapping around. Unknown
// modes restart at the first entry.
func NextBlendMode(current string) string {
	return BlendModes[(indexOf(current)+1)%len(BlendModes)]
}

func indexOf(mode string) int {
	for i, m := range BlendModes {
		if m == mode {
			return i
		}
	}
	return -1
}

var named = map[string]string{
	"white": "#fff",
	"black": "#000",
	"red":   "#f00",
	"green": "#0f0",
	"blue":  "#00f",
}

// IsColor reports whether s is a hex color (#rgb, #rgba, #rrggbb, #rrggbbaa)
// or one of the few names Parse understands.
func IsColor(s string) bool {
	if _, ok := named[strings.ToLower(s)]; ok {
		return true
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// Parse converts a color string to RGBA. Unparseable input yields opaque black.
func Parse(s string) color.RGBA {
	if hex, ok := named[strings.ToLower(s)]; ok {
		s = hex
	}
	if !IsColor(s) {
		return color.RGBA{A: 0xff}
	}
	c := gg.Hex(s)
	return color.RGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(c.A * 255)),
	}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Triad returns three fills spaced 120 degrees apart on the hue wheel,
// starting at hue.
func Triad(hue float64) [3]string {
	var out [3]string
	for i := range out {
		r, g, b := hsvToRgb(hue+float64(i)*120, 1, 1)
		out[i] = Hex(color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	return out
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}
