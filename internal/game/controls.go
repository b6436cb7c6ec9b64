package game

import (
	"math"

	"github.com/iburimskiy/wobble-rings/internal/config"
	"github.com/iburimskiy/wobble-rings/internal/palette"
	"github.com/iburimskiy/wobble-rings/internal/scene"
)

const (
	pointsStep = 6
	hueStep    = 30
)

// Controls holds the live values behind the scene accessors. Keys mutate it;
// the scene reads it every frame.
type Controls struct {
	points      int
	colors      [3]string
	blendMode   string
	backgrounds [2]string
	background  int
	hue         float64
	debug       bool
}

func NewControls(cfg config.SceneConfig) *Controls {
	alt := "#fff"
	if palette.Parse(cfg.Background) == palette.Parse(alt) {
		alt = palette.DefaultBackground
	}
	return &Controls{
		points:      clampInt(cfg.Points, config.MinPoints, config.MaxPoints),
		colors:      cfg.ColorTriple(),
		blendMode:   cfg.BlendMode,
		backgrounds: [2]string{cfg.Background, alt},
	}
}

func (c *Controls) Points() int        { return c.points }
func (c *Controls) Colors() [3]string  { return c.colors }
func (c *Controls) BlendMode() string  { return c.blendMode }
func (c *Controls) Background() string { return c.backgrounds[c.background] }
func (c *Controls) Debug() bool        { return c.debug }
func (c *Controls) ToggleDebug()       { c.debug = !c.debug }
func (c *Controls) CycleBlend()        { c.blendMode = palette.NextBlendMode(c.blendMode) }
func (c *Controls) ToggleBackground()  { c.background = 1 - c.background }
func (c *Controls) AddPoints(delta int) {
	c.points = clampInt(c.points+delta, config.MinPoints, config.MaxPoints)
}

// RotateHue replaces the ring fills with a triad rotated by step degrees.
func (c *Controls) RotateHue(step float64) {
	c.hue = math.Mod(c.hue+step, 360)
	c.colors = palette.Triad(c.hue)
}

// Configuration wires the controls into scene accessors.
func (c *Controls) Configuration() scene.Configuration {
	return scene.Configuration{
		Points:     c.Points,
		Colors:     c.Colors,
		BlendMode:  c.BlendMode,
		Background: c.Background,
	}
}
