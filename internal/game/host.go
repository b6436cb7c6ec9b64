package game

import (
	"github.com/beevik/etree"

	"github.com/iburimskiy/wobble-rings/internal/scene"
)

// windowHost adapts the ebiten window to scene.Host. Frames queued by the
// scene run once per Update tick; the window itself is the render container.
type windowHost struct {
	scene.Dispatcher

	width, height float64
	root          *etree.Element
}

func newWindowHost(width, height int) *windowHost {
	return &windowHost{width: float64(width), height: float64(height)}
}

func (h *windowHost) Viewport() (float64, float64) { return h.width, h.height }

func (h *windowHost) Mount(root *etree.Element) bool {
	h.root = root
	return true
}

// resize records a new layout size and reports whether it changed.
func (h *windowHost) resize(width, height int) bool {
	w, ht := float64(width), float64(height)
	if w == h.width && ht == h.height {
		return false
	}
	h.width, h.height = w, ht
	return true
}
