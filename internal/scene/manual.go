package scene

import (
	"time"

	"github.com/beevik/etree"

	"github.com/iburimskiy/wobble-rings/internal/clock"
	"github.com/iburimskiy/wobble-rings/internal/polar"
)

// ManualHost is a Host driven by explicit calls instead of a display. It backs
// the headless renderer and the tests.
type ManualHost struct {
	Dispatcher

	clock         *clock.Mock
	width, height float64
	container     bool
	mounted       *etree.Element
}

// NewManualHost creates a host with a container of the given size.
func NewManualHost(c *clock.Mock, width, height float64) *ManualHost {
	return &ManualHost{clock: c, width: width, height: height, container: true}
}

// WithoutContainer makes Mount fail.
func (h *ManualHost) WithoutContainer() *ManualHost {
	h.container = false
	return h
}

func (h *ManualHost) Viewport() (float64, float64) { return h.width, h.height }

func (h *ManualHost) Mount(root *etree.Element) bool {
	if !h.container {
		return false
	}
	h.mounted = root
	return true
}

// Mounted returns the element passed to Mount, if any.
func (h *ManualHost) Mounted() *etree.Element { return h.mounted }

// Clock returns the host's clock.
func (h *ManualHost) Clock() *clock.Mock { return h.clock }

// Advance moves the clock forward by d and runs the frames that were pending.
func (h *ManualHost) Advance(d time.Duration) int {
	h.clock.Advance(d)
	return h.RunFrames(h.clock.Now())
}

// Pointer dispatches a pointer move at (x, y).
func (h *ManualHost) Pointer(x, y float64) *Event {
	return h.emit(&Event{Kind: PointerMove, Points: []polar.Point{{X: x, Y: y}}})
}

// Touch dispatches a touch event with the given touch points.
func (h *ManualHost) Touch(kind EventKind, points ...polar.Point) *Event {
	return h.emit(&Event{Kind: kind, Points: points})
}

// Resize changes the viewport and dispatches a resize event.
func (h *ManualHost) Resize(width, height float64) *Event {
	h.width, h.height = width, height
	return h.emit(&Event{Kind: Resize, Width: width, Height: height})
}

func (h *ManualHost) emit(ev *Event) *Event {
	ev.Time = h.clock.Now()
	h.Dispatch(ev)
	return ev
}
