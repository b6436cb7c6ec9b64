package scene

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/iburimskiy/wobble-rings/internal/polar"
)

// EventKind identifies an input event delivered by a Host.
type EventKind int

const (
	PointerMove EventKind = iota
	TouchStart
	TouchMove
	Resize
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case Resize:
		return "resize"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single input event. Points carries the pointer position or the
// active touches, in viewport coordinates. Width and Height are set for
// Resize.
type Event struct {
	Kind   EventKind
	Time   time.Time
	Points []polar.Point
	Width  float64
	Height float64

	defaultPrevented bool
}

// PreventDefault asks the host to skip its default handling, such as
// scrolling on touch.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Listener handles an event.
type Listener func(*Event)

// FrameFunc runs once per display frame with the frame timestamp.
type FrameFunc func(now time.Time)

// FrameID identifies a requested frame callback.
type FrameID uint64

// Host is the display the scene renders into: it owns the frame callback,
// input delivery and the render container.
type Host interface {
	// RequestFrame schedules fn for the next frame.
	RequestFrame(fn FrameFunc) FrameID
	// CancelFrame drops a pending frame callback. Unknown IDs are ignored.
	CancelFrame(id FrameID)
	// AddListener registers l and returns a function that removes it.
	AddListener(kind EventKind, l Listener) (remove func())
	// Viewport returns the current display size.
	Viewport() (width, height float64)
	// Mount attaches root to the render container. It returns false when
	// there is no container.
	Mount(root *etree.Element) bool
}
