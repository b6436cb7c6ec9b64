package scene

import "time"

type listenerEntry struct {
	id   uint64
	kind EventKind
	fn   Listener
}

type frameEntry struct {
	id FrameID
	fn FrameFunc
}

// Dispatcher is the listener and frame bookkeeping shared by hosts. It is
// single threaded: listeners and frames run on the caller's goroutine, in
// registration order.
type Dispatcher struct {
	listeners    []listenerEntry
	nextListener uint64

	frames    []frameEntry
	nextFrame FrameID
}

// AddListener registers l for kind.
func (d *Dispatcher) AddListener(kind EventKind, l Listener) (remove func()) {
	d.nextListener++
	id := d.nextListener
	d.listeners = append(d.listeners, listenerEntry{id: id, kind: kind, fn: l})
	return func() {
		for i, e := range d.listeners {
			if e.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener registered for its kind.
func (d *Dispatcher) Dispatch(ev *Event) {
	// Listeners may remove themselves while running.
	snapshot := append([]listenerEntry(nil), d.listeners...)
	for _, e := range snapshot {
		if e.kind == ev.Kind {
			e.fn(ev)
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (d *Dispatcher) ListenerCount() int { return len(d.listeners) }

// RequestFrame queues fn for the next RunFrames.
func (d *Dispatcher) RequestFrame(fn FrameFunc) FrameID {
	d.nextFrame++
	d.frames = append(d.frames, frameEntry{id: d.nextFrame, fn: fn})
	return d.nextFrame
}

// CancelFrame removes a queued frame.
func (d *Dispatcher) CancelFrame(id FrameID) {
	for i, f := range d.frames {
		if f.id == id {
			d.frames = append(d.frames[:i], d.frames[i+1:]...)
			return
		}
	}
}

// PendingFrames returns the number of queued frame callbacks.
func (d *Dispatcher) PendingFrames() int { return len(d.frames) }

// RunFrames runs every callback queued before the call. Callbacks requested
// while running wait for the next call, the way a display frame callback
// reschedules itself.
func (d *Dispatcher) RunFrames(now time.Time) int {
	due := d.frames
	d.frames = nil
	for _, f := range due {
		f.fn(now)
	}
	return len(due)
}
