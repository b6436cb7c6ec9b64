// Package timing implements throttle and debounce as small stateful wrappers
// that are polled from the frame loop instead of spawning timers. Nothing in
// here is safe for concurrent use; callers own a single goroutine.
package timing

import "time"

// Throttle invokes fn at most once per window, on the trailing edge only.
// The first Call of a quiet period arms a deadline of now+wait; further calls
// before the deadline are absorbed.
type Throttle struct {
	wait     time.Duration
	fn       func()
	pending  bool
	deadline time.Time
}

func NewThrottle(wait time.Duration, fn func()) *Throttle {
	return &Throttle{wait: wait, fn: fn}
}

// Call records an invocation request at now.
func (t *Throttle) Call(now time.Time) {
	if t.pending {
		return
	}
	t.pending = true
	t.deadline = now.Add(t.wait)
}

// Poll runs fn if the trailing deadline has been reached. It reports whether
// fn ran.
func (t *Throttle) Poll(now time.Time) bool {
	if !t.pending || now.Before(t.deadline) {
		return false
	}
	t.pending = false
	t.fn()
	return true
}

// Pending reports whether a trailing call is armed.
func (t *Throttle) Pending() bool { return t.pending }

// Cancel drops any armed call.
func (t *Throttle) Cancel() { t.pending = false }

// Debounce delays fn until Call has not been made for wait.
type Debounce struct {
	wait     time.Duration
	fn       func()
	pending  bool
	deadline time.Time
}

func NewDebounce(wait time.Duration, fn func()) *Debounce {
	return &Debounce{wait: wait, fn: fn}
}

// Call pushes the deadline out to now+wait.
func (d *Debounce) Call(now time.Time) {
	d.pending = true
	d.deadline = now.Add(d.wait)
}

// Poll runs fn once input has been quiet for the full window.
func (d *Debounce) Poll(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	d.fn()
	return true
}

func (d *Debounce) Pending() bool { return d.pending }

func (d *Debounce) Cancel() { d.pending = false }
