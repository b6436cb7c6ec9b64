// Package pointer tracks a smoothed polar vector from a center point to the
// last pointer or touch position.
package pointer

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/wobble-rings/internal/polar"
	"github.com/iburimskiy/wobble-rings/internal/timing"
)

const (
	// DefaultIdleAfter is how long the tracker waits for input before drifting.
	DefaultIdleAfter = 2 * time.Second

	easeFactor    = 0.05
	idleSpeedStep = 0.01
	idleSpeedMax  = 1.0
	idleDriftRate = 0.1 // degrees per millisecond at full speed
)

// State is a copy of the tracker internals.
type State struct {
	Current   polar.Polar
	Target    polar.Polar
	Idle      bool
	Speed     float64
	Direction float64
}

// Tracker eases its current vector toward the latest pointer target while
// input is arriving, and drifts around the ring once input stops. Only Move
// and Step mutate it; everything else reads through Vector.
type Tracker struct {
	center func() polar.Point
	logger *zap.Logger

	current   polar.Polar
	target    polar.Polar
	idle      bool
	speed     float64
	direction float64

	lastStep time.Time
	stepped  bool
	setIdle  *timing.Throttle
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithIdleAfter overrides DefaultIdleAfter.
func WithIdleAfter(d time.Duration) Option {
	return func(t *Tracker) {
		t.setIdle = timing.NewThrottle(d, t.goIdle)
	}
}

// WithLogger attaches a logger for idle transitions.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.logger = l.Named("pointer") }
}

// NewTracker creates an idle tracker measuring from center().
func NewTracker(center func() polar.Point, opts ...Option) *Tracker {
	t := &Tracker{
		center:    center,
		logger:    zap.NewNop(),
		idle:      true,
		direction: 1,
	}
	t.setIdle = timing.NewThrottle(DefaultIdleAfter, t.goIdle)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) goIdle() {
	t.idle = true
	t.logger.Debug("Pointer idle", zap.Float64("degree", t.current.Degree))
}

// Move records a pointer position in the same coordinate space as center().
func (t *Tracker) Move(p polar.Point, now time.Time) {
	if t.idle {
		t.logger.Debug("Pointer tracking")
	}
	t.idle = false
	t.speed = 0
	t.setIdle.Call(now)
	t.target = polar.VectorBetween(t.center(), p)
}

// Step advances the tracker to the frame at now.
func (t *Tracker) Step(now time.Time) {
	t.setIdle.Poll(now)

	delta := 0.0
	if t.stepped {
		delta = float64(now.Sub(t.lastStep)) / float64(time.Millisecond)
	}
	t.lastStep = now
	t.stepped = true

	if t.idle {
		t.speed = math.Min(t.speed+idleSpeedStep, idleSpeedMax)
		t.current.Degree = polar.Normalize(t.current.Degree + t.speed*idleDriftRate*delta*t.direction)
		return
	}

	// Pick the copy of the target degree closest to the current one so the
	// ease takes the short way around the seam.
	goal := t.target.Degree
	best := math.Inf(1)
	for _, candidate := range [3]float64{t.target.Degree, t.target.Degree + 360, t.target.Degree - 360} {
		if d := math.Abs(candidate - t.current.Degree); d < best {
			best, goal = d, candidate
		}
	}
	move := (goal - t.current.Degree) * easeFactor
	switch {
	case move < 0:
		t.direction = -1
	case move > 0:
		t.direction = 1
	}
	t.current = polar.Polar{
		Degree: polar.Normalize(t.current.Degree + move),
		Radius: t.current.Radius + (t.target.Radius-t.current.Radius)*easeFactor,
	}
}

// Pause forgets the last step time so the next Step after a gap uses a zero
// delta.
func (t *Tracker) Pause() {
	t.stepped = false
}

// Vector returns the current smoothed vector.
func (t *Tracker) Vector() polar.Polar { return t.current }

// State returns a snapshot of the tracker internals.
func (t *Tracker) State() State {
	return State{
		Current:   t.current,
		Target:    t.target,
		Idle:      t.idle,
		Speed:     t.speed,
		Direction: t.direction,
	}
}
