// Package clock provides the wall-clock source that drives wave phase and
// frame timing. Everything time dependent takes a Provider so tests and the
// headless renderer can run on a controlled timeline.
package clock

import (
	"sync"
	"time"
)

// Provider returns the current time.
type Provider interface {
	Now() time.Time
}

// Millis returns the provider's Unix time in milliseconds.
func Millis(p Provider) float64 {
	return float64(p.Now().UnixNano()) / float64(time.Millisecond)
}

// System reads the real system clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Mock is a controllable Provider for tests and offline rendering.
type Mock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMock creates a mock clock starting at start.
func NewMock(start time.Time) *Mock {
	return &Mock{current: start}
}

func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set moves the clock to t.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
