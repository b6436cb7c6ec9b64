package game

import "time"

// frameStats records the last N frame durations in a ring buffer so the HUD
// can show a smoothed frame rate.
type frameStats struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
}

func newFrameStats(size int) *frameStats {
	if size <= 0 {
		size = 1
	}
	return &frameStats{buffer: make([]time.Duration, size)}
}

func (s *frameStats) record(d time.Duration) {
	s.buffer[s.nextIndex] = d
	s.nextIndex++
	if s.nextIndex >= len(s.buffer) {
		s.nextIndex = 0
	}
	if s.filled < len(s.buffer) {
		s.filled++
	}
}

// snapshot returns up to the last n durations, most recent last.
func (s *frameStats) snapshot(n int) []time.Duration {
	if n > s.filled {
		n = s.filled
	}
	out := make([]time.Duration, n)
	idx := s.nextIndex
	for i := n - 1; i >= 0; i-- {
		idx--
		if idx < 0 {
			idx = len(s.buffer) - 1
		}
		out[i] = s.buffer[idx]
	}
	return out
}

func (s *frameStats) average() time.Duration {
	if s.filled == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range s.snapshot(s.filled) {
		sum += d
	}
	return sum / time.Duration(s.filled)
}

func (s *frameStats) fps() float64 {
	avg := s.average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
