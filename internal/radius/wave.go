package radius

import (
	"math"

	"github.com/iburimskiy/wobble-rings/internal/clock"
	"github.com/iburimskiy/wobble-rings/internal/polar"
)

// WaveSpec is one sinusoidal term: Size is the amplitude in pixels, Count the
// harmonic, Speed the phase drift in degrees per millisecond.
type WaveSpec struct {
	Size  float64
	Count float64
	Speed float64
}

// Wave returns a time-varying sine generator. The phase advances with the
// provider's wall clock.
func Wave(c clock.Provider, size, count, speed float64) Generator {
	return func(degree float64) float64 {
		return math.Sin(polar.Deg2Rad(degree+clock.Millis(c)*speed)*count) * size
	}
}

// Waves sums one Wave per term.
func Waves(c clock.Provider, specs ...WaveSpec) Generator {
	fns := make([]Generator, 0, len(specs))
	for _, s := range specs {
		fns = append(fns, Wave(c, s.Size, s.Count, s.Speed))
	}
	return AddAll(fns...)
}
