package radius

import (
	"math"

	"github.com/iburimskiy/wobble-rings/internal/clock"
	"github.com/iburimskiy/wobble-rings/internal/polar"
)

const (
	dampenRange  = 90.0
	dampenGain   = 1.5
	dampenFloor  = 0.2
	wobbleAmount = 5.0
)

// Ease is a cubic in-out curve on [0,1].
func Ease(f float64) float64 {
	scaled := f * 2
	if scaled < 1 {
		return 0.5 * math.Pow(scaled, 3)
	}
	return 0.5 * (math.Pow(scaled-2, 3) + 2)
}

// Dampened boosts base near the pointer's heading and attenuates it far away,
// then adds a slow global cosine wobble. Near the pointer the amplitude is
// about 1.7x, beyond 90 degrees it settles at 0.2x.
func Dampened(base Generator, vector func() polar.Polar, c clock.Provider) Generator {
	anchor := DistanceFrom(func() float64 { return vector().Degree })
	return func(degree float64) float64 {
		distance := math.Min(anchor(degree), dampenRange)
		scale := 1 - Ease(distance/dampenRange)
		wobble := math.Cos(clock.Millis(c)/1000) * wobbleAmount
		return base(degree)*(scale*dampenGain+dampenFloor) + wobble
	}
}
