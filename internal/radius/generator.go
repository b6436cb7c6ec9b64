// Package radius holds the generator algebra every ring is built from.
//
// A Generator maps an angle in degrees to a radial distance. Generators carry
// no mutable state of their own: anything that changes over time (the clock,
// the pointer vector) is read through an injected accessor at call time, so
// generators compose freely and can be tested in isolation.
package radius

import "math"

// Generator maps a degree to a radius.
type Generator func(degree float64) float64

// Constant ignores its input and returns v.
func Constant(v float64) Generator {
	return func(float64) float64 { return v }
}

// AddAll sums every generator at the sampled degree. No generators sum to 0.
func AddAll(fns ...Generator) Generator {
	return func(degree float64) float64 {
		sum := 0.0
		for _, fn := range fns {
			sum += fn(degree)
		}
		return sum
	}
}

// Max picks the largest result. No generators yield 0.
func Max(fns ...Generator) Generator {
	return extremum(math.Max, fns)
}

// Min picks the smallest result. No generators yield 0.
func Min(fns ...Generator) Generator {
	return extremum(math.Min, fns)
}

func extremum(pick func(a, b float64) float64, fns []Generator) Generator {
	return func(degree float64) float64 {
		if len(fns) == 0 {
			return 0
		}
		out := fns[0](degree)
		for _, fn := range fns[1:] {
			out = pick(out, fn(degree))
		}
		return out
	}
}

// Multiply multiplies the results of two generators.
func Multiply(a, b Generator) Generator {
	return func(degree float64) float64 { return a(degree) * b(degree) }
}

// Add adds the results of two generators.
func Add(a, b Generator) Generator {
	return func(degree float64) float64 { return a(degree) + b(degree) }
}

// Invert negates fn.
func Invert(fn Generator) Generator {
	return func(degree float64) float64 { return -fn(degree) }
}

// AtLeast offsets fn by radius. It is a bias, not a clamp: a negative fn
// pulls the result below radius.
func AtLeast(radius float64, fn Generator) Generator {
	return AddAll(Constant(radius), fn)
}

// DistanceFrom returns the angular distance between anchor() and the sampled
// degree, taking the shortest way around the 0/360 seam.
func DistanceFrom(anchor func() float64) Generator {
	return func(degree float64) float64 {
		return angularDistance(anchor(), degree)
	}
}

func angularDistance(a, degree float64) float64 {
	return math.Min(
		math.Abs(a-degree+360),
		math.Min(math.Abs(a-degree), math.Abs(a-degree-360)),
	)
}

// Increment samples fn at from, from+step, ... and stops once the running
// value reaches or passes to. The direction of travel is toward to. fn is
// always called at least once. A non-positive step is treated as 1.
func Increment[T any](fn func(float64) T, to, step, from float64) []T {
	if step <= 0 {
		step = 1
	}
	sign := 1.0
	if to < from {
		sign = -1
	}
	done := func(current float64) bool {
		if sign > 0 {
			return current >= to
		}
		return current <= to
	}

	var out []T
	current := from
	for {
		out = append(out, fn(current))
		current += step * sign
		if done(current) {
			return out
		}
	}
}
