// Package polar converts between polar and cartesian coordinates.
// Degrees are the unit everywhere outside this package.
package polar

import "math"

// Point is a cartesian coordinate.
type Point struct {
	X, Y float64
}

// Polar is a (degree, radius) pair. Degree is kept in [0,360) by the helpers
// in this package; radius is unconstrained.
type Polar struct {
	Degree float64
	Radius float64
}

func Deg2Rad(degree float64) float64 { return degree * (math.Pi / 180) }
func Rad2Deg(radian float64) float64 { return radian * 180 / math.Pi }

// Normalize wraps a finite degree into [0,360).
func Normalize(degree float64) float64 {
	d := math.Mod(degree, 360)
	if d < 0 {
		d += 360
	}
	// -1e-14 + 360 rounds to 360.
	if d >= 360 {
		d = 0
	}
	return d
}

// ToCartesian projects p around the origin.
func ToCartesian(p Polar) Point {
	rad := Deg2Rad(p.Degree)
	return Point{
		X: math.Cos(rad) * p.Radius,
		Y: math.Sin(rad) * p.Radius,
	}
}

// VectorBetween returns the distance and heading from p1 to p2.
func VectorBetween(p1, p2 Point) Polar {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return Polar{
		Radius: math.Hypot(dx, dy),
		Degree: Normalize(Rad2Deg(math.Atan2(dy, dx)) + 360),
	}
}
