// Package ring turns a radius generator into a closed SVG path that is
// resampled every frame.
package ring

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/iburimskiy/wobble-rings/internal/polar"
	"github.com/iburimskiy/wobble-rings/internal/radius"
)

const (
	// DefaultCount is used when the count accessor returns a non-positive value.
	DefaultCount = 90

	// SampleOffset rotates the generator so its degree 0 sits at the top.
	SampleOffset = 90
)

// Ring owns exactly one path element for its lifetime.
type Ring struct {
	generator radius.Generator
	count     func() int
	path      *etree.Element
	points    []polar.Point
}

// New binds generator to path. count is re-read on every Update.
func New(generator radius.Generator, count func() int, path *etree.Element) *Ring {
	return &Ring{
		generator: generator,
		count:     count,
		path:      path,
	}
}

// Update resamples the generator, rewrites the path's d attribute and returns
// the same element.
func (r *Ring) Update() *etree.Element {
	r.points = Sample(r.generator, r.count())
	r.path.CreateAttr("d", PathData(r.points))
	return r.path
}

// Element returns the owned path element.
func (r *Ring) Element() *etree.Element { return r.path }

// Points returns the cartesian points from the last Update, relative to the
// ring center.
func (r *Ring) Points() []polar.Point { return r.points }

// Sample evaluates generator at count evenly spaced angles.
func Sample(generator radius.Generator, count int) []polar.Point {
	if count <= 0 {
		count = DefaultCount
	}
	points := radius.Increment(func(degree float64) polar.Point {
		return polar.ToCartesian(polar.Polar{
			Degree: degree,
			Radius: generator(degree + SampleOffset),
		})
	}, 360, 360/float64(count), 0)
	// Accumulated float error can squeeze in one sample just short of 360.
	if len(points) > count {
		points = points[:count]
	}
	return points
}

// PathData encodes points as an absolute move-to followed by relative
// line-to deltas, closed with Z. An empty slice starts at the origin.
func PathData(points []polar.Point) string {
	first := polar.Point{}
	if len(points) > 0 {
		first = points[0]
	}

	var b strings.Builder
	b.Grow(len(points) * 24)
	b.WriteString("M")
	writePair(&b, first.X, first.Y)

	previous := first
	for i := 1; i < len(points); i++ {
		p := points[i]
		b.WriteString(" l")
		writePair(&b, p.X-previous.X, p.Y-previous.Y)
		previous = p
	}
	b.WriteString(" Z")
	return b.String()
}

func writePair(b *strings.Builder, x, y float64) {
	b.WriteString(formatNumber(x))
	b.WriteByte(',')
	b.WriteString(formatNumber(y))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
