package state

import (
	"fmt"
	"math"
)

// Point is a single sampled position on the drawing surface.
// Time is in milliseconds.
type Point struct {
	X    float64
	Y    float64
	Time float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g @%g)", p.X, p.Y, p.Time)
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// VelocityFrom returns the speed in pixels per millisecond travelled from start to p.
// Two samples with the same timestamp count as velocity 1.
func (p Point) VelocityFrom(start Point) float64 {
	if p.Time == start.Time {
		return 1
	}
	return p.Distance(start) / (p.Time - start.Time)
}

// Midpoint returns the midpoint of two points. The time is left at zero.
func (p Point) Midpoint(o Point) Point {
	return Point{X: 0.5 * (p.X + o.X), Y: 0.5 * (p.Y + o.Y)}
}

// Curve is a cubic Bézier segment.
type Curve struct {
	Start    Point
	Control1 Point
	Control2 Point
	End      Point
}

// At evaluates the curve at parameter t in [0, 1].
func (c Curve) At(t float64) (x, y float64) {
	return bezier(t, c.Start.X, c.Control1.X, c.Control2.X, c.End.X),
		bezier(t, c.Start.Y, c.Control1.Y, c.Control2.Y, c.End.Y)
}

// Length approximates the arc length with a 10 segment polyline.
func (c Curve) Length() float64 {
	const steps = 10
	var length, px, py float64
	for i := 0; i <= steps; i++ {
		cx, cy := c.At(float64(i) / steps)
		if i > 0 {
			length += math.Hypot(cx-px, cy-py)
		}
		px, py = cx, cy
	}
	return length
}

func bezier(t, start, c1, c2, end float64) float64 {
	u := 1 - t
	return start*u*u*u +
		3*c1*u*u*t +
		3*c2*u*t*t +
		end*t*t*t
}
