// Package ink turns a stream of sampled points into smooth, variable width
// strokes: a sliding window curve fitter, a velocity driven width model and
// the renderer contract they paint through.
package ink

import "SignPad/internal/state"

// Fitter converts consecutive points into cubic Bézier segments. It keeps
// at most four of the most recent points of the active stroke.
type Fitter struct {
	points []state.Point
}

// Begin starts a new stroke at p.
func (f *Fitter) Begin(p state.Point) {
	f.points = f.points[:0]
	f.Add(p)
}

// Add pushes p and returns the next curve once three or more points are
// buffered. The curve runs between the two middle points of the window.
func (f *Fitter) Add(p state.Point) (state.Curve, bool) {
	f.points = append(f.points, p)
	if len(f.points) < 3 {
		return state.Curve{}, false
	}
	if len(f.points) == 3 {
		// Reuse the first point as its own tangent reference so the
		// first visible curve starts at the stroke origin.
		f.points = append(f.points, state.Point{})
		copy(f.points[1:], f.points)
	}
	pts := f.points
	_, ctrl1 := controlPoints(pts[0], pts[1], pts[2])
	ctrl2, _ := controlPoints(pts[1], pts[2], pts[3])
	curve := state.Curve{Start: pts[1], Control1: ctrl1, Control2: ctrl2, End: pts[2]}

	copy(f.points, f.points[1:])
	f.points = f.points[:3]
	return curve, true
}

// Points returns the number of buffered points.
func (f *Fitter) Points() int {
	return len(f.points)
}

// First returns the oldest buffered point.
func (f *Fitter) First() (state.Point, bool) {
	if len(f.points) == 0 {
		return state.Point{}, false
	}
	return f.points[0], true
}

// Reset empties the buffer.
func (f *Fitter) Reset() {
	f.points = f.points[:0]
}

// controlPoints returns the tangent control points around s2 for the
// triple (s1, s2, s3), weighted by the chord lengths on either side.
func controlPoints(s1, s2, s3 state.Point) (c1, c2 state.Point) {
	m1 := s1.Midpoint(s2)
	m2 := s2.Midpoint(s3)
	l1 := s1.Distance(s2)
	l2 := s2.Distance(s3)

	// All three points coincide when both chords are empty; any finite
	// factor then yields s2.
	var k float64
	if l1+l2 > 0 {
		k = l2 / (l1 + l2)
	}
	cmX := m2.X + (m1.X-m2.X)*k
	cmY := m2.Y + (m1.Y-m2.Y)*k
	tx := s2.X - cmX
	ty := s2.Y - cmY

	c1 = state.Point{X: m1.X + tx, Y: m1.Y + ty, Time: s2.Time}
	c2 = state.Point{X: m2.X + tx, Y: m2.Y + ty, Time: s2.Time}
	return c1, c2
}
