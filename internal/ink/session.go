package ink

import (
	"errors"
	"fmt"

	"SignPad/internal/state"
)

// Options tune the look of a stroke.
type Options struct {
	VelocityFilterWeight float64
	MinWidth             float64
	MaxWidth             float64
	// DotSize is the radius of a tap; zero means (MinWidth+MaxWidth)/2.
	DotSize float64
	// WidthEase is the exponent of the width blend along a curve; zero means 3.
	WidthEase float64
}

// DefaultOptions returns the stock pen.
func DefaultOptions() Options {
	return Options{
		VelocityFilterWeight: 0.7,
		MinWidth:             0.5,
		MaxWidth:             2.5,
	}
}

// Validate rejects options the width model cannot work with.
func (o Options) Validate() error {
	switch {
	case o.VelocityFilterWeight <= 0 || o.VelocityFilterWeight > 1:
		return fmt.Errorf("velocity filter weight %g outside (0, 1]", o.VelocityFilterWeight)
	case o.MinWidth <= 0:
		return errors.New("min width must be positive")
	case o.MaxWidth < o.MinWidth:
		return fmt.Errorf("max width %g below min width %g", o.MaxWidth, o.MinWidth)
	case o.DotSize < 0:
		return errors.New("dot size must not be negative")
	case o.WidthEase < 0:
		return errors.New("width ease must not be negative")
	}
	return nil
}

func (o Options) dotSize() float64 {
	if o.DotSize > 0 {
		return o.DotSize
	}
	return (o.MinWidth + o.MaxWidth) / 2
}

// Session is the state of the stroke being drawn on one surface.
type Session struct {
	opts     Options
	fitter   Fitter
	width    *WidthModel
	renderer Renderer
	empty    bool
}

// NewSession creates a session painting on r.
func NewSession(r Renderer, opts Options) *Session {
	s := &Session{
		opts:     opts,
		width:    NewWidthModel(opts),
		renderer: r,
	}
	s.Reset()
	return s
}

// Reset drops the in-progress points, restores the neutral width and marks
// the session empty.
func (s *Session) Reset() {
	s.fitter.Reset()
	s.width.Reset()
	s.empty = true
}

// Begin resets the session and adds the first point.
func (s *Session) Begin(p state.Point) {
	s.Reset()
	s.Update(p)
}

// Update adds a point and paints the curve it completes, if any.
func (s *Session) Update(p state.Point) {
	curve, ok := s.fitter.Add(p)
	if !ok {
		return
	}
	start, end := s.width.Next(curve)
	s.renderer.PaintCurve(curve, start, end)
	s.empty = false
}

// End finishes the stroke. A stroke too short to form a curve is painted
// as a single dot at its first point.
func (s *Session) End() {
	if s.fitter.Points() > 2 {
		return
	}
	if p, ok := s.fitter.First(); ok {
		s.renderer.PaintDot(p.X, p.Y, s.opts.dotSize())
		s.empty = false
	}
}

// Dispatch routes a raw sample to Begin, Update or End.
func (s *Session) Dispatch(sm state.RawSample) {
	switch sm.Kind {
	case state.Begin:
		s.Begin(sm.Point())
	case state.Update:
		s.Update(sm.Point())
	case state.End:
		s.End()
	}
}

// IsEmpty reports whether nothing has been painted since the last reset.
func (s *Session) IsEmpty() bool {
	return s.empty
}

// MarkPainted flags the surface as holding content painted outside the
// session, such as a loaded image.
func (s *Session) MarkPainted() {
	s.empty = false
}
