package ink

import (
	"math"

	"SignPad/internal/state"
)

// WidthModel maps the smoothed drawing velocity to a stroke width: slow
// movement draws thick, fast movement draws thin.
type WidthModel struct {
	// FilterWeight is the weight of the newest velocity sample, in (0, 1].
	FilterWeight float64
	MinWidth     float64
	MaxWidth     float64

	lastVelocity float64
	lastWidth    float64
}

// NewWidthModel returns a reset model for the given options.
func NewWidthModel(opts Options) *WidthModel {
	w := &WidthModel{
		FilterWeight: opts.VelocityFilterWeight,
		MinWidth:     opts.MinWidth,
		MaxWidth:     opts.MaxWidth,
	}
	w.Reset()
	return w
}

// Reset forgets the previous curve: velocity drops to zero and the width
// returns to the midpoint of the configured range.
func (w *WidthModel) Reset() {
	w.lastVelocity = 0
	w.lastWidth = (w.MinWidth + w.MaxWidth) / 2
}

// WidthFor maps a velocity to a width clamped to [MinWidth, MaxWidth].
func (w *WidthModel) WidthFor(velocity float64) float64 {
	width := w.MaxWidth / (math.Max(velocity, 0) + 1)
	return math.Max(width, w.MinWidth)
}

// Next folds the velocity of curve into the running average and returns
// the width the curve should start and end with.
func (w *WidthModel) Next(curve state.Curve) (start, end float64) {
	velocity := curve.End.VelocityFrom(curve.Start)
	velocity = w.FilterWeight*velocity + (1-w.FilterWeight)*w.lastVelocity

	start, end = w.lastWidth, w.WidthFor(velocity)
	w.lastVelocity = velocity
	w.lastWidth = end
	return start, end
}

// LastVelocity returns the smoothed velocity of the previous curve.
func (w *WidthModel) LastVelocity() float64 { return w.lastVelocity }

// LastWidth returns the end width of the previous curve.
func (w *WidthModel) LastWidth() float64 { return w.lastWidth }
