package ink

import (
	"image"
	"math"

	"SignPad/internal/state"
)

// Renderer is the paint surface a Session draws on.
type Renderer interface {
	// Clear wipes the surface to its background.
	Clear()
	// PaintDot fills a circle of the given radius.
	PaintDot(x, y, radius float64)
	// PaintCurve fills a curve whose width goes from startWidth to endWidth.
	PaintCurve(curve state.Curve, startWidth, endWidth float64)
}

// ImageDrawer is implemented by renderers that can show a loaded image.
type ImageDrawer interface {
	DrawImage(img image.Image)
}

// Dotter is the minimal painting primitive: a filled circle.
type Dotter interface {
	Clear()
	PaintDot(x, y, radius float64)
}

// Dots turns a Dotter into a Renderer by stippling every curve with dots.
type Dots struct {
	Dotter
	// Ease is the exponent of the width blend along a curve; zero means 3.
	Ease float64
}

var _ Renderer = Dots{}

func (d Dots) PaintCurve(curve state.Curve, startWidth, endWidth float64) {
	StippleEase(curve, startWidth, endWidth, d.Ease, d.PaintDot)
}

// Stipple samples curve at one step per unit of approximate length and calls
// dot at each sample. The radius moves from startWidth to endWidth with t³.
func Stipple(curve state.Curve, startWidth, endWidth float64, dot func(x, y, radius float64)) {
	StippleEase(curve, startWidth, endWidth, 3, dot)
}

// StippleEase is Stipple with a configurable width ease exponent.
func StippleEase(curve state.Curve, startWidth, endWidth, ease float64, dot func(x, y, radius float64)) {
	if ease <= 0 {
		ease = 3
	}
	delta := endWidth - startWidth
	steps := int(math.Floor(curve.Length()))
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		x, y := curve.At(t)
		dot(x, y, startWidth+easeAt(t, ease)*delta)
	}
}

func easeAt(t, ease float64) float64 {
	if ease == 3 {
		return t * t * t
	}
	return math.Pow(t, ease)
}
