package render

import (
	"image"

	"SignPad/internal/ink"
	"SignPad/internal/state"
)

// Multi paints on several renderers at once, e.g. the on-screen bitmap and
// a recording for export.
type Multi []ink.Renderer

var (
	_ ink.Renderer    = Multi(nil)
	_ ink.ImageDrawer = Multi(nil)
)

func (m Multi) Clear() {
	for _, r := range m {
		r.Clear()
	}
}

func (m Multi) PaintDot(x, y, radius float64) {
	for _, r := range m {
		r.PaintDot(x, y, radius)
	}
}

func (m Multi) PaintCurve(curve state.Curve, startWidth, endWidth float64) {
	for _, r := range m {
		r.PaintCurve(curve, startWidth, endWidth)
	}
}

// DrawImage forwards img to every renderer that can draw images.
func (m Multi) DrawImage(img image.Image) {
	for _, r := range m {
		if d, ok := r.(ink.ImageDrawer); ok {
			d.DrawImage(img)
		}
	}
}
