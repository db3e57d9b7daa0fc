package render

import (
	"io"

	"github.com/gogpu/gg"
	"github.com/jung-kurt/gofpdf"

	"SignPad/internal/ink"
	"SignPad/internal/state"
)

// PDF paints strokes as filled circles on a single PDF page sized to the
// drawing surface, one point per surface pixel.
type PDF struct {
	doc        *gofpdf.Fpdf
	origin     state.Rect
	pen        gg.RGBA
	background gg.RGBA
	ease       float64
	dirty      bool
}

var _ ink.Renderer = (*PDF)(nil)

// NewPDF creates a document whose page shows the area of the surface
// covered by page.
func NewPDF(page state.Rect, pen, background string, ease float64) *PDF {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	p := &PDF{
		doc:        doc,
		origin:     page,
		pen:        gg.Hex(pen),
		background: gg.Hex(background),
		ease:       ease,
	}
	p.Clear()
	return p
}

// Clear paints the background. Ink cannot be erased from a PDF page, so
// once something was painted Clear moves on to a fresh page.
func (p *PDF) Clear() {
	if p.dirty {
		p.doc.AddPage()
		p.dirty = false
	}
	if p.background.A == 0 {
		return
	}
	r, g, b := rgb255(p.background)
	p.doc.SetAlpha(p.background.A, "Normal")
	p.doc.SetFillColor(r, g, b)
	p.doc.Rect(0, 0, p.origin.Width, p.origin.Height, "F")
}

func (p *PDF) PaintDot(x, y, radius float64) {
	r, g, b := rgb255(p.pen)
	p.doc.SetAlpha(p.pen.A, "Normal")
	p.doc.SetFillColor(r, g, b)
	p.doc.Circle(x-p.origin.X, y-p.origin.Y, radius, "F")
	p.dirty = true
}

func (p *PDF) PaintCurve(curve state.Curve, startWidth, endWidth float64) {
	ink.StippleEase(curve, startWidth, endWidth, p.ease, p.PaintDot)
}

// Pages returns the number of pages in the document.
func (p *PDF) Pages() int {
	return p.doc.PageCount()
}

// Output writes the document and closes it.
func (p *PDF) Output(w io.Writer) error {
	return p.doc.Output(w)
}

// Err returns the first error gofpdf ran into.
func (p *PDF) Err() error {
	return p.doc.Error()
}

func rgb255(c gg.RGBA) (r, g, b int) {
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}
