// Package render holds the concrete surfaces strokes are painted on.
package render

import (
	"image"
	"io"
	"log"
	"sync"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"SignPad/internal/ink"
	"SignPad/internal/state"
)

// Raster paints strokes into an in-memory bitmap.
type Raster struct {
	ctx        *gg.Context
	pen        gg.RGBA
	background gg.RGBA
	ease       float64
	mu         sync.Mutex
}

var (
	_ ink.Renderer    = (*Raster)(nil)
	_ ink.ImageDrawer = (*Raster)(nil)
)

// NewRaster creates a width×height bitmap cleared to the background.
// Colors are hex strings such as "#000" or "#ffffff00".
func NewRaster(width, height int, pen, background string, ease float64) *Raster {
	r := &Raster{
		ctx:        gg.NewContext(width, height),
		pen:        gg.Hex(pen),
		background: gg.Hex(background),
		ease:       ease,
	}
	r.Clear()
	return r
}

func (r *Raster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx.ClearWithColor(r.background)
}

func (r *Raster) PaintDot(x, y, radius float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dot(x, y, radius)
}

func (r *Raster) PaintCurve(curve state.Curve, startWidth, endWidth float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ink.StippleEase(curve, startWidth, endWidth, r.ease, r.dot)
}

func (r *Raster) dot(x, y, radius float64) {
	r.ctx.SetColor(r.pen.Color())
	r.ctx.DrawCircle(x, y, radius)
	if err := r.ctx.Fill(); err != nil {
		log.Printf("[RENDER] fill dot at (%g, %g): %v", x, y, err)
	}
}

// DrawImage scales img over the whole bitmap.
func (r *Raster) DrawImage(img image.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dst := image.NewRGBA(image.Rect(0, 0, r.ctx.Width(), r.ctx.Height()))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	r.ctx.DrawImage(gg.ImageBufFromImage(dst), 0, 0)
}

// Image returns a snapshot of the bitmap.
func (r *Raster) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctx.Image()
}

// EncodePNG writes the bitmap as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctx.EncodePNG(w)
}

// Size returns the bitmap dimensions.
func (r *Raster) Size() (width, height int) {
	return r.ctx.Width(), r.ctx.Height()
}
