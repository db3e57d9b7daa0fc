// Package export writes a drawing history out as PDF or PNG and moves
// bitmaps in and out of data URLs.
package export

import (
	"fmt"
	"io"
	"log"

	"SignPad/internal/config"
	"SignPad/internal/ink"
	"SignPad/internal/pad"
	"SignPad/internal/render"
	"SignPad/internal/state"
)

// cropPadding is the margin kept around the ink when cropping.
const cropPadding = 10

// PDF replays h onto a single page. With crop set the page is trimmed to
// the inked area, otherwise it covers the whole canvas.
func PDF(w io.Writer, h state.History, cfg config.Config, crop bool) error {
	page := state.Rect{Width: float64(cfg.Canvas.Width), Height: float64(cfg.Canvas.Height)}
	if crop {
		if b := h.Bounds(cropPadding); !b.Empty() {
			page = b
		}
	}
	doc := render.NewPDF(page, cfg.Pen.Color, cfg.Pen.Background, cfg.Pen.WidthEase)
	if err := replay(doc, h, cfg); err != nil {
		return err
	}
	if err := doc.Err(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	log.Printf("[EXPORT] PDF with %d strokes on a %gx%g page", len(h), page.Width, page.Height)
	return doc.Output(w)
}

// PNG replays h onto a canvas-sized bitmap and encodes it.
func PNG(w io.Writer, h state.History, cfg config.Config) error {
	r := render.NewRaster(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Pen.Color, cfg.Pen.Background, cfg.Pen.WidthEase)
	if err := replay(r, h, cfg); err != nil {
		return err
	}
	log.Printf("[EXPORT] PNG with %d strokes at %dx%d", len(h), cfg.Canvas.Width, cfg.Canvas.Height)
	return r.EncodePNG(w)
}

// replay drives h through a pad so the output matches what was drawn live.
func replay(r ink.Renderer, h state.History, cfg config.Config) error {
	p, err := pad.New(r, cfg.Ink())
	if err != nil {
		return err
	}
	if _, err := p.Play(pad.Strokes(h), 0); err != nil {
		return fmt.Errorf("replay history: %w", err)
	}
	return nil
}
