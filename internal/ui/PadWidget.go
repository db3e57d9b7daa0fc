package ui

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SignPad/internal/config"
	"SignPad/internal/export"
	"SignPad/internal/pad"
	"SignPad/internal/render"
	"SignPad/internal/state"
)

// PadWidget shows a pad's bitmap and feeds it pointer input.
type PadWidget struct {
	widget.BaseWidget
	Pad *pad.Pad
	// ViewOnly ignores pointer input; the pad is driven by playback only.
	ViewOnly bool

	cfg       config.Config
	raster    *render.Raster
	clock     *state.Clock
	image     *canvas.Image
	drawing   bool
	last      fyne.Position
	statusBar *widget.Label
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)

// NewPadWidget creates a widget with a canvas sized by cfg.
func NewPadWidget(cfg config.Config, name string) (*PadWidget, error) {
	raster := render.NewRaster(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Pen.Color, cfg.Pen.Background, cfg.Pen.WidthEase)
	p, err := pad.New(raster, cfg.Ink())
	if err != nil {
		return nil, err
	}
	p.Name = name

	w := &PadWidget{
		Pad:       p,
		cfg:       cfg,
		raster:    raster,
		clock:     state.NewClock(),
		statusBar: widget.NewLabel("Ready"),
	}
	w.image = canvas.NewImageFromImage(raster.Image())
	w.image.FillMode = canvas.ImageFillStretch
	w.image.ScaleMode = canvas.ImageScaleSmooth

	p.OnPaint = func() { fyne.Do(w.showBitmap) }
	p.OnPlaybackComplete = func(id string) { w.SetStatus("Playback finished") }
	p.OnUndoFailed = func(msg string) { w.SetStatus(msg) }
	p.OnRedoFailed = func(msg string) { w.SetStatus(msg) }

	w.ExtendBaseWidget(w)
	return w, nil
}

func (w *PadWidget) showBitmap() {
	w.image.Image = w.raster.Image()
	w.image.Refresh()
}

// SetStatus shows text in the status bar. Safe from any goroutine.
func (w *PadWidget) SetStatus(text string) {
	fyne.Do(func() { w.statusBar.SetText(text) })
}

// StatusBar returns the label SetStatus writes to.
func (w *PadWidget) StatusBar() *widget.Label {
	return w.statusBar
}

// Config returns the settings the widget was built with.
func (w *PadWidget) Config() config.Config {
	return w.cfg
}

// canvasScale is the ratio between canvas pixels and widget units.
func canvasScale(size fyne.Size, width, height int) (sx, sy float64) {
	if size.Width <= 0 || size.Height <= 0 {
		return 1, 1
	}
	return float64(width) / float64(size.Width), float64(height) / float64(size.Height)
}

// Scale returns the factors that map widget positions to canvas pixels.
func (w *PadWidget) Scale() (sx, sy float64) {
	cw, ch := w.raster.Size()
	return canvasScale(w.Size(), cw, ch)
}

func (w *PadWidget) toCanvas(pos fyne.Position) (x, y float64) {
	sx, sy := w.Scale()
	return float64(pos.X) * sx, float64(pos.Y) * sy
}

func (w *PadWidget) input(kind state.Kind, pos fyne.Position) {
	w.last = pos
	x, y := w.toCanvas(pos)
	err := w.Pad.Input(state.Sample(kind, x, y, w.clock.Stamp()))
	switch {
	case err == nil:
	case errors.Is(err, pad.ErrInteractionDisabled):
		w.drawing = false
		w.SetStatus("Wait for the playback to finish")
	default:
		w.drawing = false
		log.Printf("[UI] %s at (%.1f, %.1f): %v", kind, x, y, err)
	}
}

func (w *PadWidget) MouseDown(e *desktop.MouseEvent) {
	if w.ViewOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.drawing = true
	w.input(state.Begin, e.Position)
}

func (w *PadWidget) Dragged(e *fyne.DragEvent) {
	if w.drawing {
		w.input(state.Update, e.Position)
	}
}

func (w *PadWidget) MouseUp(e *desktop.MouseEvent) {
	if w.drawing && e.Button == desktop.MouseButtonPrimary {
		w.drawing = false
		w.input(state.End, e.Position)
	}
}

// DragEnd ends the stroke when the release happened outside the widget.
func (w *PadWidget) DragEnd() {
	if w.drawing {
		w.drawing = false
		w.input(state.End, w.last)
	}
}

func (w *PadWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *PadWidget) MouseOut()                      {}
func (w *PadWidget) MouseMoved(*desktop.MouseEvent) {}

// SaveToFile writes the serialized history.
func (w *PadWidget) SaveToFile(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[UI] Error closing writer: %v", err)
		}
	}()

	text, err := w.Pad.History()
	if err != nil {
		log.Printf("[UI] SaveToFile: %v", err)
		w.SetStatus("Error saving file")
		return
	}
	if _, err := io.WriteString(writer, text); err != nil {
		log.Printf("[UI] SaveToFile: Error writing: %v", err)
		w.SetStatus("Error writing file")
		return
	}
	w.SetStatus(fmt.Sprintf("Saved %d strokes", len(w.Pad.Strokes())))
}

// LoadFromFile replaces the history with a saved one and plays it back.
func (w *PadWidget) LoadFromFile(reader fyne.URIReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("[UI] Error closing reader: %v", err)
		}
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		log.Printf("[UI] LoadFromFile: Error reading file: %v", err)
		w.SetStatus("Error reading file")
		return
	}
	h, err := state.ParseHistory(string(data))
	if err != nil {
		log.Printf("[UI] LoadFromFile: %v", err)
		w.SetStatus("Error parsing file - invalid format")
		return
	}
	w.Pad.Clear()
	if _, err := w.Pad.Play(pad.Strokes(h), w.cfg.Delay()); err != nil {
		log.Printf("[UI] LoadFromFile: %v", err)
		w.SetStatus("Error playing file")
		return
	}
	w.SetStatus("Loaded " + reader.URI().Name())
}

// ImportImage draws a picture file over the canvas, e.g. a PNG exported
// earlier. History is left alone.
func (w *PadWidget) ImportImage(reader fyne.URIReadCloser) {
	defer reader.Close()
	img, _, err := image.Decode(reader)
	if err != nil {
		log.Printf("[UI] ImportImage: %v", err)
		w.SetStatus("Not an image")
		return
	}
	if err := w.Pad.LoadImage(img); err != nil {
		log.Printf("[UI] ImportImage: %v", err)
		w.SetStatus("Could not draw image")
	}
}

// ExportPNG writes the canvas bitmap.
func (w *PadWidget) ExportPNG(writer fyne.URIWriteCloser) {
	defer writer.Close()
	if err := w.raster.EncodePNG(writer); err != nil {
		log.Printf("[UI] ExportPNG: %v", err)
		w.SetStatus("Error exporting PNG")
		return
	}
	w.SetStatus("Exported " + writer.URI().Name())
}

// ExportPDF writes the history as a vector PDF cropped to the ink.
func (w *PadWidget) ExportPDF(writer fyne.URIWriteCloser) {
	defer writer.Close()
	if err := export.PDF(writer, w.Pad.Strokes(), w.cfg, true); err != nil {
		log.Printf("[UI] ExportPDF: %v", err)
		w.SetStatus("Error exporting PDF")
		return
	}
	w.SetStatus("Exported " + writer.URI().Name())
}

// CopyDataURL puts the canvas on the clipboard as a PNG data URL.
func (w *PadWidget) CopyDataURL(clip fyne.Clipboard) {
	url, err := export.DataURL(w.raster)
	if err != nil {
		log.Printf("[UI] CopyDataURL: %v", err)
		w.SetStatus("Error encoding image")
		return
	}
	clip.SetContent(url)
	w.SetStatus("Copied image to clipboard")
}

func (w *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	return &padWidgetRenderer{pad: w}
}

type padWidgetRenderer struct {
	pad *PadWidget
}

func (r *padWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.pad.image}
}

func (r *padWidgetRenderer) Layout(size fyne.Size) {
	r.pad.image.Resize(size)
}

func (r *padWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 200)
}

func (r *padWidgetRenderer) Refresh() {
	r.pad.showBitmap()
}

func (r *padWidgetRenderer) Destroy() {}
