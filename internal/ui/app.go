package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RunApp opens the main window around w and blocks until it is closed.
// A non-empty shareLink is shown so mirrors can join.
func RunApp(title, shareLink string, w *PadWidget) {
	myApp := app.NewWithID("io.signpad")
	myWindow := myApp.NewWindow(title)
	cfg := w.Config()
	myWindow.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))

	toolbar := NewToolbar(w, myWindow)

	bottom := []fyne.CanvasObject{w.StatusBar()}
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		link.Disable()
		bottom = append(bottom, widget.NewLabel("Share:"), link)
	}
	status := container.NewBorder(nil, nil, nil, nil, container.NewHBox(bottom...))

	myWindow.SetContent(container.NewBorder(toolbar, status, nil, nil, w))
	myWindow.ShowAndRun()
}
