package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SignPad/internal/pad"
)

// NewToolbar builds the editing and file actions for w. A view-only pad
// only gets the export actions.
func NewToolbar(w *PadWidget, win fyne.Window) fyne.CanvasObject {
	saveAs := func(name, ext string, write func(fyne.URIWriteCloser)) func() {
		return func() {
			d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, win)
					return
				}
				if writer == nil {
					return
				}
				write(writer)
			}, win)
			d.SetFileName(name)
			d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
			d.Show()
		}
	}
	open := func(exts []string, read func(fyne.URIReadCloser)) func() {
		return func() {
			d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil {
					dialog.ShowError(err, win)
					return
				}
				if reader == nil {
					return
				}
				read(reader)
			}, win)
			d.SetFilter(storage.NewExtensionFileFilter(exts))
			d.Show()
		}
	}

	exports := []widget.ToolbarItem{
		widget.NewToolbarAction(theme.FileImageIcon(), saveAs("signature.png", ".png", w.ExportPNG)),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), saveAs("signature.pdf", ".pdf", w.ExportPDF)),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() { w.CopyDataURL(win.Clipboard()) }),
	}
	if w.ViewOnly {
		return container.NewHBox(widget.NewToolbar(exports...), layout.NewSpacer())
	}

	edit := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { w.Pad.Undo() }),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() { w.Pad.Redo() }),
		widget.NewToolbarAction(theme.ContentClearIcon(), w.Pad.Clear),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Reset", "Discard the whole drawing and its history?", func(ok bool) {
				if ok {
					w.Pad.Reset()
				}
			}, win)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() {
			h := w.Pad.Strokes()
			w.Pad.Clear()
			if _, err := w.Pad.Play(pad.Strokes(h), w.Config().Delay()); err != nil {
				dialog.ShowError(err, win)
				return
			}
			w.SetStatus("Playing back")
		}),
		widget.NewToolbarAction(theme.MediaStopIcon(), func() {
			if pb := w.Pad.Active(); pb != nil {
				pb.Stop()
				w.SetStatus("Playback stopped")
			}
		}),
	)
	files := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), saveAs("signature.json", ".json", w.SaveToFile)),
		widget.NewToolbarAction(theme.FolderOpenIcon(), open([]string{".json"}, w.LoadFromFile)),
		widget.NewToolbarAction(theme.MediaPhotoIcon(), open([]string{".png", ".jpg", ".jpeg"}, w.ImportImage)),
	)

	return container.NewHBox(
		widget.NewLabel("Edit:"),
		edit,
		widget.NewSeparator(),
		widget.NewLabel("File:"),
		files,
		widget.NewSeparator(),
		widget.NewLabel("Export:"),
		widget.NewToolbar(exports...),
		layout.NewSpacer(),
	)
}
