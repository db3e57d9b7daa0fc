package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignPad/internal/config"
	"SignPad/internal/state"
)

func newTestWidget(t *testing.T) *PadWidget {
	t.Helper()
	test.NewTempApp(t)
	cfg := config.Default()
	cfg.Canvas.Width, cfg.Canvas.Height = 200, 100
	w, err := NewPadWidget(cfg, "")
	require.NoError(t, err)
	w.Resize(fyne.NewSize(100, 50))
	return w
}

func press(pos fyne.Position) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}, Button: desktop.MouseButtonPrimary}
}

func drag(pos fyne.Position) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: pos}}
}

func TestCanvasScale(t *testing.T) {
	sx, sy := canvasScale(fyne.NewSize(100, 50), 200, 200)
	assert.Equal(t, 2.0, sx)
	assert.Equal(t, 4.0, sy)

	sx, sy = canvasScale(fyne.NewSize(0, 0), 200, 200)
	assert.Equal(t, [2]float64{1, 1}, [2]float64{sx, sy})
}

func TestPadWidgetRecordsScaledStroke(t *testing.T) {
	w := newTestWidget(t)

	w.MouseDown(press(fyne.NewPos(10, 10)))
	w.Dragged(drag(fyne.NewPos(30, 20)))
	w.Dragged(drag(fyne.NewPos(40, 25)))
	w.MouseUp(press(fyne.NewPos(40, 25)))

	h := w.Pad.Strokes()
	require.Len(t, h, 1)
	require.Len(t, h[0], 4)
	assert.Equal(t, state.Begin, h[0][0].Kind)
	assert.Equal(t, 20.0, h[0][0].X)
	assert.Equal(t, 20.0, h[0][0].Y)
	assert.Equal(t, 80.0, h[0][2].X)
	assert.Equal(t, state.End, h[0][3].Kind)
	assert.False(t, w.Pad.IsEmpty())

	// A second release must not record another End.
	w.DragEnd()
	assert.Len(t, w.Pad.Strokes(), 1)
}

func TestPadWidgetDragEndFinishesStroke(t *testing.T) {
	w := newTestWidget(t)
	w.MouseDown(press(fyne.NewPos(5, 5)))
	w.Dragged(drag(fyne.NewPos(25, 15)))
	w.DragEnd()

	h := w.Pad.Strokes()
	require.Len(t, h, 1)
	last := h[0][len(h[0])-1]
	assert.Equal(t, state.End, last.Kind)
	assert.Equal(t, 50.0, last.X)
}

func TestPadWidgetViewOnly(t *testing.T) {
	w := newTestWidget(t)
	w.ViewOnly = true
	w.MouseDown(press(fyne.NewPos(10, 10)))
	w.Dragged(drag(fyne.NewPos(20, 20)))
	w.MouseUp(press(fyne.NewPos(20, 20)))
	assert.Empty(t, w.Pad.Strokes())
	assert.True(t, w.Pad.IsEmpty())
}

func TestPadWidgetIgnoresSecondaryButton(t *testing.T) {
	w := newTestWidget(t)
	w.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}, Button: desktop.MouseButtonSecondary})
	w.Dragged(drag(fyne.NewPos(20, 20)))
	assert.Empty(t, w.Pad.Strokes())
}
