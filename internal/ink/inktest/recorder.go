// Package inktest provides a Renderer that records paint calls.
package inktest

import (
	"image"
	"sync"

	"SignPad/internal/ink"
	"SignPad/internal/state"
)

// Op names a recorded paint call.
type Op string

const (
	OpClear Op = "clear"
	OpDot   Op = "dot"
	OpCurve Op = "curve"
	OpImage Op = "image"
)

// Call is one recorded paint call.
type Call struct {
	Op         Op
	X, Y       float64
	Radius     float64
	Curve      state.Curve
	StartWidth float64
	EndWidth   float64
}

// Recorder is a Renderer that remembers every call made to it.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

var (
	_ ink.Renderer    = (*Recorder)(nil)
	_ ink.ImageDrawer = (*Recorder)(nil)
)

func (r *Recorder) add(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *Recorder) Clear() { r.add(Call{Op: OpClear}) }

func (r *Recorder) PaintDot(x, y, radius float64) {
	r.add(Call{Op: OpDot, X: x, Y: y, Radius: radius})
}

func (r *Recorder) PaintCurve(curve state.Curve, startWidth, endWidth float64) {
	r.add(Call{Op: OpCurve, Curve: curve, StartWidth: startWidth, EndWidth: endWidth})
}

func (r *Recorder) DrawImage(img image.Image) { r.add(Call{Op: OpImage}) }

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Paints returns the recorded dot and curve calls, skipping clears.
func (r *Recorder) Paints() []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op == OpDot || c.Op == OpCurve {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Curves returns the recorded curves in order.
func (r *Recorder) Curves() []state.Curve {
	var out []state.Curve
	for _, c := range r.Calls() {
		if c.Op == OpCurve {
			out = append(out, c.Curve)
		}
	}
	return out
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
