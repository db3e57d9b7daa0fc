// Package pad is the controller of one drawing surface: it records live
// strokes, keeps the undo and redo stacks and replays history through the
// same pipeline live input uses.
package pad

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"SignPad/internal/ink"
	"SignPad/internal/state"
)

var (
	// ErrInteractionDisabled is returned for live input while a timed
	// playback owns the surface.
	ErrInteractionDisabled = errors.New("pointer interaction disabled during playback")
	// ErrImageUnsupported is returned by LoadImage when the renderer cannot
	// draw images.
	ErrImageUnsupported = errors.New("renderer cannot draw images")
)

// Pad is one drawing surface. All methods are safe to call from any
// goroutine; every event runs to completion under the pad lock and the
// callbacks run after the lock is released.
type Pad struct {
	// OnBegin and OnEnd bracket every live stroke.
	OnBegin func()
	OnEnd   func()
	// OnStroke receives every stroke sealed by live input.
	OnStroke func(s state.Stroke)
	// OnChange fires after the history changed.
	OnChange func()
	// OnPaint fires after an operation that may have changed pixels.
	OnPaint func()

	OnPlaybackComplete func(id string)
	OnUndoFailed       func(message string)
	OnRedoFailed       func(message string)

	// Name prefixes log lines; empty disables logging.
	Name string

	store       *state.Store
	session     *ink.Session
	renderer    ink.Renderer
	active      *Playback
	interactive bool
	newTicker   func(time.Duration) ticker
	mu          sync.Mutex
}

// New creates a pad drawing on r.
func New(r ink.Renderer, opts ink.Options) (*Pad, error) {
	if r == nil {
		return nil, errors.New("pad needs a renderer")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("pen options: %w", err)
	}
	return &Pad{
		store:       state.NewStore(),
		session:     ink.NewSession(r, opts),
		renderer:    r,
		interactive: true,
		newTicker:   newTimeTicker,
	}, nil
}

func (p *Pad) logf(format string, args ...any) {
	if p.Name == "" {
		return
	}
	log.Printf("[PAD %s] "+format, append([]any{p.Name}, args...)...)
}

// Begin starts a live stroke.
func (p *Pad) Begin(x, y, t float64) error {
	return p.Input(state.Sample(state.Begin, x, y, t))
}

// Update extends the live stroke.
func (p *Pad) Update(x, y, t float64) error {
	return p.Input(state.Sample(state.Update, x, y, t))
}

// End finishes the live stroke.
func (p *Pad) End(x, y, t float64) error {
	return p.Input(state.Sample(state.End, x, y, t))
}

// Input records a live sample and draws it. Samples are rejected while a
// timed playback runs and when they do not continue the current stroke.
func (p *Pad) Input(sm state.RawSample) error {
	var n notes
	defer n.flush()
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.interactive {
		return ErrInteractionDisabled
	}
	sealed, err := p.store.Record(sm)
	if err != nil {
		return err
	}
	p.session.Dispatch(sm)
	switch sm.Kind {
	case state.Begin:
		n.add(p.OnBegin)
	case state.End:
		n.add(p.OnEnd)
		if p.OnStroke != nil {
			n.push(func() { p.OnStroke(sealed) })
		}
		n.add(p.OnChange)
	}
	n.add(p.OnPaint)
	return nil
}

// Clear wipes the surface and the stroke session. History is kept; a
// stroke still being drawn is dropped.
func (p *Pad) Clear() {
	var n notes
	p.mu.Lock()
	p.cancelLocked()
	p.clearLocked()
	n.add(p.OnPaint)
	p.mu.Unlock()
	n.flush()
}

// Reset drops history and redo buffer and wipes the surface.
func (p *Pad) Reset() {
	var n notes
	p.mu.Lock()
	p.cancelLocked()
	p.store.Reset()
	p.clearLocked()
	n.add(p.OnChange)
	n.add(p.OnPaint)
	p.mu.Unlock()
	n.flush()
	p.logf("reset")
}

// Undo removes the newest stroke and redraws the remaining history. With
// nothing to undo it notifies OnUndoFailed and returns state.ErrEmptyUndo;
// the surface is redrawn either way. The redraw is immediate and does not
// fire OnPlaybackComplete. A stroke still being drawn is dropped.
func (p *Pad) Undo() error {
	return p.step(p.store.Undo, p.OnUndoFailed, "cannot undo: history is empty")
}

// Redo restores the most recently undone stroke and redraws the history.
// With nothing to redo it notifies OnRedoFailed and returns
// state.ErrEmptyRedo. As with Undo, OnPlaybackComplete is not fired.
func (p *Pad) Redo() error {
	return p.step(p.store.Redo, p.OnRedoFailed, "cannot redo: nothing was undone")
}

func (p *Pad) step(move func() error, failed func(string), message string) error {
	var n notes
	p.mu.Lock()
	err := move()
	p.cancelLocked()
	p.clearLocked()
	p.replayLocked(p.store.History().Flatten())
	if err != nil {
		p.logf("%s", message)
		if failed != nil {
			n.push(func() { failed(message) })
		}
	} else {
		n.add(p.OnChange)
	}
	n.add(p.OnPaint)
	p.mu.Unlock()
	n.flush()
	return err
}

// History returns the serialized form of the completed strokes.
func (p *Pad) History() (string, error) {
	return p.store.History().Marshal()
}

// Strokes returns a copy of the completed strokes.
func (p *Pad) Strokes() state.History {
	return p.store.History()
}

// CanUndo reports whether Undo has a stroke to remove.
func (p *Pad) CanUndo() bool { return p.store.Len() > 0 }

// CanRedo reports whether Redo has a stroke to restore.
func (p *Pad) CanRedo() bool { return p.store.RedoLen() > 0 }

// Play makes src the current history and draws it. With a zero delay every
// sample is drawn before Play returns; otherwise one sample is drawn per
// delay and live input is refused until the playback ends. Starting a
// playback cancels the one in flight and wipes what it drew.
//
// A malformed src leaves the pad untouched. Otherwise a stroke still being
// drawn is dropped so it cannot end up on top of the played history.
func (p *Pad) Play(src Source, delay time.Duration) (*Playback, error) {
	h, err := resolve(src)
	if err != nil {
		return nil, err
	}
	var n notes
	defer n.flush()
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancelLocked() {
		p.renderer.Clear()
	}
	p.abortLocked()
	p.store.Load(h)
	n.add(p.OnChange)

	samples := h.Flatten()
	pb := newPlayback(p)
	if delay <= 0 {
		p.replayLocked(samples)
		pb.finish(true)
		p.logf("playback %s complete (%d samples)", pb.ID, len(samples))
		n.add(p.OnPaint)
		n.addID(p.OnPlaybackComplete, pb.ID)
		return pb, nil
	}

	p.active = pb
	p.interactive = false
	p.logf("playback %s started (%d samples every %v)", pb.ID, len(samples), delay)
	go p.run(pb, samples, p.newTicker(delay))
	return pb, nil
}

// Active returns the running timed playback, if any.
func (p *Pad) Active() *Playback {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Interactive reports whether live input is accepted.
func (p *Pad) Interactive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interactive
}

// IsEmpty reports whether nothing has been painted since the surface was
// last cleared.
func (p *Pad) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.IsEmpty()
}

// LoadImage draws img onto the surface, as when restoring an exported
// picture. History is not touched.
func (p *Pad) LoadImage(img image.Image) error {
	d, ok := p.renderer.(ink.ImageDrawer)
	if !ok {
		return ErrImageUnsupported
	}
	var n notes
	p.mu.Lock()
	p.cancelLocked()
	p.abortLocked()
	d.DrawImage(img)
	p.session.MarkPainted()
	n.add(p.OnPaint)
	p.mu.Unlock()
	n.flush()
	return nil
}

func (p *Pad) stop(pb *Playback) {
	p.mu.Lock()
	if p.active == pb {
		p.cancelLocked()
	}
	p.mu.Unlock()
	pb.finish(false)
}

// cancelLocked stops the running timed playback and reports whether there
// was one.
func (p *Pad) cancelLocked() bool {
	pb := p.active
	if pb == nil {
		return false
	}
	p.active = nil
	p.interactive = true
	pb.finish(false)
	p.logf("playback %s cancelled", pb.ID)
	return true
}

// clearLocked wipes the surface. A live stroke cannot survive its session
// being reset, so it is dropped as well.
func (p *Pad) clearLocked() {
	p.renderer.Clear()
	p.abortLocked()
}

func (p *Pad) abortLocked() {
	if p.store.Abort() {
		p.logf("live stroke dropped")
	}
	p.session.Reset()
}

func (p *Pad) replayLocked(samples []state.RawSample) {
	for _, sm := range samples {
		p.session.Dispatch(sm)
	}
}

// notes collects callbacks to run once the pad lock is released.
type notes []func()

func (n *notes) push(fn func()) { *n = append(*n, fn) }

func (n *notes) add(fn func()) {
	if fn != nil {
		n.push(fn)
	}
}

func (n *notes) addID(fn func(string), id string) {
	if fn != nil {
		n.push(func() { fn(id) })
	}
}

func (n *notes) flush() {
	for _, fn := range *n {
		fn()
	}
	*n = nil
}
