package pad

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"SignPad/internal/state"
)

// Playback is the handle of one Play call.
type Playback struct {
	ID string

	pad       *Pad
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
	completed bool
}

func newPlayback(p *Pad) *Playback {
	ctx, cancel := context.WithCancel(context.Background())
	return &Playback{
		ID:     uuid.NewString(),
		pad:    p,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Done is closed when the playback has finished or was cancelled.
func (pb *Playback) Done() <-chan struct{} {
	return pb.done
}

// Completed reports whether every sample was played. It is only
// meaningful once Done is closed.
func (pb *Playback) Completed() bool {
	select {
	case <-pb.done:
		return pb.completed
	default:
		return false
	}
}

// Stop cancels the playback if it is still running. Samples already
// played stay on the surface.
func (pb *Playback) Stop() {
	pb.pad.stop(pb)
}

func (pb *Playback) finish(completed bool) {
	pb.once.Do(func() {
		pb.completed = completed
		pb.cancel()
		close(pb.done)
	})
}

type ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{time.NewTicker(d)}
}

// run feeds one sample per tick until the samples run out or pb is
// cancelled.
func (p *Pad) run(pb *Playback, samples []state.RawSample, t ticker) {
	defer t.Stop()
	next := 0
	for {
		select {
		case <-pb.ctx.Done():
			return
		case <-t.C():
		}
		if !p.tick(pb, samples, &next) {
			return
		}
	}
}

// tick plays samples[*next] and reports whether more ticks are wanted.
func (p *Pad) tick(pb *Playback, samples []state.RawSample, next *int) bool {
	var n notes
	p.mu.Lock()
	if p.active != pb {
		p.mu.Unlock()
		return false
	}
	if *next < len(samples) {
		p.session.Dispatch(samples[*next])
		*next++
		n.add(p.OnPaint)
	}
	finished := *next >= len(samples)
	if finished {
		p.active = nil
		p.interactive = true
		pb.finish(true)
		p.logf("playback %s complete", pb.ID)
		n.addID(p.OnPlaybackComplete, pb.ID)
	}
	p.mu.Unlock()
	n.flush()
	return !finished
}
