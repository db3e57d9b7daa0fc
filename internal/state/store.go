package state

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEmptyUndo      = errors.New("nothing to undo")
	ErrEmptyRedo      = errors.New("nothing to redo")
	ErrNoActiveStroke = errors.New("no active stroke")
	ErrOutOfOrder     = errors.New("sample timestamp goes back in time")
)

// Store holds the completed strokes of one drawing surface together with
// the redo buffer and the stroke currently being recorded.
type Store struct {
	history History // undo stack, oldest first
	redo    History // LIFO, last element is the next redo
	current Stroke  // samples of the stroke in progress
	mu      sync.RWMutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Record appends a live sample to the stroke in progress. A Begin discards
// any unfinished stroke and invalidates the redo buffer. When the sample is
// an End, the sealed stroke is appended to the history and returned.
func (s *Store) Record(sm RawSample) (Stroke, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch sm.Kind {
	case Begin:
		s.redo = nil
		s.current = Stroke{sm}
		return nil, nil
	case Update, End:
		if len(s.current) == 0 {
			return nil, fmt.Errorf("%v sample: %w", sm.Kind, ErrNoActiveStroke)
		}
		if sm.Time < s.current[len(s.current)-1].Time {
			return nil, fmt.Errorf("%v sample at %g: %w", sm.Kind, sm.Time, ErrOutOfOrder)
		}
		s.current = append(s.current, sm)
		if sm.Kind == Update {
			return nil, nil
		}
		sealed := s.current
		s.current = nil
		s.history = append(s.history, sealed)
		return sealed.clone(), nil
	}
	return nil, fmt.Errorf("unknown sample kind %d", int(sm.Kind))
}

// Recording reports whether a stroke is in progress.
func (s *Store) Recording() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.current) > 0
}

// Abort drops the stroke in progress and reports whether there was one.
// Later Update and End samples fail with ErrNoActiveStroke until the next
// Begin.
func (s *Store) Abort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := len(s.current) > 0
	s.current = nil
	return had
}

// Undo moves the newest stroke to the redo buffer.
func (s *Store) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.history)
	if n == 0 {
		return ErrEmptyUndo
	}
	s.redo = append(s.redo, s.history[n-1])
	s.history = s.history[:n-1:n-1]
	return nil
}

// Redo moves the most recently undone stroke back onto the history.
func (s *Store) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.redo)
	if n == 0 {
		return ErrEmptyRedo
	}
	s.history = append(s.history, s.redo[n-1])
	s.redo = s.redo[:n-1:n-1]
	return nil
}

// Reset drops the history, the redo buffer and any stroke in progress.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.redo = nil
	s.current = nil
}

// Load replaces the history with a copy of h. The redo buffer is kept.
func (s *Store) Load(h History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = h.Clone()
}

// History returns a copy of the completed strokes.
func (s *Store) History() History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Clone()
}

// Len returns the number of completed strokes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// RedoLen returns the number of strokes available to redo.
func (s *Store) RedoLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo)
}
