package pad

import (
	"errors"
	"fmt"

	"SignPad/internal/state"
)

// ErrInvalidInput is returned by Play for a source that is not a history.
var ErrInvalidInput = errors.New("invalid playback input")

// Source is what Play accepts: either Serialized text or Strokes.
type Source interface {
	history() (state.History, error)
}

// Serialized is history in its textual form, as returned by Pad.History.
type Serialized string

func (s Serialized) history() (state.History, error) {
	return state.ParseHistory(string(s))
}

// Strokes is history as a list of strokes.
type Strokes state.History

func (s Strokes) history() (state.History, error) {
	h := state.History(s)
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return h.Clone(), nil
}

func resolve(src Source) (state.History, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no source", ErrInvalidInput)
	}
	return src.history()
}
