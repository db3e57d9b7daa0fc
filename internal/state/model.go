package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind tags a raw sample with its place in a stroke.
type Kind int

const (
	Begin Kind = iota
	Update
	End
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "begin"
	case Update:
		return "update"
	case End:
		return "end"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool { return k >= Begin && k <= End }

// ErrMalformedHistory is returned when serialized history does not conform
// to the stroke format.
var ErrMalformedHistory = errors.New("malformed history")

// RawSample is the canonical unit of captured input. It serializes as
// the JSON array [kind, x, y, time].
type RawSample struct {
	Kind Kind
	X    float64
	Y    float64
	Time float64
}

// Sample is shorthand for building a RawSample.
func Sample(kind Kind, x, y, t float64) RawSample {
	return RawSample{Kind: kind, X: x, Y: y, Time: t}
}

// Point returns the sample position as a Point.
func (s RawSample) Point() Point {
	return Point{X: s.X, Y: s.Y, Time: s.Time}
}

func (s RawSample) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{float64(s.Kind), s.X, s.Y, s.Time})
}

func (s *RawSample) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: sample %s: %v", ErrMalformedHistory, data, err)
	}
	if len(raw) != 4 {
		return fmt.Errorf("%w: sample has %d fields, want 4", ErrMalformedHistory, len(raw))
	}
	kind := Kind(raw[0])
	if float64(kind) != raw[0] || !kind.valid() {
		return fmt.Errorf("%w: unknown sample kind %v", ErrMalformedHistory, raw[0])
	}
	*s = RawSample{Kind: kind, X: raw[1], Y: raw[2], Time: raw[3]}
	return nil
}

// Stroke is one pen-down to pen-up gesture.
type Stroke []RawSample

// Validate reports whether s starts with exactly one Begin, ends with exactly
// one End, holds only Updates in between and never goes back in time.
func (s Stroke) Validate() error {
	if len(s) < 2 {
		return fmt.Errorf("stroke has %d samples, need at least begin and end", len(s))
	}
	for i, sm := range s {
		want := Update
		switch i {
		case 0:
			want = Begin
		case len(s) - 1:
			want = End
		}
		if sm.Kind != want {
			return fmt.Errorf("sample %d is %v, want %v", i, sm.Kind, want)
		}
		if i > 0 && sm.Time < s[i-1].Time {
			return fmt.Errorf("sample %d: %w", i, ErrOutOfOrder)
		}
	}
	return nil
}

func (s Stroke) clone() Stroke {
	return append(Stroke(nil), s...)
}

// History is the ordered list of completed strokes.
type History []Stroke

// Validate checks every stroke in h.
func (h History) Validate() error {
	for i, st := range h {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	return nil
}

// Flatten concatenates all strokes into one sample sequence.
func (h History) Flatten() []RawSample {
	n := 0
	for _, st := range h {
		n += len(st)
	}
	out := make([]RawSample, 0, n)
	for _, st := range h {
		out = append(out, st...)
	}
	return out
}

// Clone returns a deep copy of h.
func (h History) Clone() History {
	out := make(History, len(h))
	for i, st := range h {
		out[i] = st.clone()
	}
	return out
}

// Marshal returns the serialized form of h.
func (h History) Marshal() (string, error) {
	if h == nil {
		h = History{}
	}
	data, err := json.Marshal(h)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseHistory decodes serialized history. Anything that does not describe
// a sequence of valid strokes fails with ErrMalformedHistory.
func ParseHistory(text string) (History, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	var h History
	if err := dec.Decode(&h); err != nil {
		if errors.Is(err, ErrMalformedHistory) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedHistory, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedHistory)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: not a list of strokes", ErrMalformedHistory)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHistory, err)
	}
	return h, nil
}
