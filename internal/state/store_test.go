package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, s *Store, samples ...RawSample) Stroke {
	t.Helper()
	var sealed Stroke
	for _, sm := range samples {
		st, err := s.Record(sm)
		require.NoError(t, err)
		if st != nil {
			sealed = st
		}
	}
	return sealed
}

func scenarioSamples() []RawSample {
	return []RawSample{
		Sample(Begin, 10, 10, 0),
		Sample(Update, 15, 12, 16),
		Sample(Update, 20, 15, 33),
		Sample(End, 25, 20, 50),
	}
}

func TestStoreRecordScenario(t *testing.T) {
	s := NewStore()
	sealed := record(t, s, scenarioSamples()...)
	require.Len(t, sealed, 4)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Recording())

	before, err := s.History().Marshal()
	require.NoError(t, err)
	assert.Equal(t, scenario, before)

	require.NoError(t, s.Undo())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.RedoLen())

	require.NoError(t, s.Redo())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.RedoLen())

	after, err := s.History().Marshal()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStoreUndoRedoInverse(t *testing.T) {
	s := NewStore()
	record(t, s, Sample(Begin, 1, 1, 1), Sample(End, 1, 1, 2))
	record(t, s, Sample(Begin, 2, 2, 3), Sample(Update, 3, 3, 4), Sample(End, 4, 4, 5))
	record(t, s, Sample(Begin, 5, 5, 6), Sample(End, 6, 6, 7))
	want := s.History()

	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())
	require.NoError(t, s.Redo())
	require.NoError(t, s.Redo())
	assert.Equal(t, want, s.History())
}

func TestStoreEmptyStacks(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Undo(), ErrEmptyUndo)
	assert.ErrorIs(t, s.Redo(), ErrEmptyRedo)
}

func TestStoreBeginInvalidatesRedo(t *testing.T) {
	s := NewStore()
	record(t, s, scenarioSamples()...)
	require.NoError(t, s.Undo())
	require.Equal(t, 1, s.RedoLen())

	_, err := s.Record(Sample(Begin, 0, 0, 100))
	require.NoError(t, err)
	assert.Equal(t, 0, s.RedoLen())
	assert.ErrorIs(t, s.Redo(), ErrEmptyRedo)
}

func TestStoreRecordErrors(t *testing.T) {
	s := NewStore()
	_, err := s.Record(Sample(Update, 1, 1, 1))
	assert.ErrorIs(t, err, ErrNoActiveStroke)
	_, err = s.Record(Sample(End, 1, 1, 1))
	assert.ErrorIs(t, err, ErrNoActiveStroke)

	_, err = s.Record(Sample(Begin, 1, 1, 10))
	require.NoError(t, err)
	_, err = s.Record(Sample(Update, 1, 1, 5))
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.True(t, s.Recording())
}

func TestStoreBeginDropsUnfinishedStroke(t *testing.T) {
	s := NewStore()
	record(t, s, Sample(Begin, 1, 1, 1), Sample(Update, 2, 2, 2))
	sealed := record(t, s, Sample(Begin, 5, 5, 3), Sample(End, 6, 6, 4))
	assert.Equal(t, Stroke{Sample(Begin, 5, 5, 3), Sample(End, 6, 6, 4)}, sealed)
	assert.Equal(t, History{sealed}, s.History())
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	record(t, s, scenarioSamples()...)
	record(t, s, Sample(Begin, 1, 1, 60), Sample(End, 1, 1, 61))
	require.NoError(t, s.Undo())
	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.RedoLen())
}

func TestStoreHistoryIsCopy(t *testing.T) {
	s := NewStore()
	record(t, s, scenarioSamples()...)
	h := s.History()
	h[0][0].X = -1
	assert.Equal(t, 10.0, s.History()[0][0].X)
}

func TestClockNeverGoesBack(t *testing.T) {
	now := 100.0
	c := &Clock{now: func() float64 { return now }}
	assert.Equal(t, 100.0, c.Stamp())
	now = 90
	assert.Equal(t, 100.0, c.Stamp())
	now = 200
	assert.Equal(t, 200.0, c.Stamp())
}

func TestStoreAbortDropsStrokeInProgress(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Abort())

	record(t, s, Sample(Begin, 1, 1, 0), Sample(Update, 2, 2, 5))
	require.True(t, s.Recording())
	assert.True(t, s.Abort())
	assert.False(t, s.Recording())

	_, err := s.Record(Sample(End, 3, 3, 10))
	assert.ErrorIs(t, err, ErrNoActiveStroke)
	assert.Equal(t, 0, s.Len())
}
