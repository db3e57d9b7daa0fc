package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `[[[0,10,10,0],[1,15,12,16],[1,20,15,33],[2,25,20,50]]]`

func TestParseHistoryScenario(t *testing.T) {
	h, err := ParseHistory(scenario)
	require.NoError(t, err)
	require.Len(t, h, 1)
	require.Len(t, h[0], 4)
	assert.Equal(t, Sample(Begin, 10, 10, 0), h[0][0])
	assert.Equal(t, Sample(End, 25, 20, 50), h[0][3])

	text, err := h.Marshal()
	require.NoError(t, err)
	assert.Equal(t, scenario, text)
}

func TestHistoryRoundTrip(t *testing.T) {
	h := History{
		{Sample(Begin, 1, 2, 1000), Sample(End, 1, 2, 1000)},
		{
			Sample(Begin, 0, 0, 1690000000123),
			Sample(Update, 3.5, -2, 1690000000140.25),
			Sample(Update, 7, 9, 1690000000140.25),
			Sample(End, 8, 10, 1690000000170),
		},
	}
	text, err := h.Marshal()
	require.NoError(t, err)
	back, err := ParseHistory(text)
	require.NoError(t, err)
	assert.Equal(t, h, back)
}

func TestEmptyHistoryMarshal(t *testing.T) {
	var h History
	text, err := h.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "[]", text)

	back, err := ParseHistory(text)
	require.NoError(t, err)
	assert.Empty(t, back)
}

func TestParseHistoryMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":         `[[[0,1,2`,
		"object":           `{"strokes":[]}`,
		"null":             `null`,
		"short sample":     `[[[0,1,2],[2,1,2,3]]]`,
		"long sample":      `[[[0,1,2,3,4],[2,1,2,3]]]`,
		"unknown kind":     `[[[0,1,2,3],[7,1,2,3],[2,1,2,3]]]`,
		"fractional kind":  `[[[0.5,1,2,3],[2,1,2,3]]]`,
		"string field":     `[[[0,"x",2,3],[2,1,2,3]]]`,
		"missing begin":    `[[[1,1,2,3],[2,1,2,3]]]`,
		"missing end":      `[[[0,1,2,3],[1,1,2,3]]]`,
		"double begin":     `[[[0,1,2,3],[0,1,2,3],[2,1,2,3]]]`,
		"single sample":    `[[[0,1,2,3]]]`,
		"empty stroke":     `[[]]`,
		"time reversal":    `[[[0,1,2,30],[1,1,2,10],[2,1,2,40]]]`,
		"trailing garbage": `[] []`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHistory(text)
			assert.ErrorIs(t, err, ErrMalformedHistory)
		})
	}
}

func TestFlatten(t *testing.T) {
	h := History{
		{Sample(Begin, 1, 1, 1), Sample(End, 1, 1, 2)},
		{Sample(Begin, 2, 2, 3), Sample(Update, 3, 3, 4), Sample(End, 4, 4, 5)},
	}
	flat := h.Flatten()
	require.Len(t, flat, 5)
	assert.Equal(t, Begin, flat[0].Kind)
	assert.Equal(t, Begin, flat[2].Kind)
	assert.Equal(t, End, flat[4].Kind)
}

func TestCloneIsDeep(t *testing.T) {
	h := History{{Sample(Begin, 1, 1, 1), Sample(End, 1, 1, 2)}}
	c := h.Clone()
	c[0][0].X = 99
	assert.Equal(t, 1.0, h[0][0].X)
}

func TestHistoryBounds(t *testing.T) {
	h := History{
		{Sample(Begin, 10, 10, 0), Sample(End, 20, 30, 1)},
		{Sample(Begin, 50, 5, 2), Sample(End, 60, 15, 3)},
	}
	r := h.Bounds(1)
	assert.Equal(t, Rect{X: 9, Y: 4, Width: 52, Height: 27}, r)
	assert.True(t, History{}.Bounds(1).Empty())
}
