package export

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignPad/internal/config"
	"SignPad/internal/render"
	"SignPad/internal/state"
)

func testHistory(t *testing.T) state.History {
	t.Helper()
	h, err := state.ParseHistory(`[[[0,10,10,0],[1,15,12,16],[1,20,15,33],[1,30,22,50],[2,35,25,66]],[[0,60,60,100],[2,60,60,100]]]`)
	require.NoError(t, err)
	return h
}

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Canvas = config.Canvas{Width: 80, Height: 80}
	return cfg
}

func TestPNGHasInk(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, testHistory(t), smallConfig()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 80), img.Bounds())

	// The tap at (60, 60) is a dot in the pen color on white.
	r, _, _, _ := img.At(60, 60).RGBA()
	assert.Less(t, r>>8, uint32(0x80))
	r, _, _, _ = img.At(5, 70).RGBA()
	assert.Equal(t, uint32(0xff), r>>8)
}

func TestPDFExport(t *testing.T) {
	for _, crop := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, PDF(&buf, testHistory(t), smallConfig(), crop))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	}
}

func TestPDFExportEmptyHistoryCrop(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, nil, smallConfig(), true))
	assert.NotZero(t, buf.Len())
}

func TestDataURLRoundTrip(t *testing.T) {
	r := render.NewRaster(12, 6, "#000", "#fff", 0)
	r.PaintDot(6, 3, 2)
	url, err := DataURL(r)
	require.NoError(t, err)
	assert.Contains(t, url, "data:image/png;base64,")

	img, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 6), img.Bounds())
}

func TestDecodeDataURLRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"http://example.com/a.png",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png,raw",
		"data:image/png;base64,!!!",
	} {
		_, err := DecodeDataURL(s)
		assert.ErrorIs(t, err, ErrBadDataURL, s)
	}
	_, err := DecodeDataURL("data:image/png;base64,aGVsbG8=")
	assert.Error(t, err)
}

func TestHistoryFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h := testHistory(t)
	require.NoError(t, WriteHistory(path, h))
	back, err := ReadHistory(path)
	require.NoError(t, err)
	assert.Equal(t, h, back)
}
