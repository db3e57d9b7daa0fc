package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 0.7, c.Ink().VelocityFilterWeight)
	assert.Equal(t, 16*time.Millisecond, c.Delay())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
[pen]
min_width = 1.0
max_width = 4.0
color = "#ff0000"

[canvas]
width = 640

[share]
advertise = false
`))
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Pen.MinWidth)
	assert.Equal(t, 4.0, c.Pen.MaxWidth)
	assert.Equal(t, 0.7, c.Pen.VelocityFilterWeight)
	assert.Equal(t, "#ff0000", c.Pen.Color)
	assert.Equal(t, 640, c.Canvas.Width)
	assert.Equal(t, 768, c.Canvas.Height)
	assert.False(t, c.Share.Advertise)
	assert.Equal(t, 8888, c.Share.Port)
}

func TestParseRejectsBadValues(t *testing.T) {
	for name, text := range map[string]string{
		"weight": "[pen]\nvelocity_filter_weight = 1.5\n",
		"widths": "[pen]\nmin_width = 3.0\nmax_width = 1.0\n",
		"canvas": "[canvas]\nheight = 0\n",
		"delay":  "[playback]\ndelay_ms = -1\n",
		"port":   "[share]\nport = 70000\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(text))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
	_, err := Parse([]byte("[pen\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "signpad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[playback]\ndelay_ms = 40\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, c.Delay())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
