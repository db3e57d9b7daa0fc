// Package config loads SignPad settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"SignPad/internal/ink"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Pen struct {
	MinWidth             float64 `toml:"min_width"`
	MaxWidth             float64 `toml:"max_width"`
	VelocityFilterWeight float64 `toml:"velocity_filter_weight"`
	DotSize              float64 `toml:"dot_size"`
	WidthEase            float64 `toml:"width_ease"`
	Color                string  `toml:"color"`
	Background           string  `toml:"background"`
}

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Playback struct {
	DelayMS int `toml:"delay_ms"`
}

type Share struct {
	Port      int    `toml:"port"`
	Advertise bool   `toml:"advertise"`
	Service   string `toml:"service"`
}

type Config struct {
	Pen      Pen      `toml:"pen"`
	Canvas   Canvas   `toml:"canvas"`
	Playback Playback `toml:"playback"`
	Share    Share    `toml:"share"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	opts := ink.DefaultOptions()
	return Config{
		Pen: Pen{
			MinWidth:             opts.MinWidth,
			MaxWidth:             opts.MaxWidth,
			VelocityFilterWeight: opts.VelocityFilterWeight,
			WidthEase:            3,
			Color:                "#000000",
			Background:           "#ffffffff",
		},
		Canvas:   Canvas{Width: 1024, Height: 768},
		Playback: Playback{DelayMS: 16},
		Share:    Share{Port: 8888, Advertise: true, Service: "_signpad._tcp"},
	}
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads a TOML file. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks ranges that the drawing pipeline depends on.
func (c Config) Validate() error {
	if err := c.Ink().Validate(); err != nil {
		return fmt.Errorf("%w: pen: %v", ErrInvalid, err)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas must be at least 1x1, got %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Playback.DelayMS < 0 {
		return fmt.Errorf("%w: playback delay must not be negative", ErrInvalid)
	}
	if c.Share.Port < 0 || c.Share.Port > 65535 {
		return fmt.Errorf("%w: share port %d out of range", ErrInvalid, c.Share.Port)
	}
	return nil
}

// Ink returns the pen settings as stroke options.
func (c Config) Ink() ink.Options {
	return ink.Options{
		VelocityFilterWeight: c.Pen.VelocityFilterWeight,
		MinWidth:             c.Pen.MinWidth,
		MaxWidth:             c.Pen.MaxWidth,
		DotSize:              c.Pen.DotSize,
		WidthEase:            c.Pen.WidthEase,
	}
}

// Delay returns the timed playback interval.
func (c Config) Delay() time.Duration {
	return time.Duration(c.Playback.DelayMS) * time.Millisecond
}
