// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid value")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Timing  TimingConfig  `yaml:"timing"`
	Colors  ColorConfig   `yaml:"colors"`
	Sound   SoundConfig   `yaml:"sound"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// GridConfig defines the board geometry.
type GridConfig struct {
	Length   int `yaml:"length"`    // Cells per side
	CellSize int `yaml:"cell_size"` // Pixels per cell in the window frontend
}

// TimingConfig defines the tick schedule.
type TimingConfig struct {
	TickMillis int `yaml:"tick_ms"`    // Delay between two moves
	FrameRate  int `yaml:"frame_rate"` // Redraw rate of the window frontend
}

// ColorConfig holds hex colors ("#rrggbb") for each semantic color.
type ColorConfig struct {
	Background string `yaml:"background"`
	Grid       string `yaml:"grid"`
	Snake      string `yaml:"snake"`
	Head       string `yaml:"head"`
	Food       string `yaml:"food"`
	HUD        string `yaml:"hud"`
	Overlay    string `yaml:"overlay"`
}

// SoundConfig defines the audio cues.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Base-2 gain, 0 is unchanged, negative is quieter
}

// StorageConfig defines where finished rounds are journaled.
type StorageConfig struct {
	Path   string `yaml:"path"`
	Record bool   `yaml:"record"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleMinutes int    `yaml:"idle_minutes"`
}

// TickInterval returns the delay between two moves.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickMillis) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (c SnakeConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleMinutes) * time.Minute
}

// Runtime converts the configuration into the runtime settings frontends share.
func (c SnakeConfig) Runtime(seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.GridLength = c.Grid.Length
	rc.CellSize = c.Grid.CellSize
	rc.TickInterval = c.TickInterval()
	rc.FrameRate = c.Timing.FrameRate
	rc.Seed = seed
	return rc
}

// Validate reports the first value that cannot be used.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: grid.cell_size must be positive, got %d", ErrInvalidConfig, c.Grid.CellSize)
	case c.Grid.Length <= snake.InitialLength:
		return fmt.Errorf("%w: grid.length must be above %d, got %d", ErrInvalidConfig, snake.InitialLength, c.Grid.Length)
	case c.Timing.TickMillis <= 0:
		return fmt.Errorf("%w: timing.tick_ms must be positive, got %d", ErrInvalidConfig, c.Timing.TickMillis)
	case c.Timing.FrameRate <= 0:
		return fmt.Errorf("%w: timing.frame_rate must be positive, got %d", ErrInvalidConfig, c.Timing.FrameRate)
	case c.Server.IdleMinutes < 0:
		return fmt.Errorf("%w: server.idle_minutes must not be negative", ErrInvalidConfig)
	}

	for name, hex := range c.Colors.named() {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: colors.%s %q is not a #rrggbb color", ErrInvalidConfig, name, hex)
		}
	}
	return nil
}

func (c ColorConfig) named() map[string]string {
	return map[string]string{
		"background": c.Background,
		"grid":       c.Grid,
		"snake":      c.Snake,
		"head":       c.Head,
		"food":       c.Food,
		"hud":        c.HUD,
		"overlay":    c.Overlay,
	}
}

// Hex returns the configured hex string for a semantic color.
// ColorDefault and unknown colors map to an empty string.
func (c ColorConfig) Hex(col core.Color) string {
	switch col {
	case core.ColorBackground:
		return c.Background
	case core.ColorGrid:
		return c.Grid
	case core.ColorSnake:
		return c.Snake
	case core.ColorSnakeHead:
		return c.Head
	case core.ColorFood:
		return c.Food
	case core.ColorHUD:
		return c.HUD
	case core.ColorOverlay:
		return c.Overlay
	default:
		return ""
	}
}

// RGBA returns the configured color as an opaque RGBA value. Colors that are
// unset or unparsable come back as fallback.
func (c ColorConfig) RGBA(col core.Color, fallback color.RGBA) color.RGBA {
	parsed, err := colorful.Hex(c.Hex(col))
	if err != nil {
		return fallback
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
