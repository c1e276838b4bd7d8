package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hardcoded snake configuration. It matches
// defaults/snake.yaml and is used when the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Length:   20,
			CellSize: 20,
		},
		Timing: TimingConfig{
			TickMillis: 100,
			FrameRate:  60,
		},
		Colors: ColorConfig{
			Background: "#1c1c1c",
			Grid:       "#585858",
			Snake:      "#5faf00",
			Head:       "#afff5f",
			Food:       "#d70000",
			HUD:        "#d0d0d0",
			Overlay:    "#ffd75f",
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  -1,
		},
		Storage: StorageConfig{
			Path:   "~/.snake/snake.db",
			Record: false,
		},
		Server: ServerConfig{
			Addr:        ":23234",
			HostKeyPath: "~/.snake/host_key",
			IdleMinutes: 30,
		},
	}
}
