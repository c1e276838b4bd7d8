package core

import "time"

// RuntimeConfig contains configuration passed to a game session at start.
// Frontends use it to size the display and seed the simulation.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	GridLength   int           // Cells per side of the square board
	CellSize     int           // Pixel dimension of one grid cell
	TickInterval time.Duration // Delay between two moves
	FrameRate    int           // Redraws per second for frame-driven frontends
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		GridLength:   20,
		CellSize:     20,
		TickInterval: 100 * time.Millisecond,
		FrameRate:    60,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// CanvasSize returns the pixel width (and height) of the square board.
func (c RuntimeConfig) CanvasSize() int {
	return c.GridLength * c.CellSize
}
