// Package gui runs the game in a desktop window through ebiten. The window
// build needs the ebiten build tag; without it the frontend only reports how
// to enable it.
package gui

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// hudHeight is the pixel strip above the board that holds the score line.
const hudHeight = 20

// FramesPerMove converts a tick interval into a number of frames at tps
// frames per second. The result is never below one.
func FramesPerMove(interval time.Duration, tps int) int {
	if tps <= 0 {
		return 1
	}
	frames := int((interval*time.Duration(tps) + time.Second/2) / time.Second)
	return max(frames, 1)
}

// WindowSize returns the logical window size for a grid: the square board
// plus the HUD strip.
func WindowSize(grid snake.Grid) (w, h int) {
	side := grid.Length * grid.CellSize
	return side, side + hudHeight
}

// CellRect returns the pixel rectangle of a board cell inside the window.
// A one pixel gap keeps neighbouring segments apart.
func CellRect(grid snake.Grid, c snake.Cell) (x, y, w, h float32) {
	size := float32(grid.CellSize)
	gap := float32(1)
	if grid.CellSize < 4 {
		gap = 0
	}
	return float32(c.X) + gap, float32(c.Y+hudHeight) + gap, size - 2*gap, size - 2*gap
}
