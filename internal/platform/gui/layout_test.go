package gui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func TestFramesPerMove(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		tps      int
		expected int
	}{
		{"default speed", 100 * time.Millisecond, 60, 6},
		{"slow", 250 * time.Millisecond, 60, 15},
		{"rounds to nearest", 110 * time.Millisecond, 60, 7},
		{"faster than a frame", time.Millisecond, 60, 1},
		{"zero tps", 100 * time.Millisecond, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FramesPerMove(tc.interval, tc.tps); got != tc.expected {
				t.Errorf("FramesPerMove(%v, %d) = %d, expected %d", tc.interval, tc.tps, got, tc.expected)
			}
		})
	}
}

func TestWindowSize(t *testing.T) {
	grid, err := snake.NewGrid(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	w, h := WindowSize(grid)
	if w != 400 || h != 400+hudHeight {
		t.Errorf("WindowSize = %dx%d, expected 400x%d", w, h, 400+hudHeight)
	}
}

func TestCellRect(t *testing.T) {
	grid, err := snake.NewGrid(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	x, y, w, h := CellRect(grid, grid.At(2, 3))
	if x != 41 || y != float32(60+hudHeight+1) {
		t.Errorf("CellRect origin = (%v,%v)", x, y)
	}
	if w != 18 || h != 18 {
		t.Errorf("CellRect size = %vx%v, expected 18x18", w, h)
	}
}
