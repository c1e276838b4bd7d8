package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Frame is what a renderer consumes after every committed tick and every reset.
// Snake is shared with the game and must be treated as read-only.
type Frame struct {
	Grid    Grid
	Snake   []Cell
	Food    Cell
	Score   int
	Heading Heading
	Round   int
	Tick    uint64
	Outcome Outcome // Outcome of the last tick
	Paused  bool
}

// Terminal layout: every cell is two columns wide so the board looks square.
const (
	cellColumns = 2
	hudRows     = 1
	footerRows  = 1
)

// BoardSize returns the terminal area, border included, needed for a grid.
func BoardSize(grid Grid) (w, h int) {
	return grid.Length*cellColumns + 2, grid.Length + 2
}

// MinScreenSize returns the smallest terminal that fits the board and the HUD.
func MinScreenSize(grid Grid) (w, h int) {
	w, h = BoardSize(grid)
	return w, h + hudRows + footerRows
}

// DrawFrame draws the HUD and the board into dst as flat colored cells.
func DrawFrame(dst *core.Screen, f Frame) {
	dst.Clear()

	hud := fmt.Sprintf(" Snake | Score: %d  Length: %d  Round: %d", f.Score, len(f.Snake), f.Round)
	dst.DrawText(0, 0, hud, core.ColorHUD)

	minW, minH := MinScreenSize(f.Grid)
	if dst.Width() < minW || dst.Height() < minH {
		drawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	boardW, boardH := BoardSize(f.Grid)
	area := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows-footerRows)
	board := area.Centered(boardW, boardH)
	dst.DrawBox(board, core.ColorGrid)

	for row := range f.Grid.Length {
		for col := range f.Grid.Length {
			drawCell(dst, board, col, row, '░', core.ColorBackground)
		}
	}

	if f.Grid.Contains(f.Food) {
		col, row := f.Grid.Index(f.Food)
		drawCell(dst, board, col, row, '█', core.ColorFood)
	}

	// Tail first so the head stays on top.
	for i := len(f.Snake) - 1; i >= 0; i-- {
		color := core.ColorSnake
		if i == 0 {
			color = core.ColorSnakeHead
		}
		col, row := f.Grid.Index(f.Snake[i])
		drawCell(dst, board, col, row, '█', color)
	}

	if f.Paused {
		drawOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawCell fills one board cell inside the border of board.
func drawCell(dst *core.Screen, board core.Rect, col, row int, r rune, c core.Color) {
	x := board.X + 1 + col*cellColumns
	y := board.Y + 1 + row
	for i := range cellColumns {
		dst.SetCell(x+i, y, r, c)
	}
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(width, 5)

	dst.FillRect(box, ' ', core.ColorOverlay)
	dst.DrawBox(box, core.ColorOverlay)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorOverlay)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorOverlay)
}
