package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Palette maps core.Color to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds styles from the configured hex colors.
func NewPalette(colors config.ColorConfig) Palette {
	p := Palette{core.ColorDefault: lipgloss.NewStyle()}
	for _, c := range []core.Color{
		core.ColorBackground,
		core.ColorGrid,
		core.ColorSnake,
		core.ColorSnakeHead,
		core.ColorFood,
		core.ColorHUD,
		core.ColorOverlay,
	} {
		style := lipgloss.NewStyle()
		if hex := colors.Hex(c); hex != "" {
			style = style.Foreground(lipgloss.Color(hex))
		}
		if c == core.ColorHUD || c == core.ColorOverlay {
			style = style.Bold(true)
		}
		p[c] = style
	}
	return p
}

// Render converts the first rows of a Screen buffer to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p Palette) Render(s *core.Screen, rows int) string {
	rows = min(rows, s.Height())

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*rows*2 + rows)

	for y := range rows {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
