package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func TestPaletteRenderKeepsText(t *testing.T) {
	p := NewPalette(config.DefaultSnakeConfig().Colors)
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "abc", core.ColorHUD)
	s.SetCell(4, 0, '█', core.ColorFood)

	out := p.Render(s, 2)
	if lines := strings.Count(out, "\n") + 1; lines != 2 {
		t.Errorf("rendered %d lines, expected 2", lines)
	}
	if !strings.Contains(out, "abc") || !strings.Contains(out, "█") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func TestPaletteCoversColors(t *testing.T) {
	p := NewPalette(config.DefaultSnakeConfig().Colors)
	for _, c := range []core.Color{core.ColorDefault, core.ColorBackground, core.ColorSnake, core.ColorSnakeHead, core.ColorFood} {
		if _, ok := p[c]; !ok {
			t.Errorf("palette has no style for %v", c)
		}
	}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("s"), core.ActionDown},
		{runes("h"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runes("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runes("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{tea.KeyMsg{Type: tea.KeyCtrlY}, core.ActionCopy},
		{runes("q"), core.ActionQuit},
		{runes("z"), core.ActionNone},
	}
	for _, tc := range tests {
		if got := keys.Action(tc.msg); got != tc.expected {
			t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestRenderReplay(t *testing.T) {
	round := snake.Round{
		Number: 3,
		Seed:   99,
		Grid:   snake.Grid{Length: 20, CellSize: 20},
		Ticks:  4,
	}

	out := RenderReplay(round, nil)
	if !strings.Contains(out, "Round: 3") {
		t.Errorf("replay board missing the round number:\n%s", out)
	}
	if !strings.Contains(out, "Length: ") {
		t.Errorf("replay board missing the snake length:\n%s", out)
	}
}
