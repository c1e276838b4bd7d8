package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func init() {
	registry.Register(Frontend{})
}

// Frontend plays in the local terminal through Bubble Tea.
type Frontend struct{}

// ID returns "tui".
func (Frontend) ID() string {
	return "tui"
}

// Title returns the display name.
func (Frontend) Title() string {
	return "Terminal (Bubble Tea)"
}

// Run starts the Bubble Tea program and blocks until the player quits.
func (Frontend) Run(ctx context.Context, env registry.Env) error {
	game, err := env.NewGame()
	if err != nil {
		return err
	}

	model := NewModel(game, env,
		WithScreenshotDir(filepath.Join(config.DataDir(), "screenshots")),
		WithClipboard(SystemClipboard),
	)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		game.Finish()
		return nil
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok && !m.Quitting() {
		game.Finish()
	}
	return nil
}
