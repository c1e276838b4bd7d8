package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithScreenshotDir enables ctrl+s screenshots into dir. An empty dir disables them.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *Model) {
		m.screenshotDir = dir
	}
}

// WithClipboard sets the function used by ctrl+y. Nil disables copying.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		m.copyText = write
	}
}

// SystemClipboard writes to the local system clipboard.
func SystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// Model is the Bubble Tea model for running a snake game.
type Model struct {
	game     *snake.Game
	env      registry.Env
	screen   *core.Screen
	palette  Palette
	keys     GameKeyMap
	help     help.Model
	interval time.Duration

	gen      uint64 // Generation of the armed tick
	paused   bool
	quitting bool
	status   string

	screenshotDir string
	copyText      func(string) error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *snake.Game, env registry.Env, opts ...ModelOption) Model {
	interval := env.Runtime.TickInterval
	if interval <= 0 {
		interval = engine.DefaultInterval
	}

	w, h := env.Runtime.ScreenW, env.Runtime.ScreenH
	if w <= 0 || h <= 0 {
		w, h = snake.MinScreenSize(game.Grid())
	}

	m := Model{
		game:     game,
		env:      env,
		screen:   core.NewScreen(w, h),
		palette:  NewPalette(env.Settings.Colors),
		keys:     DefaultGameKeyMap(),
		help:     help.New(),
		interval: interval,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the tick chain.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if code, ok := action.KeyCode(); ok {
		if !m.paused {
			m.game.Key(code)
		}
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.game.Finish()
		m.quitting = true
		return m, tea.Quit

	case core.ActionPause:
		m.paused = !m.paused
		m.gen++
		if m.paused {
			return m, nil
		}
		return m, tickCmd(m.interval, m.gen)

	case core.ActionRestart:
		m.game.Restart()
		m.paused = false
		m.gen++
		m.status = ""
		m.env.Log().Debug("round restarted", "round", m.game.Round())
		return m, tickCmd(m.interval, m.gen)

	case core.ActionScreenshot:
		m.status = m.saveScreenshot()
		return m, nil

	case core.ActionCopy:
		m.status = m.copyBoard()
		return m, nil
	}

	return m, nil
}

// handleTick performs one transition if msg belongs to the armed generation.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused {
		return m, nil
	}

	outcome := m.game.Tick()
	m.env.PlayCue(outcome)
	switch outcome {
	case snake.OutcomeReset:
		m.env.Log().Debug("self collision, round reset", "round", m.game.Round())
	case snake.OutcomeBoardFull:
		m.env.Log().Warn("no free cell for food, round reset", "round", m.game.Round())
	}

	// Continue ticking
	m.gen++
	return m, tickCmd(m.interval, m.gen)
}

// frame returns the game frame with the frontend's pause state.
func (m Model) frame() snake.Frame {
	f := m.game.Frame()
	f.Paused = m.paused
	return f
}

// boardText renders the current frame as plain text.
func (m Model) boardText() string {
	snake.DrawFrame(m.screen, m.frame())
	return m.screen.String()
}

// saveScreenshot writes the current screen to a file and returns a status line.
func (m Model) saveScreenshot() string {
	if m.screenshotDir == "" {
		return "Screenshots are disabled"
	}
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.env.Log().Error("screenshot failed", "error", err)
		return "Screenshot failed"
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("snake_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.boardText()), 0o600); err != nil {
		m.env.Log().Error("screenshot failed", "error", err)
		return "Screenshot failed"
	}
	m.env.Log().Info("screenshot saved", "path", path)
	return "Saved " + path
}

// copyBoard puts the current screen on the clipboard and returns a status line.
func (m Model) copyBoard() string {
	if m.copyText == nil {
		return "Clipboard is not available"
	}
	if err := m.copyText(m.boardText()); err != nil {
		m.env.Log().Warn("clipboard copy failed", "error", err)
		return "Copy failed"
	}
	return "Board copied"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snake.DrawFrame(m.screen, m.frame())

	footer := m.status
	if footer == "" {
		footer = m.help.View(m.keys)
	}
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return m.palette.Render(m.screen, m.screen.Height()-1) + "\n" + footerStyle.Render(footer)
}

// Paused reports whether ticking is frozen.
func (m Model) Paused() bool {
	return m.paused
}

// Quitting reports whether the player asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
