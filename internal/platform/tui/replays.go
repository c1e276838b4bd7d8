package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Replay browser layout constants
const (
	minWidthForPreview = 100 // Minimum width to show the board next to the table
	maxRounds          = 100 // Max rounds to load
)

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing journaled rounds.
// Selecting a round re-simulates it and shows the board it ended on.
type ReplaysModel struct {
	store    *storage.Store
	rounds   []storage.RoundEntry
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	palette  Palette
	preview  string
	err      error
	width    int
	height   int
	quitting bool
}

// NewReplaysModel creates a new replay browser.
func NewReplaysModel(store *storage.Store, palette Palette, width, height int) ReplaysModel {
	m := ReplaysModel{
		store:   store,
		keys:    DefaultReplaysKeyMap(),
		help:    help.New(),
		palette: palette,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadRounds()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Round", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Length", Width: 7},
		{Title: "Inputs", Width: 7},
		{Title: "Ended", Width: 11},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRounds reads the journal into the table.
func (m *ReplaysModel) loadRounds() {
	if m.store == nil {
		m.rounds = nil
		m.updateTableRows()
		return
	}

	rounds, err := m.store.Rounds(maxRounds)
	if err != nil {
		m.err = err
		m.rounds = nil
	} else {
		m.rounds = rounds
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current rounds.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Number),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Length),
			fmt.Sprintf("%d", r.InputCount),
			string(r.Reason),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// showSelected replays the highlighted round into the preview.
func (m *ReplaysModel) showSelected() {
	cursor := m.table.Cursor()
	if m.store == nil || cursor < 0 || cursor >= len(m.rounds) {
		return
	}

	round, _, err := m.store.Round(m.rounds[cursor].ID)
	if err != nil {
		m.err = err
		m.preview = ""
		return
	}
	m.err = nil
	m.preview = RenderReplay(round, m.palette)
}

// RenderReplay re-simulates a round and renders its final board.
// A nil palette renders plain text.
func RenderReplay(round snake.Round, palette Palette) string {
	result := snake.Replay(round)

	w, h := snake.MinScreenSize(round.Grid)
	screen := core.NewScreen(w, h)
	snake.DrawFrame(screen, result.Frame(round))

	if palette == nil {
		return screen.String()
	}
	return palette.Render(screen, h)
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			m.showSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableView := boxStyle.Render(m.renderTableContent())
	switch {
	case m.preview == "":
		b.WriteString(tableView)
	case m.width >= minWidthForPreview:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableView, "  ", m.preview))
	default:
		b.WriteString(m.preview)
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplaysModel) renderTableContent() string {
	if len(m.rounds) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No rounds recorded yet.\nPlay with --record to journal rounds!")
	}

	return m.table.View()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunReplays runs the replay browser until the user quits.
func RunReplays(store *storage.Store, palette Palette, width, height int) error {
	model := NewReplaysModel(store, palette, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
