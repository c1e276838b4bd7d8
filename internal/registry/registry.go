// Package registry provides a global registry for game frontends.
// Frontends register themselves in init() functions, allowing the CLI
// to discover and start them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Frontend presents a game to the player and feeds key presses back to it.
type Frontend interface {
	// ID returns a unique identifier used on the command line (e.g., "tui").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run plays until the player quits or ctx is cancelled.
	Run(ctx context.Context, env Env) error
}

// Recorder receives every finished round.
type Recorder interface {
	RecordRound(r snake.Round)
}

// Cues plays feedback for tick outcomes.
type Cues interface {
	Play(o snake.Outcome)
}

// Env carries everything a frontend needs to run a game.
type Env struct {
	Runtime  core.RuntimeConfig
	Settings config.SnakeConfig
	Logger   *log.Logger
	Recorder Recorder // Optional
	Cues     Cues     // Optional
}

// NewGame builds a game from the runtime settings and wires the recorder.
func (e Env) NewGame() (*snake.Game, error) {
	grid, err := snake.NewGrid(e.Runtime.GridLength, e.Runtime.CellSize)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	g := snake.New(grid, e.Runtime.Seed)
	if e.Recorder != nil {
		g.OnRoundEnd(e.Recorder.RecordRound)
	}
	return g, nil
}

// Log returns the configured logger or a silent one.
func (e Env) Log() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// PlayCue forwards an outcome to the cues, if any.
func (e Env) PlayCue(o snake.Outcome) {
	if e.Cues != nil {
		e.Cues.Play(o)
	}
}

// FrontendInfo contains metadata about a registered frontend.
type FrontendInfo struct {
	ID    string
	Title string
}

var (
	frontends = make(map[string]Frontend)
	mu        sync.RWMutex
)

// Register adds a frontend to the registry.
// Typically called from a frontend package's init() function.
// Panics if a frontend with the same ID is already registered.
func Register(f Frontend) {
	mu.Lock()
	defer mu.Unlock()

	id := f.ID()
	if _, exists := frontends[id]; exists {
		panic(fmt.Sprintf("registry: frontend %q already registered", id))
	}
	frontends[id] = f
}

// List returns information about all registered frontends, sorted by ID.
func List() []FrontendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FrontendInfo, 0, len(frontends))
	for id, f := range frontends {
		result = append(result, FrontendInfo{
			ID:    id,
			Title: f.Title(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the frontend registered under id.
func Get(id string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := frontends[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown frontend %q", id)
	}
	return f, nil
}

// Exists checks if a frontend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := frontends[id]
	return ok
}
