package gui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func newTestDriver(t *testing.T, framesPerMove int) *driver {
	t.Helper()
	rc := core.DefaultConfig()
	rc.Seed = 42
	env := registry.Env{Runtime: rc, Settings: config.DefaultSnakeConfig()}
	game, err := env.NewGame()
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return newDriver(game, env, framesPerMove)
}

func TestDriverTicksEveryFramesPerMove(t *testing.T) {
	d := newTestDriver(t, 3)

	ticked := 0
	for range 9 {
		if d.Frame() {
			ticked++
		}
	}
	if ticked != 3 || d.game.Ticks() != 3 {
		t.Errorf("ticked %d times, game at %d ticks, expected 3", ticked, d.game.Ticks())
	}
}

func TestDriverPauseFreezes(t *testing.T) {
	d := newTestDriver(t, 1)

	d.TogglePause()
	d.Key(core.KeyCodeDown)
	for range 5 {
		d.Frame()
	}
	if d.game.Ticks() != 0 {
		t.Errorf("game ticked %d times while paused", d.game.Ticks())
	}
	if d.game.State().Pending != snake.HeadingNone {
		t.Error("direction key applied while paused")
	}

	d.TogglePause()
	if !d.Frame() {
		t.Error("no tick after resuming")
	}
}

func TestDriverRestartUnpauses(t *testing.T) {
	d := newTestDriver(t, 1)

	d.Frame()
	d.TogglePause()
	d.Restart()

	if d.paused {
		t.Fatal("restart left the game paused")
	}
	if d.game.Round() != 2 {
		t.Errorf("Round() = %d, expected 2", d.game.Round())
	}
	if !d.Frame() {
		t.Error("no tick after restart")
	}
}

func TestDriverLogsRestart(t *testing.T) {
	var buf bytes.Buffer
	rc := core.DefaultConfig()
	env := registry.Env{
		Runtime:  rc,
		Settings: config.DefaultSnakeConfig(),
		Logger:   log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}),
	}
	game, err := env.NewGame()
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	newDriver(game, env, 1).Restart()
	if !strings.Contains(buf.String(), "round restarted") {
		t.Errorf("log output = %q, expected the restart message", buf.String())
	}
}
