package gui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// driver advances a game from a frame callback: one move every
// framesPerMove frames unless paused.
type driver struct {
	game   *snake.Game
	env    registry.Env
	logger *log.Logger

	framesPerMove int
	frames        int
	paused        bool
}

func newDriver(game *snake.Game, env registry.Env, framesPerMove int) *driver {
	return &driver{
		game:          game,
		env:           env,
		logger:        env.Log(),
		framesPerMove: max(framesPerMove, 1),
	}
}

// TogglePause freezes or resumes moves and restarts the frame count.
func (d *driver) TogglePause() {
	d.paused = !d.paused
	d.frames = 0
}

// Restart starts a fresh, unpaused round.
func (d *driver) Restart() {
	d.game.Restart()
	d.paused = false
	d.frames = 0
	d.logger.Debug("round restarted", "round", d.game.Round())
}

// Key forwards a direction key unless paused.
func (d *driver) Key(code core.KeyCode) {
	if !d.paused {
		d.game.Key(code)
	}
}

// Frame counts one frame and ticks the game when a move is due. It reports
// whether a tick happened.
func (d *driver) Frame() bool {
	if d.paused {
		return false
	}
	d.frames++
	if d.frames < d.framesPerMove {
		return false
	}
	d.frames = 0

	outcome := d.game.Tick()
	switch outcome {
	case snake.OutcomeReset:
		d.logger.Debug("self collision, round reset", "round", d.game.Round())
	case snake.OutcomeBoardFull:
		d.logger.Warn("no free cell for food, round reset", "round", d.game.Round())
	}
	d.env.PlayCue(outcome)
	return true
}
