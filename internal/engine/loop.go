// Package engine drives a snake game on a fixed-interval timer chain.
//
// One goroutine, the one running Loop.Run, owns the game. Keys and commands
// from frontends are delivered over channels and applied between ticks.
package engine

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// DefaultInterval is the delay between two ticks.
const DefaultInterval = 100 * time.Millisecond

// ErrAlreadyRunning is returned when Run is called twice on the same loop.
var ErrAlreadyRunning = errors.New("engine: loop already running")

// Renderer receives a frame after every committed tick and every reset.
// It is called on the loop goroutine.
type Renderer interface {
	Render(f snake.Frame)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(snake.Frame)

// Render calls fn(f).
func (fn RendererFunc) Render(f snake.Frame) {
	fn(f)
}

type command int

const (
	cmdTogglePause command = iota
	cmdRestart
	cmdQuit
)

// Option configures a Loop.
type Option func(*Loop)

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLogger sets the logger used for round resets and dropped ticks.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithOutcomeHook registers fn to be called with the outcome of every tick.
func WithOutcomeHook(fn func(snake.Outcome)) Option {
	return func(l *Loop) {
		l.onOutcome = fn
	}
}

// Loop schedules game ticks one at a time. The next tick is armed only after
// the previous transition has finished, and every armed tick carries a
// generation number so a tick invalidated by a reset or a pause is dropped.
type Loop struct {
	game     *snake.Game
	renderer Renderer
	interval time.Duration
	logger   *log.Logger

	keys  chan core.KeyCode
	cmds  chan command
	fired chan uint64
	done  chan struct{}

	// Owned by the Run goroutine.
	gen    uint64
	timer  *time.Timer
	paused bool

	onOutcome func(snake.Outcome)
	running   atomic.Bool
	ticks     atomic.Uint64
	dropped   atomic.Uint64
}

// New creates a loop for game that reports frames to r.
func New(game *snake.Game, r Renderer, opts ...Option) *Loop {
	l := &Loop{
		game:     game,
		renderer: r,
		interval: DefaultInterval,
		logger:   log.New(io.Discard),
		keys:     make(chan core.KeyCode, 16),
		cmds:     make(chan command, 4),
		fired:    make(chan uint64),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Key hands a direction key code to the game. Safe for concurrent use.
func (l *Loop) Key(code core.KeyCode) {
	select {
	case l.keys <- code:
	case <-l.done:
	}
}

// TogglePause freezes or resumes ticking. Safe for concurrent use.
func (l *Loop) TogglePause() {
	l.send(cmdTogglePause)
}

// Restart abandons the current round. Safe for concurrent use.
func (l *Loop) Restart() {
	l.send(cmdRestart)
}

// Quit stops Run. Safe for concurrent use.
func (l *Loop) Quit() {
	l.send(cmdQuit)
}

func (l *Loop) send(c command) {
	select {
	case l.cmds <- c:
	case <-l.done:
	}
}

// Ticks returns the number of transitions performed so far.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Dropped returns the number of stale ticks that were discarded.
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

// Run renders the initial frame and ticks the game until ctx is cancelled or
// Quit is called. The current round is finished before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(l.done)
	defer l.stopTimer()

	l.render()
	l.schedule()

	for {
		select {
		case <-ctx.Done():
			l.game.Finish()
			return ctx.Err()

		case code := <-l.keys:
			if !l.paused {
				l.game.Key(code)
			}

		case c := <-l.cmds:
			switch c {
			case cmdTogglePause:
				l.togglePause()
			case cmdRestart:
				l.restart()
			case cmdQuit:
				l.game.Finish()
				return nil
			}

		case gen := <-l.fired:
			l.handleFire(gen)
		}
	}
}

// handleFire performs one transition if gen is the armed generation.
func (l *Loop) handleFire(gen uint64) {
	if gen != l.gen || l.paused {
		l.dropped.Add(1)
		l.logger.Debug("stale tick dropped", "gen", gen, "current", l.gen)
		return
	}
	l.timer = nil

	outcome := l.game.Tick()
	l.ticks.Add(1)

	switch outcome {
	case snake.OutcomeReset:
		l.logger.Debug("self collision, round reset", "round", l.game.Round())
	case snake.OutcomeBoardFull:
		l.logger.Warn("no free cell for food, round reset", "round", l.game.Round())
	}
	if l.onOutcome != nil {
		l.onOutcome(outcome)
	}

	l.render()
	l.schedule()
}

func (l *Loop) togglePause() {
	l.paused = !l.paused
	if l.paused {
		l.stopTimer()
	} else {
		l.schedule()
	}
	l.logger.Debug("pause toggled", "paused", l.paused)
	l.render()
}

func (l *Loop) restart() {
	l.game.Restart()
	l.paused = false
	l.logger.Debug("round restarted", "round", l.game.Round())
	l.render()
	l.schedule()
}

// schedule arms the next tick under a fresh generation. Any tick armed
// before is invalidated.
func (l *Loop) schedule() {
	l.stopTimer()
	gen := l.gen
	l.timer = time.AfterFunc(l.interval, func() {
		select {
		case l.fired <- gen:
		case <-l.done:
		}
	})
}

// stopTimer cancels the armed tick and bumps the generation so a timer that
// already fired and is waiting to deliver is ignored.
func (l *Loop) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.gen++
}

func (l *Loop) render() {
	if l.renderer == nil {
		return
	}
	f := l.game.Frame()
	f.Paused = l.paused
	l.renderer.Render(f)
}
