// Package term runs the game on a raw terminal through tcell, driven by the
// fixed-interval engine loop.
package term

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func init() {
	registry.Register(Frontend{})
}

// Frontend plays in the local terminal through tcell.
type Frontend struct{}

// ID returns "tcell".
func (Frontend) ID() string {
	return "tcell"
}

// Title returns the display name.
func (Frontend) Title() string {
	return "Terminal (tcell)"
}

// Run takes over the terminal and blocks until the player quits.
func (Frontend) Run(ctx context.Context, env registry.Env) error {
	game, err := env.NewGame()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	defer screen.Fini()

	r := NewRenderer(screen, env.Settings.Colors)
	loop := engine.New(game, r,
		engine.WithInterval(env.Runtime.TickInterval),
		engine.WithLogger(env.Log()),
		engine.WithOutcomeHook(env.PlayCue),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case err := <-errc:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				dispatch(loop, ActionForKey(ev.Key(), ev.Rune()))
			case *tcell.EventResize:
				r.Resize(ev.Size())
				screen.Sync()
			}
		}
	}
}

// dispatch forwards an action to the loop.
func dispatch(loop *engine.Loop, action core.Action) {
	if code, ok := action.KeyCode(); ok {
		loop.Key(code)
		return
	}
	switch action {
	case core.ActionPause:
		loop.TogglePause()
	case core.ActionRestart:
		loop.Restart()
	case core.ActionQuit:
		loop.Quit()
	}
}

// Renderer draws frames onto a tcell screen. Render is called from the loop
// goroutine and Resize from the event goroutine.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	buf    *core.Screen
	styles map[core.Color]tcell.Style
	last   snake.Frame
	drawn  bool
}

// NewRenderer sizes a cell buffer to the screen and builds styles from colors.
func NewRenderer(screen tcell.Screen, colors config.ColorConfig) *Renderer {
	w, h := screen.Size()
	r := &Renderer{
		screen: screen,
		buf:    core.NewScreen(w, h),
		styles: map[core.Color]tcell.Style{core.ColorDefault: tcell.StyleDefault},
	}
	for _, c := range []core.Color{
		core.ColorBackground,
		core.ColorGrid,
		core.ColorSnake,
		core.ColorSnakeHead,
		core.ColorFood,
		core.ColorHUD,
		core.ColorOverlay,
	} {
		style := tcell.StyleDefault
		if hex := colors.Hex(c); hex != "" {
			style = style.Foreground(tcell.GetColor(hex))
		}
		r.styles[c] = style
	}
	return r
}

// Render draws f and shows it.
func (r *Renderer) Render(f snake.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = f
	r.drawn = true
	r.draw()
}

// Resize adapts the buffer to a new terminal size and redraws the last frame.
func (r *Renderer) Resize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf.Resize(w, h)
	r.screen.Clear()
	if r.drawn {
		r.draw()
	}
}

func (r *Renderer) draw() {
	snake.DrawFrame(r.buf, r.last)
	for y := range r.buf.Height() {
		for x := range r.buf.Width() {
			cell := r.buf.GetCell(x, y)
			style, ok := r.styles[cell.Color]
			if !ok {
				style = tcell.StyleDefault
			}
			r.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	r.screen.Show()
}
