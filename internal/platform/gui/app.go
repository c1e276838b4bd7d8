//go:build ebiten

package gui

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func init() {
	registry.Register(Frontend{})
}

// Frontend plays in a desktop window.
type Frontend struct{}

// ID returns "gui".
func (Frontend) ID() string {
	return "gui"
}

// Title returns the display name.
func (Frontend) Title() string {
	return "Window (ebiten)"
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func (Frontend) Run(ctx context.Context, env registry.Env) error {
	game, err := env.NewGame()
	if err != nil {
		return err
	}

	tps := env.Runtime.FrameRate
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	app := newApp(ctx, game, env, FramesPerMove(env.Runtime.TickInterval, tps))

	w, h := WindowSize(game.Grid())
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Snake")

	err = ebiten.RunGame(app)
	game.Finish()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

// app adapts a driver to ebiten.Game. Ebiten calls Update and Draw from
// one goroutine, so the game needs no locking.
type app struct {
	ctx    context.Context
	drv    *driver
	colors config.ColorConfig
}

func newApp(ctx context.Context, game *snake.Game, env registry.Env, framesPerMove int) *app {
	return &app{
		ctx:    ctx,
		drv:    newDriver(game, env, framesPerMove),
		colors: env.Settings.Colors,
	}
}

var directionKeys = []struct {
	keys []ebiten.Key
	code core.KeyCode
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyK}, core.KeyCodeUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS, ebiten.KeyJ}, core.KeyCodeDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyH}, core.KeyCodeLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD, ebiten.KeyL}, core.KeyCodeRight},
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Update maps input to the driver and counts one frame.
func (a *app) Update() error {
	if a.ctx.Err() != nil || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyP, ebiten.KeyEscape) {
		a.drv.TogglePause()
	}
	if justPressed(ebiten.KeyR) {
		a.drv.Restart()
	}
	for _, d := range directionKeys {
		if justPressed(d.keys...) {
			a.drv.Key(d.code)
		}
	}
	a.drv.Frame()
	return nil
}

// Draw paints the board, the snake, the food and the HUD line.
func (a *app) Draw(screen *ebiten.Image) {
	f := a.drv.game.Frame()
	grid := f.Grid
	side := float32(grid.Length * grid.CellSize)

	inner := a.colors.RGBA(core.ColorBackground, color.RGBA{A: 255})
	screen.Fill(a.colors.RGBA(core.ColorGrid, color.RGBA{R: 40, G: 40, B: 40, A: 255}))
	vector.FillRect(screen, 0, 0, side, hudHeight, inner, false)

	for row := range grid.Length {
		for col := range grid.Length {
			x, y, w, h := CellRect(grid, grid.At(col, row))
			vector.FillRect(screen, x, y, w, h, inner, false)
		}
	}

	x, y, w, h := CellRect(grid, f.Food)
	vector.FillRect(screen, x, y, w, h, a.colors.RGBA(core.ColorFood, color.RGBA{R: 215, A: 255}), false)

	body := a.colors.RGBA(core.ColorSnake, color.RGBA{G: 175, A: 255})
	head := a.colors.RGBA(core.ColorSnakeHead, color.RGBA{G: 255, A: 255})
	for i := len(f.Snake) - 1; i >= 0; i-- {
		clr := body
		if i == 0 {
			clr = head
		}
		x, y, w, h := CellRect(grid, f.Snake[i])
		vector.FillRect(screen, x, y, w, h, clr, false)
	}

	hudColor := a.colors.RGBA(core.ColorHUD, color.RGBA{R: 208, G: 208, B: 208, A: 255})
	hud := fmt.Sprintf("Score: %d  Length: %d  Round: %d", f.Score, len(f.Snake), f.Round)
	text.Draw(screen, hud, basicfont.Face7x13, 4, 14, hudColor)

	if a.drv.paused {
		overlay := a.colors.RGBA(core.ColorOverlay, color.RGBA{R: 255, G: 215, B: 95, A: 255})
		msg := "Paused - press P"
		bounds := text.BoundString(basicfont.Face7x13, msg)
		tx := (int(side) - bounds.Dx()) / 2
		ty := hudHeight + int(side)/2
		text.Draw(screen, msg, basicfont.Face7x13, tx, ty, overlay)
	}
}

// Layout keeps the logical size fixed to the board.
func (a *app) Layout(int, int) (int, int) {
	return WindowSize(a.drv.game.Grid())
}
