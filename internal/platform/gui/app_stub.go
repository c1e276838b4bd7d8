//go:build !ebiten

package gui

import (
	"context"
	"errors"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

// ErrNotBuilt is returned when the window frontend was compiled out.
var ErrNotBuilt = errors.New("gui: window frontend requires building with -tags ebiten")

func init() {
	registry.Register(Frontend{})
}

// Frontend is the headless placeholder for the window frontend.
type Frontend struct{}

// ID returns "gui".
func (Frontend) ID() string {
	return "gui"
}

// Title returns the display name.
func (Frontend) Title() string {
	return "Window (ebiten, not built)"
}

// Run always fails with ErrNotBuilt.
func (Frontend) Run(context.Context, registry.Env) error {
	return ErrNotBuilt
}
