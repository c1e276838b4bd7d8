package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestControllerOnDirectionKey(t *testing.T) {
	tests := []struct {
		name     string
		code     core.KeyCode
		accepted bool
		pending  Heading
	}{
		{"left reverses right", core.KeyCodeLeft, false, HeadingNone},
		{"up", core.KeyCodeUp, true, HeadingUp},
		{"down", core.KeyCodeDown, true, HeadingDown},
		{"right repeats the heading", core.KeyCodeRight, true, HeadingRight},
		{"unknown code", core.KeyCode(65), false, HeadingNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := GameState{Heading: HeadingRight}
			ctrl := NewController(&state)

			if got := ctrl.OnDirectionKey(tc.code); got != tc.accepted {
				t.Errorf("OnDirectionKey(%d) = %v, expected %v", tc.code, got, tc.accepted)
			}
			if state.Pending != tc.pending {
				t.Errorf("Pending = %v, expected %v", state.Pending, tc.pending)
			}
			if state.Heading != HeadingRight {
				t.Errorf("controller changed Heading to %v", state.Heading)
			}
		})
	}
}

func TestControllerLastKeyWins(t *testing.T) {
	grid := mustGrid(t, 20, 20)
	state := GameState{Snake: InitialSnake(grid), Heading: HeadingRight, Food: Cell{200, 200}}
	ctrl := NewController(&state)

	ctrl.OnDirectionKey(core.KeyCodeUp)
	ctrl.OnDirectionKey(core.KeyCodeDown)

	next, _, err := Advance(state, grid, nil)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if next.Heading != HeadingDown {
		t.Errorf("Heading = %v, expected the last accepted key (down)", next.Heading)
	}
}

func TestControllerRejectsReversalAgainstCommittedHeading(t *testing.T) {
	// Up is pending but not yet applied, so Left is still judged against Right.
	state := GameState{Heading: HeadingRight}
	ctrl := NewController(&state)

	ctrl.OnDirectionKey(core.KeyCodeUp)
	if ctrl.OnDirectionKey(core.KeyCodeLeft) {
		t.Error("Left accepted while the committed heading is Right")
	}
	if state.Pending != HeadingUp {
		t.Errorf("Pending = %v, expected up", state.Pending)
	}
}

func TestHeadingForKey(t *testing.T) {
	expected := map[core.KeyCode]Heading{
		37: HeadingLeft,
		38: HeadingUp,
		39: HeadingRight,
		40: HeadingDown,
	}
	for code, h := range expected {
		got, ok := HeadingForKey(code)
		if !ok || got != h {
			t.Errorf("HeadingForKey(%d) = %v, %v; expected %v", code, got, ok, h)
		}
	}
}
