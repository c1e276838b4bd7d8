package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ActionForKey maps a tcell key (and its rune for KeyRune) to a platform action.
func ActionForKey(k tcell.Key, r rune) core.Action {
	switch k {
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyEscape:
		return core.ActionPause
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		return actionForRune(r)
	}
	return core.ActionNone
}

func actionForRune(r rune) core.Action {
	switch r {
	case 'w', 'k':
		return core.ActionUp
	case 's', 'j':
		return core.ActionDown
	case 'a', 'h':
		return core.ActionLeft
	case 'd', 'l':
		return core.ActionRight
	case 'p':
		return core.ActionPause
	case 'r':
		return core.ActionRestart
	case 'q':
		return core.ActionQuit
	}
	return core.ActionNone
}
