package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// HeadingForKey maps an arrow key code to a heading.
func HeadingForKey(code core.KeyCode) (Heading, bool) {
	switch code {
	case core.KeyCodeLeft:
		return HeadingLeft, true
	case core.KeyCodeUp:
		return HeadingUp, true
	case core.KeyCodeRight:
		return HeadingRight, true
	case core.KeyCodeDown:
		return HeadingDown, true
	default:
		return HeadingNone, false
	}
}

// Controller turns direction keys into pending heading requests.
// It only ever writes GameState.Pending.
type Controller struct {
	state *GameState
}

// NewController binds a controller to the state it edits.
func NewController(state *GameState) Controller {
	return Controller{state: state}
}

// OnDirectionKey records the heading for code unless it reverses the current
// heading. Unknown codes are ignored. Reports whether Pending changed.
func (c Controller) OnDirectionKey(code core.KeyCode) bool {
	h, ok := HeadingForKey(code)
	if !ok {
		return false
	}
	if h.Reverses(c.state.Heading) {
		return false
	}
	c.state.Pending = h
	return true
}
