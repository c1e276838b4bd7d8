package core

// Action represents a semantic frontend action, abstracted from physical key presses.
// Each platform maps its own key events to actions, then to key codes for the game.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // Up arrow, W, K
	ActionDown              // Down arrow, S, J
	ActionLeft              // Left arrow, A, H
	ActionRight             // Right arrow, D, L
	ActionPause             // P, Escape
	ActionRestart           // R - start a fresh round
	ActionScreenshot        // Ctrl+S
	ActionCopy              // Ctrl+Y - copy board to clipboard
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionScreenshot:
		return "Screenshot"
	case ActionCopy:
		return "Copy"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeyCode is a raw directional key code as delivered by the host input source.
// The values are the classic DOM arrow key codes.
type KeyCode int

const (
	KeyCodeLeft  KeyCode = 37
	KeyCodeUp    KeyCode = 38
	KeyCodeRight KeyCode = 39
	KeyCodeDown  KeyCode = 40
)

// KeyCode returns the arrow key code for a directional action.
// The second result is false for non-directional actions.
func (a Action) KeyCode() (KeyCode, bool) {
	switch a {
	case ActionLeft:
		return KeyCodeLeft, true
	case ActionUp:
		return KeyCodeUp, true
	case ActionRight:
		return KeyCodeRight, true
	case ActionDown:
		return KeyCodeDown, true
	default:
		return 0, false
	}
}
