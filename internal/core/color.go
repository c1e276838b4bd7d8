package core

// Color identifies the role of a screen cell. Platforms map roles to concrete
// terminal or window colors, so games never deal with palettes directly.
type Color uint8

// Cell roles used by the snake board.
const (
	ColorDefault Color = iota
	ColorBackground
	ColorGrid
	ColorSnake
	ColorSnakeHead
	ColorFood
	ColorHUD
	ColorOverlay
)

// String returns the role name, matching the keys of the colors config section.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorBackground:
		return "background"
	case ColorGrid:
		return "grid"
	case ColorSnake:
		return "snake"
	case ColorSnakeHead:
		return "head"
	case ColorFood:
		return "food"
	case ColorHUD:
		return "hud"
	case ColorOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}
