package snake

import (
	"errors"
	"fmt"
)

// Board defaults.
const (
	DefaultGridLength = 20
	DefaultCellSize   = 20
	InitialLength     = 5
)

var (
	// ErrInvalidCellSize is returned when the cell size is not positive.
	ErrInvalidCellSize = errors.New("snake: cell size must be positive")

	// ErrInvalidGridLength is returned when the board cannot hold the initial snake.
	ErrInvalidGridLength = errors.New("snake: grid too small for the initial snake")
)

// Heading is the axis-aligned direction the head moves on the next tick.
type Heading int

const (
	HeadingNone Heading = iota // No pending request
	HeadingUp
	HeadingDown
	HeadingLeft
	HeadingRight
)

// Opposite returns the reverse heading. HeadingNone has no opposite.
func (h Heading) Opposite() Heading {
	switch h {
	case HeadingUp:
		return HeadingDown
	case HeadingDown:
		return HeadingUp
	case HeadingLeft:
		return HeadingRight
	case HeadingRight:
		return HeadingLeft
	default:
		return HeadingNone
	}
}

// Reverses reports whether h points exactly against other.
func (h Heading) Reverses(other Heading) bool {
	return h != HeadingNone && h.Opposite() == other
}

// delta returns the unit step along the heading's axis.
func (h Heading) delta() (dx, dy int) {
	switch h {
	case HeadingUp:
		return 0, -1
	case HeadingDown:
		return 0, 1
	case HeadingLeft:
		return -1, 0
	case HeadingRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (h Heading) String() string {
	switch h {
	case HeadingNone:
		return "none"
	case HeadingUp:
		return "up"
	case HeadingDown:
		return "down"
	case HeadingLeft:
		return "left"
	case HeadingRight:
		return "right"
	default:
		return "unknown"
	}
}

// Cell is one grid square addressed by pixel-aligned coordinates.
// Both components are multiples of the cell size.
type Cell struct {
	X, Y int
}

// Equals reports component-wise equality.
func (c Cell) Equals(other Cell) bool {
	return c.X == other.X && c.Y == other.Y
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Wrap brings a coordinate that left the axis by one step back onto it.
// Negative values reenter at the far edge, values past the last cell at zero.
func Wrap(coord, axisSize, cellSize int) int {
	switch {
	case coord < 0:
		return axisSize - cellSize
	case coord > axisSize-cellSize:
		return 0
	default:
		return coord
	}
}

// Grid is the fixed square board.
type Grid struct {
	Length   int // Cells per side
	CellSize int // Pixel dimension of one cell
}

// NewGrid validates the board geometry. The board must be wider than the
// initial snake so the first moves and the first food never overlap it.
func NewGrid(length, cellSize int) (Grid, error) {
	if cellSize <= 0 {
		return Grid{}, fmt.Errorf("%w: got %d", ErrInvalidCellSize, cellSize)
	}
	if length <= InitialLength {
		return Grid{}, fmt.Errorf("%w: length %d, need more than %d", ErrInvalidGridLength, length, InitialLength)
	}
	return Grid{Length: length, CellSize: cellSize}, nil
}

// Size returns the pixel width (and height) of the board.
func (g Grid) Size() int {
	return g.Length * g.CellSize
}

// Cells returns the number of cells on the board.
func (g Grid) Cells() int {
	return g.Length * g.Length
}

// Contains reports whether c is an aligned cell on the board.
func (g Grid) Contains(c Cell) bool {
	size := g.Size()
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size &&
		c.X%g.CellSize == 0 && c.Y%g.CellSize == 0
}

// At returns the cell at the given column and row.
func (g Grid) At(col, row int) Cell {
	return Cell{X: col * g.CellSize, Y: row * g.CellSize}
}

// Index returns the column and row of c.
func (g Grid) Index(c Cell) (col, row int) {
	return c.X / g.CellSize, c.Y / g.CellSize
}

// Step moves c one cell along h and wraps both axes independently.
func (g Grid) Step(c Cell, h Heading) Cell {
	dx, dy := h.delta()
	size := g.Size()
	return Cell{
		X: Wrap(c.X+dx*g.CellSize, size, g.CellSize),
		Y: Wrap(c.Y+dy*g.CellSize, size, g.CellSize),
	}
}
