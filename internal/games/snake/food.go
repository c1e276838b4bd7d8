package snake

import (
	"errors"
	"math/rand"
)

// ErrGridFull is returned when every cell of the board is occupied.
var ErrGridFull = errors.New("snake: no free cell for food")

// CellSet is a set of occupied cells.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells []Cell) CellSet {
	set := make(CellSet, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// PlaceFood picks a uniformly random cell that is not occupied.
//
// Cells are sampled independently per axis until a free one comes up. After
// 4*grid.Cells() misses the remaining free cells are scanned and one is picked
// among them, so the loop is bounded even on a nearly full board.
func PlaceFood(rng *rand.Rand, occupied CellSet, grid Grid) (Cell, error) {
	if len(occupied) >= grid.Cells() {
		return Cell{}, ErrGridFull
	}

	for range 4 * grid.Cells() {
		c := grid.At(rng.Intn(grid.Length), rng.Intn(grid.Length))
		if !occupied.Has(c) {
			return c, nil
		}
	}

	free := make([]Cell, 0, grid.Cells()-len(occupied))
	for row := range grid.Length {
		for col := range grid.Length {
			if c := grid.At(col, row); !occupied.Has(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, ErrGridFull
	}
	return free[rng.Intn(len(free))], nil
}
