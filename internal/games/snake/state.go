package snake

import "math/rand"

// Outcome describes what a single tick did.
type Outcome int

const (
	OutcomeMoved     Outcome = iota // Normal move, tail dropped
	OutcomeAte                      // Head landed on food, snake grew
	OutcomeReset                    // Head hit the body, round restarts
	OutcomeBoardFull                // Snake covers the board, round restarts
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeReset:
		return "reset"
	case OutcomeBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Restarts reports whether the outcome ends the round.
func (o Outcome) Restarts() bool {
	return o == OutcomeReset || o == OutcomeBoardFull
}

// GameState is the complete state of one round.
type GameState struct {
	Snake   []Cell  // Head at index 0
	Heading Heading // Direction of the last applied move
	Pending Heading // Requested direction for the next tick, HeadingNone if unset
	Food    Cell
	Score   int // Food eaten since the last reset
}

// InitialSnake lays the starting snake horizontally from the origin, head first.
func InitialSnake(grid Grid) []Cell {
	cells := make([]Cell, 0, InitialLength)
	for i := InitialLength - 1; i >= 0; i-- {
		cells = append(cells, grid.At(i, 0))
	}
	return cells
}

// NewGameState returns the state a round starts from. The grid must come from
// NewGrid, which leaves room for food next to the initial snake.
func NewGameState(grid Grid, rng *rand.Rand) GameState {
	snake := InitialSnake(grid)
	food, err := PlaceFood(rng, NewCellSet(snake), grid)
	if err != nil {
		panic("snake: initial food placement failed on a valid grid: " + err.Error())
	}
	return GameState{
		Snake:   snake,
		Heading: HeadingRight,
		Pending: HeadingNone,
		Food:    food,
		Score:   0,
	}
}

// Head returns the head cell.
func (s GameState) Head() Cell {
	return s.Snake[0]
}

// Len returns the snake length.
func (s GameState) Len() int {
	return len(s.Snake)
}

// Occupies reports whether any snake segment is on c.
func (s GameState) Occupies(c Cell) bool {
	for _, seg := range s.Snake {
		if seg == c {
			return true
		}
	}
	return false
}

// Advance computes the state after one tick. The input state is never
// modified; on a restarting outcome the returned state is the input state and
// the caller is expected to start a fresh round.
func Advance(s GameState, grid Grid, rng *rand.Rand) (GameState, Outcome, error) {
	next := s

	if s.Pending != HeadingNone && !s.Pending.Reverses(s.Heading) {
		next.Heading = s.Pending
	}
	next.Pending = HeadingNone

	head := grid.Step(s.Head(), next.Heading)
	ate := head.Equals(s.Food)

	var body []Cell
	if ate {
		body = make([]Cell, 0, len(s.Snake)+1)
		body = append(body, head)
		body = append(body, s.Snake...)
	} else {
		body = make([]Cell, 0, len(s.Snake))
		body = append(body, head)
		body = append(body, s.Snake[:len(s.Snake)-1]...)
	}

	for _, seg := range body[1:] {
		if seg.Equals(head) {
			return s, OutcomeReset, nil
		}
	}

	next.Snake = body
	if !ate {
		return next, OutcomeMoved, nil
	}

	next.Score++
	food, err := PlaceFood(rng, NewCellSet(body), grid)
	if err != nil {
		return s, OutcomeBoardFull, err
	}
	next.Food = food
	return next, OutcomeAte, nil
}
