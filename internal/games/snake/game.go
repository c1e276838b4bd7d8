// Package snake implements the Snake state machine: grid arithmetic, food
// placement, the tick transition and the direction input controller.
// It has no platform dependencies; frontends drive it through Game.
package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// EndReason tells why a round stopped.
type EndReason string

const (
	EndCollision EndReason = "collision"
	EndBoardFull EndReason = "board_full"
	EndRestart   EndReason = "restart"
	EndQuit      EndReason = "quit"
)

// KeyPress is an accepted direction key, stamped with the number of ticks
// that had completed in the round when it arrived.
type KeyPress struct {
	Tick uint64
	Code core.KeyCode
}

// Round is everything needed to replay one round deterministically.
type Round struct {
	Number int
	Seed   int64
	Grid   Grid
	Ticks  uint64
	Inputs []KeyPress
	Reason EndReason
	Length int // Snake length when the round ended
}

// Game runs consecutive rounds of Snake on one board.
//
// A Game is not safe for concurrent use. Frontends call Key and Tick from a
// single goroutine, which is the only ordering guarantee the game relies on.
type Game struct {
	grid Grid
	rng  *rand.Rand // Session source, seeds every round

	state     GameState
	input     Controller
	roundRNG  *rand.Rand
	roundSeed int64
	round     int
	tick      uint64
	inputs    []KeyPress
	last      Outcome
	finished  bool

	onRoundEnd func(Round)
}

// New creates a game and starts its first round.
func New(grid Grid, seed int64) *Game {
	g := &Game{
		grid: grid,
		rng:  rand.New(rand.NewSource(seed)),
	}
	g.input = NewController(&g.state)
	g.startRound()
	return g
}

// OnRoundEnd registers a callback that receives every finished round.
func (g *Game) OnRoundEnd(fn func(Round)) {
	g.onRoundEnd = fn
}

// Grid returns the board geometry.
func (g *Game) Grid() Grid {
	return g.grid
}

// State returns the current round state. Callers must not modify the snake slice.
func (g *Game) State() GameState {
	return g.state
}

// Round returns the 1-based number of the current round.
func (g *Game) Round() int {
	return g.round
}

// Ticks returns the number of ticks completed in the current round.
func (g *Game) Ticks() uint64 {
	return g.tick
}

// Key forwards a direction key code to the input controller.
func (g *Game) Key(code core.KeyCode) bool {
	if !g.input.OnDirectionKey(code) {
		return false
	}
	g.inputs = append(g.inputs, KeyPress{Tick: g.tick, Code: code})
	return true
}

// Tick advances the round by one move. A collision or a full board ends the
// round and a fresh one starts immediately; the returned outcome says which.
func (g *Game) Tick() Outcome {
	next, outcome, err := Advance(g.state, g.grid, g.roundRNG)
	g.tick++
	g.last = outcome

	switch {
	case err != nil, outcome == OutcomeBoardFull:
		g.last = OutcomeBoardFull
		g.endRound(EndBoardFull)
		g.startRound()
	case outcome == OutcomeReset:
		g.endRound(EndCollision)
		g.startRound()
	default:
		g.state = next
	}
	return g.last
}

// Restart abandons the current round and starts a new one.
func (g *Game) Restart() {
	g.endRound(EndRestart)
	g.startRound()
}

// Finish reports the current round as ended by the player quitting.
// Rounds that never ticked are not reported. Only the first call reports.
func (g *Game) Finish() {
	if g.finished {
		return
	}
	g.finished = true
	g.endRound(EndQuit)
}

// startRound seeds a new round from the session source and resets all round state.
func (g *Game) startRound() {
	g.round++
	g.roundSeed = g.rng.Int63()
	g.roundRNG = rand.New(rand.NewSource(g.roundSeed))
	g.state = NewGameState(g.grid, g.roundRNG)
	g.tick = 0
	g.inputs = nil
}

// endRound hands the finished round to the callback, if any.
func (g *Game) endRound(reason EndReason) {
	if g.onRoundEnd == nil || g.tick == 0 {
		return
	}
	g.onRoundEnd(Round{
		Number: g.round,
		Seed:   g.roundSeed,
		Grid:   g.grid,
		Ticks:  g.tick,
		Inputs: g.inputs,
		Reason: reason,
		Length: g.state.Len(),
	})
}

// Frame returns the data a renderer needs for the current state.
func (g *Game) Frame() Frame {
	return Frame{
		Grid:    g.grid,
		Snake:   g.state.Snake,
		Food:    g.state.Food,
		Score:   g.state.Score,
		Heading: g.state.Heading,
		Round:   g.round,
		Tick:    g.tick,
		Outcome: g.last,
	}
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	DrawFrame(dst, g.Frame())
}

// ReplayResult is the end state of a replayed round.
type ReplayResult struct {
	State   GameState // Last committed state
	Ticks   uint64    // Ticks actually simulated
	Outcome Outcome   // Outcome of the final tick
}

// Replay re-simulates a recorded round from its seed and inputs.
func Replay(r Round) ReplayResult {
	rng := rand.New(rand.NewSource(r.Seed))
	state := NewGameState(r.Grid, rng)
	input := NewController(&state)

	var result ReplayResult
	next := 0
	for tick := uint64(0); tick < r.Ticks; tick++ {
		for next < len(r.Inputs) && r.Inputs[next].Tick == tick {
			input.OnDirectionKey(r.Inputs[next].Code)
			next++
		}

		advanced, outcome, _ := Advance(state, r.Grid, rng)
		result.Ticks = tick + 1
		result.Outcome = outcome
		if outcome.Restarts() {
			break
		}
		state = advanced
	}
	result.State = state
	return result
}

// Frame returns the renderer view of the replayed end state.
func (res ReplayResult) Frame(r Round) Frame {
	return Frame{
		Grid:    r.Grid,
		Snake:   res.State.Snake,
		Food:    res.State.Food,
		Score:   res.State.Score,
		Heading: res.State.Heading,
		Round:   r.Number,
		Tick:    res.Ticks,
		Outcome: res.Outcome,
	}
}
