package snake

// Snapshot captures the observable game state for determinism testing and replay.
type Snapshot struct {
	Round   int
	Tick    uint64
	Score   int
	Length  int
	HeadX   int
	HeadY   int
	Heading Heading
	Pending Heading
	FoodX   int
	FoodY   int
	Outcome Outcome
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	head := g.state.Head()
	return Snapshot{
		Round:   g.round,
		Tick:    g.tick,
		Score:   g.state.Score,
		Length:  g.state.Len(),
		HeadX:   head.X,
		HeadY:   head.Y,
		Heading: g.state.Heading,
		Pending: g.state.Pending,
		FoodX:   g.state.Food.X,
		FoodY:   g.state.Food.Y,
		Outcome: g.last,
	}
}
