package snake

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPlaceFoodAvoidsOccupied(t *testing.T) {
	grid := mustGrid(t, 20, 20)
	occupied := NewCellSet(InitialSnake(grid))

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		food, err := PlaceFood(rng, occupied, grid)
		if err != nil {
			t.Fatalf("seed %d: PlaceFood failed: %v", seed, err)
		}
		if occupied.Has(food) {
			t.Errorf("seed %d: food placed on snake at %v", seed, food)
		}
		if !grid.Contains(food) {
			t.Errorf("seed %d: food %v is not an aligned cell on the board", seed, food)
		}
	}
}

func TestPlaceFoodLastFreeCell(t *testing.T) {
	grid := mustGrid(t, 6, 10)
	free := grid.At(3, 4)

	occupied := make(CellSet)
	for row := range grid.Length {
		for col := range grid.Length {
			if c := grid.At(col, row); c != free {
				occupied[c] = struct{}{}
			}
		}
	}

	food, err := PlaceFood(rand.New(rand.NewSource(7)), occupied, grid)
	if err != nil {
		t.Fatalf("PlaceFood failed: %v", err)
	}
	if food != free {
		t.Errorf("PlaceFood = %v, expected the only free cell %v", food, free)
	}
}

func TestPlaceFoodFullGrid(t *testing.T) {
	grid := mustGrid(t, 6, 10)

	occupied := make(CellSet)
	for row := range grid.Length {
		for col := range grid.Length {
			occupied[grid.At(col, row)] = struct{}{}
		}
	}

	_, err := PlaceFood(rand.New(rand.NewSource(1)), occupied, grid)
	if !errors.Is(err, ErrGridFull) {
		t.Errorf("PlaceFood on a full grid: error = %v, expected ErrGridFull", err)
	}
}

func TestPlaceFoodDeterministic(t *testing.T) {
	grid := mustGrid(t, 20, 20)
	occupied := NewCellSet(InitialSnake(grid))

	a, _ := PlaceFood(rand.New(rand.NewSource(42)), occupied, grid)
	b, _ := PlaceFood(rand.New(rand.NewSource(42)), occupied, grid)
	if a != b {
		t.Errorf("same seed placed food at %v and %v", a, b)
	}
}
