package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRound(number int, reason snake.EndReason) snake.Round {
	return snake.Round{
		Number: number,
		Seed:   int64(1000 + number),
		Grid:   snake.Grid{Length: 20, CellSize: 20},
		Ticks:  uint64(10 * number),
		Inputs: []snake.KeyPress{
			{Tick: 2, Code: core.KeyCodeDown},
			{Tick: 5, Code: core.KeyCodeLeft},
			{Tick: 5, Code: core.KeyCodeUp},
		},
		Reason: reason,
		Length: 5 + number,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRounds(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRound(sampleRound(1, snake.EndCollision)); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	rounds, err := store.Rounds(10)
	if err != nil {
		t.Fatalf("Rounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Errorf("Expected 1 round after reopen, got %d", len(rounds))
	}
}

func TestStoreSaveAndLoadRound(t *testing.T) {
	store := openTestStore(t)
	want := sampleRound(3, snake.EndRestart)

	id, err := store.SaveRound(want)
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	got, entry, err := store.Round(id)
	if err != nil {
		t.Fatalf("Round() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Round() = %+v\nexpected %+v", got, want)
	}
	if entry.ID != id || entry.InputCount != 3 {
		t.Errorf("entry = %+v, expected id %d with 3 inputs", entry, id)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreRoundWithoutInputs(t *testing.T) {
	store := openTestStore(t)
	r := sampleRound(1, snake.EndQuit)
	r.Inputs = nil

	id, err := store.SaveRound(r)
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	got, _, err := store.Round(id)
	if err != nil {
		t.Fatalf("Round() failed: %v", err)
	}
	if len(got.Inputs) != 0 {
		t.Errorf("Expected no inputs, got %d", len(got.Inputs))
	}
}

func TestStoreRoundNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, _, err := store.Round(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Round(42) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreRoundsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveRound(sampleRound(i, snake.EndCollision)); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	rounds, err := store.Rounds(3)
	if err != nil {
		t.Fatalf("Rounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}
	for i, expected := range []int{5, 4, 3} {
		if rounds[i].Number != expected {
			t.Errorf("rounds[%d].Number = %d, expected %d", i, rounds[i].Number, expected)
		}
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRound(sampleRound(1, snake.EndCollision)); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	rounds, err := store.Rounds(10)
	if err != nil {
		t.Fatalf("Rounds() failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("Expected empty journal, got %d rounds", len(rounds))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []snake.Round{
		sampleRound(1, snake.EndCollision),
		sampleRound(2, snake.EndCollision),
		sampleRound(4, snake.EndQuit),
	} {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 3 {
		t.Errorf("Rounds = %d, expected 3", stats.Rounds)
	}
	if stats.TotalTicks != 70 {
		t.Errorf("TotalTicks = %d, expected 70", stats.TotalTicks)
	}
	if stats.MaxLength != 9 {
		t.Errorf("MaxLength = %d, expected 9", stats.MaxLength)
	}
	if stats.ByReason[snake.EndCollision] != 2 || stats.ByReason[snake.EndQuit] != 1 {
		t.Errorf("ByReason = %v", stats.ByReason)
	}
}

func TestStoreEmptyStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 0 || stats.TotalTicks != 0 || stats.MaxLength != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
}

func TestJournalReplaysRecordedGame(t *testing.T) {
	store := openTestStore(t)
	journal := NewJournal(store, nil)

	grid, err := snake.NewGrid(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	g := snake.New(grid, 77)
	g.OnRoundEnd(journal.RecordRound)

	g.Key(core.KeyCodeDown)
	for range 12 {
		if g.Tick().Restarts() {
			t.Skip("round restarted early")
		}
	}
	want := g.State()
	g.Finish()

	rounds, err := store.Rounds(1)
	if err != nil || len(rounds) != 1 {
		t.Fatalf("Rounds() = %v, %v", rounds, err)
	}
	r, _, err := store.Round(rounds[0].ID)
	if err != nil {
		t.Fatalf("Round() failed: %v", err)
	}

	got := snake.Replay(r)
	if got.State.Head() != want.Head() || got.State.Len() != want.Len() {
		t.Errorf("replayed head %v len %d, expected head %v len %d",
			got.State.Head(), got.State.Len(), want.Head(), want.Len())
	}
}
