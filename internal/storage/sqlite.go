// Package storage provides a SQLite journal of finished snake rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrNotFound is returned when a round ID does not exist.
var ErrNotFound = errors.New("storage: round not found")

// Store manages the SQLite database connection for the round journal.
type Store struct {
	db *sql.DB
}

// RoundEntry is one journaled round without its inputs.
type RoundEntry struct {
	ID         int64
	Number     int
	Seed       int64
	GridLength int
	CellSize   int
	Ticks      uint64
	Length     int
	Reason     snake.EndReason
	InputCount int
	CreatedAt  time.Time
}

// Stats summarizes the journal.
type Stats struct {
	Rounds     int
	TotalTicks uint64
	MaxLength  int
	ByReason   map[snake.EndReason]int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions write concurrently; one connection serializes them.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_no INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			grid_length INTEGER NOT NULL,
			cell_size INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			length INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);

		CREATE TABLE IF NOT EXISTS round_inputs (
			round_id INTEGER NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			key_code INTEGER NOT NULL,
			PRIMARY KEY (round_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound journals a finished round with its inputs.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r snake.Round) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	result, err := tx.Exec(
		`INSERT INTO rounds (round_no, seed, grid_length, cell_size, ticks, length, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Number, r.Seed, r.Grid.Length, r.Grid.CellSize, int64(r.Ticks), r.Length, string(r.Reason),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO round_inputs (round_id, seq, tick, key_code) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for seq, in := range r.Inputs {
		if _, err := stmt.Exec(id, seq, int64(in.Tick), int(in.Code)); err != nil {
			return 0, fmt.Errorf("storage: cannot save input %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit round: %w", err)
	}
	return id, nil
}

// Rounds retrieves the most recent rounds, newest first.
func (s *Store) Rounds(limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.round_no, r.seed, r.grid_length, r.cell_size, r.ticks, r.length, r.reason,
		        (SELECT COUNT(*) FROM round_inputs i WHERE i.round_id = r.id), r.created_at
		 FROM rounds r
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		e, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Round loads a journaled round with its inputs, ready for snake.Replay.
func (s *Store) Round(id int64) (snake.Round, RoundEntry, error) {
	row := s.db.QueryRow(
		`SELECT r.id, r.round_no, r.seed, r.grid_length, r.cell_size, r.ticks, r.length, r.reason,
		        (SELECT COUNT(*) FROM round_inputs i WHERE i.round_id = r.id), r.created_at
		 FROM rounds r
		 WHERE r.id = ?`,
		id,
	)
	entry, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return snake.Round{}, RoundEntry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return snake.Round{}, RoundEntry{}, err
	}

	rows, err := s.db.Query(
		"SELECT tick, key_code FROM round_inputs WHERE round_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return snake.Round{}, RoundEntry{}, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	inputs := make([]snake.KeyPress, 0, entry.InputCount)
	for rows.Next() {
		var tick int64
		var code int
		if err := rows.Scan(&tick, &code); err != nil {
			return snake.Round{}, RoundEntry{}, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		inputs = append(inputs, snake.KeyPress{Tick: uint64(tick), Code: core.KeyCode(code)})
	}
	if err := rows.Err(); err != nil {
		return snake.Round{}, RoundEntry{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	round := snake.Round{
		Number: entry.Number,
		Seed:   entry.Seed,
		Grid:   snake.Grid{Length: entry.GridLength, CellSize: entry.CellSize},
		Ticks:  entry.Ticks,
		Inputs: inputs,
		Reason: entry.Reason,
		Length: entry.Length,
	}
	return round, entry, nil
}

// ClearRounds deletes the whole journal.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM round_inputs; DELETE FROM rounds;"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// Stats summarizes all journaled rounds.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByReason: make(map[snake.EndReason]int)}

	var ticks int64
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(MAX(length), 0) FROM rounds",
	).Scan(&stats.Rounds, &ticks, &stats.MaxLength)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	stats.TotalTicks = uint64(ticks)

	rows, err := s.db.Query("SELECT reason, COUNT(*) FROM rounds GROUP BY reason")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan reason: %w", err)
		}
		stats.ByReason[snake.EndReason(reason)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(sc scanner) (RoundEntry, error) {
	var e RoundEntry
	var ticks int64
	var reason string
	var createdAt any
	err := sc.Scan(&e.ID, &e.Number, &e.Seed, &e.GridLength, &e.CellSize, &ticks, &e.Length, &reason, &e.InputCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.Ticks = uint64(ticks)
	e.Reason = snake.EndReason(reason)

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}
	return e, nil
}
