package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Journal records finished rounds into a Store. Write failures are logged and
// never interrupt the game.
type Journal struct {
	store  *Store
	logger *log.Logger
}

// NewJournal wraps store. A nil logger discards failures.
func NewJournal(store *Store, logger *log.Logger) *Journal {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Journal{store: store, logger: logger}
}

// RecordRound saves r.
func (j *Journal) RecordRound(r snake.Round) {
	id, err := j.store.SaveRound(r)
	if err != nil {
		j.logger.Error("failed to journal round", "round", r.Number, "error", err)
		return
	}
	j.logger.Debug("round journaled", "id", id, "round", r.Number, "ticks", r.Ticks, "reason", r.Reason)
}
