// Package audio plays short sound cues for game events.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const sampleRate = beep.SampleRate(44100)

// Note is one tone of a cue.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Rising chirp on food, falling buzz on reset.
var (
	eatNotes = []Note{
		{Freq: 660, Duration: 40 * time.Millisecond},
		{Freq: 990, Duration: 60 * time.Millisecond},
	}
	resetNotes = []Note{
		{Freq: 330, Duration: 90 * time.Millisecond},
		{Freq: 220, Duration: 90 * time.Millisecond},
		{Freq: 110, Duration: 160 * time.Millisecond},
	}
)

// NotesFor returns the cue for a tick outcome, or nil if the outcome is silent.
func NotesFor(o snake.Outcome) []Note {
	switch o {
	case snake.OutcomeAte:
		return eatNotes
	case snake.OutcomeReset, snake.OutcomeBoardFull:
		return resetNotes
	default:
		return nil
	}
}

// Sequence renders notes back to back at sr, scaled by a base-2 volume.
func Sequence(sr beep.SampleRate, notes []Note, volume float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("audio: tone %.0fHz: %w", n.Freq, err)
		}
		parts = append(parts, beep.Take(sr.N(n.Duration), tone))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volume,
	}, nil
}

// Player mixes cues into the system speaker. A nil Player is silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	logger      *log.Logger
	initialized bool
}

// NewPlayer creates a player; call Init before the first cue.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the cue for o. Silent outcomes and uninitialized players do nothing.
func (p *Player) Play(o snake.Outcome) {
	if p == nil {
		return
	}
	notes := NotesFor(o)
	if notes == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s, err := Sequence(sampleRate, notes, p.volume)
	if err != nil {
		p.logger.Warn("cue skipped", "outcome", o, "error", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all cues and releases the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
