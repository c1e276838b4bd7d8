package tui

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

type roundLog struct {
	mu     sync.Mutex
	rounds []snake.Round
}

func (l *roundLog) RecordRound(r snake.Round) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rounds = append(l.rounds, r)
}

func (l *roundLog) Rounds() []snake.Round {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]snake.Round(nil), l.rounds...)
}

func TestSSHServerConfigDefaultHostKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	parsed, err := config.Parse(config.DefaultYAML())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	expected := filepath.Join(home, ".snake", "host_key")

	for name, cfg := range map[string]config.SnakeConfig{
		"embedded": parsed,
		"builtin":  config.DefaultSnakeConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			got := SSHServerConfigFrom(cfg).HostKeyPath
			if !filepath.IsAbs(got) {
				t.Errorf("host key path %q is relative to the working directory", got)
			}
			if got != expected {
				t.Errorf("host key path = %q, expected %q", got, expected)
			}
		})
	}
}

func newTestSSHServer(t *testing.T, rec registry.Recorder) *SSHServer {
	t.Helper()
	settings := config.DefaultSnakeConfig()
	env := registry.Env{
		Runtime:  settings.Runtime(42),
		Settings: settings,
		Logger:   log.New(io.Discard),
		Recorder: rec,
	}
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "host_key"),
	}, env)
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}
	return srv
}

func TestSessionEndJournalsUnfinishedRound(t *testing.T) {
	rec := &roundLog{}
	srv := newTestSSHServer(t, rec)

	game, err := srv.env.NewGame()
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	srv.track("session-1", game)

	// Two ticks, then the connection drops without a quit key.
	m := NewModel(game, srv.env)
	m, _ = update(t, m, TickMsg{Gen: m.gen, Time: time.Now()})
	update(t, m, TickMsg{Gen: m.gen, Time: time.Now()})
	srv.finishSession("session-1")

	rounds := rec.Rounds()
	if len(rounds) != 1 {
		t.Fatalf("journaled %d rounds, expected 1", len(rounds))
	}
	if rounds[0].Reason != snake.EndQuit || rounds[0].Ticks != 2 {
		t.Errorf("round = reason %q ticks %d, expected quit after 2 ticks", rounds[0].Reason, rounds[0].Ticks)
	}

	srv.finishSession("session-1")
	if n := len(rec.Rounds()); n != 1 {
		t.Errorf("second finish journaled again: %d rounds", n)
	}
}

func TestSessionEndAfterQuitKeyReportsOnce(t *testing.T) {
	rec := &roundLog{}
	srv := newTestSSHServer(t, rec)

	game, err := srv.env.NewGame()
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	srv.track("session-2", game)

	m := NewModel(game, srv.env)
	m, _ = update(t, m, TickMsg{Gen: m.gen, Time: time.Now()})
	update(t, m, runes("q"))
	srv.finishSession("session-2")

	if n := len(rec.Rounds()); n != 1 {
		t.Errorf("journaled %d rounds, expected 1", n)
	}
}
