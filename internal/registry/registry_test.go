package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

type fakeFrontend struct {
	id  string
	ran bool
}

func (f *fakeFrontend) ID() string    { return f.id }
func (f *fakeFrontend) Title() string { return "Fake " + f.id }
func (f *fakeFrontend) Run(ctx context.Context, env Env) error {
	f.ran = true
	return nil
}

type roundLog []snake.Round

func (l *roundLog) RecordRound(r snake.Round) { *l = append(*l, r) }

func TestRegisterAndGet(t *testing.T) {
	Register(&fakeFrontend{id: "fake-b"})
	Register(&fakeFrontend{id: "fake-a"})

	if !Exists("fake-a") {
		t.Fatal("fake-a should be registered")
	}
	f, err := Get("fake-a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if f.Title() != "Fake fake-a" {
		t.Errorf("Title() = %q", f.Title())
	}

	if _, err := Get("missing"); err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("Get(missing) error = %v", err)
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "fake-") {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "fake-a" || ids[1] != "fake-b" {
		t.Errorf("List() ids = %v, expected sorted [fake-a fake-b]", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(&fakeFrontend{id: "fake-dup"})

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate id should panic")
		}
	}()
	Register(&fakeFrontend{id: "fake-dup"})
}

func TestEnvNewGame(t *testing.T) {
	var rounds roundLog
	env := Env{Runtime: core.DefaultConfig(), Recorder: &rounds}

	g, err := env.NewGame()
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	g.Tick()
	g.Finish()

	if len(rounds) != 1 || rounds[0].Reason != snake.EndQuit {
		t.Errorf("recorded rounds = %+v, expected one quit round", rounds)
	}
	if rounds[0].Length != snake.InitialLength && rounds[0].Length != snake.InitialLength+1 {
		t.Errorf("recorded length = %d", rounds[0].Length)
	}
}

func TestEnvNewGameInvalidGrid(t *testing.T) {
	rc := core.DefaultConfig()
	rc.CellSize = 0

	if _, err := (Env{Runtime: rc}).NewGame(); err == nil {
		t.Error("NewGame with a zero cell size should fail")
	}
}

func TestEnvOptionalCollaborators(t *testing.T) {
	var env Env
	env.PlayCue(snake.OutcomeAte) // Must not panic without cues
	env.Log().Info("discarded")
}
