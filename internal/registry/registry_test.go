package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

type stubGame struct {
	deps Deps
}

func (stubGame) TickHero() engine.Outcome { return engine.OutcomeOK }
func (stubGame) TickActors() {}
func (stubGame) TickEffects() {}
func (stubGame) StageOver(bool) {}
func (stubGame) Save() error { return nil }
func (stubGame) OnPause() {}
func (stubGame) OnResume() {}
func (stubGame) Act(core.Action) bool { return false }
func (stubGame) ID() string { return "stub" }
func (stubGame) Title() string { return "Stub Game" }
func (stubGame) Attach(*engine.Session) {}
func (stubGame) Load() {}
func (stubGame) Render(*core.Screen) {}

func TestRegisterCreate(t *testing.T) {
	Register("stub-create", func(d Deps) Game { return stubGame{deps: d} })

	if !Exists("stub-create") {
		t.Fatal("Expected stub-create to be registered")
	}

	g, err := Create("stub-create", Deps{Slot: "s1"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.(stubGame).deps.Slot != "s1" {
		t.Error("Create should pass the deps to the factory")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub-create" {
			found = true
			if info.Title != "Stub Game" {
				t.Errorf("Expected title Stub Game, got %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() should include stub-create")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-game", Deps{})
	if err == nil || !strings.Contains(err.Error(), "unknown game") {
		t.Errorf("Expected unknown game error, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func(Deps) Game { return stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic on duplicate registration")
		}
	}()
	Register("stub-dup", func(Deps) Game { return stubGame{} })
}
