// Package lode is a small Lode Runner: collect every chest, dig holes to trap
// the enemies, and do not get caught.
package lode

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
	"github.com/vovakirdan/tui-lode/internal/progress"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

// Game wires the stage, the progression controller and the pause menu.
type Game struct {
	logger *log.Logger
	exit   func()

	pack    *Pack
	stage   *Stage
	ctrl    *progress.Controller
	session *engine.Session
}

var (
	_ registry.Game    = (*Game)(nil)
	_ engine.PauseMenu = (*Game)(nil)
)

func init() {
	registry.Register("lode", func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}

// New creates a game playing the embedded stage pack.
func New(deps registry.Deps) *Game {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	pack, err := DefaultPack()
	if err != nil {
		logger.Warn("some stages could not be loaded", "error", err)
	}
	return NewWithPack(deps, pack)
}

// NewWithPack creates a game playing the given pack.
func NewWithPack(deps registry.Deps, pack *Pack) *Game {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	exit := deps.Exit
	if exit == nil {
		exit = func() {}
	}

	g := &Game{
		logger: logger,
		exit:   exit,
		pack:   pack,
		stage:  NewStage(),
	}
	g.ctrl = progress.NewController(progress.Options{
		Slot:    deps.Slot,
		Store:   deps.Store,
		Loader:  g,
		Journal: deps.Journal,
		Logger:  logger,
	})
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "lode"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Lode Runner"
}

// Attach binds the game to its session.
func (g *Game) Attach(s *engine.Session) {
	g.session = s
	g.ctrl.Attach(s)
}

// Load restores the saved game and loads its stage.
func (g *Game) Load() {
	g.ctrl.Load()
}

// Progress returns the progression controller.
func (g *Game) Progress() *progress.Controller {
	return g.ctrl
}

// Stage returns the running world.
func (g *Game) Stage() *Stage {
	return g.stage
}

// LoadStage loads the stage of a level index. Without a definition the
// stage is left unloaded.
func (g *Game) LoadStage(level int) error {
	def, ok := g.pack.For(level)
	if !ok {
		g.stage.Unload()
		return ErrNoStage
	}
	g.stage.Load(level, def)
	return nil
}

// TickHero implements engine.World.
func (g *Game) TickHero() engine.Outcome {
	return g.stage.TickHero()
}

// TickActors implements engine.World.
func (g *Game) TickActors() {
	g.stage.TickActors()
}

// TickEffects implements engine.World.
func (g *Game) TickEffects() {
	g.stage.TickEffects()
}

// StageOver implements engine.World.
func (g *Game) StageOver(completed bool) {
	g.ctrl.StageOver(completed)
}

// Save implements engine.Game.
func (g *Game) Save() error {
	return g.ctrl.Save()
}

// OnPause implements engine.Game.
func (g *Game) OnPause() {
	g.ctrl.OnPause()
}

// OnResume implements engine.Game.
func (g *Game) OnResume() {
	g.ctrl.ClearMessage()
}

// Act implements engine.Controls.
func (g *Game) Act(a core.Action) bool {
	return g.stage.Act(a)
}

// PausedKey implements engine.PauseMenu.
func (g *Game) PausedKey(k engine.Key) bool {
	// Digits always feed the level number, even when they are bound to Fire.
	if d, ok := k.Code.Digit(); ok {
		g.ctrl.EnterDigit(d)
		return true
	}

	switch {
	case k.Action == core.ActionFire:
		g.ctrl.Replay()
		g.session.Resume()
	case k.Soft == core.ActionContextA:
		g.ctrl.NextUnsolved()
	case k.Soft == core.ActionContextB:
		g.ctrl.StageOver(false)
	case k.Action == core.ActionClear:
		if err := g.ctrl.ClearSolved(); err != nil {
			g.logger.Warn("could not clear solved levels", "error", err)
		}
	case k.Action == core.ActionExit:
		g.exit()
	default:
		return false
	}
	return true
}
