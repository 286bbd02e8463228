package lode

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

func newTestStage(t *testing.T, rows ...string) *Stage {
	t.Helper()
	def := StageDef{ID: "test", Name: "Test", Layout: rows}
	if err := def.validate(); err != nil {
		t.Fatalf("invalid test layout: %v", err)
	}
	s := NewStage()
	s.Load(0, def)
	return s
}

func step(t *testing.T, s *Stage, a core.Action) engine.Outcome {
	t.Helper()
	if a != core.ActionNone && !s.Act(a) {
		t.Fatalf("Act(%v) rejected", a)
	}
	return s.TickHero()
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"valid", "id: a\nlayout:\n  - \"& $\"\n  - \"###\"\n", ""},
		{"no id", "layout:\n  - \"& $\"\n", "no id"},
		{"empty layout", "id: a\n", "empty layout"},
		{"no hero", "id: a\nlayout:\n  - \"  $\"\n", "one hero"},
		{"two heroes", "id: a\nlayout:\n  - \"&&$\"\n", "one hero"},
		{"no chest", "id: a\nlayout:\n  - \"&  \"\n", "no chests"},
		{"bad tile", "id: a\nlayout:\n  - \"&x$\"\n", "unknown tile"},
		{"bad yaml", "id: [", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStage([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ParseStage() failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultPack(t *testing.T) {
	pack, err := DefaultPack()
	if err != nil {
		t.Fatalf("DefaultPack() failed: %v", err)
	}
	if pack.Len() < 2 {
		t.Fatalf("Expected several stages, got %d", pack.Len())
	}

	first, _ := pack.For(0)
	again, ok := pack.For(pack.Len())
	if !ok || again.ID != first.ID {
		t.Errorf("levels should wrap around the pack: %q vs %q", first.ID, again.ID)
	}
	if _, ok := pack.For(-1); ok {
		t.Error("negative levels have no stage")
	}
}

func TestLoadPackSkipsInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"lv/b.yaml":    {Data: []byte("id: b\nlayout:\n  - \"&$\"\n")},
		"lv/a.yaml":    {Data: []byte("id: a\nlayout:\n  - \"$&\"\n")},
		"lv/bad.yaml":  {Data: []byte("id: bad\nlayout:\n  - \"$\"\n")},
		"lv/notes.txt": {Data: []byte("ignored")},
	}

	pack, err := LoadPack(fsys, "lv")
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("Expected an error naming bad.yaml, got %v", err)
	}
	if pack.Len() != 2 {
		t.Fatalf("Expected 2 valid stages, got %d", pack.Len())
	}
	if def, _ := pack.For(0); def.ID != "a" {
		t.Errorf("Expected stages sorted by id, first is %q", def.ID)
	}
}

func TestEmptyPackHasNoStage(t *testing.T) {
	if _, ok := NewPack().For(0); ok {
		t.Error("an empty pack has no stage")
	}
	var p *Pack
	if p.Len() != 0 {
		t.Error("a nil pack is empty")
	}
}

func TestHeroCollectsChests(t *testing.T) {
	s := newTestStage(t,
		"&  $  ",
		"######",
	)

	for i, want := range []engine.Outcome{engine.OutcomeOK, engine.OutcomeOK, engine.OutcomeComplete} {
		if got := step(t, s, core.ActionRight); got != want {
			t.Fatalf("step %d: Expected %v, got %v", i, want, got)
		}
	}
	if info := s.Info(); info.Collected != 1 || info.Chests != 1 {
		t.Errorf("Expected 1/1 chests, got %d/%d", info.Collected, info.Chests)
	}
}

func TestHeroBlockedByWalls(t *testing.T) {
	s := newTestStage(t,
		"&=$",
		"###",
	)
	step(t, s, core.ActionRight)
	step(t, s, core.ActionLeft)
	if s.hero.pos != (core.Point{X: 0, Y: 0}) {
		t.Errorf("hero walked through a wall: %v", s.hero.pos)
	}
}

func TestHeroFalls(t *testing.T) {
	s := newTestStage(t,
		"&  $",
		"    ",
		"####",
	)

	step(t, s, core.ActionRight)
	if s.hero.pos != (core.Point{X: 0, Y: 1}) {
		t.Errorf("Expected the hero to fall instead of moving, got %v", s.hero.pos)
	}
}

func TestHeroClimbs(t *testing.T) {
	s := newTestStage(t,
		" $ ",
		" H ",
		"&H ",
		"###",
	)

	step(t, s, core.ActionUp) // not on a ladder
	if s.hero.pos != (core.Point{X: 0, Y: 2}) {
		t.Fatalf("hero climbed without a ladder: %v", s.hero.pos)
	}
	step(t, s, core.ActionRight)
	step(t, s, core.ActionUp)
	if got := step(t, s, core.ActionUp); got != engine.OutcomeComplete {
		t.Errorf("Expected to reach the chest at the top, got %v at %v", got, s.hero.pos)
	}
}

func TestHeroRopeAndDrop(t *testing.T) {
	s := newTestStage(t,
		"&--  ",
		"    $",
		"#####",
	)
	// The hero rune leaves its cell empty; put the hero on the rope.
	s.hero.pos = core.Point{X: 1, Y: 0}

	step(t, s, core.ActionRight)
	if s.hero.pos != (core.Point{X: 2, Y: 0}) {
		t.Fatalf("Expected to hang on the rope, got %v", s.hero.pos)
	}
	step(t, s, core.ActionDown)
	if s.hero.pos != (core.Point{X: 2, Y: 1}) {
		t.Errorf("Expected to let go of the rope, got %v", s.hero.pos)
	}
}

func TestDigAndCrush(t *testing.T) {
	s := newTestStage(t,
		" &  $",
		"#####",
		"=====",
	)

	step(t, s, core.ActionContextA)
	if len(s.holes) != 1 || s.holes[0].pos != (core.Point{X: 0, Y: 1}) {
		t.Fatalf("Expected a hole at 0,1, got %v", s.holes)
	}

	step(t, s, core.ActionLeft)
	step(t, s, core.ActionNone) // falls in
	if s.hero.pos != (core.Point{X: 0, Y: 1}) {
		t.Fatalf("Expected the hero in the hole, got %v", s.hero.pos)
	}

	for i := 0; i < HoleTicks; i++ {
		s.TickEffects()
	}
	if len(s.holes) != 0 {
		t.Errorf("Expected the hole to refill")
	}
	if got := s.TickHero(); got != engine.OutcomeDied {
		t.Errorf("Expected the hero to be crushed, got %v", got)
	}
}

func TestHoleDrawnClosing(t *testing.T) {
	s := newTestStage(t,
		" &  $",
		"#####",
	)
	step(t, s, core.ActionContextA)

	glyphAt := func() rune {
		screen := core.NewScreen(5, 2)
		s.draw(screen, 0, 1)
		return screen.GetCell(0, 1).Rune
	}

	if got := glyphAt(); got != glyphHole {
		t.Errorf("Expected a fresh hole drawn as %q, got %q", glyphHole, got)
	}
	for i := 0; i < HoleTicks-refillWarnTicks; i++ {
		s.TickEffects()
	}
	if got := s.holes[0].Remaining(); got != refillWarnTicks {
		t.Fatalf("Expected %d beats left, got %d", refillWarnTicks, got)
	}
	if got := glyphAt(); got != glyphRefill {
		t.Errorf("Expected a closing hole drawn as %q, got %q", glyphRefill, got)
	}
}

func TestFireDigsFacingSide(t *testing.T) {
	s := newTestStage(t,
		" &  $",
		"#####",
	)
	step(t, s, core.ActionRight)
	step(t, s, core.ActionFire)
	if len(s.holes) != 1 || s.holes[0].pos != (core.Point{X: 3, Y: 1}) {
		t.Fatalf("Expected a hole at 3,1, got %v", s.holes)
	}
}

func TestDigNeedsBrick(t *testing.T) {
	s := newTestStage(t,
		" & $",
		"=###",
	)
	step(t, s, core.ActionContextA)
	if len(s.holes) != 0 {
		t.Error("solid ground cannot be dug")
	}
}

func TestEnemyCatchesHero(t *testing.T) {
	s := newTestStage(t,
		"&  0$",
		"#####",
	)

	for i := 0; i < 3; i++ {
		s.TickActors()
	}
	if got := s.TickHero(); got != engine.OutcomeDied {
		t.Errorf("Expected the hero to be caught, got %v", got)
	}
}

func TestEnemyTrappedAndRespawned(t *testing.T) {
	s := newTestStage(t,
		"0  &  $",
		"#######",
		"=======",
	)

	step(t, s, core.ActionContextA) // hole at 2,1
	s.TickActors()                  // 1,0
	s.TickActors()                  // 2,0
	s.TickActors()                  // falls in

	e := s.enemies[0]
	if e.pos != (core.Point{X: 2, Y: 1}) || e.trapped != EnemyTrapTicks {
		t.Fatalf("Expected a trapped enemy at 2,1, got %v trapped=%d", e.pos, e.trapped)
	}

	for i := 0; i < HoleTicks; i++ {
		s.TickEffects()
	}
	if e.pos != e.spawn {
		t.Errorf("Expected the enemy to respawn at %v, got %v", e.spawn, e.pos)
	}
}

func TestEnemyClimbsOut(t *testing.T) {
	s := newTestStage(t,
		"0  &  $",
		"#######",
		"=======",
	)
	step(t, s, core.ActionContextA)
	for i := 0; i < 3; i++ {
		s.TickActors()
	}
	for i := 0; i < EnemyTrapTicks; i++ {
		s.TickActors()
	}
	if e := s.enemies[0]; e.pos != (core.Point{X: 2, Y: 0}) {
		t.Errorf("Expected the enemy to climb out to 2,0, got %v", e.pos)
	}
}

func TestUnloadedStage(t *testing.T) {
	s := NewStage()
	if s.Act(core.ActionLeft) {
		t.Error("no hero, the move should be rejected")
	}
	if got := s.TickHero(); got != engine.OutcomeOK {
		t.Errorf("Expected OK without a hero, got %v", got)
	}
	s.TickActors()
	s.TickEffects()
}

func TestHeroRejectsNonMoves(t *testing.T) {
	s := newTestStage(t, "&$")
	for _, a := range []core.Action{core.ActionMenu, core.ActionClear, core.ActionExit, core.ActionNone} {
		if s.Act(a) {
			t.Errorf("Act(%v) should be rejected", a)
		}
	}
}
