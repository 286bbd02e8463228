package lode

import (
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

// Enemy chases the hero. It gets stuck in holes for a while and respawns
// where it started when a hole refills on it.
type Enemy struct {
	stage   *Stage
	spawn   core.Point
	pos     core.Point
	trapped int
}

var _ engine.Ticker = (*Enemy)(nil)

func newEnemy(s *Stage, p core.Point) *Enemy {
	return &Enemy{stage: s, spawn: p, pos: p}
}

// Tick advances the enemy by one beat. The stage lock must be held.
func (e *Enemy) Tick() {
	s := e.stage

	if e.trapped > 0 {
		e.trapped--
		if e.trapped == 0 {
			e.climbOut()
		}
		return
	}

	if !s.supported(e.pos) {
		below := e.pos.Add(0, 1)
		if s.enemyAt(below) != nil {
			return
		}
		e.pos = below
		if s.holeAt(e.pos) != nil {
			e.trapped = EnemyTrapTicks
		}
		return
	}

	if s.hero == nil {
		return
	}
	target := s.hero.pos

	switch {
	case target.Y < e.pos.Y && s.tile(e.pos) == TileLadder && e.free(e.pos.Add(0, -1)):
		e.pos = e.pos.Add(0, -1)
	case target.Y > e.pos.Y && e.canDescend():
		e.pos = e.pos.Add(0, 1)
	default:
		if dx := core.Sign(target.X - e.pos.X); dx != 0 && e.free(e.pos.Add(dx, 0)) {
			e.pos = e.pos.Add(dx, 0)
		}
	}
}

func (e *Enemy) canDescend() bool {
	s := e.stage
	next := e.pos.Add(0, 1)
	if !e.free(next) {
		return false
	}
	return s.tile(next) == TileLadder || s.tile(e.pos) == TileLadder
}

func (e *Enemy) free(p core.Point) bool {
	return e.stage.passable(p) && e.stage.enemyAt(p) == nil
}

func (e *Enemy) climbOut() {
	if up := e.pos.Add(0, -1); e.free(up) {
		e.pos = up
	}
}

func (e *Enemy) respawn() {
	e.pos = e.spawn
	e.trapped = 0
}
