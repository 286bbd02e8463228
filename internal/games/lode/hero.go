package lode

import (
	"sync/atomic"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

// Hero is the playable entity. Moves are requested from the input path and
// applied on the next hero beat, one per beat.
type Hero struct {
	stage *Stage

	pending atomic.Int32 // core.Action

	pos       core.Point
	facing    int // -1 left, +1 right
	collected int
	crushed   bool
}

var _ engine.Playable = (*Hero)(nil)

func newHero(s *Stage, p core.Point) *Hero {
	return &Hero{stage: s, pos: p, facing: 1}
}

// RequestMove queues a move for the next beat. Non-move actions are rejected.
func (h *Hero) RequestMove(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
		core.ActionFire, core.ActionContextA, core.ActionContextB:
		h.pending.Store(int32(a))
		return true
	default:
		return false
	}
}

// Tick advances the hero by one beat. The stage lock must be held.
func (h *Hero) Tick() engine.Outcome {
	s := h.stage

	if h.crushed || s.enemyAt(h.pos) != nil {
		return engine.OutcomeDied
	}

	a := core.Action(h.pending.Swap(int32(core.ActionNone)))

	if !s.supported(h.pos) {
		h.pos = h.pos.Add(0, 1)
	} else {
		h.apply(a)
	}

	if s.chests[h.pos] {
		delete(s.chests, h.pos)
		h.collected++
	}

	if s.enemyAt(h.pos) != nil {
		return engine.OutcomeDied
	}
	if h.collected >= s.total {
		return engine.OutcomeComplete
	}
	return engine.OutcomeOK
}

func (h *Hero) apply(a core.Action) {
	s := h.stage

	switch a {
	case core.ActionLeft, core.ActionRight:
		dx := -1
		if a == core.ActionRight {
			dx = 1
		}
		h.facing = dx
		if next := h.pos.Add(dx, 0); s.passable(next) {
			h.pos = next
		}

	case core.ActionUp:
		next := h.pos.Add(0, -1)
		if s.tile(h.pos) == TileLadder && s.passable(next) {
			h.pos = next
		}

	case core.ActionDown:
		next := h.pos.Add(0, 1)
		if !s.passable(next) {
			return
		}
		// Climb down a ladder, or let go of a rope.
		if s.tile(next) == TileLadder || s.tile(h.pos) == TileLadder || s.tile(h.pos) == TileRope {
			h.pos = next
		}

	case core.ActionContextA:
		s.dig(h.pos, -1)
	case core.ActionContextB:
		s.dig(h.pos, 1)
	case core.ActionFire:
		s.dig(h.pos, h.facing)
	}
}
