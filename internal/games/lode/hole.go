package lode

import (
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

// Hole is a dug brick that refills after HoleTicks beats. Whatever is inside
// when it refills is crushed.
type Hole struct {
	stage  *Stage
	pos    core.Point
	age    int
	closed bool
}

var _ engine.Ticker = (*Hole)(nil)

// Tick advances the hole by one beat. The stage lock must be held.
func (h *Hole) Tick() {
	if h.closed {
		return
	}
	h.age++
	if h.age < HoleTicks {
		return
	}

	s := h.stage
	s.tiles[h.pos.Y][h.pos.X] = TileBrick
	h.closed = true

	if s.hero != nil && s.hero.pos == h.pos {
		s.hero.crushed = true
	}
	for _, e := range s.enemies {
		if e.pos == h.pos {
			e.respawn()
		}
	}
}

// Remaining returns the beats left before the hole refills.
func (h *Hole) Remaining() int {
	return HoleTicks - h.age
}
