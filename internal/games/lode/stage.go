package lode

import (
	"errors"
	"sync"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

// Tile is one static cell of a stage.
type Tile byte

const (
	TileEmpty Tile = iota
	TileBrick
	TileSolid
	TileLadder
	TileRope
)

// Timings, in heartbeats of the owning task.
const (
	HoleTicks      = 40 // effects beats before a hole refills
	EnemyTrapTicks = 12 // actor beats an enemy stays in a hole
)

// ErrNoStage is returned when a level has no stage definition.
var ErrNoStage = errors.New("lode: no stage for level")

// Stage is the running world: grid, hero, enemies and holes.
// The heartbeats mutate it under the write lock, the painter reads it under
// the read lock.
type Stage struct {
	mu sync.RWMutex

	loaded bool
	level  int
	name   string

	w, h   int
	tiles  [][]Tile
	chests map[core.Point]bool
	total  int

	hero    *Hero
	enemies []*Enemy
	holes   []*Hole
}

// NewStage returns an unloaded stage.
func NewStage() *Stage {
	return &Stage{}
}

// Load replaces the world with a fresh copy of def.
func (s *Stage) Load(level int, def StageDef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = level
	s.name = def.Name
	s.w, s.h = def.Width(), def.Height()
	s.tiles = make([][]Tile, s.h)
	s.chests = make(map[core.Point]bool)
	s.total = 0
	s.hero = nil
	s.enemies = nil
	s.holes = nil

	for y, row := range def.Layout {
		s.tiles[y] = make([]Tile, s.w)
		for x, r := range []rune(row) {
			p := core.Point{X: x, Y: y}
			switch r {
			case runeBrick:
				s.tiles[y][x] = TileBrick
			case runeSolid:
				s.tiles[y][x] = TileSolid
			case runeLadder:
				s.tiles[y][x] = TileLadder
			case runeRope:
				s.tiles[y][x] = TileRope
			case runeChest:
				s.chests[p] = true
				s.total++
			case runeHero:
				s.hero = newHero(s, p)
			case runeEnemy:
				s.enemies = append(s.enemies, newEnemy(s, p))
			}
		}
	}
	s.loaded = true
}

// Unload drops the world; the painter falls back to text.
func (s *Stage) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.hero = nil
	s.enemies = nil
	s.holes = nil
}

// Loaded reports whether a stage is loaded.
func (s *Stage) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Act forwards an action to the hero. It returns false when no hero is
// loaded or the action is not a move.
func (s *Stage) Act(a core.Action) bool {
	s.mu.RLock()
	hero := s.hero
	s.mu.RUnlock()

	if hero == nil {
		return false
	}
	return hero.RequestMove(a)
}

// TickHero advances the hero.
func (s *Stage) TickHero() engine.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded || s.hero == nil {
		return engine.OutcomeOK
	}
	return s.hero.Tick()
}

// TickActors advances every enemy.
func (s *Stage) TickActors() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.enemies {
		e.Tick()
	}
}

// TickEffects advances every hole and drops the refilled ones.
func (s *Stage) TickEffects() {
	s.mu.Lock()
	defer s.mu.Unlock()

	open := s.holes[:0]
	for _, h := range s.holes {
		h.Tick()
		if !h.closed {
			open = append(open, h)
		}
	}
	s.holes = open
}

// The helpers below expect s.mu to be held.

func (s *Stage) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < s.w && p.Y >= 0 && p.Y < s.h
}

func (s *Stage) tile(p core.Point) Tile {
	if !s.inBounds(p) {
		return TileSolid
	}
	return s.tiles[p.Y][p.X]
}

// passable reports whether a body can occupy p.
func (s *Stage) passable(p core.Point) bool {
	t := s.tile(p)
	return t != TileBrick && t != TileSolid
}

// supported reports whether a body at p does not fall.
func (s *Stage) supported(p core.Point) bool {
	if t := s.tile(p); t == TileLadder || t == TileRope {
		return true
	}
	below := p.Add(0, 1)
	if below.Y >= s.h {
		return true
	}
	switch s.tile(below) {
	case TileBrick, TileSolid, TileLadder:
		return true
	}
	// Bodies stand on enemies, trapped or not.
	return s.enemyAt(below) != nil
}

func (s *Stage) enemyAt(p core.Point) *Enemy {
	for _, e := range s.enemies {
		if e.pos == p {
			return e
		}
	}
	return nil
}

func (s *Stage) holeAt(p core.Point) *Hole {
	for _, h := range s.holes {
		if h.pos == p && !h.closed {
			return h
		}
	}
	return nil
}

// dig opens a hole in the brick below and beside from.
func (s *Stage) dig(from core.Point, dx int) bool {
	side := from.Add(dx, 0)
	target := from.Add(dx, 1)
	if s.tile(target) != TileBrick {
		return false
	}
	if !s.passable(side) || s.tile(side) == TileLadder || s.enemyAt(side) != nil {
		return false
	}
	s.tiles[target.Y][target.X] = TileEmpty
	s.holes = append(s.holes, &Hole{stage: s, pos: target})
	return true
}

// Info is the stage summary shown on the pause overlay.
type Info struct {
	Loaded    bool
	Name      string
	Collected int
	Chests    int
	Enemies   int
}

// Info returns the current stage summary.
func (s *Stage) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := Info{Loaded: s.loaded, Name: s.name, Chests: s.total, Enemies: len(s.enemies)}
	if s.hero != nil {
		info.Collected = s.hero.collected
	}
	return info
}
