package engine

import (
	"time"

	"github.com/vovakirdan/tui-lode/internal/core"
)

// Outcome is the result of one tick of the playable entity.
type Outcome int

const (
	OutcomeOK       Outcome = iota // nothing special happened
	OutcomeComplete                // the stage is complete
	OutcomeDied                    // the playable entity died
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeComplete:
		return "Complete"
	case OutcomeDied:
		return "Died"
	default:
		return "Unknown"
	}
}

// Playable is the entity the player controls.
type Playable interface {
	// RequestMove queues a move for the next tick. It never blocks and
	// returns false when the request is rejected.
	RequestMove(a core.Action) bool

	// Tick advances the entity by one heartbeat.
	Tick() Outcome
}

// Ticker is a secondary actor or a transient environment effect.
type Ticker interface {
	Tick()
}

// World is the simulation the heartbeats drive. Implementations do their own
// locking: heartbeats run concurrently with rendering.
type World interface {
	// TickHero advances the playable entity, OutcomeOK when none is loaded.
	TickHero() Outcome

	// TickActors advances every secondary actor.
	TickActors()

	// TickEffects advances every environment effect.
	TickEffects()

	// StageOver reports the end of the stage.
	StageOver(completed bool)
}

// Heartbeat task names.
const (
	TaskHero    = "hero"
	TaskActors  = "actors"
	TaskEffects = "effects"
)

// Heartbeats returns the three simulation tasks scheduled on every resume.
// The hero beats once per frame, actors and effects every other frame; each
// beat asks for a timer-priority repaint.
func Heartbeats(w World, period time.Duration, repaint *Repaint) []Task {
	return []Task{
		{
			Name:  TaskHero,
			Every: period,
			Run: func() {
				switch w.TickHero() {
				case OutcomeComplete:
					w.StageOver(true)
				case OutcomeDied:
					w.StageOver(false)
				}
				repaint.Request(UrgencyTimer)
			},
		},
		{
			Name:  TaskActors,
			Every: 2 * period,
			Run: func() {
				w.TickActors()
				repaint.Request(UrgencyTimer)
			},
		},
		{
			Name:  TaskEffects,
			Every: 2 * period,
			Run: func() {
				w.TickEffects()
				repaint.Request(UrgencyTimer)
			},
		},
	}
}
