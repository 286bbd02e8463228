// Package engine is the concurrency and lifecycle core of the runtime: a frame
// scheduler that renders at a fixed cadence, cooperative event schedulers that
// fire simulation heartbeats, the pause/resume session state machine and the
// input dispatcher. Games plug in through small collaborator interfaces.
package engine

import "sync/atomic"

// Urgency is the highest-priority pending reason to redraw.
type Urgency int32

const (
	UrgencyNone  Urgency = iota // display is up to date
	UrgencyTimer                // a heartbeat changed something (minor)
	UrgencyKey                  // a key press changed something
	UrgencyAll                  // full redraw required
)

// String returns a human-readable name for the urgency.
func (u Urgency) String() string {
	switch u {
	case UrgencyNone:
		return "None"
	case UrgencyTimer:
		return "Timer"
	case UrgencyKey:
		return "Key"
	case UrgencyAll:
		return "All"
	default:
		return "Unknown"
	}
}

// Repaint is the one piece of state shared by every execution context.
// Writers upgrade it with Request; only the frame scheduler resets it, via Consume.
type Repaint struct {
	v atomic.Int32
}

// NewRepaint returns a cell that starts with a full repaint pending.
func NewRepaint() *Repaint {
	r := &Repaint{}
	r.v.Store(int32(UrgencyAll))
	return r
}

// Request upgrades the pending urgency. The write is a bitwise OR, so the
// value never goes down until the next Consume.
func (r *Repaint) Request(u Urgency) {
	r.v.Or(int32(u))
}

// Consume returns the pending urgency and resets it to UrgencyNone.
func (r *Repaint) Consume() Urgency {
	return Urgency(r.v.Swap(int32(UrgencyNone)))
}

// Pending returns the pending urgency without resetting it.
func (r *Repaint) Pending() Urgency {
	return Urgency(r.v.Load())
}
