package engine

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// FrameScheduler renders at a fixed cadence, independently of the
// simulation. It lives for as long as its session considers it the active
// loop; Session.Stop swaps it out and the loop exits on its next check.
type FrameScheduler struct {
	session *Session
	surface Surface
	repaint *Repaint
	period  time.Duration

	hasBeenShown bool
	frames       atomic.Uint64

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

func newFrameScheduler(s *Session) *FrameScheduler {
	return &FrameScheduler{
		session: s,
		surface: s.surface,
		repaint: s.repaint,
		period:  s.opts.FramePeriod,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Frames returns how many frames have been rendered.
func (f *FrameScheduler) Frames() uint64 {
	return f.frames.Load()
}

// Done returns a channel that closes when the loop has exited.
func (f *FrameScheduler) Done() <-chan struct{} {
	return f.done
}

func (f *FrameScheduler) wakeUp() {
	f.quitOnce.Do(func() { close(f.quit) })
}

func (f *FrameScheduler) run() {
	defer close(f.done)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for f.session.frame.Load() == f {
		start := time.Now()

		visible := f.surface.Visible()
		if !f.session.Paused() {
			if visible {
				f.hasBeenShown = true
			} else if f.hasBeenShown {
				f.session.Hidden()
			}
		}

		if visible && f.repaint.Consume() != UrgencyNone {
			f.surface.Render()
			f.frames.Add(1)
		}

		elapsed := time.Since(start)
		if elapsed >= f.period {
			runtime.Gosched()
			continue
		}

		timer.Reset(f.period - elapsed)
		select {
		case <-timer.C:
		case <-f.quit:
		}
	}
}
