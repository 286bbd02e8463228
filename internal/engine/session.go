package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	catrate "github.com/joeycumines/go-catrate"

	"github.com/vovakirdan/tui-lode/internal/core"
)

// Keep-awake defaults.
const (
	DefaultKeepAwakePeriod = time.Second
	DefaultKeepAwakeMax    = 16
)

// Game is everything the session needs from the game it drives.
type Game interface {
	World

	// Save persists the game state. Errors are logged, never fatal.
	Save() error

	// OnPause runs inside the pause transition, after the heartbeats
	// are cancelled and before the state is saved.
	OnPause()

	// OnResume runs inside the resume transition, before the heartbeats
	// are scheduled.
	OnResume()
}

// Waker keeps the display from sleeping.
type Waker interface {
	KeepAwake()
}

// NopWaker is a Waker that does nothing.
type NopWaker struct{}

// KeepAwake implements Waker.
func (NopWaker) KeepAwake() {}

// Options configures a Session. Zero values select the defaults.
type Options struct {
	FramePeriod     time.Duration
	KeepAwakePeriod time.Duration
	KeepAwakeMax    int
	Logger          *log.Logger
	Waker           Waker
}

func (o Options) withDefaults() Options {
	if o.FramePeriod <= 0 {
		o.FramePeriod = core.DefaultFramePeriod
	}
	if o.KeepAwakePeriod <= 0 {
		o.KeepAwakePeriod = DefaultKeepAwakePeriod
	}
	if o.KeepAwakeMax <= 0 {
		o.KeepAwakeMax = DefaultKeepAwakeMax
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Waker == nil {
		o.Waker = NopWaker{}
	}
	return o
}

// Session is the pause/resume state machine. It owns the lifecycles of the
// frame scheduler, the heartbeat scheduler and the keep-awake scheduler.
//
// All transitions are serialised by one mutex: the frame scheduler (on
// visibility loss), the heartbeats (on stage end) and the input path can
// all trigger them concurrently.
type Session struct {
	opts    Options
	logger  *log.Logger
	game    Game
	surface Surface
	repaint *Repaint
	limiter *catrate.Limiter

	mu     sync.Mutex
	paused atomic.Bool
	events *Scheduler
	awake  *Scheduler

	frame      atomic.Pointer[FrameScheduler]
	generation atomic.Uint64
}

// NewSession creates a paused session. Start must be called to begin rendering.
func NewSession(game Game, surface Surface, opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		opts:    opts,
		logger:  opts.Logger,
		game:    game,
		surface: surface,
		repaint: NewRepaint(),
		limiter: catrate.NewLimiter(map[time.Duration]int{
			time.Minute: 3,
			time.Hour:   20,
		}),
	}
	s.paused.Store(true)
	return s
}

// FramePeriod returns the frame scheduler cadence.
func (s *Session) FramePeriod() time.Duration {
	return s.opts.FramePeriod
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused.Load()
}

// RequestRepaint upgrades the pending repaint urgency.
func (s *Session) RequestRepaint(u Urgency) {
	s.repaint.Request(u)
}

// Repaint returns the shared repaint cell.
func (s *Session) Repaint() *Repaint {
	return s.repaint
}

// Generation returns how many heartbeat schedulers have been constructed.
func (s *Session) Generation() uint64 {
	return s.generation.Load()
}

// Frame returns the active frame scheduler, nil when stopped.
func (s *Session) Frame() *FrameScheduler {
	return s.frame.Load()
}

// Events returns the active heartbeat scheduler, nil while paused.
func (s *Session) Events() *Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// Awake returns the active keep-awake scheduler, nil once it gave up.
func (s *Session) Awake() *Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awake
}

// Start launches the frame scheduler, then pauses so the first frame is
// rendered before gameplay begins.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := newFrameScheduler(s)
	if old := s.frame.Swap(f); old != nil {
		old.wakeUp()
	}
	go f.run()

	s.ensureKeepAwake()
	s.pauseLocked()
	s.logger.Debug("session started", "frame", s.opts.FramePeriod)
}

// Pause cancels the heartbeats and persists the game. Calling it while
// already paused is harmless.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauseLocked()
}

// Resume schedules a fresh set of heartbeats.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeLocked()
}

// Stop pauses, saves and retires the frame scheduler.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pauseLocked()
	s.save("stop")

	if f := s.frame.Swap(nil); f != nil {
		f.wakeUp()
	}
	if s.awake != nil {
		s.awake.Cancel()
		s.awake = nil
	}
	s.logger.Debug("session stopped")
}

// Hidden is called when the surface is no longer visible.
func (s *Session) Hidden() {
	s.logger.Debug("surface hidden, pausing")
	s.Pause()
}

func (s *Session) pauseLocked() {
	s.repaint.Request(UrgencyAll)
	s.paused.Store(true)
	if s.events != nil {
		s.events.Cancel()
		s.events = nil
	}
	s.game.OnPause()
	s.save("pause")
}

func (s *Session) resumeLocked() {
	s.paused.Store(false)
	s.game.OnResume()
	s.repaint.Request(UrgencyAll)

	if s.events != nil {
		s.events.Cancel()
	}
	s.events = NewScheduler("heartbeats", s.logger)
	s.events.Schedule(Heartbeats(s.game, s.opts.FramePeriod, s.repaint)...)
	s.generation.Add(1)

	s.ensureKeepAwake()
}

func (s *Session) save(reason string) {
	if err := s.game.Save(); err != nil {
		if _, ok := s.limiter.Allow(reason); ok {
			s.logger.Error("could not save game", "reason", reason, "error", err)
		}
	}
}

// ensureKeepAwake must be called with s.mu held.
func (s *Session) ensureKeepAwake() {
	if s.awake != nil {
		return
	}

	sch := NewScheduler("keep-awake", s.logger)
	flashes := 0
	sch.Schedule(Task{
		Name:  "keep-awake",
		Every: s.opts.KeepAwakePeriod,
		Run: func() {
			s.opts.Waker.KeepAwake()
			if !s.Paused() {
				flashes = 0
				return
			}
			flashes++
			if flashes > s.opts.KeepAwakeMax {
				s.dropKeepAwake(sch)
			}
		},
	})
	s.awake = sch
}

// dropKeepAwake retires sch unless a resume slipped in since the last flash.
func (s *Session) dropKeepAwake(sch *Scheduler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused.Load() {
		return
	}
	sch.Cancel()
	if s.awake == sch {
		s.awake = nil
	}
}
