package engine

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Task is a periodic unit of work: a cadence and a callback.
type Task struct {
	Name  string
	Every time.Duration
	Run   func()
}

type entry struct {
	task  Task
	next  time.Time
	fired uint64
}

// Scheduler fires periodic tasks from a single goroutine.
//
// Tasks of one scheduler never run concurrently with each other. Each task
// starts at phase 0 and is re-armed with a fixed delay after it returns.
// Cancel removes every task; a task that already started is allowed to
// finish, no task starts afterwards.
type Scheduler struct {
	name   string
	logger *log.Logger

	mu        sync.Mutex
	entries   []*entry
	started   bool
	cancelled bool

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler creates an idle scheduler. Its goroutine starts with the
// first call to Schedule.
func NewScheduler(name string, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		name:   name,
		logger: logger,
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Name returns the scheduler name used in logs.
func (s *Scheduler) Name() string {
	return s.name
}

// Schedule registers tasks. Scheduling on a cancelled scheduler is a no-op.
func (s *Scheduler) Schedule(tasks ...Task) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	now := time.Now()
	for _, t := range tasks {
		if t.Every <= 0 || t.Run == nil {
			s.logger.Warn("ignoring invalid task", "scheduler", s.name, "task", t.Name)
			continue
		}
		s.entries = append(s.entries, &entry{task: t, next: now})
	}
	start := !s.started
	s.started = true
	s.mu.Unlock()

	if start {
		go s.loop()
		return
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Cancel stops the scheduler. It does not wait for an in-flight task, so it
// is safe to call from inside a task. Safe to call multiple times.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	started := s.started
	s.started = true
	s.mu.Unlock()

	s.stopOnce.Do(func() {
		close(s.stop)
		if !started {
			close(s.done)
		}
	})
}

// Cancelled reports whether Cancel has been called.
func (s *Scheduler) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Done returns a channel that closes once the scheduler goroutine has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Fired returns how many times the named task has run.
func (s *Scheduler) Fired(name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n uint64
	for _, e := range s.entries {
		if e.task.Name == name {
			n += e.fired
		}
	}
	return n
}

func (s *Scheduler) loop() {
	defer close(s.done)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		e, wait, ok := s.due()
		if !ok {
			return
		}
		if e != nil {
			s.fire(e)
			continue
		}

		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-timer.C:
			case <-s.wake:
			case <-s.stop:
				return
			}
			continue
		}

		// Nothing scheduled yet
		select {
		case <-s.wake:
		case <-s.stop:
			return
		}
	}
}

// due returns the task to fire now, or how long to wait for the next one.
// ok is false once the scheduler is cancelled.
func (s *Scheduler) due() (e *entry, wait time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return nil, 0, false
	}

	var next *entry
	for _, cand := range s.entries {
		if next == nil || cand.next.Before(next.next) {
			next = cand
		}
	}
	if next == nil {
		return nil, 0, true
	}

	if d := time.Until(next.next); d > 0 {
		return nil, d, true
	}
	return next, 0, true
}

func (s *Scheduler) fire(e *entry) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.run(e.task)

	s.mu.Lock()
	e.fired++
	e.next = time.Now().Add(e.task.Every)
	s.mu.Unlock()
}

func (s *Scheduler) run(t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panicked", "scheduler", s.name, "task", t.Name, "panic", r)
		}
	}()
	t.Run()
}
