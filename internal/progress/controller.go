package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lode/internal/engine"
)

// Session is the part of the session state machine the controller drives.
type Session interface {
	Paused() bool
	Pause()
	RequestRepaint(u engine.Urgency)
}

// StageLoader loads the stage of a level index.
type StageLoader interface {
	LoadStage(level int) error
}

// SlotStore stores records under named slots. A missing slot is reported
// with an error wrapping fs.ErrNotExist.
type SlotStore interface {
	LoadSlot(name string) ([]byte, error)
	SaveSlot(name string, record []byte) error
}

// Journal keeps a history of stage outcomes.
type Journal interface {
	RecordOutcome(slot string, level int, completed bool, lives int) error
}

// Options configures a Controller.
type Options struct {
	Slot    string
	Store   SlotStore
	Loader  StageLoader
	Journal Journal // optional
	Logger  *log.Logger
}

// View is a copy of what the pause overlay shows.
type View struct {
	Level   int
	Lives   int
	Chapter int
	Message string
	Done    bool
	Entry   int
	Solved  int
}

// Controller owns the GameSession, the pause message and the level-number
// accumulator of the pause menu.
type Controller struct {
	slot    string
	store   SlotStore
	loader  StageLoader
	journal Journal
	logger  *log.Logger

	session Session

	mu      sync.Mutex
	rec     GameSession
	message string
	entry   int
}

// NewController creates a controller holding a fresh GameSession. Call Load
// to restore the persisted one and Attach before any stage outcome.
func NewController(opts Options) *Controller {
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Controller{
		slot:    opts.Slot,
		store:   opts.Store,
		loader:  opts.Loader,
		journal: opts.Journal,
		logger:  opts.Logger,
		rec:     NewGameSession(),
	}
}

// Attach binds the controller to its session.
func (c *Controller) Attach(s Session) {
	c.session = s
}

// Slot returns the slot name.
func (c *Controller) Slot() string {
	return c.slot
}

// Load restores the persisted record and loads its stage. A missing or
// unreadable record leaves a fresh game.
func (c *Controller) Load() {
	rec := NewGameSession()

	data, err := c.store.LoadSlot(c.slot)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.logger.Debug("no saved game, starting fresh", "slot", c.slot)
	case err != nil:
		c.logger.Warn("could not read saved game", "slot", c.slot, "error", err)
	default:
		if rec, err = Decode(data); err != nil {
			c.logger.Warn("discarding saved game", "slot", c.slot, "error", err)
		}
	}

	c.mu.Lock()
	c.rec = rec
	level := rec.Level
	c.mu.Unlock()

	c.loadStage(level)
}

// Save encodes the whole record and commits it in one store call.
func (c *Controller) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.SaveSlot(c.slot, Encode(c.rec)); err != nil {
		return fmt.Errorf("progress: save slot %q: %w", c.slot, err)
	}
	return nil
}

// Record returns a copy of the current GameSession.
func (c *Controller) Record() GameSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec
}

// Snapshot returns what the pause overlay needs.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Level:   c.rec.Level,
		Lives:   c.rec.Lives,
		Chapter: c.rec.Chapter(),
		Message: c.message,
		Done:    c.rec.Flags[c.rec.Level] == StatusDone,
		Entry:   c.entry,
		Solved:  c.rec.Solved(),
	}
}

// StageOver applies the outcome of the stage being played. When the
// session is running, the level's flag is marked and the session paused
// before anything else changes.
func (c *Controller) StageOver(completed bool) {
	if !c.session.Paused() {
		c.mu.Lock()
		if completed {
			c.rec.Flags[c.rec.Level] = StatusDone
		} else {
			c.rec.Flags[c.rec.Level] = StatusNotDone
		}
		c.mu.Unlock()

		c.session.Pause()
	}

	c.mu.Lock()
	played := c.rec.Level
	if completed {
		c.rec.Level = (c.rec.Level + 1) % MaxLevels
		if c.rec.Level%LevelsPerChapter == 0 {
			c.message = ""
		} else {
			c.message = MsgCongratulations
		}
	} else {
		c.rec.Lives--
		if c.rec.Lives < 0 {
			c.rec.Lives = MaxLives
			c.rec.Level = 0
			c.message = MsgGameOver
		} else {
			c.message = MsgTryAgain
		}
	}
	c.entry = c.rec.Level + 1
	level, lives := c.rec.Level, c.rec.Lives
	c.mu.Unlock()

	c.logger.Info("stage over", "level", played+1, "completed", completed, "lives", lives)

	c.loadStage(level)
	c.session.RequestRepaint(engine.UrgencyAll)
	c.journalOutcome(played, completed, lives)

	if err := c.Save(); err != nil {
		c.logger.Warn("could not save after stage over", "error", err)
	}
}

// NextUnsolved jumps to the first NotDone level after the current one,
// wrapping around and ending on the current level.
func (c *Controller) NextUnsolved() {
	c.mu.Lock()
	target := -1
	for i := 1; i <= MaxLevels; i++ {
		l := (c.rec.Level + i) % MaxLevels
		if c.rec.Flags[l] == StatusNotDone {
			target = l
			break
		}
	}
	if target < 0 {
		c.message = MsgAllDone
		c.mu.Unlock()
		c.session.RequestRepaint(engine.UrgencyAll)
		return
	}
	c.rec.Level = target
	c.message = ""
	c.entry = target + 1
	c.mu.Unlock()

	c.loadStage(target)
	c.session.RequestRepaint(engine.UrgencyAll)
}

// ClearSolved marks every level NotDone and persists immediately.
func (c *Controller) ClearSolved() error {
	c.mu.Lock()
	for i := range c.rec.Flags {
		c.rec.Flags[i] = StatusNotDone
	}
	c.mu.Unlock()

	c.session.RequestRepaint(engine.UrgencyAll)
	return c.Save()
}

// EnterDigit feeds one digit to the level-number accumulator. Every digit
// that yields a valid level number loads that level at once.
func (c *Controller) EnterDigit(d int) {
	c.mu.Lock()
	c.entry = (c.entry*10)%1000 + d
	if c.entry == 0 {
		c.entry = 1
	}
	entry := c.entry
	if entry > MaxLevels {
		c.message = MsgLevelBounds
		c.mu.Unlock()
		c.session.RequestRepaint(engine.UrgencyAll)
		return
	}
	c.message = ""
	c.rec.Level = entry - 1
	c.mu.Unlock()

	c.loadStage(entry - 1)
	c.session.RequestRepaint(engine.UrgencyAll)
}

// OnPause seeds the accumulator with the current level number.
func (c *Controller) OnPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = c.rec.Level%MaxLevels + 1
}

// ClearMessage drops the pause message.
func (c *Controller) ClearMessage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = ""
}

// Replay marks the current level NotDone before it is played again.
func (c *Controller) Replay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.Flags[c.rec.Level] = StatusNotDone
}

func (c *Controller) loadStage(level int) {
	if c.loader == nil {
		return
	}
	if err := c.loader.LoadStage(level); err != nil {
		c.logger.Warn("could not load stage", "level", level+1, "error", err)
	}
}

func (c *Controller) journalOutcome(level int, completed bool, lives int) {
	if c.journal == nil {
		return
	}
	if err := c.journal.RecordOutcome(c.slot, level, completed, lives); err != nil {
		c.logger.Warn("could not record outcome", "error", err)
	}
}
