package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
	"github.com/vovakirdan/tui-lode/internal/progress"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

// Store is the persistence a runtime needs: slots and the outcome journal.
type Store interface {
	progress.SlotStore
	progress.Journal
}

// RuntimeOptions configures a Runtime.
type RuntimeOptions struct {
	Config config.Config
	GameID string
	Store  Store
	Slot   string // defaults to Config.Storage.Slot
	Width  int // zero means the default screen size
	Height int
	Logger *log.Logger
}

// Runtime is one player's game: the game, its session, the dispatcher and
// the device they draw on.
type Runtime struct {
	game       registry.Game
	session    *engine.Session
	device     *Device
	dispatcher *engine.Dispatcher
	legend     Legend
	logger     *log.Logger
}

// NewRuntime creates the game, restores its saved state and wires the
// session. The session is not started.
func NewRuntime(opts RuntimeOptions) (*Runtime, error) {
	if opts.Store == nil {
		return nil, errors.New("tui: no store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	slot := opts.Slot
	if slot == "" {
		slot = opts.Config.Storage.Slot
	}

	caps, err := NewCapabilities(opts.Config)
	if err != nil {
		return nil, err
	}

	// A client that reports no window gets the default device size.
	rc := opts.Config.CoreConfig()
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = rc.ScreenW, rc.ScreenH
	}

	// One row is kept for the key legend.
	device := NewDevice(width, height-1)

	game, err := registry.Create(opts.GameID, registry.Deps{
		Store:   opts.Store,
		Journal: opts.Store,
		Slot:    slot,
		Logger:  logger,
		Exit:    device.Exit,
	})
	if err != nil {
		return nil, err
	}

	session := engine.NewSession(game, engine.SafeSurface(device, logger), engine.Options{
		FramePeriod:     rc.FramePeriod,
		KeepAwakePeriod: opts.Config.KeepAwakePeriod(),
		KeepAwakeMax:    opts.Config.Runtime.KeepAwakeMax,
		Logger:          logger,
		Waker:           device,
	})
	game.Attach(session)
	game.Load()
	device.SetPainter(game)

	menu, _ := game.(engine.PauseMenu)

	return &Runtime{
		game:       game,
		session:    session,
		device:     device,
		dispatcher: engine.NewDispatcher(session, caps, game, menu),
		legend:     NewLegend(caps),
		logger:     logger,
	}, nil
}

// Session returns the runtime's session.
func (r *Runtime) Session() *engine.Session {
	return r.session
}

// Device returns the runtime's device.
func (r *Runtime) Device() *Device {
	return r.device
}

// Start launches the session's frame loop.
func (r *Runtime) Start() {
	r.session.Start()
	r.logger.Info("game started", "game", r.game.ID())
}

// Stop pauses and saves the game, then releases the model.
func (r *Runtime) Stop() {
	r.session.Stop()
	r.device.Close()
	r.logger.Info("game stopped", "game", r.game.ID())
}

// Model returns the bubbletea model driving this runtime.
func (r *Runtime) Model() Model {
	h := help.New()
	w, _ := r.device.Size()
	h.Width = w
	return Model{runtime: r, help: h}
}

// Model is the bubbletea model of a running game. Keys go to the
// dispatcher; frames come from the session's frame loop.
type Model struct {
	runtime  *Runtime
	help     help.Model
	view     string
	quitting bool
}

// Init starts waiting for frames.
func (m Model) Init() tea.Cmd {
	return m.runtime.device.next()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	r := m.runtime

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		r.device.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		r.session.RequestRepaint(engine.UrgencyAll)
		return m, nil

	case tea.FocusMsg:
		r.device.SetFocus(true)
		r.session.RequestRepaint(engine.UrgencyAll)
		return m, nil

	case tea.BlurMsg:
		r.device.SetFocus(false)
		return m, nil

	case frameMsg:
		m.view = string(msg)
		return m, r.device.next()

	case exitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.runtime.legend.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.runtime.legend.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	m.runtime.dispatcher.KeyPressed(core.KeyCode(msg.String()))
	return m, nil
}

// View renders the last frame with the key legend under it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.help.ShowAll {
		// The full legend covers the bottom of the frame.
		full := m.help.View(m.runtime.legend)
		lines := strings.Split(m.view, "\n")
		keep := max(len(lines)-strings.Count(full, "\n"), 0)
		return strings.Join(lines[:keep], "\n") + "\n" + full
	}
	return m.view + "\n" + m.help.View(m.runtime.legend)
}

// Run plays a runtime in the local terminal until the player quits.
func Run(r *Runtime) error {
	p := tea.NewProgram(
		r.Model(),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	r.Start()
	defer r.Stop()

	_, err := p.Run()
	return err
}
