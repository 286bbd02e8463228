// Package tui runs the game runtime in a terminal, locally or over SSH.
// The bubbletea program is the display device: the session's frame loop
// paints off the program goroutine and hands finished frames to the model.
package tui

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

// Painter draws the game into a screen buffer.
type Painter interface {
	Render(dst *core.Screen)
}

// frameMsg carries a rendered frame to the model.
type frameMsg string

// exitMsg asks the model to quit.
type exitMsg struct{}

// Device is the terminal as seen by the session: a render surface whose
// visibility follows terminal focus, and a keep-awake target.
type Device struct {
	painter Painter

	mu     sync.Mutex
	width  int
	height int

	focused atomic.Bool
	wakes   atomic.Uint64

	frames    chan string // latest frame only
	exit      chan struct{}
	exitOnce  sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

var (
	_ engine.Surface = (*Device)(nil)
	_ engine.Waker   = (*Device)(nil)
)

// NewDevice creates a focused device of the given size.
func NewDevice(width, height int) *Device {
	d := &Device{
		width:  max(width, 1),
		height: max(height, 1),
		frames: make(chan string, 1),
		exit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	// Terminals that never report focus are always visible.
	d.focused.Store(true)
	return d
}

// SetPainter sets what Render draws.
func (d *Device) SetPainter(p Painter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.painter = p
}

// Visible implements engine.Surface.
func (d *Device) Visible() bool {
	return d.focused.Load()
}

// Render implements engine.Surface. It paints a full frame and replaces any
// frame the model has not picked up yet.
func (d *Device) Render() {
	d.mu.Lock()
	painter := d.painter
	screen := core.NewScreen(d.width, d.height)
	d.mu.Unlock()

	if painter == nil {
		return
	}
	painter.Render(screen)
	view := RenderScreen(screen)

	for {
		select {
		case d.frames <- view:
			return
		default:
		}
		// Drop the stale frame and retry.
		select {
		case <-d.frames:
		default:
		}
	}
}

// KeepAwake implements engine.Waker. Terminals have no backlight to keep
// lit, so the device only counts the flashes.
func (d *Device) KeepAwake() {
	d.wakes.Add(1)
}

// Wakes returns how many keep-awake flashes the device received.
func (d *Device) Wakes() uint64 {
	return d.wakes.Load()
}

// Resize changes the size of the next frames.
func (d *Device) Resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width = max(width, 1)
	d.height = max(height, 1)
}

// Size returns the frame size.
func (d *Device) Size() (width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// SetFocus records whether the terminal has focus.
func (d *Device) SetFocus(focused bool) {
	d.focused.Store(focused)
}

// Exit asks the model to quit. It is the game's exit hook.
func (d *Device) Exit() {
	d.exitOnce.Do(func() { close(d.exit) })
}

// Close releases a model waiting for frames.
func (d *Device) Close() {
	d.closeOnce.Do(func() { close(d.done) })
}

// next waits for the next frame or exit request.
func (d *Device) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-d.exit:
			return exitMsg{}
		default:
		}
		select {
		case view := <-d.frames:
			return frameMsg(view)
		case <-d.exit:
			return exitMsg{}
		case <-d.done:
			return nil
		}
	}
}
