package engine

import (
	"github.com/charmbracelet/log"
)

// Surface is the render target the frame scheduler draws on.
type Surface interface {
	// Visible reports whether the surface is currently shown.
	Visible() bool

	// Render draws the full state now, synchronously.
	Render()
}

type safeSurface struct {
	Surface
	logger *log.Logger
}

// SafeSurface wraps a surface so a panicking Render is logged and swallowed
// instead of killing the frame scheduler.
func SafeSurface(s Surface, logger *log.Logger) Surface {
	if logger == nil {
		logger = log.Default()
	}
	return &safeSurface{Surface: s, logger: logger}
}

func (s *safeSurface) Render() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("render failed", "panic", r)
		}
	}()
	s.Surface.Render()
}
