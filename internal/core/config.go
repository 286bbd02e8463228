package core

import "time"

// DefaultFramePeriod is the rendering cadence of the frame scheduler (~15 fps).
const DefaultFramePeriod = 66 * time.Millisecond

// RuntimeConfig contains the device parameters a runtime falls back to when
// the terminal does not report its size.
type RuntimeConfig struct {
	ScreenW     int           // Screen width in characters
	ScreenH     int           // Screen height in characters
	FramePeriod time.Duration // Frame scheduler cadence
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		FramePeriod: DefaultFramePeriod,
	}
}
