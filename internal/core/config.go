package core

import "time"

// RuntimeConfig contains the parameters a sketch run is started with.
// Sketches read the grid size from it and use Seed for deterministic output.
type RuntimeConfig struct {
	Rows int   // Grid height in cells
	Cols int   // Grid width in cells
	FPS  int   // Frames produced per second
	Seed int64 // RNG seed; 0 means derive one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Rows: 24,
		Cols: 80,
		FPS:  5,
		Seed: 0,
	}
}

// FrameInterval converts FPS into the delay between two frames.
// Non-positive rates fall back to one frame per second.
func (c RuntimeConfig) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(c.FPS)
}
