package config

import (
	"fmt"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// Frame rate bounds for the sketch loop.
const (
	MinFPS = 1
	MaxFPS = 60
)

// PacePreset represents a named frame rate.
type PacePreset string

const (
	PaceSlow   PacePreset = "slow"
	PaceNormal PacePreset = "normal"
	PaceFast   PacePreset = "fast"
	PaceSmooth PacePreset = "smooth"
)

// FPSForPace returns the frame rate of a preset.
func FPSForPace(p PacePreset) (int, bool) {
	switch p {
	case PaceSlow:
		return 2, true
	case PaceNormal:
		return 5, true
	case PaceFast:
		return 15, true
	case PaceSmooth:
		return 30, true
	default:
		return 0, false
	}
}

// ApplyPace sets the animation rate from a preset.
func ApplyPace(cfg *EngineConfig, p PacePreset) error {
	fps, ok := FPSForPace(p)
	if !ok {
		return fmt.Errorf("unknown pace %q", p)
	}
	cfg.Animation.FPS = fps
	cfg.Animation.Pace = string(p)
	return nil
}

// fpsSteps are the rates visited by StepFPS.
var fpsSteps = []int{1, 2, 5, 10, 15, 24, 30, 60}

// StepFPS moves fps to the next faster (dir > 0) or slower (dir < 0) step.
// Rates between steps snap to the neighbouring step in that direction.
func StepFPS(fps, dir int) int {
	if dir > 0 {
		for _, s := range fpsSteps {
			if s > fps {
				return s
			}
		}
		return MaxFPS
	}
	if dir < 0 {
		for i := len(fpsSteps) - 1; i >= 0; i-- {
			if fpsSteps[i] < fps {
				return fpsSteps[i]
			}
		}
		return MinFPS
	}
	return core.Clamp(fps, MinFPS, MaxFPS)
}
