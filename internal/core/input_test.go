package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero InputFrame should have no actions")
	}

	f.Set(ActionPause)
	f.Set(ActionStep)
	if !f.Has(ActionPause) || !f.Has(ActionStep) {
		t.Error("Set actions should be reported by Has")
	}

	f.Clear()
	if f.Has(ActionPause) {
		t.Error("Clear should drop all actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionScreenshot.String() != "Screenshot" {
		t.Errorf("ActionScreenshot.String() = %q", ActionScreenshot.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps      int
		expected time.Duration
	}{
		{5, 200 * time.Millisecond},
		{1, time.Second},
		{0, time.Second},
		{-3, time.Second},
	}
	for _, tc := range tests {
		c := RuntimeConfig{FPS: tc.fps}
		if got := c.FrameInterval(); got != tc.expected {
			t.Errorf("FrameInterval() with FPS=%d = %v, expected %v", tc.fps, got, tc.expected)
		}
	}
}
