package tcellview

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/core"
	"github.com/vovakirdan/ascii-engine/internal/host"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newRunner(t *testing.T, source string, opts ...host.Option) *host.Runner {
	t.Helper()
	c, err := canvas.New(4, 10)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}
	return host.New("view", source, c, opts...)
}

func TestRunShowsLastFrame(t *testing.T) {
	screen := newSimScreen(t, 10, 4)
	r := newRunner(t, `
function draw()
  canvas.point(frame, 1, {char = "@"})
end
`, host.WithMaxFrames(3), host.WithoutPacing())

	if err := Run(context.Background(), r, screen); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	mainc, _, _, _ := screen.GetContent(3, 1)
	if mainc != '@' {
		t.Errorf("GetContent(3, 1) = %q, expected '@' from frame 3", mainc)
	}
	mainc, _, _, _ = screen.GetContent(1, 1)
	if mainc != ' ' {
		t.Errorf("GetContent(1, 1) = %q, expected an earlier frame to be gone", mainc)
	}
}

func TestRunQuitKey(t *testing.T) {
	screen := newSimScreen(t, 10, 4)
	r := newRunner(t, `function draw() canvas.point(0, 0) end`, host.WithFPS(30))

	errCh := make(chan error, 1)
	go func() { errCh <- Run(context.Background(), r, screen) }()

	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() = %v, expected nil after quit", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after 'q'")
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		ev       *tcell.EventKey
		expected core.Action
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), core.ActionQuit},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), core.ActionQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), core.ActionQuit},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), core.ActionPause},
		{tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), core.ActionStep},
		{tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), core.ActionFaster},
		{tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), core.ActionSlower},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keyAction(tt.ev); got != tt.expected {
			t.Errorf("keyAction(%v) = %v, expected %v", tt.ev.Name(), got, tt.expected)
		}
	}
}

func TestApplySpeedAndPause(t *testing.T) {
	r := newRunner(t, `function draw() end`, host.WithFPS(5))
	cancel := func() {}

	apply(core.ActionFaster, r, cancel)
	if r.FPS() != 10 {
		t.Errorf("FPS() = %d, expected 10", r.FPS())
	}
	apply(core.ActionPause, r, cancel)
	if !r.Paused() {
		t.Error("expected paused")
	}
	apply(core.ActionStep, r, cancel)
	if !r.Paused() {
		t.Error("step should keep the runner paused")
	}
}
