// Package tcellview plays a sketch directly on a tcell screen, without
// the Bubble Tea preview. It suits terminals where redrawing through
// escape strings is too slow.
package tcellview

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/config"
	"github.com/vovakirdan/ascii-engine/internal/core"
	"github.com/vovakirdan/ascii-engine/internal/host"
	"github.com/vovakirdan/ascii-engine/internal/render"
)

// keyAction maps a key event to a preview action.
func keyAction(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return core.ActionQuit
		case ' ', 'p':
			return core.ActionPause
		case 'n', '.':
			return core.ActionStep
		case '+', '=':
			return core.ActionFaster
		case '-', '_':
			return core.ActionSlower
		}
	}
	return core.ActionNone
}

// Run plays r on screen until the sketch ends, ctx is cancelled or the
// user quits. The screen must be initialized; the caller finalizes it.
func Run(ctx context.Context, r *host.Runner, screen tcell.Screen, opts ...render.TcellOption) error {
	sink := render.NewTcellSink(screen, opts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// PollEvent blocks until the screen is finalized, so the reader
	// goroutine outlives Run and must never block on a send.
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Run(ctx, host.SinkFunc(func(f *canvas.Frame) error {
			sink.Draw(f)
			return nil
		}))
	}()

	for {
		select {
		case err := <-errCh:
			return err
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				apply(keyAction(ev), r, cancel)
			}
		}
	}
}

func apply(a core.Action, r *host.Runner, cancel context.CancelFunc) {
	switch a {
	case core.ActionQuit:
		r.Stop()
		cancel()
	case core.ActionPause:
		r.SetPaused(!r.Paused())
	case core.ActionStep:
		r.SetPaused(true)
		r.Step()
	case core.ActionFaster:
		r.SetFPS(config.StepFPS(r.FPS(), 1))
	case core.ActionSlower:
		r.SetFPS(config.StepFPS(r.FPS(), -1))
	}
}
