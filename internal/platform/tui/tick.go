// Package tui provides the Bubble Tea front end of the engine.
// It previews sketches live, lists the sketch library and serves the
// same views over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a display refresh.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 1
	}
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
