package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{runeKey('p'), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPause},
		{runeKey('n'), core.ActionStep},
		{runeKey('r'), core.ActionRestart},
		{runeKey('+'), core.ActionFaster},
		{runeKey('='), core.ActionFaster},
		{runeKey('-'), core.ActionSlower},
		{runeKey('s'), core.ActionScreenshot},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if keys.MapKeyToFrame(runeKey('+'), &frame) {
		t.Error("'+' reported as quit")
	}
	if !frame.Has(core.ActionFaster) {
		t.Error("expected ActionFaster in frame")
	}
	if !keys.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("'q' not reported as quit")
	}
}
