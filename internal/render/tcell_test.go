package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/ascii-engine/internal/core"
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

func TestTcellSinkDraw(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	sink := NewTcellSink(screen)

	s := testScreen(t, 5, 10)
	s.Set(1, 2, core.Cell{Glyph: '@', Color: core.ColorRed, Effects: core.EffectBold | core.EffectUnderline})
	sink.Draw(s)

	mainc, _, style, _ := screen.GetContent(2, 1)
	if mainc != '@' {
		t.Errorf("GetContent(2, 1) = %q, expected '@'", mainc)
	}
	fg, bg, attr := style.Decompose()
	if fg != tcell.PaletteColor(1) {
		t.Errorf("foreground = %v, expected palette color 1", fg)
	}
	if bg != tcell.ColorDefault {
		t.Errorf("background = %v, expected default", bg)
	}
	if attr&tcell.AttrBold == 0 {
		t.Error("bold attribute missing")
	}

	mainc, _, _, _ = screen.GetContent(0, 0)
	if mainc != ' ' {
		t.Errorf("blank cell = %q, expected space", mainc)
	}
}

func TestTcellSinkTrueColor(t *testing.T) {
	screen := newSimScreen(t, 4, 2)
	sink := NewTcellSink(screen, WithTrueColor())

	s := testScreen(t, 2, 4)
	s.Set(0, 0, core.Cell{Glyph: 'x', Background: core.ColorRed})
	sink.Draw(s)

	_, _, style, _ := screen.GetContent(0, 0)
	_, bg, _ := style.Decompose()
	if bg != tcell.NewRGBColor(0xcd, 0x31, 0x31) {
		t.Errorf("background = %v, expected #cd3131", bg)
	}
}

func TestTcellSinkClipsToScreen(t *testing.T) {
	screen := newSimScreen(t, 3, 2)
	sink := NewTcellSink(screen)

	s := testScreen(t, 10, 10)
	s.Fill(core.NewCell('#', core.ColorDefault))
	sink.Draw(s) // Should not panic

	mainc, _, _, _ := screen.GetContent(2, 1)
	if mainc != '#' {
		t.Errorf("GetContent(2, 1) = %q, expected '#'", mainc)
	}
}
