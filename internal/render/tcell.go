package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// TcellSink draws frames onto a tcell screen.
type TcellSink struct {
	screen    tcell.Screen
	trueColor bool
}

// TcellOption configures a TcellSink.
type TcellOption func(*TcellSink)

// WithTrueColor sends RGB values from the color table instead of palette indexes.
func WithTrueColor() TcellOption {
	return func(s *TcellSink) {
		s.trueColor = true
	}
}

// NewTcellSink wraps an initialized tcell screen.
func NewTcellSink(screen tcell.Screen, opts ...TcellOption) *TcellSink {
	s := &TcellSink{screen: screen}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draw copies the frame onto the screen and shows it once.
// Cells outside the screen are dropped.
func (s *TcellSink) Draw(src Source) {
	w, h := s.screen.Size()
	rows, cols := min(src.Rows(), h), min(src.Cols(), w)

	s.screen.Clear()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := src.Get(row, col)
			s.screen.SetContent(col, row, c.Glyph, nil, s.convertStyle(c))
			col += glyphSpan(c.Glyph) - 1
		}
	}
	s.screen.Show()
}

// convertStyle converts a cell's style to tcell.Style.
func (s *TcellSink) convertStyle(c core.Cell) tcell.Style {
	style := tcell.StyleDefault

	if !c.Color.IsDefault() {
		style = style.Foreground(s.color(c.Color))
	}
	if !c.Background.IsDefault() {
		style = style.Background(s.color(c.Background))
	}

	fx := c.Effects
	if fx.Has(core.EffectBold) {
		style = style.Bold(true)
	}
	if fx.Has(core.EffectDim) {
		style = style.Dim(true)
	}
	if fx.Has(core.EffectItalic) {
		style = style.Italic(true)
	}
	if fx.Has(core.EffectUnderline) {
		style = style.Underline(true)
	}
	if fx.Has(core.EffectBlink) {
		style = style.Blink(true)
	}
	if fx.Has(core.EffectReverse) {
		style = style.Reverse(true)
	}
	if fx.Has(core.EffectStrikethrough) {
		style = style.StrikeThrough(true)
	}
	return style
}

func (s *TcellSink) color(c core.Color) tcell.Color {
	if s.trueColor {
		if rgb, err := colorful.Hex(c.Hex()); err == nil {
			r, g, b := rgb.RGB255()
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
	}
	return tcell.PaletteColor(c.ANSI())
}
