package canvas

import (
	"fmt"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// Style is the per-call appearance of a drawn shape.
// A zero Glyph means "use the palette default" for the shape kind.
type Style struct {
	Glyph      rune
	Color      core.Color
	Background core.Color
	Effects    core.Effect
}

// Plain returns a style with the given foreground color and default glyph.
func Plain(c core.Color) Style {
	return Style{Color: c}
}

// WithGlyph returns a copy of s drawing with r.
func (s Style) WithGlyph(r rune) Style {
	s.Glyph = r
	return s
}

// cell resolves the style into a grid cell using the palette default
// for strokes or fills.
func (s Style) cell(p core.Palette, filled bool) core.Cell {
	g := s.Glyph
	if g == 0 {
		g = p.Glyph(filled)
	}
	return core.Cell{
		Glyph:      g,
		Color:      s.Color,
		Background: s.Background,
		Effects:    s.Effects,
	}
}

// ParseStyle builds a style from color, background and effect names.
// Empty names leave the corresponding attribute at its default.
func ParseStyle(glyph rune, color, background, effect string) (Style, error) {
	fg, err := core.ParseColor(color)
	if err != nil {
		return Style{}, fmt.Errorf("style color: %w", err)
	}
	bg, err := core.ParseBackground(background)
	if err != nil {
		return Style{}, fmt.Errorf("style background: %w", err)
	}
	fx, err := core.ParseEffect(effect)
	if err != nil {
		return Style{}, fmt.Errorf("style effect: %w", err)
	}
	return Style{Glyph: glyph, Color: fg, Background: bg, Effects: fx}, nil
}

// RainbowColors is the color cycle used by RainbowText.
var RainbowColors = []core.Color{
	core.ColorRed,
	core.ColorBrightRed,
	core.ColorYellow,
	core.ColorBrightYellow,
	core.ColorGreen,
	core.ColorBrightGreen,
	core.ColorCyan,
	core.ColorBrightCyan,
	core.ColorBlue,
	core.ColorBrightBlue,
	core.ColorMagenta,
	core.ColorBrightMagenta,
}
