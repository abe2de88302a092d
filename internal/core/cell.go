package core

// Cell is one addressable grid position.
type Cell struct {
	Glyph      rune
	Color      Color
	Background Color
	Effects    Effect
}

// NewCell creates a cell with the given glyph and foreground color.
func NewCell(glyph rune, color Color) Cell {
	return Cell{Glyph: glyph, Color: color}
}

// SameStyle reports whether two cells would be rendered with the same
// escape sequence, ignoring the glyph.
func (c Cell) SameStyle(other Cell) bool {
	return c.Color == other.Color &&
		c.Background == other.Background &&
		c.Effects == other.Effects
}

// Plain reports whether the cell carries no color or effect.
func (c Cell) Plain() bool {
	return c.Color == ColorDefault && c.Background == ColorDefault && c.Effects == 0
}

// Palette holds the default glyphs used when a draw call does not name one.
type Palette struct {
	Blank  rune // Glyph of a cleared cell
	Stroke rune // Outlines, lines and curves
	Fill   rune // Interiors of filled shapes
}

// DefaultPalette returns the built-in glyph palette.
func DefaultPalette() Palette {
	return Palette{
		Blank:  ' ',
		Stroke: '*',
		Fill:   '#',
	}
}

// Glyph picks the palette glyph for a stroke or a fill.
func (p Palette) Glyph(filled bool) rune {
	if filled {
		return p.Fill
	}
	return p.Stroke
}
