package render

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// styleKey identifies a cell style regardless of glyph.
type styleKey struct {
	fg, bg core.Color
	fx     core.Effect
}

// Renderer converts frames to styled strings for one color profile.
// Styles are built lazily and cached, so a Renderer should be reused
// across frames.
type Renderer struct {
	lg *lipgloss.Renderer

	mu     sync.Mutex
	styles map[styleKey]lipgloss.Style
}

// NewRenderer creates a renderer for the given color profile.
func NewRenderer(profile termenv.Profile) *Renderer {
	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(profile)
	return &Renderer{
		lg:     lg,
		styles: make(map[styleKey]lipgloss.Style),
	}
}

// Profile returns the color profile the renderer encodes for.
func (r *Renderer) Profile() termenv.Profile {
	return r.lg.ColorProfile()
}

// style returns the lipgloss style for a cell, building it on first use.
func (r *Renderer) style(c core.Cell) lipgloss.Style {
	key := styleKey{fg: c.Color, bg: c.Background, fx: c.Effects}

	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.styles[key]; ok {
		return st
	}

	st := r.lg.NewStyle()
	if idx := c.Color.ANSI(); idx >= 0 {
		st = st.Foreground(lipgloss.Color(strconv.Itoa(idx)))
	}
	if idx := c.Background.ANSI(); idx >= 0 {
		st = st.Background(lipgloss.Color(strconv.Itoa(idx)))
	}
	fx := c.Effects
	if fx.Has(core.EffectBold) {
		st = st.Bold(true)
	}
	if fx.Has(core.EffectDim) {
		st = st.Faint(true)
	}
	if fx.Has(core.EffectItalic) {
		st = st.Italic(true)
	}
	if fx.Has(core.EffectUnderline) {
		st = st.Underline(true)
	}
	if fx.Has(core.EffectBlink) {
		st = st.Blink(true)
	}
	if fx.Has(core.EffectReverse) {
		st = st.Reverse(true)
	}
	if fx.Has(core.EffectStrikethrough) {
		st = st.Strikethrough(true)
	}
	r.styles[key] = st
	return st
}

// Render converts a frame to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (r *Renderer) Render(src Source) string {
	var sb strings.Builder
	rows, cols := src.Rows(), src.Cols()
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(rows*cols*2 + rows)

	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}

		col := 0
		for col < cols {
			start := src.Get(row, col)

			// Collect consecutive cells with the same style
			var run strings.Builder
			for col < cols {
				cell := src.Get(row, col)
				if !cell.SameStyle(start) {
					break
				}
				run.WriteRune(cell.Glyph)
				col += glyphSpan(cell.Glyph)
			}

			if start.Plain() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
