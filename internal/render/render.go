// Package render turns completed frames into something a display can show.
// Renderers read frames and never modify them; colors are resolved from
// the color table only here.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// ErrUnknownProfile is returned by ParseProfile for unrecognized names.
var ErrUnknownProfile = errors.New("unknown color profile")

// Source is a read-only grid of cells. Both *core.Screen and
// *canvas.Frame satisfy it.
type Source interface {
	Rows() int
	Cols() int
	Get(row, col int) core.Cell
}

// cursorHome moves the cursor to the top-left corner.
const cursorHome = "\x1b[H"

// ParseProfile converts a config name into a termenv profile.
// "auto" and "" detect the profile from the environment.
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return termenv.EnvColorProfile(), nil
	case "ascii", "none", "plain":
		return termenv.Ascii, nil
	case "ansi", "16":
		return termenv.ANSI, nil
	case "ansi256", "256":
		return termenv.ANSI256, nil
	case "truecolor", "24bit":
		return termenv.TrueColor, nil
	}
	return termenv.Ascii, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// Text renders the glyphs only, one line per row joined by "\n".
func Text(src Source) string {
	var sb strings.Builder
	rows, cols := src.Rows(), src.Cols()
	sb.Grow(rows*cols + rows)

	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			g := src.Get(row, col).Glyph
			sb.WriteRune(g)
			col += glyphSpan(g) - 1
		}
	}
	return sb.String()
}

// glyphSpan returns the number of columns a glyph covers on screen.
func glyphSpan(g rune) int {
	if runewidth.RuneWidth(g) == 2 {
		return 2
	}
	return 1
}

// WriteFrame encodes the frame and emits it to w with a single Write call.
// homeCursor prefixes a cursor-home sequence so that successive frames
// overwrite each other in place. Styles stay cached between calls.
func (r *Renderer) WriteFrame(w io.Writer, src Source, homeCursor bool) error {
	out := r.Render(src)
	if homeCursor {
		out = cursorHome + out
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("render: write frame: %w", err)
	}
	return nil
}
