package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDimension is returned when a screen is created with a
// non-positive number of rows or columns.
var ErrInvalidDimension = errors.New("invalid dimension")

// Screen is the grid buffer: a fixed rows x cols matrix of cells.
// Coordinates are (row, col) with the origin at the top-left corner.
// Every write is clipped, so shapes that extend past the edges only
// draw their visible part.
type Screen struct {
	rows  int
	cols  int
	blank rune
	cells [][]Cell
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithBlank sets the glyph used for cleared cells.
func WithBlank(r rune) ScreenOption {
	return func(s *Screen) {
		if r != 0 {
			s.blank = r
		}
	}
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(rows, cols int, opts ...ScreenOption) (*Screen, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	s := &Screen{
		rows:  rows,
		cols:  cols,
		blank: ' ',
	}
	for _, opt := range opts {
		opt(s)
	}
	s.allocate()
	s.Clear()
	return s, nil
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.rows)
	for r := range s.cells {
		s.cells[r] = make([]Cell, s.cols)
	}
}

// Rows returns the number of rows.
func (s *Screen) Rows() int {
	return s.rows
}

// Cols returns the number of columns.
func (s *Screen) Cols() int {
	return s.cols
}

// Blank returns the glyph of a cleared cell.
func (s *Screen) Blank() rune {
	return s.blank
}

// BlankCell returns the default cell.
func (s *Screen) BlankCell() Cell {
	return Cell{Glyph: s.blank}
}

// InBounds reports whether (row, col) addresses a cell.
func (s *Screen) InBounds(row, col int) bool {
	return NewRect(0, 0, s.cols, s.rows).Contains(col, row)
}

// Clear resets every cell to the default blank cell.
func (s *Screen) Clear() {
	s.Fill(s.BlankCell())
}

// Fill sets every cell to c.
func (s *Screen) Fill(c Cell) {
	for r := range s.cells {
		row := s.cells[r]
		for i := range row {
			row[i] = c
		}
	}
}

// Set overwrites the cell at (row, col).
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(row, col int, c Cell) {
	if !s.InBounds(row, col) {
		return
	}
	s.cells[row][col] = c
}

// Get returns the cell at (row, col).
// Returns the blank cell for out-of-bounds coordinates.
func (s *Screen) Get(row, col int) Cell {
	if !s.InBounds(row, col) {
		return s.BlankCell()
	}
	return s.cells[row][col]
}

// Row returns a copy of the given row.
// Returns nil for out-of-range rows.
func (s *Screen) Row(row int) []Cell {
	if row < 0 || row >= s.rows {
		return nil
	}
	out := make([]Cell, s.cols)
	copy(out, s.cells[row])
	return out
}

// Clone returns a deep copy of the screen.
func (s *Screen) Clone() *Screen {
	c := &Screen{
		rows:  s.rows,
		cols:  s.cols,
		blank: s.blank,
	}
	c.allocate()
	for r := range s.cells {
		copy(c.cells[r], s.cells[r])
	}
	return c
}

// Count returns the number of cells that differ from the blank cell.
func (s *Screen) Count() int {
	blank := s.BlankCell()
	n := 0
	for r := range s.cells {
		for _, c := range s.cells[r] {
			if c != blank {
				n++
			}
		}
	}
	return n
}

// String converts the glyphs to text, one line per row, without colors.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.rows*s.cols + s.rows)

	for r := 0; r < s.rows; r++ {
		if r > 0 {
			sb.WriteRune('\n')
		}
		for _, c := range s.cells[r] {
			sb.WriteRune(c.Glyph)
		}
	}
	return sb.String()
}
