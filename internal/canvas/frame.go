package canvas

import "github.com/vovakirdan/ascii-engine/internal/core"

// Frame is an immutable snapshot of a completed clear-then-draw cycle.
// It is safe to read from any goroutine.
type Frame struct {
	seq    uint64
	screen *core.Screen
}

// Seq returns the frame sequence number. The initial blank frame is 0.
func (f *Frame) Seq() uint64 {
	return f.seq
}

// Rows returns the frame height.
func (f *Frame) Rows() int {
	return f.screen.Rows()
}

// Cols returns the frame width.
func (f *Frame) Cols() int {
	return f.screen.Cols()
}

// Get returns the cell at (row, col), or the blank cell when out of range.
func (f *Frame) Get(row, col int) core.Cell {
	return f.screen.Get(row, col)
}

// Row returns a copy of one row of cells.
func (f *Frame) Row(row int) []core.Cell {
	return f.screen.Row(row)
}

// Blank returns the glyph of a cleared cell.
func (f *Frame) Blank() rune {
	return f.screen.Blank()
}

// Count returns the number of painted cells.
func (f *Frame) Count() int {
	return f.screen.Count()
}

// String returns the glyphs as plain text, one line per row.
func (f *Frame) String() string {
	return f.screen.String()
}

// NewFrame wraps a copy of s as a frame with the given sequence number.
// Used by renderers and tests that build frames without a Canvas.
func NewFrame(seq uint64, s *core.Screen) *Frame {
	return &Frame{seq: seq, screen: s.Clone()}
}
