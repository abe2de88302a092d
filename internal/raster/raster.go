// Package raster converts geometric shapes into cell writes.
//
// Every primitive is a pure function of its arguments: it computes which
// cells to paint and hands each one to a Target. Coordinates follow the
// screen convention used by the sketches: x is the column, y is the row,
// both growing from the top-left corner. Out-of-range cells are left to the
// Target to clip, and degenerate geometry (zero radius, empty boxes,
// collapsed triangles) draws nothing.
package raster

import "github.com/vovakirdan/ascii-engine/internal/core"

// Target is the single write primitive the rasterizer draws through.
// *core.Screen implements it.
type Target interface {
	Set(row, col int, c core.Cell)
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc func(row, col int, c core.Cell)

// Set calls f(row, col, c).
func (f TargetFunc) Set(row, col int, c core.Cell) {
	f(row, col, c)
}

// Point paints a single cell at column x, row y.
func Point(dst Target, x, y int, cell core.Cell) {
	dst.Set(y, x, cell)
}

// span paints row y from column x0 to x1 inclusive.
func span(dst Target, y, x0, x1 int, cell core.Cell) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		dst.Set(y, x, cell)
	}
}
