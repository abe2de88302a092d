package raster

import "github.com/vovakirdan/ascii-engine/internal/core"

// Rect draws a width x height box whose top-left cell is (x, y).
// Filled boxes paint every cell; outlines paint the four one-cell edges.
// A non-positive width or height draws nothing.
func Rect(dst Target, x, y, width, height int, filled bool, cell core.Cell) {
	r := core.NewRect(x, y, width, height)
	if r.Empty() {
		return
	}

	if filled {
		for row := r.Y; row < r.Bottom(); row++ {
			for col := r.X; col < r.Right(); col++ {
				dst.Set(row, col, cell)
			}
		}
		return
	}

	for col := r.X; col < r.Right(); col++ {
		dst.Set(r.Y, col, cell)
		dst.Set(r.Bottom()-1, col, cell)
	}
	for row := r.Y; row < r.Bottom(); row++ {
		dst.Set(row, r.X, cell)
		dst.Set(row, r.Right()-1, cell)
	}
}

// Square draws a size x size box.
func Square(dst Target, x, y, size int, filled bool, cell core.Cell) {
	Rect(dst, x, y, size, size, filled, cell)
}
