// Package core provides the cell grid and color table of the engine.
// It contains no external dependencies so that the rasterizer built on
// top of it stays pure and testable.
package core

import "math"

// Point is an integer grid position: X is the column, Y is the row.
type Point struct {
	X, Y int
}

// P is shorthand for Point{X: x, Y: y}.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// PointF is a point with sub-cell precision, used by curve evaluation.
type PointF struct {
	X, Y float64
}

// F converts an integer point to a PointF.
func (p Point) F() PointF {
	return PointF{X: float64(p.X), Y: float64(p.Y)}
}

// Round converts to the nearest grid position, rounding halves away from zero.
func (p PointF) Round() Point {
	return Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Rect is an axis-aligned box of cells.
type Rect struct {
	X, Y int // Top-left corner (column, row)
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

