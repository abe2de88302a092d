package raster

import "github.com/vovakirdan/ascii-engine/internal/core"

// Line draws the Bresenham approximation of the segment (x1,y1)-(x2,y2).
// Both endpoints are painted and consecutive cells are 8-connected.
func Line(dst Target, x1, y1, x2, y2 int, cell core.Cell) {
	dx := core.Abs(x2 - x1)
	dy := core.Abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		dst.Set(y, x, cell)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// Polyline draws straight lines between consecutive points.
// When closed is set and there are at least three points the last point
// is joined back to the first.
func Polyline(dst Target, points []core.Point, closed bool, cell core.Cell) {
	switch len(points) {
	case 0:
		return
	case 1:
		Point(dst, points[0].X, points[0].Y, cell)
		return
	}
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		Line(dst, a.X, a.Y, b.X, b.Y, cell)
	}
	if closed && len(points) >= 3 {
		a, b := points[len(points)-1], points[0]
		Line(dst, a.X, a.Y, b.X, b.Y, cell)
	}
}
