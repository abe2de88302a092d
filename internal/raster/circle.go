package raster

import (
	"math"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// Circle draws a circle of radius r centered on column cx, row cy using the
// midpoint algorithm. A radius of 1 paints only the center cell and a
// non-positive radius paints nothing. Filled circles are drawn as four
// horizontal spans per step so the disk has no interior gaps.
func Circle(dst Target, cx, cy, r int, filled bool, cell core.Cell) {
	if r <= 0 {
		return
	}
	if r == 1 {
		dst.Set(cy, cx, cell)
		return
	}
	midpointCircle(r, func(x, y int) {
		circlePoints(dst, cx, cy, x, y, filled, cell)
	})
}

// Arc draws the part of a circle whose angle, measured with atan2 from the
// center and normalized to [0, 2π), lies in [start, end). Angles are in
// radians in screen orientation: rows grow downward, so the angle turns
// clockwise on screen. When end < start the range wraps through zero.
// Negative or large angles are normalized first, and a sweep of 2π or
// more draws the whole circle. A filled arc is a pie slice.
func Arc(dst Target, cx, cy, r int, start, end float64, filled bool, cell core.Cell) {
	if end < start {
		end += 2 * math.Pi
	}
	sweep := end - start
	if sweep >= 2*math.Pi {
		Circle(dst, cx, cy, r, filled, cell)
		return
	}
	start = math.Mod(start, 2*math.Pi)
	if start < 0 {
		start += 2 * math.Pi
	}
	end = start + sweep

	clip := TargetFunc(func(row, col int, c core.Cell) {
		if inArc(float64(col-cx), float64(row-cy), start, end) {
			dst.Set(row, col, c)
		}
	})
	Circle(clip, cx, cy, r, filled, cell)
}

// inArc reports whether the direction (dx, dy) falls in [start, end).
// end has already been extended past start for wrapping ranges.
func inArc(dx, dy, start, end float64) bool {
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= start && a < end {
		return true
	}
	a += 2 * math.Pi
	return a >= start && a < end
}

// midpointCircle walks one octant of a circle of radius r, calling plot
// with offsets (x, y) where 0 <= x <= y.
func midpointCircle(r int, plot func(x, y int)) {
	x, y := 0, r
	d := 1 - r
	plot(x, y)
	for x < y {
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
		plot(x, y)
	}
}

// circlePoints paints the eight symmetric images of (x, y), or the four
// spans between them when filled.
func circlePoints(dst Target, cx, cy, x, y int, filled bool, cell core.Cell) {
	if filled {
		span(dst, cy+y, cx-x, cx+x, cell)
		span(dst, cy-y, cx-x, cx+x, cell)
		span(dst, cy+x, cx-y, cx+y, cell)
		span(dst, cy-x, cx-y, cx+y, cell)
		return
	}
	dst.Set(cy+y, cx+x, cell)
	dst.Set(cy+y, cx-x, cell)
	dst.Set(cy-y, cx+x, cell)
	dst.Set(cy-y, cx-x, cell)
	dst.Set(cy+x, cx+y, cell)
	dst.Set(cy+x, cx-y, cell)
	dst.Set(cy-x, cx+y, cell)
	dst.Set(cy-x, cx-y, cell)
}
