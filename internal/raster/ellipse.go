package raster

import "github.com/vovakirdan/ascii-engine/internal/core"

// Ellipse draws an axis-aligned ellipse centered on column cx, row cy with
// semi-axes width/2 and height/2 (integer division). A zero semi-axis draws
// nothing and equal semi-axes fall back to Circle.
func Ellipse(dst Target, cx, cy, width, height int, filled bool, cell core.Cell) {
	a := width / 2
	b := height / 2
	if a <= 0 || b <= 0 {
		return
	}
	if a == b {
		Circle(dst, cx, cy, a, filled, cell)
		return
	}

	plot := func(x, y int) {
		if filled {
			span(dst, cy+y, cx-x, cx+x, cell)
			span(dst, cy-y, cx-x, cx+x, cell)
			return
		}
		dst.Set(cy+y, cx+x, cell)
		dst.Set(cy+y, cx-x, cell)
		dst.Set(cy-y, cx+x, cell)
		dst.Set(cy-y, cx-x, cell)
	}

	a2 := float64(a * a)
	b2 := float64(b * b)
	x, y := 0, b
	dx := 2 * b2 * float64(x)
	dy := 2 * a2 * float64(y)

	// Region 1: slope magnitude below 1, step along x.
	d1 := b2 - a2*float64(b) + 0.25*a2
	for dx < dy {
		plot(x, y)
		x++
		dx += 2 * b2
		if d1 < 0 {
			d1 += dx + b2
		} else {
			y--
			dy -= 2 * a2
			d1 += dx - dy + b2
		}
	}

	// Region 2: step along y until the minor axis is reached.
	fx := float64(x) + 0.5
	fy := float64(y - 1)
	d2 := b2*fx*fx + a2*fy*fy - a2*b2
	for y >= 0 {
		plot(x, y)
		y--
		dy -= 2 * a2
		if d2 > 0 {
			d2 += a2 - dy
		} else {
			x++
			dx += 2 * b2
			d2 += dx - dy + a2
		}
	}
}
