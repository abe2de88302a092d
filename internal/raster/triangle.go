package raster

import (
	"math"
	"sort"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// Triangle draws the triangle p0-p1-p2.
// Outlines are three Lines. Filled triangles are scan-converted row by row:
// every edge whose row range covers the scanline contributes an
// intersection, and the cells between the leftmost and rightmost
// intersection are painted inclusive. Span ends that fall halfway between
// two cells round inward, so mirror-image triangles fill symmetrically.
// A fill whose vertices share one row draws nothing.
func Triangle(dst Target, p0, p1, p2 core.Point, filled bool, cell core.Cell) {
	if !filled {
		Line(dst, p0.X, p0.Y, p1.X, p1.Y, cell)
		Line(dst, p1.X, p1.Y, p2.X, p2.Y, cell)
		Line(dst, p2.X, p2.Y, p0.X, p0.Y, cell)
		return
	}

	v := []core.Point{p0, p1, p2}
	sort.SliceStable(v, func(i, j int) bool { return v[i].Y < v[j].Y })
	minY, maxY := v[0].Y, v[2].Y
	if minY == maxY {
		return
	}

	edges := [3][2]core.Point{{v[0], v[1]}, {v[1], v[2]}, {v[0], v[2]}}
	for y := minY; y <= maxY; y++ {
		left, right := math.Inf(1), math.Inf(-1)
		for _, e := range edges {
			for _, x := range scanlineIntersections(e[0], e[1], y) {
				left = math.Min(left, x)
				right = math.Max(right, x)
			}
		}
		if left > right {
			continue
		}
		span(dst, y, int(math.Floor(left+0.5)), int(math.Ceil(right-0.5)), cell)
	}
}

// scanlineIntersections returns the x-coordinates where row y crosses the
// edge a-b. Rows outside the edge's own range yield nothing; a horizontal
// edge on row y yields both endpoints.
func scanlineIntersections(a, b core.Point, y int) []float64 {
	lo, hi := a.Y, b.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	if y < lo || y > hi {
		return nil
	}
	if a.Y == b.Y {
		return []float64{float64(a.X), float64(b.X)}
	}
	t := float64(y-a.Y) / float64(b.Y-a.Y)
	return []float64{float64(a.X) + t*float64(b.X-a.X)}
}
