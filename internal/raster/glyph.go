package raster

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// Text writes s left to right starting at column x, row y, using cell's
// style with each rune as the glyph. Double-width runes occupy two columns
// and zero-width runes are dropped.
func Text(dst Target, x, y int, s string, cell core.Cell) {
	TextFunc(dst, x, y, s, func(_ int, r rune) core.Cell {
		c := cell
		c.Glyph = r
		return c
	})
}

// TextFunc is like Text but asks style for the cell of the i-th rune.
func TextFunc(dst Target, x, y int, s string, style func(i int, r rune) core.Cell) {
	col := x
	i := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		dst.Set(y, col, style(i, r))
		col += w
		i++
	}
}

// TextVertical writes s top to bottom starting at column x, row y.
func TextVertical(dst Target, x, y int, s string, cell core.Cell) {
	TextVerticalFunc(dst, x, y, s, func(_ int, r rune) core.Cell {
		c := cell
		c.Glyph = r
		return c
	})
}

// TextVerticalFunc is the vertical form of TextFunc.
func TextVerticalFunc(dst Target, x, y int, s string, style func(i int, r rune) core.Cell) {
	row := y
	for _, r := range s {
		if runewidth.RuneWidth(r) == 0 {
			continue
		}
		dst.Set(row, x, style(row-y, r))
		row++
	}
}

// Star draws twelve spokes from (cx, cy), one every 30 degrees. Spokes on
// multiples of 60 degrees are size cells long, the others size/2.
func Star(dst Target, cx, cy, size int, cell core.Cell) {
	if size <= 0 {
		return
	}
	for deg := 0; deg < 360; deg += 30 {
		radius := size
		if deg%60 != 0 {
			radius = size / 2
		}
		rad := float64(deg) * math.Pi / 180
		ex := cx + int(float64(radius)*math.Cos(rad))
		ey := cy + int(float64(radius)*math.Sin(rad))
		Line(dst, cx, cy, ex, ey, cell)
	}
}
