// Package canvas is the synchronized drawing surface between a frame
// producer and any number of frame consumers.
//
// Drawing goes to a private back buffer. EndFrame copies the back buffer
// into an immutable Frame and publishes it atomically, so Snapshot only
// ever returns a fully completed frame.
package canvas

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/ascii-engine/internal/core"
	"github.com/vovakirdan/ascii-engine/internal/raster"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithPalette sets the default glyphs.
func WithPalette(p core.Palette) Option {
	return func(c *Canvas) {
		def := core.DefaultPalette()
		if p.Blank == 0 {
			p.Blank = def.Blank
		}
		if p.Stroke == 0 {
			p.Stroke = def.Stroke
		}
		if p.Fill == 0 {
			p.Fill = def.Fill
		}
		c.palette = p
	}
}

// Canvas is a double-buffered grid.
type Canvas struct {
	mu      sync.Mutex
	palette core.Palette
	back    *core.Screen
	seq     uint64

	front atomic.Pointer[Frame]
}

// New creates a canvas of rows x cols cells and publishes a blank frame.
func New(rows, cols int, opts ...Option) (*Canvas, error) {
	c := &Canvas{palette: core.DefaultPalette()}
	for _, opt := range opts {
		opt(c)
	}

	back, err := core.NewScreen(rows, cols, core.WithBlank(c.palette.Blank))
	if err != nil {
		return nil, err
	}
	c.back = back
	c.front.Store(NewFrame(0, back))
	return c, nil
}

// Rows returns the canvas height.
func (c *Canvas) Rows() int {
	return c.back.Rows()
}

// Cols returns the canvas width.
func (c *Canvas) Cols() int {
	return c.back.Cols()
}

// BeginFrame starts a new frame by clearing the back buffer.
func (c *Canvas) BeginFrame() {
	c.Clear()
}

// EndFrame publishes the back buffer as the next Frame and returns it.
func (c *Canvas) EndFrame() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	f := NewFrame(c.seq, c.back)
	c.front.Store(f)
	return f
}

// Snapshot returns the most recently published frame.
func (c *Canvas) Snapshot() *Frame {
	return c.front.Load()
}

// Clear resets the back buffer. The published frame is not affected.
func (c *Canvas) Clear() {
	c.mu.Lock()
	c.back.Clear()
	c.mu.Unlock()
}

// Draw runs fn with exclusive access to the back buffer.
func (c *Canvas) Draw(fn func(dst raster.Target)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.back)
}

// Cell returns the back buffer cell at (row, col).
func (c *Canvas) Cell(row, col int) core.Cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.back.Get(row, col)
}

// SetPixel writes one glyph at (row, col). A zero glyph uses the stroke glyph.
func (c *Canvas) SetPixel(row, col int, glyph rune, color core.Color) {
	c.Point(col, row, Style{Glyph: glyph, Color: color})
}

// Point paints the cell at column x, row y.
func (c *Canvas) Point(x, y int, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.Point(dst, x, y, cell)
	})
}

// Line draws a line from (x1, y1) to (x2, y2).
func (c *Canvas) Line(x1, y1, x2, y2 int, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.Line(dst, x1, y1, x2, y2, cell)
	})
}

// Polyline draws lines between consecutive points.
func (c *Canvas) Polyline(points []core.Point, closed bool, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.Polyline(dst, points, closed, cell)
	})
}

// Circle draws a circle of radius r centered at (x, y).
func (c *Canvas) Circle(x, y, r int, filled bool, s Style) {
	cell := s.cell(c.palette, filled)
	c.Draw(func(dst raster.Target) {
		raster.Circle(dst, x, y, r, filled, cell)
	})
}

// Arc draws the part of a circle between two angles in radians.
func (c *Canvas) Arc(x, y, r int, start, end float64, filled bool, s Style) {
	cell := s.cell(c.palette, filled)
	c.Draw(func(dst raster.Target) {
		raster.Arc(dst, x, y, r, start, end, filled, cell)
	})
}

// Ellipse draws an ellipse with the given bounding width and height.
func (c *Canvas) Ellipse(x, y, w, h int, filled bool, s Style) {
	cell := s.cell(c.palette, filled)
	c.Draw(func(dst raster.Target) {
		raster.Ellipse(dst, x, y, w, h, filled, cell)
	})
}

// Rect draws a w x h rectangle with its top-left corner at (x, y).
func (c *Canvas) Rect(x, y, w, h int, filled bool, s Style) {
	cell := s.cell(c.palette, filled)
	c.Draw(func(dst raster.Target) {
		raster.Rect(dst, x, y, w, h, filled, cell)
	})
}

// Square draws a size x size square.
func (c *Canvas) Square(x, y, size int, filled bool, s Style) {
	c.Rect(x, y, size, size, filled, s)
}

// Triangle draws the triangle p0 p1 p2.
func (c *Canvas) Triangle(p0, p1, p2 core.Point, filled bool, s Style) {
	cell := s.cell(c.palette, filled)
	c.Draw(func(dst raster.Target) {
		raster.Triangle(dst, p0, p1, p2, filled, cell)
	})
}

// Bezier samples a cubic Bezier curve.
func (c *Canvas) Bezier(p0, c1, c2, p3 core.PointF, steps int, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.CubicBezier(dst, p0, c1, c2, p3, steps, cell)
	})
}

// QuadBezier samples a quadratic Bezier curve.
func (c *Canvas) QuadBezier(p0, ctrl, p2 core.PointF, steps int, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.QuadBezier(dst, p0, ctrl, p2, steps, cell)
	})
}

// CatmullRom samples the spline segment between p1 and p2.
func (c *Canvas) CatmullRom(p0, p1, p2, p3 core.PointF, tension float64, steps int, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.CatmullRom(dst, p0, p1, p2, p3, tension, steps, cell)
	})
}

// Curve draws a smooth spline through every point.
func (c *Canvas) Curve(points []core.PointF, closed bool, tension float64, steps int, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.SmoothCurve(dst, points, closed, tension, steps, cell)
	})
}

// Text writes a string starting at column x, row y.
// The style glyph is ignored; each rune is its own glyph.
func (c *Canvas) Text(x, y int, text string, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.Text(dst, x, y, text, cell)
	})
}

// TextVertical writes a string downward starting at column x, row y.
func (c *Canvas) TextVertical(x, y int, text string, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.TextVertical(dst, x, y, text, cell)
	})
}

// RainbowText writes text cycling through RainbowColors, starting at the
// given offset into the cycle. Vertical text runs downward.
func (c *Canvas) RainbowText(x, y int, text string, offset int, vertical bool, s Style) {
	base := s.cell(c.palette, false)
	style := func(i int, r rune) core.Cell {
		cell := base
		cell.Glyph = r
		n := len(RainbowColors)
		cell.Color = RainbowColors[((i+offset)%n+n)%n]
		return cell
	}
	c.Draw(func(dst raster.Target) {
		if vertical {
			raster.TextVerticalFunc(dst, x, y, text, style)
			return
		}
		raster.TextFunc(dst, x, y, text, style)
	})
}

// Star draws a twelve-spoke star centered at (x, y).
func (c *Canvas) Star(x, y, size int, s Style) {
	cell := s.cell(c.palette, false)
	c.Draw(func(dst raster.Target) {
		raster.Star(dst, x, y, size, cell)
	})
}
