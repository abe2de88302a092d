package raster

import "github.com/vovakirdan/ascii-engine/internal/core"

// DefaultTension is the tension of the classic Catmull-Rom spline.
const DefaultTension = 0.5

// Curve is a parametric curve defined on t in [0, 1].
type Curve interface {
	Eval(t float64) core.PointF
}

// QuadBez is a quadratic Bezier curve from P0 to P2 with control point P1.
type QuadBez struct {
	P0, P1, P2 core.PointF
}

// Eval evaluates the quadratic Bernstein polynomial at t.
func (q QuadBez) Eval(t float64) core.PointF {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return core.PointF{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// CubicBez is a cubic Bezier curve from P0 to P3 with control points P1, P2.
type CubicBez struct {
	P0, P1, P2, P3 core.PointF
}

// Eval evaluates the cubic Bernstein polynomial at t.
func (c CubicBez) Eval(t float64) core.PointF {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return core.PointF{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// CatmullRomSeg is the spline segment between P1 and P2; P0 and P3 only
// shape the tangents. Tension scales the tangents (0.5 is classic
// Catmull-Rom, 0 gives straight chords between P1 and P2).
type CatmullRomSeg struct {
	P0, P1, P2, P3 core.PointF
	Tension        float64
}

// Eval evaluates the tension-weighted cardinal basis at t.
func (s CatmullRomSeg) Eval(t float64) core.PointF {
	return core.PointF{
		X: cardinal(s.P0.X, s.P1.X, s.P2.X, s.P3.X, s.Tension, t),
		Y: cardinal(s.P0.Y, s.P1.Y, s.P2.Y, s.P3.Y, s.Tension, t),
	}
}

func cardinal(p0, p1, p2, p3, tau, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return p1 +
		(-tau*p0+tau*p2)*t +
		(2*tau*p0+(tau-3)*p1+(3-2*tau)*p2-tau*p3)*t2 +
		(-tau*p0+(2-tau)*p1+(tau-2)*p2+tau*p3)*t3
}

// Sample writes the rounded position of c at steps+1 evenly spaced values
// of t, endpoints included. Consecutive samples are not joined, so steps
// must be large enough for the curve's length to avoid gaps.
// A non-positive step count draws nothing.
func Sample(dst Target, c Curve, steps int, cell core.Cell) {
	if steps <= 0 {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := c.Eval(t).Round()
		dst.Set(p.Y, p.X, cell)
	}
}

// CubicBezier samples the cubic Bezier curve p0-c1-c2-p3.
func CubicBezier(dst Target, p0, c1, c2, p3 core.PointF, steps int, cell core.Cell) {
	Sample(dst, CubicBez{P0: p0, P1: c1, P2: c2, P3: p3}, steps, cell)
}

// QuadBezier samples the quadratic Bezier curve p0-c-p2.
func QuadBezier(dst Target, p0, c, p2 core.PointF, steps int, cell core.Cell) {
	Sample(dst, QuadBez{P0: p0, P1: c, P2: p2}, steps, cell)
}

// CatmullRom samples the spline segment from p1 to p2.
func CatmullRom(dst Target, p0, p1, p2, p3 core.PointF, tension float64, steps int, cell core.Cell) {
	Sample(dst, CatmullRomSeg{P0: p0, P1: p1, P2: p2, P3: p3, Tension: tension}, steps, cell)
}

// SmoothCurve draws a Catmull-Rom spline through points.
//
// With four or more points the curve is split into 4-point windows, one
// segment per window, and steps is shared between the segments. Open
// curves repeat the first and last points so the spline reaches both
// ends; closed curves wrap around. Non-positive steps draw nothing. With
// fewer than four points the points are joined by straight lines instead.
func SmoothCurve(dst Target, points []core.PointF, closed bool, tension float64, steps int, cell core.Cell) {
	if len(points) < 4 {
		pts := make([]core.Point, len(points))
		for i, p := range points {
			pts[i] = p.Round()
		}
		Polyline(dst, pts, closed, cell)
		return
	}

	if steps <= 0 {
		return
	}
	windows := catmullRomWindows(points, closed)
	perSegment := max(1, steps/len(windows))
	for _, w := range windows {
		CatmullRom(dst, w[0], w[1], w[2], w[3], tension, perSegment, cell)
	}
}

// catmullRomWindows builds the control-point windows for SmoothCurve.
func catmullRomWindows(points []core.PointF, closed bool) [][4]core.PointF {
	n := len(points)
	if closed {
		windows := make([][4]core.PointF, n)
		for i := 0; i < n; i++ {
			windows[i] = [4]core.PointF{
				points[(i-1+n)%n],
				points[i],
				points[(i+1)%n],
				points[(i+2)%n],
			}
		}
		return windows
	}

	ext := make([]core.PointF, 0, n+2)
	ext = append(ext, points[0])
	ext = append(ext, points...)
	ext = append(ext, points[n-1])

	windows := make([][4]core.PointF, 0, n-1)
	for i := 0; i+3 < len(ext); i++ {
		windows = append(windows, [4]core.PointF{ext[i], ext[i+1], ext[i+2], ext[i+3]})
	}
	return windows
}
