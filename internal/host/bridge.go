package host

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/core"
	"github.com/vovakirdan/ascii-engine/internal/raster"
)

// DefaultCurveSteps is the sample count of curves drawn without a steps option.
const DefaultCurveSteps = 50

// drawOpts is the decoded options table of a drawing call.
type drawOpts struct {
	filled   bool
	closed   bool
	vertical bool
	steps    int
	tension  float64
	offset   int
	style    canvas.Style
}

// bridge exposes a canvas to Lua as the global "canvas" table.
type bridge struct {
	c   *canvas.Canvas
	tbl *lua.LTable
}

// installCanvas registers the canvas API and the colors list.
func installCanvas(L *lua.LState, c *canvas.Canvas) *bridge {
	b := &bridge{c: c}
	b.tbl = L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"set_pixel":    b.setPixel,
		"point":        b.point,
		"line":         b.line,
		"polyline":     b.polyline,
		"circle":       b.circle,
		"arc":          b.arc,
		"ellipse":      b.ellipse,
		"rect":         b.rect,
		"square":       b.square,
		"triangle":     b.triangle,
		"bezier":       b.bezier,
		"quad_bezier":  b.quadBezier,
		"catmull_rom":  b.catmullRom,
		"curve":        b.curve,
		"text":         b.text,
		"rainbow_text": b.rainbowText,
		"star":         b.star,
		"clear":        b.clear,
	})
	b.tbl.RawSetString("rows", lua.LNumber(c.Rows()))
	b.tbl.RawSetString("cols", lua.LNumber(c.Cols()))
	b.tbl.RawSetString("frame", lua.LNumber(0))
	L.SetGlobal("canvas", b.tbl)

	colors := L.NewTable()
	for _, col := range core.AllColors() {
		colors.Append(lua.LString(col.String()))
	}
	L.SetGlobal("colors", colors)
	L.SetGlobal("frame", lua.LNumber(0))
	return b
}

// setFrame publishes the frame counter to the sketch.
func (b *bridge) setFrame(L *lua.LState, n int) {
	b.tbl.RawSetString("frame", lua.LNumber(n))
	L.SetGlobal("frame", lua.LNumber(n))
}

// options decodes the optional options table at stack index n.
// Unknown color or effect names raise a Lua error.
func options(L *lua.LState, n int) drawOpts {
	o := drawOpts{steps: DefaultCurveSteps, tension: raster.DefaultTension}
	tbl := L.OptTable(n, nil)
	if tbl == nil {
		return o
	}

	o.filled = lua.LVAsBool(tbl.RawGetString("filled"))
	o.closed = lua.LVAsBool(tbl.RawGetString("closed"))
	o.vertical = lua.LVAsBool(tbl.RawGetString("vertical"))

	if v, ok := tbl.RawGetString("steps").(lua.LNumber); ok {
		o.steps = int(v)
	}
	if v, ok := tbl.RawGetString("tension").(lua.LNumber); ok {
		o.tension = float64(v)
	}
	if v, ok := tbl.RawGetString("offset").(lua.LNumber); ok {
		o.offset = int(v)
	}
	var glyph rune
	if v, ok := tbl.RawGetString("char").(lua.LString); ok {
		for _, r := range string(v) {
			glyph = r
			break
		}
	}

	var color, bg, effect string
	if v := tbl.RawGetString("color"); v != lua.LNil {
		color = v.String()
	}
	if v := tbl.RawGetString("bg"); v != lua.LNil {
		bg = v.String()
	}
	if v := tbl.RawGetString("effect"); v != lua.LNil {
		effect = effectString(v)
	}
	style, err := canvas.ParseStyle(0, color, bg, effect)
	if err != nil {
		L.RaiseError("%v", err)
	}
	o.style = style.WithGlyph(glyph)
	return o
}

// effectString accepts "bold+underline" or {"bold", "underline"}.
func effectString(v lua.LValue) string {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return v.String()
	}
	var names []string
	tbl.ForEach(func(_, name lua.LValue) {
		names = append(names, name.String())
	})
	return strings.Join(names, "+")
}

// checkPointF reads the pair of numbers at n and n+1.
func checkPointF(L *lua.LState, n int) core.PointF {
	return core.PointF{X: float64(L.CheckNumber(n)), Y: float64(L.CheckNumber(n + 1))}
}

// checkPoints reads a list of points written as {x, y} or {x=, y=}.
func checkPoints(L *lua.LState, n int) []core.PointF {
	tbl := L.CheckTable(n)
	pts := make([]core.PointF, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		p, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(n, "points must be tables")
			return nil
		}
		x, y := p.RawGetInt(1), p.RawGetInt(2)
		if x == lua.LNil {
			x, y = p.RawGetString("x"), p.RawGetString("y")
		}
		xn, xok := x.(lua.LNumber)
		yn, yok := y.(lua.LNumber)
		if !xok || !yok {
			L.ArgError(n, "point needs numeric x and y")
			return nil
		}
		pts = append(pts, core.PointF{X: float64(xn), Y: float64(yn)})
	}
	return pts
}

func (b *bridge) setPixel(L *lua.LState) int {
	row, col := L.CheckInt(1), L.CheckInt(2)
	glyph := rune(0)
	for _, r := range L.OptString(3, "") {
		glyph = r
		break
	}
	color, err := core.ParseColor(L.OptString(4, ""))
	if err != nil {
		L.RaiseError("%v", err)
	}
	b.c.SetPixel(row, col, glyph, color)
	return 0
}

func (b *bridge) point(L *lua.LState) int {
	o := options(L, 3)
	b.c.Point(L.CheckInt(1), L.CheckInt(2), o.style)
	return 0
}

func (b *bridge) line(L *lua.LState) int {
	o := options(L, 5)
	b.c.Line(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), o.style)
	return 0
}

func (b *bridge) polyline(L *lua.LState) int {
	pts := checkPoints(L, 1)
	o := options(L, 2)
	ip := make([]core.Point, len(pts))
	for i, p := range pts {
		ip[i] = p.Round()
	}
	b.c.Polyline(ip, o.closed, o.style)
	return 0
}

func (b *bridge) circle(L *lua.LState) int {
	o := options(L, 4)
	b.c.Circle(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), o.filled, o.style)
	return 0
}

func (b *bridge) arc(L *lua.LState) int {
	o := options(L, 6)
	b.c.Arc(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3),
		float64(L.CheckNumber(4)), float64(L.CheckNumber(5)), o.filled, o.style)
	return 0
}

func (b *bridge) ellipse(L *lua.LState) int {
	o := options(L, 5)
	b.c.Ellipse(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), o.filled, o.style)
	return 0
}

func (b *bridge) rect(L *lua.LState) int {
	o := options(L, 5)
	b.c.Rect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), o.filled, o.style)
	return 0
}

func (b *bridge) square(L *lua.LState) int {
	o := options(L, 4)
	b.c.Square(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), o.filled, o.style)
	return 0
}

func (b *bridge) triangle(L *lua.LState) int {
	o := options(L, 7)
	b.c.Triangle(
		core.P(L.CheckInt(1), L.CheckInt(2)),
		core.P(L.CheckInt(3), L.CheckInt(4)),
		core.P(L.CheckInt(5), L.CheckInt(6)),
		o.filled, o.style)
	return 0
}

func (b *bridge) bezier(L *lua.LState) int {
	o := options(L, 9)
	b.c.Bezier(checkPointF(L, 1), checkPointF(L, 3), checkPointF(L, 5), checkPointF(L, 7), o.steps, o.style)
	return 0
}

func (b *bridge) quadBezier(L *lua.LState) int {
	o := options(L, 7)
	b.c.QuadBezier(checkPointF(L, 1), checkPointF(L, 3), checkPointF(L, 5), o.steps, o.style)
	return 0
}

func (b *bridge) catmullRom(L *lua.LState) int {
	o := options(L, 9)
	b.c.CatmullRom(checkPointF(L, 1), checkPointF(L, 3), checkPointF(L, 5), checkPointF(L, 7),
		o.tension, o.steps, o.style)
	return 0
}

func (b *bridge) curve(L *lua.LState) int {
	pts := checkPoints(L, 1)
	o := options(L, 2)
	b.c.Curve(pts, o.closed, o.tension, o.steps, o.style)
	return 0
}

func (b *bridge) text(L *lua.LState) int {
	o := options(L, 4)
	x, y, s := L.CheckInt(1), L.CheckInt(2), L.CheckString(3)
	if o.vertical {
		b.c.TextVertical(x, y, s, o.style)
		return 0
	}
	b.c.Text(x, y, s, o.style)
	return 0
}

func (b *bridge) rainbowText(L *lua.LState) int {
	o := options(L, 4)
	if L.Get(4) == lua.LNil {
		o.style.Effects = core.EffectBold
	}
	b.c.RainbowText(L.CheckInt(1), L.CheckInt(2), L.CheckString(3), o.offset, o.vertical, o.style)
	return 0
}

func (b *bridge) star(L *lua.LState) int {
	o := options(L, 4)
	b.c.Star(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), o.style)
	return 0
}

func (b *bridge) clear(L *lua.LState) int {
	b.c.Clear()
	return 0
}
