package host

import (
	"strings"
	"testing"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

func TestBridgeSetPixel(t *testing.T) {
	c := newCanvas(t, 5, 10)
	_, err := runFrames(t, c, `function draw() canvas.set_pixel(2, 7, "@", "cyan") end`, 1)
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	if got := c.Snapshot().Get(2, 7); got.Glyph != '@' || got.Color != core.ColorCyan {
		t.Errorf("Get(2, 7) = %+v", got)
	}
}

func TestBridgeStyleOptions(t *testing.T) {
	c := newCanvas(t, 5, 10)
	_, err := runFrames(t, c, `
function draw()
  canvas.point(1, 1, {char = "x", color = "bright_red", bg = "bg_blue", effect = {"bold", "underline"}})
  canvas.point(2, 1, {effect = "dim+italic"})
end
`, 1)
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	f := c.Snapshot()
	got := f.Get(1, 1)
	want := core.Cell{Glyph: 'x', Color: core.ColorBrightRed, Background: core.ColorBlue,
		Effects: core.EffectBold | core.EffectUnderline}
	if got != want {
		t.Errorf("Get(1, 1) = %+v, expected %+v", got, want)
	}
	if !f.Get(1, 2).Effects.Has(core.EffectDim | core.EffectItalic) {
		t.Errorf("effect string not applied: %+v", f.Get(1, 2))
	}
}

func TestBridgeUnknownEffect(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_, err := runFrames(t, c, `function draw() canvas.point(0, 0, {effect = "sparkle"}) end`, 1)
	if err == nil || !strings.Contains(err.Error(), "unknown effect") {
		t.Errorf("Produce() error = %v, expected unknown effect", err)
	}
}

func TestBridgeUnknownBackground(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_, err := runFrames(t, c, `function draw() canvas.point(0, 0, {char = "x", bg = "bg_plaid"}) end`, 1)
	if err == nil || !strings.Contains(err.Error(), "style background") {
		t.Errorf("Produce() error = %v, expected a style background error", err)
	}
}

func TestBridgeDimensions(t *testing.T) {
	c := newCanvas(t, 7, 13)
	_, err := runFrames(t, c, `
function draw()
  assert(canvas.rows == 7, "rows")
  assert(canvas.cols == 13, "cols")
  assert(#colors > 10, "colors")
end
`, 1)
	if err != nil {
		t.Errorf("dimension check failed: %v", err)
	}
}

func TestBridgeShapes(t *testing.T) {
	c := newCanvas(t, 20, 40)
	_, err := runFrames(t, c, `
function draw()
  canvas.line(0, 0, 5, 0)
  canvas.circle(10, 10, 3, {filled = true})
  canvas.arc(30, 10, 4, 0, math.pi / 2)
  canvas.ellipse(20, 15, 10, 4)
  canvas.square(35, 0, 3)
  canvas.triangle(0, 19, 6, 19, 3, 14, {filled = true})
  canvas.bezier(0, 5, 5, 0, 10, 10, 15, 5, {steps = 30})
  canvas.quad_bezier(0, 8, 5, 2, 10, 8)
  canvas.catmull_rom(0, 0, 2, 2, 8, 2, 10, 0, {tension = 0.5})
  canvas.curve({{0, 12}, {5, 10}, {10, 12}, {15, 10}}, {closed = true})
  canvas.polyline({{x = 20, y = 0}, {x = 25, y = 4}}, {})
  canvas.star(30, 15, 4)
  canvas.rainbow_text(0, 1, "hello")
  canvas.text(39, 5, "up", {vertical = true})
end
`, 1)
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	f := c.Snapshot()
	if f.Get(0, 5).Glyph != '*' {
		t.Error("line end point missing")
	}
	if f.Get(10, 10).Glyph != '#' {
		t.Error("filled circle center missing")
	}
	if f.Get(1, 0).Color != core.ColorRed || !f.Get(1, 0).Effects.Has(core.EffectBold) {
		t.Errorf("rainbow text should start red and bold, got %+v", f.Get(1, 0))
	}
	if f.Get(6, 39).Glyph != 'p' {
		t.Errorf("vertical text glyph = %q, expected 'p'", f.Get(6, 39).Glyph)
	}
}

func TestBridgeBadPoints(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_, err := runFrames(t, c, `function draw() canvas.curve({1, 2, 3}) end`, 1)
	if err == nil {
		t.Error("curve with malformed points should fail")
	}
}

func TestBridgeClear(t *testing.T) {
	c := newCanvas(t, 3, 3)
	_, err := runFrames(t, c, `
function draw()
  canvas.rect(0, 0, 3, 3, {filled = true})
  canvas.clear()
  canvas.point(1, 1)
end
`, 1)
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	if c.Snapshot().Count() != 1 {
		t.Errorf("clear() should wipe earlier drawing, count = %d", c.Snapshot().Count())
	}
}
