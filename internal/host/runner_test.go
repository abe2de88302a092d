package host

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/core"
)

func newCanvas(t *testing.T, rows, cols int) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(rows, cols)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}
	return c
}

// runFrames produces n frames of source without pacing.
func runFrames(t *testing.T, c *canvas.Canvas, source string, n int, opts ...Option) (*Runner, error) {
	t.Helper()
	opts = append([]Option{WithMaxFrames(n), WithoutPacing()}, opts...)
	r := New("test", source, c, opts...)
	err := r.Produce(context.Background())
	return r, err
}

func TestRunnerDrawsFrames(t *testing.T) {
	c := newCanvas(t, 10, 20)
	r, err := runFrames(t, c, `
function draw()
  canvas.rect(0, 0, 4, 3, {filled = true, color = "red"})
end
`, 3)
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	if r.Frames() != 3 {
		t.Errorf("Frames() = %d, expected 3", r.Frames())
	}

	f := c.Snapshot()
	if f.Seq() != 3 {
		t.Errorf("Seq() = %d, expected 3", f.Seq())
	}
	if f.Count() != 12 {
		t.Errorf("frame has %d painted cells, expected 12", f.Count())
	}
	if got := f.Get(1, 1); got.Glyph != '#' || got.Color != core.ColorRed {
		t.Errorf("Get(1, 1) = %+v, expected a red fill cell", got)
	}
}

func TestRunnerClearsBetweenFrames(t *testing.T) {
	c := newCanvas(t, 3, 10)
	_, err := runFrames(t, c, `
function draw()
  canvas.point(frame, 0)
end
`, 4)
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	f := c.Snapshot()
	if f.Count() != 1 {
		t.Errorf("frame has %d painted cells, expected only the latest point", f.Count())
	}
	if f.Get(0, 4).Glyph != '*' {
		t.Error("expected the point of frame 4 at column 4")
	}
}

func TestRunnerSetupRunsOnce(t *testing.T) {
	c := newCanvas(t, 2, 10)
	_, err := runFrames(t, c, `
local calls = 0
local n = 0
function setup()
  calls = calls + 1
end
function draw()
  n = n + 1
  canvas.text(0, 0, calls .. ":" .. n)
end
`, 4)
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	if got := strings.TrimSpace(strings.Split(c.Snapshot().String(), "\n")[0]); got != "1:4" {
		t.Errorf("first row = %q, expected %q", got, "1:4")
	}
}

func TestRunnerNoDrawFunc(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_, err := runFrames(t, c, `function setup() end`, 1)
	if !errors.Is(err, ErrNoDrawFunc) {
		t.Errorf("Produce() error = %v, expected ErrNoDrawFunc", err)
	}
}

func TestRunnerCompileError(t *testing.T) {
	c := newCanvas(t, 2, 2)
	r, err := runFrames(t, c, `function draw( end`, 1)
	if err == nil {
		t.Fatal("Produce() should fail on a syntax error")
	}
	if r.Err() == nil {
		t.Error("Err() should record the failure")
	}
}

func TestRunnerUnknownColorSurfaces(t *testing.T) {
	c := newCanvas(t, 5, 5)
	_, err := runFrames(t, c, `
function draw()
  canvas.circle(2, 2, 1, {color = "ultraviolet"})
end
`, 1)
	if err == nil {
		t.Fatal("Produce() should fail for an unknown color")
	}
	if !strings.Contains(err.Error(), "unknown color") {
		t.Errorf("error %q should name the unknown color", err)
	}
	if !strings.Contains(err.Error(), "draw frame 1") {
		t.Errorf("error %q should name the frame", err)
	}
}

func TestRunnerFailedFrameIsNotPublished(t *testing.T) {
	c := newCanvas(t, 4, 4)
	_, err := runFrames(t, c, `
function draw()
  if frame == 2 then
    canvas.rect(0, 0, 4, 4, {filled = true})
    error("boom")
  end
  canvas.point(0, 0, {char = "1"})
end
`, 5)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Produce() error = %v, expected boom", err)
	}
	f := c.Snapshot()
	if f.Seq() != 1 {
		t.Errorf("Seq() = %d, expected the last completed frame 1", f.Seq())
	}
	if f.Count() != 1 || f.Get(0, 0).Glyph != '1' {
		t.Errorf("snapshot shows a partial frame:\n%s", f)
	}
}

func TestRunnerFrameTimeout(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_, err := runFrames(t, c, `
function draw()
  while true do end
end
`, 1, WithFrameTimeout(50*time.Millisecond))
	if !errors.Is(err, ErrFrameTimeout) {
		t.Errorf("Produce() error = %v, expected ErrFrameTimeout", err)
	}
}

func TestRunnerSandbox(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_, err := runFrames(t, c, `
function draw()
  assert(io == nil, "io")
  assert(os == nil, "os")
  assert(dofile == nil and loadfile == nil, "file loaders")
  assert(load == nil and loadstring == nil, "string loaders")
  assert(require == nil, "require")
  assert(math ~= nil and string ~= nil and table ~= nil, "safe libs")
end
`, 1)
	if err != nil {
		t.Errorf("sandbox check failed: %v", err)
	}
}

func TestRunnerSeedIsDeterministic(t *testing.T) {
	const source = `
function draw()
  for i = 1, 20 do
    canvas.point(randint(0, canvas.cols - 1), randint(0, canvas.rows - 1))
    canvas.point(math.random(canvas.cols) - 1, 0, {char = "o"})
  end
end
`
	a := newCanvas(t, 10, 30)
	b := newCanvas(t, 10, 30)
	if _, err := runFrames(t, a, source, 2, WithSeed(42)); err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	if _, err := runFrames(t, b, source, 2, WithSeed(42)); err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	if a.Snapshot().String() != b.Snapshot().String() {
		t.Error("same seed should produce the same frames")
	}
}

func TestRunnerRandintRange(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_, err := runFrames(t, c, `
function draw()
  for i = 1, 200 do
    local v = randint(3, 5)
    assert(v >= 3 and v <= 5 and v == math.floor(v), "out of range: " .. v)
  end
end
`, 1)
	if err != nil {
		t.Errorf("randint check failed: %v", err)
	}

	_, err = runFrames(t, newCanvas(t, 2, 2), `function draw() randint(5, 1) end`, 1)
	if err == nil {
		t.Error("randint with an empty range should fail")
	}
}

func TestRunnerRunDeliversFrames(t *testing.T) {
	c := newCanvas(t, 4, 8)
	r := New("sink", `function draw() canvas.text(0, 0, tostring(frame)) end`, c,
		WithFPS(60), WithRenderFPS(60), WithMaxFrames(5))

	var mu sync.Mutex
	var seqs []uint64
	sink := SinkFunc(func(f *canvas.Frame) error {
		mu.Lock()
		defer mu.Unlock()
		seqs = append(seqs, f.Seq())
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Run(ctx, sink); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seqs) == 0 {
		t.Fatal("sink received no frames")
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Errorf("frames out of order: %v", seqs)
		}
	}
	if seqs[len(seqs)-1] != 5 {
		t.Errorf("last delivered frame = %d, expected 5", seqs[len(seqs)-1])
	}
}

func TestRunnerSinkError(t *testing.T) {
	c := newCanvas(t, 2, 2)
	r := New("sink", `function draw() end`, c, WithFPS(60), WithRenderFPS(60))
	sinkErr := errors.New("display gone")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := r.Run(ctx, SinkFunc(func(*canvas.Frame) error { return sinkErr }))
	if !errors.Is(err, sinkErr) {
		t.Errorf("Run() error = %v, expected the sink error", err)
	}
}

func TestRunnerStop(t *testing.T) {
	c := newCanvas(t, 2, 2)
	r := New("stop", `function draw() end`, c, WithFPS(50))

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background(), nil) }()

	deadline := time.After(5 * time.Second)
	for r.Frames() < 2 {
		select {
		case <-deadline:
			t.Fatal("runner made no progress")
		case <-time.After(5 * time.Millisecond):
		}
	}
	r.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after Stop = %v, expected nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}

	if err := r.Produce(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("second Produce() error = %v, expected ErrStopped", err)
	}
}

func TestRunnerPauseAndStep(t *testing.T) {
	c := newCanvas(t, 2, 2)
	r := New("step", `function draw() end`, c, WithFPS(60), WithMaxFrames(2))
	r.SetPaused(true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		for r.Frames() < 2 && ctx.Err() == nil {
			r.Step()
			time.Sleep(5 * time.Millisecond)
		}
	}()

	if err := r.Produce(ctx); err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("paused runner did not advance on Step")
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, expected 2", r.Frames())
	}
	if !r.Stats().Paused {
		t.Error("Stats should report the pause")
	}
}

func TestCompile(t *testing.T) {
	if err := Compile("ok", "function draw() canvas.point(0, 0) end"); err != nil {
		t.Errorf("Compile(valid) failed: %v", err)
	}
	if err := Compile("bad", "function draw( end"); err == nil {
		t.Error("expected a syntax error")
	}
}
