package host

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/core"
)

// Default timing.
const (
	DefaultFPS          = 5
	DefaultRenderFPS    = 30
	DefaultFrameTimeout = time.Second
)

// Sink receives completed frames.
type Sink interface {
	Show(f *canvas.Frame) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(f *canvas.Frame) error

// Show calls fn(f).
func (fn SinkFunc) Show(f *canvas.Frame) error {
	return fn(f)
}

// Stats describes the progress of a run.
type Stats struct {
	Frames   int
	Paused   bool
	FPS      int
	Duration time.Duration
	Err      error
}

// Runner executes one sketch on one canvas.
//
// The producer goroutine owns the Lua state: it runs setup() once, then
// clears the canvas, calls draw() and publishes a frame at the configured
// rate. Consumers read finished frames from the canvas at their own pace.
type Runner struct {
	name   string
	source string
	canvas *canvas.Canvas
	logger *log.Logger

	seed         int64
	renderFPS    int
	frameTimeout time.Duration
	maxFrames    int
	unpaced      bool

	fps     atomic.Int64
	paused  atomic.Bool
	frames  atomic.Int64
	started atomic.Bool
	step    chan struct{}

	stopOnce sync.Once
	stopCh   chan struct{}

	mu      sync.Mutex
	lastErr error
	begin   time.Time
	end     time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for sketch output and run events.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFPS sets the frame production rate.
func WithFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.fps.Store(int64(fps))
		}
	}
}

// WithRenderFPS sets how often Run polls the canvas for a new frame.
func WithRenderFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.renderFPS = fps
		}
	}
}

// WithSeed seeds randint and math.random.
func WithSeed(seed int64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithFrameTimeout bounds a single setup() or draw() call.
func WithFrameTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.frameTimeout = d
		}
	}
}

// WithMaxFrames stops the run after n frames. Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(r *Runner) {
		r.maxFrames = max(n, 0)
	}
}

// WithoutPacing produces frames back to back instead of at the frame rate.
func WithoutPacing() Option {
	return func(r *Runner) {
		r.unpaced = true
	}
}

// New creates a runner for the sketch source. name is used in error messages.
func New(name, source string, c *canvas.Canvas, opts ...Option) *Runner {
	r := &Runner{
		name:         name,
		source:       source,
		canvas:       c,
		logger:       log.New(io.Discard),
		renderFPS:    DefaultRenderFPS,
		frameTimeout: DefaultFrameTimeout,
		step:         make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
	}
	r.fps.Store(DefaultFPS)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the sketch name.
func (r *Runner) Name() string {
	return r.name
}

// Frames returns the number of frames published so far.
func (r *Runner) Frames() int {
	return int(r.frames.Load())
}

// FPS returns the current frame rate.
func (r *Runner) FPS() int {
	return int(r.fps.Load())
}

// SetFPS changes the frame rate of a running sketch.
func (r *Runner) SetFPS(fps int) {
	if fps > 0 {
		r.fps.Store(int64(fps))
	}
}

// SetPaused suspends or resumes frame production.
func (r *Runner) SetPaused(p bool) {
	r.paused.Store(p)
}

// Paused reports whether frame production is suspended.
func (r *Runner) Paused() bool {
	return r.paused.Load()
}

// Step produces one frame while paused.
func (r *Runner) Step() {
	select {
	case r.step <- struct{}{}:
	default:
	}
}

// Stop asks the producer to exit at the next frame boundary.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Err returns the error that ended the run, if any.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Stats returns a snapshot of the run progress.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	var d time.Duration
	switch {
	case r.begin.IsZero():
	case r.end.IsZero():
		d = time.Since(r.begin)
	default:
		d = r.end.Sub(r.begin)
	}
	return Stats{
		Frames:   r.Frames(),
		Paused:   r.Paused(),
		FPS:      r.FPS(),
		Duration: d,
		Err:      r.lastErr,
	}
}

// Run produces frames and delivers each new one to sink until ctx is
// cancelled, Stop is called, the frame limit is reached or the sketch fails.
// A nil sink only produces.
func (r *Runner) Run(ctx context.Context, sink Sink) error {
	if sink == nil {
		return r.Produce(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return r.Produce(gctx)
	})
	g.Go(func() error {
		return r.consume(gctx, done, sink)
	})
	return g.Wait()
}

// Produce runs the sketch on the calling goroutine. It returns nil when
// the run is stopped or cancelled and the script error otherwise.
func (r *Runner) Produce(ctx context.Context) (err error) {
	if !r.started.CompareAndSwap(false, true) {
		return ErrStopped
	}

	r.mu.Lock()
	r.begin = time.Now()
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.end = time.Now()
		r.lastErr = err
		r.mu.Unlock()
		if err != nil {
			r.logger.Error("sketch failed", "sketch", r.name, "frames", r.Frames(), "err", err)
		} else {
			r.logger.Info("sketch finished", "sketch", r.name, "frames", r.Frames())
		}
	}()

	st := newState(r.logger.With("sketch", r.name), r.seed)
	defer st.Close()
	b := installCanvas(st.L, r.canvas)

	if err := st.load(r.source, r.name, r.frameTimeout); err != nil {
		return fmt.Errorf("host: load %s: %w", r.name, err)
	}

	draw := st.function("draw")
	if draw == nil {
		return fmt.Errorf("host: %s: %w", r.name, ErrNoDrawFunc)
	}
	if setup := st.function("setup"); setup != nil {
		if err := st.call(setup, r.frameTimeout); err != nil {
			return fmt.Errorf("host: setup: %w", err)
		}
	}
	r.logger.Debug("sketch started", "sketch", r.name, "fps", r.FPS())

	frame := func() error {
		n := r.Frames() + 1
		r.canvas.BeginFrame()
		b.setFrame(st.L, n)
		if err := st.call(draw, r.frameTimeout); err != nil {
			return fmt.Errorf("host: draw frame %d: %w", n, err)
		}
		r.canvas.EndFrame()
		r.frames.Add(1)
		return nil
	}

	if r.unpaced {
		for r.maxFrames == 0 || r.Frames() < r.maxFrames {
			if r.stopping(ctx) {
				return nil
			}
			if err := frame(); err != nil {
				return err
			}
		}
		return nil
	}

	if !r.Paused() {
		if err := frame(); err != nil {
			return err
		}
	}

	fps := r.FPS()
	ticker := time.NewTicker(interval(fps))
	defer ticker.Stop()

	for r.maxFrames == 0 || r.Frames() < r.maxFrames {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stopCh:
			return nil
		case <-r.step:
			if err := frame(); err != nil {
				return err
			}
		case <-ticker.C:
			if r.Paused() {
				continue
			}
			if err := frame(); err != nil {
				return err
			}
		}

		if cur := r.FPS(); cur != fps {
			fps = cur
			ticker.Reset(interval(fps))
		}
	}
	return nil
}

// stopping reports whether the run should end.
func (r *Runner) stopping(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-r.stopCh:
		return true
	default:
		return false
	}
}

// consume polls the canvas and hands every new frame to sink.
// After the producer finishes it flushes the last frame and returns.
func (r *Runner) consume(ctx context.Context, done <-chan struct{}, sink Sink) error {
	ticker := time.NewTicker(interval(r.renderFPS))
	defer ticker.Stop()

	var last uint64
	show := func() error {
		f := r.canvas.Snapshot()
		if f.Seq() == last {
			return nil
		}
		last = f.Seq()
		if err := sink.Show(f); err != nil {
			return fmt.Errorf("host: show frame %d: %w", f.Seq(), err)
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return show()
		case <-ticker.C:
			if err := show(); err != nil {
				return err
			}
		}
	}
}

func interval(fps int) time.Duration {
	return core.RuntimeConfig{FPS: fps}.FrameInterval()
}
