package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/config"
	"github.com/vovakirdan/ascii-engine/internal/core"
	"github.com/vovakirdan/ascii-engine/internal/host"
	"github.com/vovakirdan/ascii-engine/internal/registry"
	"github.com/vovakirdan/ascii-engine/internal/render"
	"github.com/vovakirdan/ascii-engine/internal/storage"
)

// statusLines is the number of rows below the canvas (status bar and help).
const statusLines = 2

// PreviewConfig holds the settings of a live preview.
type PreviewConfig struct {
	Width, Height int // Window size; used when Rows or Cols is 0
	Rows, Cols    int // Canvas size, 0 = fit the window

	FPS          int
	RenderFPS    int
	FrameTimeout time.Duration
	Seed         int64 // 0 = time based, new on every restart

	Palette       core.Palette
	Profile       termenv.Profile
	ScreenshotDir string // Empty disables screenshots

	// Context bounds every run; cancelling it stops the sketch.
	Context context.Context

	Logger *log.Logger
	Theme  *Theme
}

// PreviewConfigFrom builds a preview config from the engine configuration.
func PreviewConfigFrom(cfg config.EngineConfig, seed int64, profile termenv.Profile) PreviewConfig {
	def := core.DefaultPalette()
	return PreviewConfig{
		Rows:         cfg.Canvas.Rows,
		Cols:         cfg.Canvas.Cols,
		FPS:          cfg.Animation.FPS,
		RenderFPS:    cfg.Animation.RenderFPS,
		FrameTimeout: time.Duration(cfg.Animation.FrameTimeoutMs) * time.Millisecond,
		Seed:         seed,
		Palette: core.Palette{
			Blank:  config.Glyph(cfg.Canvas.Blank, def.Blank),
			Stroke: config.Glyph(cfg.Canvas.Stroke, def.Stroke),
			Fill:   config.Glyph(cfg.Canvas.Fill, def.Fill),
		},
		Profile:       profile,
		ScreenshotDir: filepath.Join(filepath.Dir(config.ExpandHome(cfg.Storage.DBPath)), "screenshots"),
	}
}

var errScreenshotsDisabled = errors.New("screenshots are disabled")

// runDoneMsg reports that the producer of a run has returned.
type runDoneMsg struct {
	gen int
	err error
}

// run is one execution of the sketch on its own canvas.
type run struct {
	gen    int
	canvas *canvas.Canvas
	runner *host.Runner
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// PreviewModel is the Bubble Tea model that plays a sketch live.
//
// The sketch runs on its own goroutine and publishes finished frames to
// the canvas. On every tick the model takes the latest snapshot, so the
// view never observes a half-drawn frame.
type PreviewModel struct {
	sketch   registry.Sketch
	store    *storage.Store
	config   PreviewConfig
	logger   *log.Logger
	renderer *render.Renderer
	theme    Theme
	keys     KeyMap
	help     help.Model

	run   *run
	gen   int
	frame *canvas.Frame
	input core.InputFrame

	status     string
	err        error
	finished   bool
	quitting   bool
	backToMenu bool
	standalone bool
}

// NewPreviewModel creates a preview for the sketch and starts its first run.
func NewPreviewModel(sketch registry.Sketch, store *storage.Store, cfg PreviewConfig) (PreviewModel, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = host.DefaultFPS
	}
	if cfg.RenderFPS <= 0 {
		cfg.RenderFPS = max(cfg.FPS, host.DefaultRenderFPS)
	}
	if cfg.Palette == (core.Palette{}) {
		cfg.Palette = core.DefaultPalette()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	theme := DefaultTheme()
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}

	m := PreviewModel{
		sketch:   sketch,
		store:    store,
		config:   cfg,
		logger:   logger,
		renderer: render.NewRenderer(cfg.Profile),
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    core.NewInputFrame(),
	}
	m.help.Width = cfg.Width
	if err := m.start(); err != nil {
		return PreviewModel{}, err
	}
	return m, nil
}

// canvasSize returns the canvas dimensions for the current window.
func (m PreviewModel) canvasSize() (rows, cols int) {
	rows, cols = m.config.Rows, m.config.Cols
	if rows <= 0 {
		rows = m.config.Height - statusLines
		if m.config.Height <= 0 {
			rows = core.DefaultConfig().Rows
		}
	}
	if cols <= 0 {
		cols = m.config.Width
		if cols <= 0 {
			cols = core.DefaultConfig().Cols
		}
	}
	return max(rows, 1), max(cols, 1)
}

// start creates a fresh canvas and runner. The producer is launched by
// the command returned from produceCmd.
func (m *PreviewModel) start() error {
	rows, cols := m.canvasSize()
	c, err := canvas.New(rows, cols, canvas.WithPalette(m.config.Palette))
	if err != nil {
		return fmt.Errorf("tui: preview canvas: %w", err)
	}

	seed := m.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := m.config.FPS
	if m.run != nil {
		fps = m.run.runner.FPS()
	}

	m.gen++
	ctx, cancel := context.WithCancel(m.config.Context)
	m.run = &run{
		gen:    m.gen,
		canvas: c,
		runner: host.New(m.sketch.ID, m.sketch.Source, c,
			host.WithLogger(m.logger),
			host.WithFPS(fps),
			host.WithSeed(seed),
			host.WithFrameTimeout(m.config.FrameTimeout),
		),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.frame = c.Snapshot()
	m.err = nil
	m.finished = false
	return nil
}

// produceCmd runs the current sketch until it ends and records the run.
func (m PreviewModel) produceCmd() tea.Cmd {
	rn := m.run
	store, logger := m.store, m.logger
	return func() tea.Msg {
		defer close(rn.done)
		err := rn.runner.Produce(rn.ctx)
		RecordRun(store, logger, rn.runner)
		return runDoneMsg{gen: rn.gen, err: err}
	}
}

// stop asks the current run to end at the next frame boundary.
func (m PreviewModel) stop() {
	if m.run == nil {
		return
	}
	m.run.runner.Stop()
	m.run.cancel()
}

// Wait stops the current run and blocks until its producer returned,
// or until timeout elapses.
func (m PreviewModel) Wait(timeout time.Duration) {
	if m.run == nil {
		return
	}
	m.stop()
	select {
	case <-m.run.done:
	case <-time.After(timeout):
		m.logger.Warn("sketch did not stop in time", "sketch", m.sketch.ID)
	}
}

// RecordRun stores the outcome of a finished run. Failures are logged only.
func RecordRun(store *storage.Store, logger *log.Logger, r *host.Runner) {
	if store == nil {
		return
	}
	st := r.Stats()
	rec := storage.RunRecord{
		SketchName: r.Name(),
		Frames:     st.Frames,
		FPS:        st.FPS,
		DurationMs: st.Duration.Milliseconds(),
	}
	if st.Err != nil {
		rec.Error = st.Err.Error()
	}
	if _, err := store.SaveRun(rec); err != nil {
		logger.Warn("could not record run", "sketch", r.Name(), "error", err)
	}
}

// Init starts the producer and the refresh loop.
func (m PreviewModel) Init() tea.Cmd {
	return tea.Batch(m.produceCmd(), tickCmd(m.config.RenderFPS))
}

// Update handles messages and updates the model state.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case runDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.finished = true
		m.err = msg.err
		m.frame = m.run.canvas.Snapshot()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PreviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.quitting = true
		m.stop()
		return m, tea.Quit
	}

	if m.input.Has(core.ActionBack) {
		m.input.Clear()
		m.stop()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleResize refits the canvas when it follows the window size.
func (m PreviewModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.Width = msg.Width
	m.config.Height = msg.Height
	m.help.Width = msg.Width

	rows, cols := m.canvasSize()
	if rows == m.run.canvas.Rows() && cols == m.run.canvas.Cols() {
		return m, nil
	}

	// The canvas has a fixed size, so a new one means a new run.
	m.stop()
	if err := m.start(); err != nil {
		m.err = err
		return m, nil
	}
	return m, m.produceCmd()
}

// handleTick applies pending actions and picks up the latest frame.
func (m PreviewModel) handleTick() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	r := m.run.runner

	switch {
	case m.input.Has(core.ActionRestart):
		m.stop()
		if err := m.start(); err != nil {
			m.err = err
		} else {
			m.status = "restarted"
			cmd = m.produceCmd()
		}
	case m.input.Has(core.ActionPause):
		r.SetPaused(!r.Paused())
		m.status = ""
	case m.input.Has(core.ActionStep):
		if !r.Paused() {
			r.SetPaused(true)
		}
		r.Step()
	case m.input.Has(core.ActionFaster):
		r.SetFPS(config.StepFPS(r.FPS(), 1))
		m.status = fmt.Sprintf("%d fps", r.FPS())
	case m.input.Has(core.ActionSlower):
		r.SetFPS(config.StepFPS(r.FPS(), -1))
		m.status = fmt.Sprintf("%d fps", r.FPS())
	case m.input.Has(core.ActionScreenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
	}
	m.input.Clear()

	m.frame = m.run.canvas.Snapshot()
	return m, tea.Batch(cmd, tickCmd(m.config.RenderFPS))
}

// saveScreenshot writes the displayed frame as plain text.
func (m PreviewModel) saveScreenshot() (string, error) {
	dir := m.config.ScreenshotDir
	if dir == "" {
		return "", errScreenshotsDisabled
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%d.txt", m.sketch.ID, timestamp, m.frame.Seq())
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(render.Text(m.frame)+"\n"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current frame with a status bar.
func (m PreviewModel) View() string {
	if m.quitting {
		return ""
	}
	return m.renderer.Render(m.frame) + "\n" + m.statusBar() + "\n" + m.theme.Help.Render(m.help.View(m.keys))
}

// statusBar describes the run state on one line.
func (m PreviewModel) statusBar() string {
	r := m.run.runner
	parts := []string{
		m.theme.StatusTitle.Render(m.sketch.Title),
		m.theme.StatusValue.Render(fmt.Sprintf("frame %d", m.frame.Seq())),
		m.theme.StatusValue.Render(fmt.Sprintf("%d fps", r.FPS())),
	}

	switch {
	case m.err != nil:
		parts = append(parts, m.theme.StatusError.Render("error: "+m.err.Error()))
	case m.finished:
		parts = append(parts, m.theme.StatusPaused.Render("finished"))
	case r.Paused():
		parts = append(parts, m.theme.StatusPaused.Render("paused"))
	}
	if m.status != "" && m.err == nil {
		parts = append(parts, m.theme.StatusInfo.Render(m.status))
	}

	line := ""
	for i, p := range parts {
		if i > 0 {
			line += "  "
		}
		line += p
	}
	return line
}

// Err returns the error that ended the current run, if any.
func (m PreviewModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m PreviewModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PreviewModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPreview plays a sketch full screen until the user quits.
// Returns the error that ended the sketch, if any.
func RunPreview(sketch registry.Sketch, store *storage.Store, cfg PreviewConfig) error {
	model, err := NewPreviewModel(sketch, store, cfg)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		model.Wait(time.Second)
		return err
	}

	m, ok := finalModel.(PreviewModel)
	if !ok {
		return nil
	}
	m.Wait(m.config.FrameTimeout + time.Second)
	return m.Err()
}
