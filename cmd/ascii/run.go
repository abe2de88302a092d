package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/config"
	"github.com/vovakirdan/ascii-engine/internal/host"
	"github.com/vovakirdan/ascii-engine/internal/platform/tcellview"
	"github.com/vovakirdan/ascii-engine/internal/platform/tui"
	"github.com/vovakirdan/ascii-engine/internal/registry"
	"github.com/vovakirdan/ascii-engine/internal/render"
	"github.com/vovakirdan/ascii-engine/internal/storage"
)

var (
	flagRows    int
	flagCols    int
	flagFrames  int
	flagBackend string
	flagProfile string
	flagPace    string
)

var runCmd = &cobra.Command{
	Use:   "run [sketch|file]",
	Short: "Play a sketch",
	Long: `Play a built-in sketch, a saved sketch or a Lua file full screen.
Without an argument a sketch picker is shown first.

Controls:
  Space/P    - Pause
  N/.        - Step one frame while paused
  +/-        - Faster/slower
  R          - Restart
  S          - Save a screenshot (bubbletea backend)
  Q/Ctrl+C   - Quit

Pace presets:
  slow    - 2 fps
  normal  - 5 fps
  fast    - 15 fps
  smooth  - 30 fps

Examples:
  ascii run spiral
  ascii run ./my_sketch.lua --pace fast
  ascii run mandelbrot --rows 30 --cols 100
  ascii run curves --backend tcell`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagRows, "rows", 0, "Canvas rows (0 = fit the terminal)")
	runCmd.Flags().IntVar(&flagCols, "cols", 0, "Canvas columns (0 = fit the terminal)")
	runCmd.Flags().IntVar(&flagFrames, "frames", 0, "Stop after this many frames (tcell backend, 0 = no limit)")
	runCmd.Flags().StringVar(&flagBackend, "backend", "", "Render backend: bubbletea, tcell")
	runCmd.Flags().StringVar(&flagProfile, "profile", "", "Color profile: auto, ascii, ansi, ansi256, truecolor")
	runCmd.Flags().StringVar(&flagPace, "pace", "", "Pace preset: slow, normal, fast, smooth")
}

func runRun(_ *cobra.Command, args []string) error {
	if flagPace != "" {
		if err := config.ApplyPace(&engineCfg, config.PacePreset(flagPace)); err != nil {
			return err
		}
	}
	if flagRows > 0 {
		engineCfg.Canvas.Rows = flagRows
	}
	if flagCols > 0 {
		engineCfg.Canvas.Cols = flagCols
	}
	if flagFrames > 0 {
		engineCfg.Animation.MaxFrames = flagFrames
	}

	prof, err := profile(flagProfile)
	if err != nil {
		return err
	}

	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		w, h := terminalSize()
		res, err := tui.RunMenu(store, w, h)
		if err != nil {
			return err
		}
		if res.WantsHistory {
			_, err := tui.RunHistory(store, res.Width, res.Height)
			return err
		}
		if res.Quit || res.SketchID == "" {
			return nil
		}
		name = res.SketchID
	}

	sketch, err := resolveSketch(store, name)
	if err != nil {
		return err
	}
	logger.Info("playing sketch", "sketch", sketch.ID, "fps", engineCfg.Animation.FPS)

	backend := flagBackend
	if backend == "" {
		backend = engineCfg.Render.Backend
	}
	switch backend {
	case config.BackendTcell:
		return runTcell(sketch, store, prof)
	case config.BackendBubbletea:
		cfg := tui.PreviewConfigFrom(engineCfg, flagSeed, prof)
		cfg.Width, cfg.Height = terminalSize()
		cfg.Logger = logger
		return tui.RunPreview(sketch, store, cfg)
	}
	return fmt.Errorf("unknown backend %q", backend)
}

// runTcell plays the sketch directly on a tcell screen.
func runTcell(sketch registry.Sketch, store *storage.Store, prof termenv.Profile) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("cannot initialize screen: %w", err)
	}
	defer screen.Fini()

	w, h := screen.Size()
	rows, cols := engineCfg.Canvas.Rows, engineCfg.Canvas.Cols
	if rows <= 0 {
		rows = h
	}
	if cols <= 0 {
		cols = w
	}

	c, err := canvas.New(rows, cols, canvas.WithPalette(palette()))
	if err != nil {
		return err
	}
	r := host.New(sketch.ID, sketch.Source, c, runnerOptions(engineCfg.Animation.MaxFrames, true)...)

	var opts []render.TcellOption
	if prof == termenv.TrueColor {
		opts = append(opts, render.WithTrueColor())
	}

	ctx, cancel := signalContext()
	defer cancel()

	runErr := tcellview.Run(ctx, r, screen, opts...)
	tui.RecordRun(store, logger, r)
	return runErr
}
