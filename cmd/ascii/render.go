package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/host"
	"github.com/vovakirdan/ascii-engine/internal/platform/tui"
	"github.com/vovakirdan/ascii-engine/internal/render"
)

var (
	flagRenderRows    int
	flagRenderCols    int
	flagRenderFrames  int
	flagRenderPlain   bool
	flagRenderLive    bool
	flagRenderProfile string
)

var renderCmd = &cobra.Command{
	Use:   "render <sketch|file>",
	Short: "Print sketch frames to stdout",
	Long: `Run a sketch without a UI and print its frames.

Without --live the sketch runs as fast as possible and only the last frame
is printed. With --live every frame is printed at the sketch frame rate,
redrawn in place when home_cursor is enabled in the config.

Examples:
  ascii render curves
  ascii render spiral --frames 40 --plain > spiral.txt
  ascii render bouncing_ball --live --frames 100
  ascii render ./my_sketch.lua --rows 20 --cols 60 --profile truecolor`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&flagRenderRows, "rows", 0, "Canvas rows (0 = config or terminal)")
	renderCmd.Flags().IntVar(&flagRenderCols, "cols", 0, "Canvas columns (0 = config or terminal)")
	renderCmd.Flags().IntVar(&flagRenderFrames, "frames", 1, "Number of frames to run")
	renderCmd.Flags().BoolVar(&flagRenderPlain, "plain", false, "Print glyphs only, without colors")
	renderCmd.Flags().BoolVar(&flagRenderLive, "live", false, "Print every frame at the sketch frame rate")
	renderCmd.Flags().StringVar(&flagRenderProfile, "profile", "", "Color profile: auto, ascii, ansi, ansi256, truecolor")
}

func runRender(_ *cobra.Command, args []string) error {
	if flagRenderFrames < 1 {
		return fmt.Errorf("--frames must be at least 1")
	}

	prof, err := profile(flagRenderProfile)
	if err != nil {
		return err
	}
	if flagRenderPlain {
		prof = termenv.Ascii
	}

	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	sketch, err := resolveSketch(store, args[0])
	if err != nil {
		return err
	}

	w, h := terminalSize()
	rows := firstPositive(flagRenderRows, engineCfg.Canvas.Rows, h-1)
	cols := firstPositive(flagRenderCols, engineCfg.Canvas.Cols, w)

	c, err := canvas.New(rows, cols, canvas.WithPalette(palette()))
	if err != nil {
		return err
	}
	r := host.New(sketch.ID, sketch.Source, c, runnerOptions(flagRenderFrames, flagRenderLive)...)

	ctx, cancel := signalContext()
	defer cancel()

	out := render.NewRenderer(prof)
	if !flagRenderLive {
		runErr := r.Produce(ctx)
		tui.RecordRun(store, logger, r)
		if runErr != nil {
			return runErr
		}
		return out.WriteFrame(os.Stdout, c.Snapshot(), false)
	}

	home := engineCfg.Render.HomeCursor
	if home {
		fmt.Print("\x1b[2J")
	}
	runErr := r.Run(ctx, host.SinkFunc(func(f *canvas.Frame) error {
		return out.WriteFrame(os.Stdout, f, home)
	}))
	tui.RecordRun(store, logger, r)
	return runErr
}

// firstPositive returns the first value greater than zero.
func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 1
}
