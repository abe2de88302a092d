// ascii draws animated Lua sketches on a character grid in the terminal.
//
// Usage:
//
//	ascii list                  - List built-in and saved sketches
//	ascii run <sketch|file>     - Play a sketch full screen
//	ascii render <sketch|file>  - Print frames to stdout
//	ascii save <name> <file>    - Add a sketch to the library
//	ascii sketches              - Show the saved library
//	ascii export <name>         - Print the source of a sketch
//	ascii history [name]        - Show recorded runs
//	ascii menu                  - Pick sketches interactively
//	ascii serve                 - Start SSH server for remote previews
//	ascii colors                - Show the color table
//
// Global flags:
//
//	--config <path>   - Engine config file
//	--fps <rate>      - Frames per second (default from config)
//	--seed <value>    - RNG seed for reproducible sketches
//	--db <path>       - Sketch library path (default: ~/.ascii-engine/sketches.db)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/config"

	// Register the built-in sketches
	_ "github.com/vovakirdan/ascii-engine/internal/sketches"
)

// annotationTUI marks commands that own the terminal; their logs must not
// be written to stderr.
const annotationTUI = "tui"

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Resolved in PersistentPreRunE
	engineCfg config.EngineConfig
	logger    = log.New(io.Discard)
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ascii",
	Short: "ASCII Engine - Animated Lua sketches in your terminal",
	Long: `ASCII Engine draws lines, circles, curves and text on a character grid.
Sketches are small Lua scripts with a draw() function called once per frame.

Available commands:
  list      - Show all available sketches
  run       - Play a sketch full screen
  render    - Print frames as plain or colored text
  save      - Add a Lua file to the sketch library
  sketches  - Manage the sketch library
  export    - Print the source of a sketch
  history   - View recorded runs
  menu      - Interactive sketch picker
  serve     - Start SSH server for remote previews
  colors    - Show color and effect names

Examples:
  ascii list
  ascii run spiral
  ascii run ./my_sketch.lua --fps 15
  ascii render curves --frames 1 --plain
  ascii save wave ./wave.lua
  ascii serve --ssh :2323`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frames per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sketch library database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(sketchesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(colorsCmd)
}

// setup loads the configuration, applies global flag overrides and
// builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Animation.FPS = flagFPS
		cfg.Animation.Pace = ""
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	engineCfg = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case cfg.Log.File != "":
		path := config.ExpandHome(cfg.Log.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case cmd.Annotations[annotationTUI] != "":
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "ascii",
		Level:           level,
	})
	return nil
}
