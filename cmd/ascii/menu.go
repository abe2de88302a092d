package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick sketches from an interactive menu",
	Long: `Start the engine in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a sketch.
When a sketch is stopped with Esc you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Play sketch
  Tab/H        - Run history
  Q            - Quit

Examples:
  ascii menu
  ascii menu --fps 15
  ascii menu --db ./sketches.db`,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	prof, err := profile("")
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

	cfg := tui.PreviewConfigFrom(engineCfg, flagSeed, prof)
	cfg.Width, cfg.Height = terminalSize()
	cfg.Logger = logger
	return tui.RunSession(store, cfg)
}
