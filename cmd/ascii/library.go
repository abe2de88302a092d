package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/host"
	"github.com/vovakirdan/ascii-engine/internal/registry"
	"github.com/vovakirdan/ascii-engine/internal/sketches"
)

var (
	flagDescription string
	flagExportOut   string
)

var saveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Add a Lua sketch to the library",
	Long: `Compile a Lua file and store it in the sketch library under the given
name. Saving under an existing name replaces the stored source.

The description defaults to the "-- description:" header of the file.

Examples:
  ascii save wave ./wave.lua
  ascii save wave ./wave.lua --description "Two sine waves"`,
	Args: cobra.ExactArgs(2),
	RunE: runSave,
}

var sketchesCmd = &cobra.Command{
	Use:   "sketches",
	Short: "Show the sketch library",
	Long:  `Lists the sketches saved in the library with their run statistics.`,
	RunE:  runSketches,
}

var sketchesRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a sketch from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runSketchesRm,
}

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print the source of a sketch",
	Long: `Writes the Lua source of a built-in or saved sketch to stdout or a file.

Examples:
  ascii export spiral
  ascii export spiral --out ./spiral.lua`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	saveCmd.Flags().StringVar(&flagDescription, "description", "", "Sketch description")
	exportCmd.Flags().StringVar(&flagExportOut, "out", "", "Write to this file instead of stdout")
	sketchesCmd.AddCommand(sketchesRmCmd)
}

func runSave(_ *cobra.Command, args []string) error {
	name, path := args[0], args[1]
	if registry.Exists(name) {
		return fmt.Errorf("%q is a built-in sketch name", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read sketch: %w", err)
	}
	source := string(data)
	if err := host.Compile(name, source); err != nil {
		return err
	}

	description := flagDescription
	if description == "" {
		description = sketches.Parse(name, source).Description
	}

	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.SaveSketch(name, description, source); err != nil {
		return err
	}
	logger.Info("sketch saved", "sketch", name, "bytes", len(data))
	fmt.Printf("Saved %q. Run 'ascii run %s' to play it.\n", name, name)
	return nil
}

func runSketches(_ *cobra.Command, _ []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListSketches()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("The library is empty.")
		fmt.Println()
		fmt.Println("Add a sketch with 'ascii save <name> <file>'.")
		return nil
	}

	stats, err := store.GetAllSketchStats()
	if err != nil {
		return err
	}

	maxLen := 4 // "Name" header
	for _, e := range entries {
		maxLen = max(maxLen, len(e.Name))
	}

	fmt.Printf("  %-*s  %4s  %-16s  %s\n", maxLen, "Name", "Runs", "Updated", "Description")
	fmt.Printf("  %-*s  %4s  %-16s  %s\n", maxLen, "----", "----", "-------", "-----------")
	for _, e := range entries {
		runs := 0
		if st, ok := stats[e.Name]; ok {
			runs = st.Runs
		}
		fmt.Printf("  %-*s  %4d  %-16s  %s\n", maxLen, e.Name, runs,
			e.UpdatedAt.Format("2006-01-02 15:04"), e.Description)
	}
	return nil
}

func runSketchesRm(_ *cobra.Command, args []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.DeleteSketch(args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("no saved sketch named %q", args[0])
	}
	fmt.Printf("Removed %q.\n", args[0])
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
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

	if flagExportOut == "" {
		_, err := fmt.Fprint(os.Stdout, sketch.Source)
		return err
	}
	if err := os.WriteFile(flagExportOut, []byte(sketch.Source), 0o644); err != nil {
		return fmt.Errorf("cannot write sketch: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", flagExportOut)
	return nil
}
