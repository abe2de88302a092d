package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/platform/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available sketches",
	Long:  `Shows the built-in sketches followed by the sketches saved in the library.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	items := tui.MenuItems(store)
	if len(items) == 0 {
		fmt.Println("No sketches available.")
		return nil
	}

	fmt.Println("Available sketches:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, it := range items {
		if len(it.ID) > maxIDLen {
			maxIDLen = len(it.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-8s  %4s  %s\n", maxIDLen, "ID", "Origin", "Runs", "Description")
	fmt.Printf("  %-*s  %-8s  %4s  %s\n", maxIDLen, "--", "------", "----", "-----------")

	// Print sketches
	for _, it := range items {
		fmt.Printf("  %-*s  %-8s  %4d  %s\n", maxIDLen, it.ID, it.Origin, it.Runs, it.Description)
	}

	fmt.Println()
	fmt.Println("Run 'ascii run <id>' to play a sketch.")
	return nil
}
