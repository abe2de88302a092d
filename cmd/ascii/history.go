package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/platform/tui"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [sketch]",
	Short: "Show recorded runs",
	Long: `Display the most recent runs of a sketch with their frame counts and
results. Without a sketch name an interactive browser is opened.

Examples:
  ascii history
  ascii history spiral
  ascii history spiral --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		w, h := terminalSize()
		_, err := tui.RunHistory(store, w, h)
		return err
	}

	name := args[0]
	runs, err := store.RunHistory(name, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n", name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ascii run %s' to record the first one.\n", name)
		return nil
	}

	// Print header
	fmt.Printf("  %-16s  %6s  %4s  %8s  %s\n", "Date", "Frames", "FPS", "Time", "Result")
	fmt.Printf("  %-16s  %6s  %4s  %8s  %s\n", "----", "------", "---", "----", "------")

	width, _ := terminalSize()
	for _, run := range runs {
		result := "ok"
		if run.Error != "" {
			result = truncate(run.Error, max(width-48, 10))
		}
		fmt.Printf("  %-16s  %6d  %4d  %8s  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.Frames, run.FPS,
			(time.Duration(run.DurationMs) * time.Millisecond).Round(100*time.Millisecond), result)
	}

	if st, err := store.GetSketchStats(name); err == nil && st != nil {
		fmt.Println()
		fmt.Printf("Total: %d runs, %d failed, %d frames\n", st.Runs, st.Failed, st.TotalFrames)
	}
	return nil
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
