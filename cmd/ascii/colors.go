package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Show color and effect names",
	Long:  `Prints the color table and the text effects accepted by the color, bg and effect options.`,
	RunE:  runColors,
}

func runColors(_ *cobra.Command, _ []string) error {
	fmt.Println("Colors:")
	fmt.Println()
	fmt.Printf("  %-16s  %4s  %-8s  %s\n", "Name", "ANSI", "RGB", "Sample")
	fmt.Printf("  %-16s  %4s  %-8s  %s\n", "----", "----", "---", "------")

	for _, name := range core.ColorNames() {
		c, err := core.ParseColor(name)
		if err != nil {
			return err
		}
		sample := "(terminal)"
		if !c.IsDefault() {
			sample = lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.Hex())).
				Render(strings.Repeat("█", 6))
		}
		fmt.Printf("  %-16s  %4d  %-8s  %s\n", name, c.ANSI(), c.Hex(), sample)
	}

	fmt.Println()
	fmt.Printf("Effects: %s\n", strings.Join(core.EffectNames(), ", "))
	fmt.Println(`Combine effects with "+", e.g. effect = "bold+underline".`)
	return nil
}
