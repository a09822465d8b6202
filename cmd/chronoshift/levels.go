package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the configured levels",
	Long:  `Shows the levels offered on the level select screen, in order.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	_, levels, err := loadConfigs()
	if err != nil {
		fail("%v", err)
	}

	fmt.Println("Levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range levels.Levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-10s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Difficulty", "Subtitle")
	fmt.Printf("  %-*s  %-*s  %-10s  %s\n", maxIDLen, "--", maxNameLen, "----", "----------", "--------")

	for _, l := range levels.Levels {
		fmt.Printf("  %-*s  %-*s  %-10s  %s\n", maxIDLen, l.ID, maxNameLen, l.Name, l.Difficulty.Label(), l.Subtitle)
	}

	fmt.Println()
	fmt.Println("Run 'chronoshift play' and press START to pick one.")
}
