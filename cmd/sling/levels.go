package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slingarcade/sling/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the built-in levels",
	Long:  `Shows every built-in level with its structure and roster size.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	layouts := level.All()

	fmt.Println("Built-in levels:")
	fmt.Println()

	// Calculate name column width
	maxNameLen := 4 // "Name" header
	for _, l := range layouts {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	// Print header
	fmt.Printf("  %-5s  %-*s  %-7s  %-5s  %s\n", "Level", maxNameLen, "Name", "Blocks", "Pigs", "Birds")
	fmt.Printf("  %-5s  %-*s  %-7s  %-5s  %s\n", "-----", maxNameLen, "----", "------", "----", "-----")

	// Print levels
	for _, l := range layouts {
		fmt.Printf("  %-5d  %-*s  %-7d  %-5d  %d\n",
			l.Number, maxNameLen, l.Name, len(l.Blocks), len(l.Pigs), len(l.Birds))
	}

	fmt.Println()
	fmt.Println("Run 'sling play <level>' to jump straight into a level.")
}
