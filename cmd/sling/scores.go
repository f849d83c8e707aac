package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/slingarcade/sling/internal/level"
	"github.com/slingarcade/sling/internal/platform/tui"
	"github.com/slingarcade/sling/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Show high scores for a level, or the best campaign runs when no
level is given.

On a terminal this opens the interactive scoreboard; when the output
is piped it prints a plain top-10 table instead.

Examples:
  sling scores
  sling scores 2
  sling scores | head -5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	number := 0 // Campaign view
	if len(args) == 1 {
		number, err = strconv.Atoi(args[0])
		if err != nil || number < 1 || number > level.Count() {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'sling levels' to see the built-in levels.")
			os.Exit(1)
		}
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, runErr := tui.RunScoreboard(store, width, height, number); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error showing scoreboard: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	// Piped output gets a plain table.
	if number == 0 {
		printCampaignRuns(store)
		return
	}
	printLevelScores(store, number)
}

func printLevelScores(store *storage.Store, number int) {
	layout := level.Get(number)

	scores, err := store.TopScores(number, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - Level %d %s\n", layout.Number, layout.Name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sling play %d' to set the first high score!\n", number)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(number); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printCampaignRuns(store *storage.Store) {
	runs, err := store.BestCampaignRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving campaign runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Campaign Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'sling play' to record the first run!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-7s  %-10s  %s\n", "Rank", "Score", "Levels", "End", "Date")
	fmt.Printf("  %-4s  %-10s  %-7s  %-10s  %s\n", "----", "-----", "------", "---", "----")

	for i, run := range runs {
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-7d  %-10s  %s\n",
			i+1, run.GlobalScore, run.LevelsCleared, run.EndReason, dateStr)
	}
}
