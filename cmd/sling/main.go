// sling is a terminal slingshot destruction game: pull birds back in a
// sling, knock down structures, and squash every pig.
//
// Usage:
//
//	sling play [level]       - Play, optionally starting at a level
//	sling levels             - List the built-in levels
//	sling serve              - Start SSH server for remote play
//	sling scores [level]     - Show high scores
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.sling/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sling",
	Short: "Sling - slingshot destruction in your terminal",
	Long: `Sling is a terminal physics game. Drag birds back in a slingshot
with the mouse, flatten block towers, and clear every pig to advance.

Available commands:
  play     - Start the game (title screen, or jump to a level)
  levels   - Show the built-in levels
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  sling play
  sling play 3 --difficulty hard
  sling serve --ssh :2222
  sling scores 1`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sling/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
