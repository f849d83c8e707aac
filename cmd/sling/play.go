package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/level"
	"github.com/slingarcade/sling/internal/platform/tui"
	"github.com/slingarcade/sling/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevels     string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Start the game",
	Long: `Start the game at the title screen, or jump straight into a level.

Controls:
  Mouse      - Drag the bird back, release to launch
  Enter      - Confirm / next level
  P          - Pause
  R          - Retry (after game over)
  Esc        - Back to the title screen
  Q/Ctrl+C   - Quit

Difficulty options:
  easy     - Structures and pigs at 75% health
  normal   - Standard health
  hard     - Structures and pigs at 150% health
  classic  - Layouts exactly as authored

Examples:
  sling play
  sling play 3
  sling play --difficulty hard
  sling play --config ./my-sling.yaml
  sling play --levels ./my-levels.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to custom level set YAML (replaces the built-in campaign)")
}

func runPlay(cmd *cobra.Command, args []string) {
	if flagLevels != "" {
		layouts, err := level.LoadFile(flagLevels)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		level.SetCustom(layouts)
	}

	startLevel := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > level.Count() {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'sling levels' to see the built-in levels.")
			os.Exit(1)
		}
		startLevel = n
	}

	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&gameCfg, config.DifficultyPreset(flagDifficulty))
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	model := tui.NewModel(store, runtime, gameCfg)
	if startLevel > 0 {
		model.StartAt(startLevel)
	}

	runErr := tui.Run(model)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
