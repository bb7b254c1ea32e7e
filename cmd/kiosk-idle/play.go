package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/kiosk-idle/internal/core"
	"github.com/vovakirdan/kiosk-idle/internal/platform/tui"
	"github.com/vovakirdan/kiosk-idle/internal/registry"
	"github.com/vovakirdan/kiosk-idle/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Run the idle screen in this terminal",
	Long: `Run the specified idle-screen variant in this terminal.

Controls:
  Enter/Space - Dismiss the title overlay
  P           - Pause
  R           - Start a fresh session
  Esc/B       - Leave the idle screen
  Q/Ctrl+C    - Quit
  Ctrl+S      - Save a text screenshot

Difficulty options:
  easy   - Chasers start slow and speed up with the score
  normal - Chasers start at 30% of the speed boost
  hard   - Chasers start at 70% of the speed boost
  fixed  - No progression, stays at the config's initial level

Examples:
  kiosk-idle play attract
  kiosk-idle play attract_open --difficulty hard
  kiosk-idle play attract --config ./my-attract.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	if err := configureAttract(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage, the idle screen still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running idle screen: %v\n", runErr)
		os.Exit(1)
	}
}
