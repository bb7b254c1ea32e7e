package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/games/attract"
	"github.com/vovakirdan/kiosk-idle/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

// requireGame exits with a hint when id is not registered.
func requireGame(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'kiosk-idle list' to see available variants.")
		os.Exit(1)
	}
}

// configureAttract applies --config and --difficulty before games are created.
func configureAttract() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadAttract(flagConfig); err != nil {
			return err
		}
	}
	attract.SetConfigPath(flagConfig)
	attract.SetDifficultyPreset(flagDifficulty)
	return nil
}

// addGameFlags registers the flags shared by commands that run a session.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom attract config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// newAttract creates a registered variant as its concrete type.
func newAttract(id string) (*attract.Game, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	game, ok := g.(*attract.Game)
	if !ok {
		return nil, fmt.Errorf("variant %q does not support headless runs", id)
	}
	return game, nil
}

// sessionSeed resolves the --seed flag.
func sessionSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
