package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/kiosk-idle/internal/platform/tui"
	"github.com/vovakirdan/kiosk-idle/internal/registry"
	"github.com/vovakirdan/kiosk-idle/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [id]",
	Short: "Show recorded runs",
	Long: `Display the best runs and the persisted high score of a variant.
Without an id, opens the interactive scoreboard.

Examples:
  kiosk-idle scores
  kiosk-idle scores attract
  kiosk-idle scores attract --limit 25
  kiosk-idle scores attract_open --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs and the high score of the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	requireGame(gameID)

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs of %s.\n", gameID)
		return
	}

	printScores(store, gameID)
}

func printScores(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'kiosk-idle play %s' to record the first one.\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "When", "Run")
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "----", "-----", "----", "---")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %-16s  %s\n",
			i+1, humanize.Comma(int64(entry.Score)), humanize.Time(entry.CreatedAt), entry.RunID)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %s   Runs: %s   Average: %s\n",
		humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.RunsCount)),
		humanize.CommafWithDigits(stats.AvgScore, 1))
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last run: %s (%s)\n", humanize.Time(stats.LastPlayed), stats.LastPlayed.Format(time.DateTime))
	}
}
