package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/kiosk-idle/internal/core"
	"github.com/vovakirdan/kiosk-idle/internal/games/attract"
	"github.com/vovakirdan/kiosk-idle/internal/storage"
)

var (
	flagSimTicks       int
	flagSimRecord      string
	flagSimRecordEvery int
	flagSimPersist     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <id>",
	Short: "Run a headless session and print a summary",
	Long: `Run a variant without a display as fast as possible and report what happened.
With --record, snapshots are appended to a msgpack stream for offline replay.
With --persist, the run is recorded in the scores database.

Examples:
  kiosk-idle simulate attract --ticks 36000 --seed 7
  kiosk-idle simulate attract_open --record run.msgpack --record-every 30`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Number of frames to simulate")
	simulateCmd.Flags().StringVar(&flagSimRecord, "record", "", "Write snapshots to this msgpack file")
	simulateCmd.Flags().IntVar(&flagSimRecordEvery, "record-every", 60, "Frames between recorded snapshots")
	simulateCmd.Flags().BoolVar(&flagSimPersist, "persist", false, "Record the run and high score in the scores database")
	addGameFlags(simulateCmd)
}

// simSummary accumulates event counts of a headless run.
type simSummary struct {
	events     map[attract.EventKind]int
	milestones []string
	recorded   int
}

func runSimulate(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)
	if err := configureAttract(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := newAttract(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimPersist {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		game.SetHighScoreStore(store)
	}

	seed := sessionSeed()
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})
	game.Start()

	var enc *msgpack.Encoder
	if flagSimRecord != "" {
		f, createErr := os.Create(flagSimRecord)
		if createErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating recording: %v\n", createErr)
			os.Exit(1)
		}
		w := bufio.NewWriter(f)
		defer func() {
			_ = w.Flush()
			_ = f.Close()
		}()
		enc = msgpack.NewEncoder(w)
	}

	summary := simSummary{events: make(map[attract.EventKind]int)}
	every := max(flagSimRecordEvery, 1)
	in := core.NewInputFrame()
	start := time.Now()

	for i := 1; i <= flagSimTicks; i++ {
		game.Step(in)
		for _, e := range game.DrainEvents() {
			summary.events[e.Kind]++
			if e.Kind == attract.EventMilestone {
				summary.milestones = append(summary.milestones, e.Text)
			}
		}
		if enc != nil && i%every == 0 {
			snap := game.Snapshot()
			if err := enc.Encode(&snap); err != nil {
				fmt.Fprintf(os.Stderr, "Error recording snapshot: %v\n", err)
				os.Exit(1)
			}
			summary.recorded++
		}
	}
	wall := time.Since(start)

	final := game.Snapshot()
	if store != nil && final.Score > 0 {
		if runID, saveErr := store.SaveScore(gameID, final.Score); saveErr == nil {
			fmt.Printf("Recorded run %s\n", runID)
		}
	}
	if err := game.Dispose(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	printSummary(game, final, summary, seed, wall)
}

func printSummary(game *attract.Game, final attract.Snapshot, s simSummary, seed int64, wall time.Duration) {
	simulated := time.Duration(final.ElapsedMs) * time.Millisecond
	stats := game.PathStats()

	fmt.Printf("%s - headless run\n\n", game.Title())
	fmt.Printf("  seed          %d\n", seed)
	fmt.Printf("  frames        %s (%s simulated in %s)\n",
		humanize.Comma(int64(final.Tick)), simulated, wall.Round(time.Millisecond)) //#nosec G115 -- tick count fits
	fmt.Printf("  score         %s\n", humanize.Comma(int64(final.Score)))
	fmt.Printf("  high score    %s\n", humanize.Comma(int64(final.HighScore)))
	fmt.Printf("  obstacles     %d\n", len(final.Obstacles))
	fmt.Printf("  pickups       %d\n", s.events[attract.EventPickup])
	fmt.Printf("  catches       %d\n", s.events[attract.EventCatch])
	fmt.Printf("  power modes   %d\n", s.events[attract.EventPowerOn])
	fmt.Printf("  milestones    %d\n", s.events[attract.EventMilestone])
	for _, m := range s.milestones {
		fmt.Printf("                  %q\n", m)
	}
	fmt.Printf("  path requests %s (cache hits %s, bypassed %s, fallbacks %s, expansions %s)\n",
		humanize.Comma(int64(stats.Requests)),
		humanize.Comma(int64(stats.CacheHits)),
		humanize.Comma(int64(stats.Bypassed)),
		humanize.Comma(int64(stats.Fallbacks)),
		humanize.Comma(int64(stats.Expansions)))
	if s.recorded > 0 {
		fmt.Printf("  recorded      %d snapshots to %s\n", s.recorded, flagSimRecord)
	}
	fmt.Printf("  final hash    %016x\n", final.Hash())
}
