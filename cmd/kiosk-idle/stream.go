package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kiosk-idle/internal/core"
	"github.com/vovakirdan/kiosk-idle/internal/storage"
	"github.com/vovakirdan/kiosk-idle/internal/stream"
)

var (
	flagStreamAddr  string
	flagStreamEvery int
	flagStreamDebug bool
)

var streamCmd = &cobra.Command{
	Use:   "stream <id>",
	Short: "Run headless and stream snapshots over WebSocket",
	Long: `Run a variant without a terminal and publish it to browser displays.

Viewers connect to ws://<addr>/ws and receive JSON text frames, or msgpack
binary frames with ?format=msgpack. A snapshot frame is sent every
--broadcast-every ticks and an event frame for every pickup, catch, power
change and milestone.

Examples:
  kiosk-idle stream attract
  kiosk-idle stream attract_open --addr :9000 --broadcast-every 2`,
	Args: cobra.ExactArgs(1),
	Run:  runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagStreamAddr, "addr", ":8080", "HTTP listen address")
	streamCmd.Flags().IntVar(&flagStreamEvery, "broadcast-every", 3, "Ticks between snapshot broadcasts")
	streamCmd.Flags().BoolVar(&flagStreamDebug, "debug", false, "Log every simulation event")
	addGameFlags(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "kiosk-stream",
	})
	if flagStreamDebug {
		logger.SetLevel(log.DebugLevel)
	}

	if err := configureAttract(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	game, err := newAttract(gameID)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	} else {
		defer store.Close()
		game.SetHighScoreStore(store)
	}

	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: sessionSeed()})

	hub := stream.NewHub(logger)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "ok %d viewers\n", hub.Len())
	})
	srv := &http.Server{
		Addr:              flagStreamAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "address", flagStreamAddr, "endpoint", "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	runner := stream.NewRunner(game, hub, flagStreamEvery, logger)
	if err := runner.Run(ctx); err != nil {
		logger.Error("runner stopped", "error", err)
	}

	if store != nil {
		if score := game.State().Score; score > 0 {
			if runID, err := store.SaveScore(game.ID(), score); err == nil {
				logger.Info("run recorded", "run", runID, "score", score)
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
