package stream

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kiosk-idle/internal/core"
	"github.com/vovakirdan/kiosk-idle/internal/games/attract"
)

// Runner steps a game in real time and publishes it to a hub.
type Runner struct {
	game   *attract.Game
	hub    *Hub
	every  uint64
	logger *log.Logger
	input  core.InputFrame
}

// NewRunner creates a runner broadcasting a snapshot every `every` ticks.
// The game must already be Reset.
func NewRunner(game *attract.Game, hub *Hub, every int, logger *log.Logger) *Runner {
	if every <= 0 {
		every = 1
	}
	return &Runner{
		game:   game,
		hub:    hub,
		every:  uint64(every), //#nosec G115 -- every is positive
		logger: logger,
		input:  core.NewInputFrame(),
	}
}

// Run starts the session and steps it on a ticker until ctx is done. On exit
// the game is disposed and every viewer is disconnected.
func (r *Runner) Run(ctx context.Context) error {
	defer func() {
		if err := r.game.Dispose(); err != nil {
			r.logger.Error("dispose session", "error", err)
		}
		r.hub.Close()
	}()

	r.game.Start()
	r.publishSnapshot()

	ticker := time.NewTicker(r.game.FrameDuration())
	defer ticker.Stop()

	r.logger.Info("streaming", "game", r.game.ID(), "frame", r.game.FrameDuration(), "broadcast_every", r.every)
	for {
		select {
		case <-ctx.Done():
			stats := r.game.PathStats()
			r.logger.Info("stream stopped",
				"ticks", r.game.Tick(),
				"score", r.game.State().Score,
				"path_requests", stats.Requests,
				"cache_hits", stats.CacheHits,
			)
			return nil
		case <-ticker.C:
			r.Step()
		}
	}
}

// Step advances one frame and publishes its events and, when due, a snapshot.
func (r *Runner) Step() {
	r.game.Step(r.input)
	tick := r.game.Tick()

	for _, e := range r.game.DrainEvents() {
		r.logEvent(e)
		if err := r.hub.Broadcast(NewEventFrame(tick, e)); err != nil {
			r.logger.Error("broadcast event", "error", err)
		}
	}
	if tick%r.every == 0 {
		r.publishSnapshot()
	}
}

func (r *Runner) publishSnapshot() {
	if err := r.hub.Broadcast(NewSnapshotFrame(r.game.Snapshot())); err != nil {
		r.logger.Error("broadcast snapshot", "error", err)
	}
}

func (r *Runner) logEvent(e attract.Event) {
	switch e.Kind {
	case attract.EventMilestone, attract.EventHighScore:
		r.logger.Info(e.Kind.String(), "text", e.Text, "score", r.game.State().Score)
	case attract.EventStoreFailed:
		r.logger.Warn("high score not saved", "error", e.Text, "score", e.Points)
	default:
		r.logger.Debug(e.Kind.String(), "points", e.Points)
	}
}
