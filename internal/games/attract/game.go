// Package attract implements the bakery kiosk's idle screen: a seeker that
// roams an arena collecting treats while personality-driven chasers hunt it.
//
// The game is fully deterministic for a given seed. All subsystems are driven
// by one fixed-timestep Scheduler, so a session can be replayed tick by tick.
package attract

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/kiosk-idle/internal/agents"
	"github.com/vovakirdan/kiosk-idle/internal/arena"
	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
	"github.com/vovakirdan/kiosk-idle/internal/pathfind"
	"github.com/vovakirdan/kiosk-idle/internal/registry"
)

// Loop names, in run order.
const (
	loopChasers    = "chasers"
	loopSeeker     = "seeker"
	loopCollisions = "collisions"
	loopParticles  = "particles"
	loopPower      = "power"
	loopSpawn      = "spawn"
	loopRespawn    = "respawn"
	loopAnimation  = "animation"
	loopPassive    = "passive"
	loopMessages   = "messages"
)

// housekeeping is the period of the respawn and message countdowns.
const housekeeping = 100 * time.Millisecond

// Game variants.
const (
	IDAttract = "attract"
	IDOpen    = "attract_open"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game is the session controller.
type Game struct {
	open     bool
	override *config.AttractConfig

	runtime    core.RuntimeConfig
	cfg        config.AttractConfig
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	paths      *pathfind.Pathfinder
	sched      *Scheduler
	world      *World
	store      core.HighScoreStore

	events   []Event
	tick     uint64
	running  bool
	paused   bool
	beatHigh bool
	saveErr  error // Last failed high score save, nil once a save succeeds
}

// New creates the attract game with generated obstacles.
func New() *Game {
	return &Game{}
}

// NewOpen creates the obstacle-free variant.
func NewOpen() *Game {
	return &Game{open: true}
}

// NewWithConfig creates a game that ignores config files and presets.
func NewWithConfig(cfg config.AttractConfig, open bool) *Game {
	return &Game{open: open, override: &cfg}
}

func init() {
	registry.Register(IDAttract, func() registry.Game {
		return New()
	})
	registry.Register(IDOpen, func() registry.Game {
		return NewOpen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.open {
		return IDOpen
	}
	return IDAttract
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.open {
		return "Bakery Attract (Open Floor)"
	}
	return "Bakery Attract"
}

// SetHighScoreStore injects the persistent high score store. It takes effect
// on the next Reset.
func (g *Game) SetHighScoreStore(store core.HighScoreStore) {
	g.store = store
}

// Reset starts a fresh session behind the title overlay.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	runtime = runtime.WithDefaults()
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	var a *arena.Arena
	if g.open {
		a = arena.New(g.cfg)
	} else {
		a = arena.Generate(g.cfg, g.rng)
	}
	g.paths = pathfind.New(a, g.cfg.Pathfinder, g.rng)
	g.world = newWorld(a, g.cfg, g.rng)

	if g.store != nil {
		if high, err := g.store.LoadHighScore(g.ID()); err == nil {
			g.world.HighScore = high
		}
	}

	g.sched = g.newScheduler()
	g.events = nil
	g.tick = 0
	g.running = false
	g.paused = false
	g.beatHigh = false
	g.saveErr = nil
}

// loadConfig resolves the session config: explicit override, else file
// search with the CLI preset applied, else defaults.
func (g *Game) loadConfig() config.AttractConfig {
	if g.override != nil {
		return *g.override
	}
	cfg, err := config.LoadAttract(configPath)
	if err != nil {
		cfg = config.DefaultAttractConfig()
	}
	config.ApplyAttractPreset(&cfg, difficultyPreset)
	return cfg
}

func (g *Game) newScheduler() *Scheduler {
	t := g.cfg.Timing
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }

	s := NewScheduler()
	s.Add(loopChasers, ms(t.ChaserMs), g.updateChasers)
	s.Add(loopSeeker, ms(t.SeekerMs), g.updateSeeker)
	s.Add(loopCollisions, ms(t.CollisionMs), g.resolveCollisions)
	s.Add(loopParticles, ms(t.ParticleMs), g.world.Particles.Update)
	s.Add(loopPower, time.Second, g.countdownPower)
	s.Add(loopSpawn, ms(g.cfg.Targets.SpawnIntervalMs), g.spawnTick)
	s.Add(loopRespawn, housekeeping, func() { g.processRespawns(housekeeping) })
	s.Add(loopAnimation, ms(t.AnimationMs), func() { g.world.MouthOpen = !g.world.MouthOpen })
	if g.cfg.Score.PassivePoints > 0 {
		s.Add(loopPassive, ms(g.cfg.Score.PassiveIntervalMs), func() { g.addScore(g.cfg.Score.PassivePoints) })
	}
	s.Add(loopMessages, housekeeping, func() { g.expireMessage(housekeeping) })
	return s
}

// Start dismisses the title overlay and lets the simulation run.
func (g *Game) Start() {
	g.running = true
}

// Running reports whether the title overlay has been dismissed.
func (g *Game) Running() bool {
	return g.running
}

// FrameDuration is the simulated time covered by one Step.
func (g *Game) FrameDuration() time.Duration {
	return g.runtime.FrameDuration()
}

// Step advances the simulation by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		g.Start()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionConfirm) && !g.running {
		g.Start()
	}
	if in.Has(core.ActionPause) && g.running {
		g.paused = !g.paused
	}
	if !g.running || g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.FrameDuration()
	g.sched.Advance(dt)
	g.world.Elapsed += dt
	g.tick++
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.world.Score,
		HighScore: g.world.HighScore,
		Paused:    g.paused,
		Running:   g.running,
	}
}

// World exposes the session state. Callers must treat it as read-only
// unless they are staging a scenario before stepping.
func (g *Game) World() *World {
	return g.world
}

// Config returns the config the current session runs with.
func (g *Game) Config() config.AttractConfig {
	return g.cfg
}

// PathStats returns the pathfinder counters for this session.
func (g *Game) PathStats() pathfind.Stats {
	if g.paths == nil {
		return pathfind.Stats{}
	}
	return g.paths.Stats()
}

// PowerFraction reports the share of power mode left, 0 when inactive.
func (g *Game) PowerFraction() float64 {
	if g.world == nil || !g.world.Power || g.cfg.Power.DurationSecs <= 0 {
		return 0
	}
	return float64(g.world.PowerRemaining) / float64(g.cfg.Power.DurationSecs)
}

// Tick returns the number of simulated frames.
func (g *Game) Tick() uint64 {
	return g.tick
}

// DrainEvents returns and clears the queued events.
func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}

// Dispose ends the session: the final score is persisted and the store is
// released. The game must be Reset before it is stepped again. A failed final
// save is returned; the game is released either way.
func (g *Game) Dispose() error {
	var err error
	if g.world != nil && g.store != nil && g.world.Score > 0 {
		if saveErr := g.store.SaveHighScore(g.ID(), g.world.Score); saveErr != nil {
			err = fmt.Errorf("save final score: %w", saveErr)
		}
	}
	g.store = nil
	g.running = false
	g.events = nil
	return err
}

// SaveErr returns the last high score save failure, nil if the latest save
// succeeded.
func (g *Game) SaveErr() error {
	return g.saveErr
}

// saveHighScore persists score. The simulation keeps running on failure; the
// first failure of a streak is reported as an EventStoreFailed.
func (g *Game) saveHighScore(score int) {
	err := g.store.SaveHighScore(g.ID(), score)
	if err == nil {
		g.saveErr = nil
		return
	}
	if g.saveErr == nil {
		g.emit(Event{Kind: EventStoreFailed, Text: err.Error(), Points: score})
	}
	g.saveErr = err
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// updateChasers moves every chaser from the previous tick's positions.
func (g *Game) updateChasers() {
	w := g.world
	env := agents.ChaserEnv{
		Arena:       w.Arena,
		Paths:       g.paths,
		Seeker:      agents.SeekerView{Pos: w.Seeker.Pos, Dir: w.Seeker.Dir},
		Tuning:      g.cfg.Chasers,
		AgentMargin: g.cfg.Arena.AgentMargin,
		SpeedScale:  g.difficulty.SpeedScale(w.Score, int(g.tick)), //#nosec G115 -- tick count fits in int
		Rng:         g.rng,
	}
	next := make([]agents.Chaser, len(w.Chasers))
	for i, c := range w.Chasers {
		next[i] = agents.UpdateChaser(c, env)
	}
	w.Chasers = next
}

// updateSeeker steers the seeker against the current chaser positions.
func (g *Game) updateSeeker() {
	w := g.world
	w.Seeker = agents.UpdateSeeker(w.Seeker, agents.SeekerEnv{
		Arena:       w.Arena,
		Paths:       g.paths,
		Tuning:      g.cfg.Seeker,
		AgentMargin: g.cfg.Arena.AgentMargin,
		Targets:     w.seekerTargets(g.cfg.Seeker),
		Dangers:     w.dangers(),
		Rng:         g.rng,
	})
}
