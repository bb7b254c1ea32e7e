package attract

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/kiosk-idle/internal/agents"
	"github.com/vovakirdan/kiosk-idle/internal/arena"
	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// Target visual kinds. Special targets are always cakes.
const (
	KindCake = "cake"
)

var targetKinds = []string{"cupcake", "croissant", "donut", "cookie", "macaron"}

// chaserColors are assigned by creation index.
var chaserColors = []core.Color{core.ColorRed, core.ColorPink, core.ColorCyan, core.ColorOrange}

// Target is a collectible.
type Target struct {
	ID      int
	Pos     core.Vec
	Kind    string
	Special bool
}

// respawn is a caught chaser waiting to re-enter the arena.
type respawn struct {
	chaser    agents.Chaser
	remaining time.Duration
}

// World is the complete state of one simulation session.
type World struct {
	Arena     *arena.Arena
	Seeker    agents.Seeker
	Chasers   []agents.Chaser
	Targets   []Target
	Particles *ParticlePool

	Score          int
	HighScore      int
	Power          bool
	PowerRemaining int // Seconds

	Message          string
	MessageRemaining time.Duration
	MouthOpen        bool
	Elapsed          time.Duration

	respawns      []respawn
	lastMilestone int
	nextTargetID  int
}

// newWorld seeds a session: seeker at the center, chasers on the corner anchors
// and the initial collectibles.
func newWorld(a *arena.Arena, cfg config.AttractConfig, rng *rand.Rand) *World {
	w := &World{
		Arena:     a,
		Seeker:    agents.NewSeeker(a.Center()),
		Particles: NewParticlePool(cfg.Particles.Max),
		MouthOpen: true,
	}

	corners := a.Corners(cfg.Obstacles.CornerInset)
	for i := range cfg.Chasers.Count {
		p := agents.Personalities[i%len(agents.Personalities)]
		color := chaserColors[i%len(chaserColors)]
		w.Chasers = append(w.Chasers, agents.NewChaser(i, p, color, corners[i%len(corners)], cfg.Chasers, rng))
	}

	for range cfg.Targets.Initial {
		w.spawnTarget(cfg, rng)
	}
	return w
}

// spawnTarget adds one collectible at a free position.
func (w *World) spawnTarget(cfg config.AttractConfig, rng *rand.Rand) Target {
	t := Target{
		ID:  w.nextTargetID,
		Pos: w.Arena.FindValidPosition(rng, cfg.Arena.SpawnMargin),
	}
	w.nextTargetID++
	if rng.Float64() < cfg.Targets.SpecialChance {
		t.Special = true
		t.Kind = KindCake
	} else {
		t.Kind = targetKinds[rng.Intn(len(targetKinds))]
	}
	w.Targets = append(w.Targets, t)
	return t
}

// AddTarget places a collectible at pos. It is used to stage scenarios.
func (w *World) AddTarget(pos core.Vec, special bool) Target {
	t := Target{ID: w.nextTargetID, Pos: pos, Special: special, Kind: targetKinds[0]}
	if special {
		t.Kind = KindCake
	}
	w.nextTargetID++
	w.Targets = append(w.Targets, t)
	return t
}

// PendingRespawns returns how many caught chasers are waiting to return.
func (w *World) PendingRespawns() int {
	return len(w.respawns)
}

// seekerTargets builds the seeker's candidate list: every collectible, plus
// fleeing chasers while power mode is on.
func (w *World) seekerTargets(tuning config.SeekerConfig) []agents.TargetRef {
	refs := make([]agents.TargetRef, 0, len(w.Targets)+len(w.Chasers))
	for _, t := range w.Targets {
		weight := 1.0
		if t.Special {
			weight = tuning.SpecialWeight
		}
		refs = append(refs, agents.TargetRef{Kind: agents.KindCollectible, ID: t.ID, Pos: t.Pos, Weight: weight})
	}
	if w.Power {
		for _, c := range w.Chasers {
			if c.Scared {
				refs = append(refs, agents.TargetRef{Kind: agents.KindChaser, ID: c.ID, Pos: c.Pos, Weight: tuning.ChaserWeight})
			}
		}
	}
	return refs
}

// dangers returns the positions of chasers that can still hurt the seeker.
func (w *World) dangers() []core.Vec {
	var out []core.Vec
	for _, c := range w.Chasers {
		if !c.Scared {
			out = append(out, c.Pos)
		}
	}
	return out
}
