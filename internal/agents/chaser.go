package agents

import (
	"math/rand"

	"github.com/vovakirdan/kiosk-idle/internal/arena"
	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// waypointReach is how close a chaser must be to skip a waypoint.
const waypointReach = 0.5

// Chaser is an adversarial agent that pursues or flees the seeker.
type Chaser struct {
	ID          int
	Pos         core.Vec
	Dir         core.Vec
	Color       core.Color
	Scared      bool
	Mode        Mode
	ModeTimer   int
	Personality Personality
}

// weightedMode is one entry of a personality's mode table.
type weightedMode struct {
	mode   Mode
	weight float64
}

// modeTables holds the mode selection odds per personality. Each row sums to 1.
var modeTables = map[Personality][]weightedMode{
	PersonalityAggressive: {{ModeChase, 0.7}, {ModeAmbush, 0.1}, {ModeRandom, 0.2}},
	PersonalitySmart:      {{ModeChase, 0.4}, {ModeAmbush, 0.4}, {ModeRandom, 0.2}},
	PersonalityRandom:     {{ModeRandom, 0.6}, {ModeChase, 0.25}, {ModeAmbush, 0.15}},
	PersonalityAmbusher:   {{ModeAmbush, 0.6}, {ModeChase, 0.2}, {ModeRandom, 0.2}},
}

// SeekerView is what chasers know about the seeker: last tick's position and heading.
type SeekerView struct {
	Pos core.Vec
	Dir core.Vec
}

// ChaserEnv is the read-only context for one chaser tick.
type ChaserEnv struct {
	Arena       *arena.Arena
	Paths       PathFinder
	Seeker      SeekerView
	Tuning      config.ChaserConfig
	AgentMargin float64
	SpeedScale  float64 // Difficulty multiplier, 1 = base speed
	Rng         *rand.Rand
}

// NewChaser creates a chaser at pos in random mode with a fresh mode timer.
func NewChaser(id int, p Personality, color core.Color, pos core.Vec, tuning config.ChaserConfig, rng *rand.Rand) Chaser {
	return Chaser{
		ID:          id,
		Pos:         pos,
		Dir:         randomHeading(rng),
		Color:       color,
		Mode:        ModeRandom,
		ModeTimer:   modeDuration(tuning, rng),
		Personality: p,
	}
}

// Frighten puts the chaser into flee mode for ticks chaser ticks.
func (c *Chaser) Frighten(ticks int) {
	c.Scared = true
	c.Mode = ModeFlee
	c.ModeTimer = ticks
}

// Calm ends the scared state and returns the chaser to random mode.
func (c *Chaser) Calm(tuning config.ChaserConfig, rng *rand.Rand) {
	c.Scared = false
	c.Mode = ModeRandom
	c.ModeTimer = modeDuration(tuning, rng)
}

// UpdateChaser computes the chaser's next state.
func UpdateChaser(c Chaser, env ChaserEnv) Chaser {
	next := c

	next.ModeTimer--
	if next.ModeTimer <= 0 {
		next.chooseMode(env.Tuning, env.Rng)
	}

	next.Dir = next.steer(env)

	step := next.Pos.Add(next.Dir.Scale(next.speed(env)))
	if env.Arena.IsFree(step, env.AgentMargin) {
		next.Pos = step
	} else if next.Mode == ModeRandom || next.Mode == ModeFlee {
		// Stall this tick, try another heading on the next one
		next.Dir = randomHeading(env.Rng)
	}
	return next
}

// chooseMode picks the next mode when the timer expires.
func (c *Chaser) chooseMode(tuning config.ChaserConfig, rng *rand.Rand) {
	if c.Scared {
		c.Mode = ModeFlee
		c.ModeTimer = tuning.ModeMaxTicks
		return
	}
	c.Mode = pickMode(c.Personality, rng)
	c.ModeTimer = modeDuration(tuning, rng)
}

func pickMode(p Personality, rng *rand.Rand) Mode {
	table := modeTables[p]
	roll := rng.Float64()
	for _, wm := range table {
		if roll < wm.weight {
			return wm.mode
		}
		roll -= wm.weight
	}
	return table[len(table)-1].mode
}

func modeDuration(tuning config.ChaserConfig, rng *rand.Rand) int {
	span := tuning.ModeMaxTicks - tuning.ModeMinTicks
	if span <= 0 {
		return tuning.ModeMinTicks
	}
	return tuning.ModeMinTicks + rng.Intn(span+1)
}

// steer returns the heading for this tick.
func (c *Chaser) steer(env ChaserEnv) core.Vec {
	t := env.Tuning
	dist := c.Pos.Dist(env.Seeker.Pos)

	switch c.Mode {
	case ModeChase:
		if dist <= t.EngageDistance {
			return c.pathTo(env, env.Seeker.Pos)
		}
		return c.keepHeading(env.Rng)

	case ModeAmbush:
		ahead := env.Seeker.Pos.Add(env.Seeker.Dir.Scale(t.AmbushLookahead))
		return c.pathTo(env, env.Arena.ClampInBounds(ahead))

	case ModeFlee:
		if dist < t.FleeRadius {
			// Mirror the seeker through our own position
			away := c.Pos.Scale(2).Sub(env.Seeker.Pos)
			return c.pathTo(env, env.Arena.ClampInBounds(away))
		}
		return c.wander(env)

	default:
		return c.wander(env)
	}
}

func (c *Chaser) wander(env ChaserEnv) core.Vec {
	if c.Dir == (core.Vec{}) || env.Rng.Float64() < env.Tuning.TurnChance {
		return randomHeading(env.Rng)
	}
	return c.Dir
}

func (c *Chaser) keepHeading(rng *rand.Rand) core.Vec {
	if c.Dir == (core.Vec{}) {
		return randomHeading(rng)
	}
	return c.Dir
}

// pathTo heads for goal along a fresh (or cached) path.
func (c *Chaser) pathTo(env ChaserEnv, goal core.Vec) core.Vec {
	path, _ := env.Paths.FindPath(c.Pos, goal, nil)
	if dir, ok := waypointDirection(c.Pos, path, waypointReach); ok {
		return dir
	}
	// Already at the goal
	return c.keepHeading(env.Rng)
}

// speed returns this tick's step length including scared slowdown and jitter.
func (c *Chaser) speed(env ChaserEnv) float64 {
	t := env.Tuning
	var base float64
	switch c.Personality {
	case PersonalityAggressive:
		base = t.Speeds.Aggressive
	case PersonalitySmart:
		base = t.Speeds.Smart
	case PersonalityRandom:
		base = t.Speeds.Random
	case PersonalityAmbusher:
		base = t.Speeds.Ambusher
	}
	if c.Scared {
		base *= t.ScaredMultiplier
	}
	scale := env.SpeedScale
	if scale <= 0 {
		scale = 1
	}
	jitter := 1 + t.Jitter*(2*env.Rng.Float64()-1)
	return base * scale * jitter
}
