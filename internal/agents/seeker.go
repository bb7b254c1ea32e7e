package agents

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/kiosk-idle/internal/arena"
	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// TargetKind tags what a TargetRef points at.
type TargetKind int

const (
	KindCollectible TargetKind = iota
	KindChaser
)

// String returns the kind name.
func (k TargetKind) String() string {
	if k == KindChaser {
		return "chaser"
	}
	return "collectible"
}

// TargetRef is one candidate goal for the seeker. Weight multiplies the
// distance, so lower weights are preferred.
type TargetRef struct {
	Kind   TargetKind
	ID     int
	Pos    core.Vec
	Weight float64
}

// Cost returns the weighted distance from pos.
func (t TargetRef) Cost(pos core.Vec) float64 {
	return pos.Dist(t.Pos) * t.Weight
}

// BestTarget returns the cheapest target from pos. Ties keep the earlier entry.
func BestTarget(pos core.Vec, targets []TargetRef) (TargetRef, bool) {
	if len(targets) == 0 {
		return TargetRef{}, false
	}
	best := targets[0]
	bestCost := best.Cost(pos)
	for _, t := range targets[1:] {
		if c := t.Cost(pos); c < bestCost {
			best, bestCost = t, c
		}
	}
	return best, true
}

// StuckDetector counts consecutive ticks with negligible displacement.
type StuckDetector struct {
	Last   core.Vec
	Count  int
	primed bool
}

// Observe records pos and returns the current stuck count.
func (d *StuckDetector) Observe(pos core.Vec, epsilon float64) int {
	if d.primed && pos.Dist(d.Last) < epsilon {
		d.Count++
	} else {
		d.Count = 0
	}
	d.Last = pos
	d.primed = true
	return d.Count
}

// Reset clears the counter.
func (d *StuckDetector) Reset() {
	d.Count = 0
}

// Seeker is the autonomous protagonist.
type Seeker struct {
	Pos   core.Vec
	Dir   core.Vec
	Path  []core.Vec
	Goal  TargetRef
	Stuck StuckDetector

	hasGoal bool
}

// NewSeeker places a seeker at pos with no path.
func NewSeeker(pos core.Vec) Seeker {
	return Seeker{Pos: pos, Dir: core.V(1, 0)}
}

// HasGoal reports whether the seeker is currently heading for a target.
func (s Seeker) HasGoal() bool { return s.hasGoal }

// SeekerEnv is the read-only context for one seeker tick.
type SeekerEnv struct {
	Arena       *arena.Arena
	Paths       PathFinder
	Tuning      config.SeekerConfig
	AgentMargin float64
	Targets     []TargetRef
	Dangers     []core.Vec // Positions of chasers that are not scared
	Rng         *rand.Rand
}

// UpdateSeeker computes the seeker's next state.
func UpdateSeeker(s Seeker, env SeekerEnv) Seeker {
	next := s
	next.Path = append([]core.Vec(nil), s.Path...)
	t := env.Tuning

	stuck := next.Stuck.Observe(next.Pos, t.StuckEpsilon) > t.StuckThreshold
	replan := env.Rng.Float64() < t.ReplanChance || len(next.Path) == 0 ||
		(next.hasGoal && !containsTarget(env.Targets, next.Goal))

	dangers := nearby(next.Pos, env.Dangers, t.WarningRadius)

	if stuck {
		next.Stuck.Reset()
		next.Path = nil
		next.Dir = randomHeading(env.Rng)
		return next.move(env, next.Dir)
	}

	if replan {
		next.plan(env, dangers)
	}

	for len(next.Path) > 0 && next.Pos.Dist(next.Path[0]) <= t.ArrivalRadius {
		next.Path = next.Path[1:]
	}

	switch {
	case len(next.Path) > 0:
		next.Dir = next.Path[0].Sub(next.Pos).Normalize()
	case len(dangers) > 0:
		next.Dir = next.Pos.Sub(nearest(next.Pos, dangers)).Normalize()
	case next.hasGoal:
		next.Dir = next.Goal.Pos.Sub(next.Pos).Normalize()
	}

	return next.move(env, next.Dir)
}

// plan selects the best target and requests a path avoiding nearby danger.
func (s *Seeker) plan(env SeekerEnv, dangers []core.Vec) {
	goal, ok := BestTarget(s.Pos, env.Targets)
	s.hasGoal = ok
	if !ok {
		s.Goal = TargetRef{}
		s.Path = nil
		return
	}
	s.Goal = goal
	path, found := env.Paths.FindPath(s.Pos, goal.Pos, dangers)
	if !found && len(dangers) > 0 {
		// The direct segment ignores danger; let repulsion steer instead
		s.Path = nil
		return
	}
	if len(path) > 0 {
		// First node is the (possibly cached) start
		path = path[1:]
	}
	s.Path = path
}

// move applies dir per axis. An axis that would leave the bounds or enter an
// obstacle is dropped; an obstacle hit also clears the path.
func (s Seeker) move(env SeekerEnv, dir core.Vec) Seeker {
	speed := env.Tuning.Speed
	hit := false

	if dir.X != 0 {
		cand := core.V(s.Pos.X+dir.X*speed, s.Pos.Y)
		switch {
		case !env.Arena.InBounds(cand):
		case env.Arena.IsInsideObstacle(cand, env.AgentMargin):
			hit = true
		default:
			s.Pos = cand
		}
	}
	if dir.Y != 0 {
		cand := core.V(s.Pos.X, s.Pos.Y+dir.Y*speed)
		switch {
		case !env.Arena.InBounds(cand):
		case env.Arena.IsInsideObstacle(cand, env.AgentMargin):
			hit = true
		default:
			s.Pos = cand
		}
	}
	if hit {
		s.Path = nil
	}
	return s
}

// containsTarget reports whether the goal is still on offer.
func containsTarget(targets []TargetRef, goal TargetRef) bool {
	for _, t := range targets {
		if t.Kind == goal.Kind && t.ID == goal.ID {
			return true
		}
	}
	return false
}

func nearby(pos core.Vec, points []core.Vec, radius float64) []core.Vec {
	var out []core.Vec
	for _, p := range points {
		if pos.Dist(p) <= radius {
			out = append(out, p)
		}
	}
	return out
}

func nearest(pos core.Vec, points []core.Vec) core.Vec {
	best := points[0]
	bestDist := math.Inf(1)
	for _, p := range points {
		if d := pos.Dist(p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
