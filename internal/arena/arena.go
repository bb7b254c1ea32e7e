// Package arena models the bounded 2D play field and its static obstacles.
// Every other component asks the arena whether a point is blocked.
package arena

import (
	"math/rand"

	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// DefaultSpawnAttempts bounds FindValidPosition's rejection sampling.
const DefaultSpawnAttempts = 50

// Obstacle is an axis-aligned rectangle. Immutable once generated.
type Obstacle struct {
	X      float64    `json:"x" msgpack:"x"`
	Y      float64    `json:"y" msgpack:"y"`
	Width  float64    `json:"width" msgpack:"width"`
	Height float64    `json:"height" msgpack:"height"`
	Color  core.Color `json:"color" msgpack:"color"`
}

// Contains reports whether p lies within margin units of the rectangle (inclusive).
func (o Obstacle) Contains(p core.Vec, margin float64) bool {
	return p.X >= o.X-margin && p.X <= o.X+o.Width+margin &&
		p.Y >= o.Y-margin && p.Y <= o.Y+o.Height+margin
}

// Overlaps reports whether the rectangles are closer than margin on both axes.
// Only o is grown, so margin is the required gap between the two edges.
func (o Obstacle) Overlaps(other Obstacle, margin float64) bool {
	return o.X-margin < other.X+other.Width &&
		o.X+o.Width+margin > other.X &&
		o.Y-margin < other.Y+other.Height &&
		o.Y+o.Height+margin > other.Y
}

// IntersectsCircle reports whether the rectangle touches the circle.
func (o Obstacle) IntersectsCircle(c Circle) bool {
	nx := core.ClampF(c.Center.X, o.X, o.X+o.Width)
	ny := core.ClampF(c.Center.Y, o.Y, o.Y+o.Height)
	return c.Center.Dist(core.V(nx, ny)) < c.Radius
}

// Circle is a reserved safe zone.
type Circle struct {
	Center core.Vec
	Radius float64
}

// Arena is the read-mostly play field shared by every agent for a session.
type Arena struct {
	Min       float64
	Max       float64
	Margin    float64
	Obstacles []Obstacle
	safeZones []Circle
}

// New creates an empty arena with the configured bounds and reserved zones.
func New(cfg config.AttractConfig) *Arena {
	a := &Arena{
		Min:    cfg.Arena.Min,
		Max:    cfg.Arena.Max,
		Margin: cfg.Arena.Margin,
	}
	a.safeZones = safeZones(cfg)
	return a
}

// Center returns the middle of the arena. It is always inside a safe zone.
func (a *Arena) Center() core.Vec {
	mid := (a.Min + a.Max) / 2
	return core.V(mid, mid)
}

// Corners returns the four corner anchors used as chaser homes.
func (a *Arena) Corners(inset float64) [4]core.Vec {
	lo, hi := a.Min+inset, a.Max-inset
	return [4]core.Vec{
		core.V(lo, lo),
		core.V(hi, lo),
		core.V(lo, hi),
		core.V(hi, hi),
	}
}

// SafeZones returns the reserved circles obstacles may not touch.
func (a *Arena) SafeZones() []Circle {
	return a.safeZones
}

// IsInsideObstacle reports whether p lies within margin units of any obstacle.
func (a *Arena) IsInsideObstacle(p core.Vec, margin float64) bool {
	for _, o := range a.Obstacles {
		if o.Contains(p, margin) {
			return true
		}
	}
	return false
}

// InBounds reports whether p lies inside the margin-inset arena.
func (a *Arena) InBounds(p core.Vec) bool {
	lo, hi := a.Min+a.Margin, a.Max-a.Margin
	return p.X >= lo && p.X <= hi && p.Y >= lo && p.Y <= hi
}

// ClampInBounds pulls p back into the margin-inset arena.
func (a *Arena) ClampInBounds(p core.Vec) core.Vec {
	return p.Clamp(a.Min+a.Margin, a.Max-a.Margin)
}

// IsFree reports whether an agent may stand at p.
func (a *Arena) IsFree(p core.Vec, margin float64) bool {
	return a.InBounds(p) && !a.IsInsideObstacle(p, margin)
}

// FindValidPosition draws uniform points inside the margin-inset bounds until one
// is clear of obstacles by obstacleMargin. After DefaultSpawnAttempts failures it
// returns the arena center.
func (a *Arena) FindValidPosition(rng *rand.Rand, obstacleMargin float64) core.Vec {
	lo, hi := a.Min+a.Margin, a.Max-a.Margin
	for range DefaultSpawnAttempts {
		p := core.V(lo+rng.Float64()*(hi-lo), lo+rng.Float64()*(hi-lo))
		if !a.IsInsideObstacle(p, obstacleMargin) {
			return p
		}
	}
	return a.Center()
}

// safeZones builds the reserved circles: the arena center and the four corners.
func safeZones(cfg config.AttractConfig) []Circle {
	mid := (cfg.Arena.Min + cfg.Arena.Max) / 2
	lo := cfg.Arena.Min + cfg.Obstacles.CornerInset
	hi := cfg.Arena.Max - cfg.Obstacles.CornerInset
	r := cfg.Obstacles.CornerZoneRadius
	return []Circle{
		{Center: core.V(mid, mid), Radius: cfg.Obstacles.CenterZoneRadius},
		{Center: core.V(lo, lo), Radius: r},
		{Center: core.V(hi, lo), Radius: r},
		{Center: core.V(lo, hi), Radius: r},
		{Center: core.V(hi, hi), Radius: r},
	}
}
