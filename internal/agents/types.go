// Package agents implements the steering and behaviour state machines of the
// idle-screen agents: the chasers and the single seeker.
//
// Update functions are pure with respect to other agents: they take the
// previous state of one agent plus a read-only environment and return the next
// state. The caller swaps the results in once every agent has been computed.
package agents

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// PathFinder is the subset of the pathfinder the agents need. ok is false
// when the search failed and the path is only the direct start-goal segment.
type PathFinder interface {
	FindPath(start, goal core.Vec, avoid []core.Vec) (path []core.Vec, ok bool)
}

// Personality is a fixed per-chaser bias over mode selection.
type Personality int

const (
	PersonalityAggressive Personality = iota
	PersonalitySmart
	PersonalityRandom
	PersonalityAmbusher
)

// Personalities lists every personality in chaser creation order.
var Personalities = [...]Personality{
	PersonalityAggressive,
	PersonalitySmart,
	PersonalityRandom,
	PersonalityAmbusher,
}

// String returns the personality name.
func (p Personality) String() string {
	switch p {
	case PersonalityAggressive:
		return "aggressive"
	case PersonalitySmart:
		return "smart"
	case PersonalityRandom:
		return "random"
	case PersonalityAmbusher:
		return "ambusher"
	default:
		return "unknown"
	}
}

// Mode is the current behaviour of a chaser.
type Mode int

const (
	ModeRandom Mode = iota
	ModeChase
	ModeAmbush
	ModeFlee
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeChase:
		return "chase"
	case ModeAmbush:
		return "ambush"
	case ModeFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// randomHeading returns a uniformly distributed unit vector.
func randomHeading(rng *rand.Rand) core.Vec {
	return core.Heading(rng.Float64() * 2 * math.Pi)
}

// waypointDirection points from pos toward the first waypoint that is not
// already underfoot. It returns false when every waypoint is within reach.
func waypointDirection(pos core.Vec, path []core.Vec, reach float64) (core.Vec, bool) {
	for _, wp := range path {
		if pos.Dist(wp) > reach {
			return wp.Sub(pos).Normalize(), true
		}
	}
	return core.Vec{}, false
}
