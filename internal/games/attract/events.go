package attract

import (
	"time"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// EventKind identifies a simulation event.
type EventKind int

const (
	EventPickup EventKind = iota
	EventCatch
	EventPowerOn
	EventPowerOff
	EventMilestone
	EventHighScore
	EventStoreFailed
)

// String returns the event kind name used on the wire.
func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventCatch:
		return "catch"
	case EventPowerOn:
		return "power_on"
	case EventPowerOff:
		return "power_off"
	case EventMilestone:
		return "milestone"
	case EventHighScore:
		return "high_score"
	case EventStoreFailed:
		return "store_failed"
	default:
		return "unknown"
	}
}

// Event is an ephemeral notification for the presentation layer.
// Milestone events carry the message text and how long to show it.
// Store failures carry the error text.
type Event struct {
	Kind     EventKind
	Text     string
	Duration time.Duration
	Points   int
	Pos      core.Vec
}
