// Package stream broadcasts idle-screen snapshots to browser presentation
// layers over WebSocket.
package stream

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/kiosk-idle/internal/games/attract"
)

// Frame types.
const (
	FrameSnapshot = "snapshot"
	FrameEvent    = "event"
)

// Format selects the wire encoding of a client.
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// String returns the query value selecting the format.
func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// ParseFormat maps the ?format= query value. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return FormatJSON, fmt.Errorf("stream: unknown format %q", s)
	}
}

// Frame is the envelope sent to clients.
type Frame struct {
	Type     string            `json:"type" msgpack:"type"`
	Tick     uint64            `json:"tick" msgpack:"tick"`
	Snapshot *attract.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Event    *EventFrame       `json:"event,omitempty" msgpack:"event,omitempty"`
}

// EventFrame is the wire form of a simulation event.
type EventFrame struct {
	Kind       string  `json:"kind" msgpack:"kind"`
	Text       string  `json:"text,omitempty" msgpack:"text,omitempty"`
	DurationMs int64   `json:"duration_ms,omitempty" msgpack:"duration_ms,omitempty"`
	Points     int     `json:"points,omitempty" msgpack:"points,omitempty"`
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
}

// NewEventFrame wraps a simulation event.
func NewEventFrame(tick uint64, e attract.Event) Frame {
	return Frame{
		Type: FrameEvent,
		Tick: tick,
		Event: &EventFrame{
			Kind:       e.Kind.String(),
			Text:       e.Text,
			DurationMs: e.Duration.Milliseconds(),
			Points:     e.Points,
			X:          e.Pos.X,
			Y:          e.Pos.Y,
		},
	}
}

// NewSnapshotFrame wraps a snapshot.
func NewSnapshotFrame(snap attract.Snapshot) Frame {
	return Frame{Type: FrameSnapshot, Tick: snap.Tick, Snapshot: &snap}
}

// Encode marshals a frame in the given format.
func Encode(f Frame, format Format) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch format {
	case FormatMsgpack:
		b, err = msgpack.Marshal(&f)
	default:
		b, err = json.Marshal(f)
	}
	if err != nil {
		return nil, fmt.Errorf("stream: encode %s frame: %w", f.Type, err)
	}
	return b, nil
}

// Decode unmarshals a frame in the given format.
func Decode(b []byte, format Format) (Frame, error) {
	var f Frame
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.Unmarshal(b, &f)
	default:
		err = json.Unmarshal(b, &f)
	}
	if err != nil {
		return Frame{}, fmt.Errorf("stream: decode frame: %w", err)
	}
	return f, nil
}
