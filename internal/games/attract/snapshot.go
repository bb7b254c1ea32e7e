package attract

import (
	"hash/fnv"
	"math"

	"github.com/vovakirdan/kiosk-idle/internal/arena"
)

// Snapshot is the per-tick view handed to presentation layers. It uses plain
// types only so it encodes the same way as JSON and as msgpack.
type Snapshot struct {
	GameID         string           `json:"game_id" msgpack:"game_id"`
	Tick           uint64           `json:"tick" msgpack:"tick"`
	ElapsedMs      int64            `json:"elapsed_ms" msgpack:"elapsed_ms"`
	Running        bool             `json:"running" msgpack:"running"`
	Paused         bool             `json:"paused" msgpack:"paused"`
	Score          int              `json:"score" msgpack:"score"`
	HighScore      int              `json:"high_score" msgpack:"high_score"`
	Power          bool             `json:"power" msgpack:"power"`
	PowerRemaining int              `json:"power_remaining" msgpack:"power_remaining"`
	Message        string           `json:"message,omitempty" msgpack:"message,omitempty"`
	Seeker         SeekerSnapshot   `json:"seeker" msgpack:"seeker"`
	Chasers        []ChaserSnapshot `json:"chasers" msgpack:"chasers"`
	Targets        []TargetSnapshot `json:"targets" msgpack:"targets"`
	Obstacles      []arena.Obstacle `json:"obstacles" msgpack:"obstacles"`
	Particles      []PointSnapshot  `json:"particles" msgpack:"particles"`
}

// PointSnapshot is a position in arena units.
type PointSnapshot struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// SeekerSnapshot describes the seeker.
type SeekerSnapshot struct {
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	DirX      float64 `json:"dir_x" msgpack:"dir_x"`
	DirY      float64 `json:"dir_y" msgpack:"dir_y"`
	MouthOpen bool    `json:"mouth_open" msgpack:"mouth_open"`
	PathLen   int     `json:"path_len" msgpack:"path_len"`
}

// ChaserSnapshot describes one active chaser.
type ChaserSnapshot struct {
	ID          int     `json:"id" msgpack:"id"`
	X           float64 `json:"x" msgpack:"x"`
	Y           float64 `json:"y" msgpack:"y"`
	Color       string  `json:"color" msgpack:"color"`
	Mode        string  `json:"mode" msgpack:"mode"`
	Personality string  `json:"personality" msgpack:"personality"`
	Scared      bool    `json:"scared" msgpack:"scared"`
}

// TargetSnapshot describes one collectible.
type TargetSnapshot struct {
	ID      int     `json:"id" msgpack:"id"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Kind    string  `json:"kind" msgpack:"kind"`
	Special bool    `json:"special" msgpack:"special"`
}

// Snapshot captures the current session state.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	if w == nil {
		return Snapshot{GameID: g.ID()}
	}

	snap := Snapshot{
		GameID:         g.ID(),
		Tick:           g.tick,
		ElapsedMs:      w.Elapsed.Milliseconds(),
		Running:        g.running,
		Paused:         g.paused,
		Score:          w.Score,
		HighScore:      w.HighScore,
		Power:          w.Power,
		PowerRemaining: w.PowerRemaining,
		Message:        w.Message,
		Seeker: SeekerSnapshot{
			X:         w.Seeker.Pos.X,
			Y:         w.Seeker.Pos.Y,
			DirX:      w.Seeker.Dir.X,
			DirY:      w.Seeker.Dir.Y,
			MouthOpen: w.MouthOpen,
			PathLen:   len(w.Seeker.Path),
		},
		Chasers:   make([]ChaserSnapshot, 0, len(w.Chasers)),
		Targets:   make([]TargetSnapshot, 0, len(w.Targets)),
		Obstacles: append([]arena.Obstacle{}, w.Arena.Obstacles...),
		Particles: make([]PointSnapshot, 0, w.Particles.Len()),
	}

	for _, c := range w.Chasers {
		snap.Chasers = append(snap.Chasers, ChaserSnapshot{
			ID:          c.ID,
			X:           c.Pos.X,
			Y:           c.Pos.Y,
			Color:       c.Color.String(),
			Mode:        c.Mode.String(),
			Personality: c.Personality.String(),
			Scared:      c.Scared,
		})
	}
	for _, t := range w.Targets {
		snap.Targets = append(snap.Targets, TargetSnapshot{
			ID:      t.ID,
			X:       t.Pos.X,
			Y:       t.Pos.Y,
			Kind:    t.Kind,
			Special: t.Special,
		})
	}
	for _, p := range w.Particles.Items() {
		snap.Particles = append(snap.Particles, PointSnapshot{X: p.Pos.X, Y: p.Pos.Y})
	}
	return snap
}

// Hash returns a digest of the simulation-relevant fields for determinism tests.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }

	put(snap.Tick)
	put(uint64(snap.Score))          //#nosec G115 -- hash computation
	put(uint64(snap.PowerRemaining)) //#nosec G115 -- hash computation
	putF(snap.Seeker.X)
	putF(snap.Seeker.Y)
	for _, c := range snap.Chasers {
		put(uint64(c.ID)) //#nosec G115 -- hash computation
		putF(c.X)
		putF(c.Y)
		_, _ = h.Write([]byte(c.Mode))
	}
	for _, t := range snap.Targets {
		put(uint64(t.ID)) //#nosec G115 -- hash computation
		putF(t.X)
		putF(t.Y)
	}
	for _, o := range snap.Obstacles {
		putF(o.X)
		putF(o.Y)
		putF(o.Width)
		putF(o.Height)
	}
	return h.Sum64()
}
