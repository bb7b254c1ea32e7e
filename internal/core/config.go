package core

import "time"

// Fallbacks applied by RuntimeConfig.WithDefaults.
const (
	DefaultTickRate = 60
	DefaultScreenW  = 80
	DefaultScreenH  = 24
)

// RuntimeConfig is what a platform tells a game on Reset: the terminal it
// draws into and how the session is clocked. Tuning lives in the game's own
// config; this only carries what differs per viewer.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // Steps per second
	Seed     int64 // Zero lets the platform pick a time seed
}

// WithDefaults returns c with unset size and tick rate filled in.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = DefaultScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = DefaultScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// FrameDuration is the wall time of one step at c's tick rate.
func (c RuntimeConfig) FrameDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState is the per-step status a game reports to its platform.
type GameState struct {
	Score     int
	HighScore int
	GameOver  bool
	Paused    bool
	Running   bool // False while the title overlay is shown
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
