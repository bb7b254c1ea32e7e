package attract

import (
	"time"

	"github.com/vovakirdan/kiosk-idle/internal/agents"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// resolveCollisions tests the seeker against every target and, during power
// mode, every scared chaser.
func (g *Game) resolveCollisions() {
	w := g.world
	seeker := w.Seeker.Pos

	var collected []Target
	kept := make([]Target, 0, len(w.Targets))
	for _, t := range w.Targets {
		if seeker.Dist(t.Pos) <= g.cfg.Targets.PickupRadius {
			collected = append(collected, t)
			continue
		}
		kept = append(kept, t)
	}
	w.Targets = kept

	for _, t := range collected {
		points := g.cfg.Targets.Points
		burst, color := g.cfg.Particles.Burst, core.ColorYellow
		if t.Special {
			points = g.cfg.Targets.SpecialPoints
			burst, color = g.cfg.Particles.SpecialBurst, core.ColorPink
		}
		g.emit(Event{Kind: EventPickup, Text: t.Kind, Points: points, Pos: t.Pos})
		w.Particles.Burst(g.rng, t.Pos, burst, g.cfg.Particles.Speed, g.cfg.Particles.LifeTicks, color)
		g.addScore(points)
		if t.Special {
			g.activatePower()
		}
	}

	if !w.Power {
		return
	}

	active := make([]agents.Chaser, 0, len(w.Chasers))
	for _, c := range w.Chasers {
		if c.Scared && seeker.Dist(c.Pos) <= g.cfg.Chasers.PickupRadius {
			g.catchChaser(c)
			continue
		}
		active = append(active, c)
	}
	w.Chasers = active
}

// catchChaser removes a chaser, scores it and queues its respawn.
func (g *Game) catchChaser(c agents.Chaser) {
	w := g.world
	points := g.cfg.Chasers.Points
	g.emit(Event{Kind: EventCatch, Text: c.Personality.String(), Points: points, Pos: c.Pos})
	w.Particles.Burst(g.rng, c.Pos, g.cfg.Particles.SpecialBurst, g.cfg.Particles.Speed, g.cfg.Particles.LifeTicks, c.Color)
	w.respawns = append(w.respawns, respawn{
		chaser:    c,
		remaining: time.Duration(g.cfg.Chasers.RespawnDelayMs) * time.Millisecond,
	})
	g.addScore(points)
}

// activatePower starts (or restarts) power mode and frightens every chaser.
func (g *Game) activatePower() {
	w := g.world
	w.Power = true
	w.PowerRemaining = g.cfg.Power.DurationSecs
	g.sched.Restart(loopPower)

	fleeTicks := powerTicks(g.cfg.Power.DurationSecs, g.cfg.Timing.ChaserMs)
	for i := range w.Chasers {
		w.Chasers[i].Frighten(fleeTicks)
	}
	g.emit(Event{Kind: EventPowerOn, Duration: time.Duration(w.PowerRemaining) * time.Second})
}

// countdownPower runs once per second.
func (g *Game) countdownPower() {
	w := g.world
	if !w.Power {
		return
	}
	w.PowerRemaining--
	if w.PowerRemaining > 0 {
		return
	}
	w.Power = false
	w.PowerRemaining = 0
	for i := range w.Chasers {
		w.Chasers[i].Calm(g.cfg.Chasers, g.rng)
	}
	g.emit(Event{Kind: EventPowerOff})
}

// processRespawns counts down pending respawns by step.
func (g *Game) processRespawns(step time.Duration) {
	w := g.world
	pending := w.respawns[:0]
	for _, r := range w.respawns {
		r.remaining -= step
		if r.remaining > 0 {
			pending = append(pending, r)
			continue
		}
		c := r.chaser
		c.Pos = w.Arena.FindValidPosition(g.rng, g.cfg.Arena.SpawnMargin)
		c.Calm(g.cfg.Chasers, g.rng)
		w.Chasers = append(w.Chasers, c)
	}
	w.respawns = pending
}

// spawnTick adds a collectible while below the population cap.
func (g *Game) spawnTick() {
	if len(g.world.Targets) >= g.cfg.Targets.Cap {
		return
	}
	g.world.spawnTarget(g.cfg, g.rng)
}

// addScore raises the score, then handles milestones and the high score.
func (g *Game) addScore(points int) {
	if points <= 0 {
		return
	}
	w := g.world
	w.Score += points

	if milestone := w.Score / g.cfg.Score.MilestoneInterval; milestone > w.lastMilestone {
		w.lastMilestone = milestone
		g.showMilestone()
	}

	if w.Score > w.HighScore {
		if !g.beatHigh && w.HighScore > 0 {
			g.beatHigh = true
			g.emit(Event{Kind: EventHighScore, Points: w.Score})
		}
		w.HighScore = w.Score
		if g.store != nil {
			g.saveHighScore(w.HighScore)
		}
	}
}

// showMilestone picks a celebration message and queues it.
func (g *Game) showMilestone() {
	w := g.world
	msgs := g.cfg.Score.Messages
	if len(msgs) == 0 {
		return
	}
	w.Message = msgs[g.rng.Intn(len(msgs))]
	w.MessageRemaining = time.Duration(g.cfg.Score.MessageMs) * time.Millisecond
	g.emit(Event{
		Kind:     EventMilestone,
		Text:     w.Message,
		Duration: w.MessageRemaining,
		Points:   w.lastMilestone * g.cfg.Score.MilestoneInterval,
	})
}

// expireMessage counts the active message down by step.
func (g *Game) expireMessage(step time.Duration) {
	w := g.world
	if w.Message == "" {
		return
	}
	w.MessageRemaining -= step
	if w.MessageRemaining <= 0 {
		w.Message = ""
		w.MessageRemaining = 0
	}
}

// powerTicks converts the power duration into chaser ticks.
func powerTicks(secs, chaserMs int) int {
	if chaserMs <= 0 {
		return secs
	}
	return max(1, secs*1000/chaserMs)
}
