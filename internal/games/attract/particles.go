package attract

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// particleDrag slows particles every update.
const particleDrag = 0.9

// Particle is a short-lived feedback dot.
type Particle struct {
	Pos     core.Vec
	Vel     core.Vec
	Life    int
	MaxLife int
	Color   core.Color
}

// ParticlePool holds a bounded number of live particles.
type ParticlePool struct {
	items []Particle
	max   int
}

// NewParticlePool creates a pool holding at most max particles.
func NewParticlePool(max int) *ParticlePool {
	return &ParticlePool{
		items: make([]Particle, 0, max),
		max:   max,
	}
}

// Burst emits up to n particles radiating from at. Particles beyond the pool
// capacity are dropped.
func (p *ParticlePool) Burst(rng *rand.Rand, at core.Vec, n int, speed float64, life int, color core.Color) {
	for i := 0; i < n && len(p.items) < p.max; i++ {
		angle := rng.Float64() * 2 * math.Pi
		v := core.Heading(angle).Scale(speed * (0.5 + rng.Float64()/2))
		p.items = append(p.items, Particle{
			Pos:     at,
			Vel:     v,
			Life:    life,
			MaxLife: life,
			Color:   color,
		})
	}
}

// Update advances every particle and drops expired ones.
func (p *ParticlePool) Update() {
	alive := p.items[:0]
	for _, pt := range p.items {
		pt.Life--
		if pt.Life <= 0 {
			continue
		}
		pt.Pos = pt.Pos.Add(pt.Vel)
		pt.Vel = pt.Vel.Scale(particleDrag)
		alive = append(alive, pt)
	}
	p.items = alive
}

// Len returns the number of live particles.
func (p *ParticlePool) Len() int {
	return len(p.items)
}

// Items returns a copy of the live particles.
func (p *ParticlePool) Items() []Particle {
	return append([]Particle(nil), p.items...)
}

// Clear removes every particle.
func (p *ParticlePool) Clear() {
	p.items = p.items[:0]
}
