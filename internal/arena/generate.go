package arena

import (
	"math/rand"

	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// obstaclePalette is cycled through when coloring generated obstacles.
var obstaclePalette = []core.Color{
	core.ColorBrown,
	core.ColorOrange,
	core.ColorMagenta,
	core.ColorGreen,
	core.ColorBlue,
}

// Generate creates an arena and places a random number of obstacles in it.
// Each obstacle gets a bounded number of placement attempts; a placement is
// rejected if it overlaps an existing obstacle (grown by the configured gap) or
// touches a safe zone. Obstacles that exhaust their attempts are omitted, so the
// result may hold fewer obstacles than drawn.
func Generate(cfg config.AttractConfig, rng *rand.Rand) *Arena {
	a := New(cfg)
	oc := cfg.Obstacles

	count := oc.MinCount
	if oc.MaxCount > oc.MinCount {
		count += rng.Intn(oc.MaxCount - oc.MinCount + 1)
	}

	lo, hi := a.Min+a.Margin, a.Max-a.Margin
	for i := range count {
		for range oc.PlacementAttempts {
			w := oc.MinSize + rng.Float64()*(oc.MaxSize-oc.MinSize)
			h := oc.MinSize + rng.Float64()*(oc.MaxSize-oc.MinSize)
			if hi-lo <= w || hi-lo <= h {
				break
			}
			candidate := Obstacle{
				X:      lo + rng.Float64()*(hi-lo-w),
				Y:      lo + rng.Float64()*(hi-lo-h),
				Width:  w,
				Height: h,
				Color:  obstaclePalette[i%len(obstaclePalette)],
			}
			if a.canPlace(candidate, oc.Gap) {
				a.Obstacles = append(a.Obstacles, candidate)
				break
			}
		}
	}
	return a
}

// canPlace checks a candidate against existing obstacles and the safe zones.
func (a *Arena) canPlace(o Obstacle, gap float64) bool {
	for _, existing := range a.Obstacles {
		if o.Overlaps(existing, gap) {
			return false
		}
	}
	for _, zone := range a.safeZones {
		if o.IntersectsCircle(zone) {
			return false
		}
	}
	return true
}
