// Package pathfind implements a bounded grid A* search over the arena.
//
// The grid is implicit: nodes are produced by stepping grid_size units from the
// start in eight directions, and closed-set membership is decided by rounding a
// node to its grid cell. A search that exhausts its iteration budget degrades to
// the direct two-point path, which callers must treat as "no reliable path".
package pathfind

import (
	"container/heap"
	"math"
	"math/rand"

	"github.com/vovakirdan/kiosk-idle/internal/arena"
	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// diagonal approximates 1/sqrt(2) so every step has roughly unit length.
const diagonal = 0.7

// directions lists the 4 cardinal then 4 diagonal unit-ish steps.
var directions = [8]core.Vec{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: diagonal, Y: diagonal},
	{X: diagonal, Y: -diagonal},
	{X: -diagonal, Y: diagonal},
	{X: -diagonal, Y: -diagonal},
}

// Stats counts pathfinder activity since creation.
type Stats struct {
	Requests   int
	CacheHits  int
	Bypassed   int
	Fallbacks  int
	Expansions int
}

// Pathfinder finds obstacle-avoiding paths in one arena.
// It is not safe for concurrent use; each simulation owns its own.
type Pathfinder struct {
	arena *arena.Arena
	cfg   config.PathfinderConfig
	cache *Cache
	rng   *rand.Rand
	stats Stats
}

// New creates a pathfinder for the given arena. rng drives the probabilistic
// cache bypass; a nil rng disables bypassing.
func New(a *arena.Arena, cfg config.PathfinderConfig, rng *rand.Rand) *Pathfinder {
	return &Pathfinder{
		arena: a,
		cfg:   cfg,
		cache: NewCache(cfg.CacheSize),
		rng:   rng,
	}
}

// Stats returns a copy of the activity counters.
func (pf *Pathfinder) Stats() Stats {
	return pf.stats
}

// Cache exposes the path cache.
func (pf *Pathfinder) Cache() *Cache {
	return pf.cache
}

// FindPath returns waypoints from start to goal, both included, steering clear of
// obstacles and of every avoid point. Each call searches from scratch unless a
// cached path for the same rounded start and goal is reused.
//
// When the search gives up the result is the direct [start, goal] pair and ok
// is false: the line may cross obstacles or danger.
func (pf *Pathfinder) FindPath(start, goal core.Vec, avoid []core.Vec) (path []core.Vec, ok bool) {
	pf.stats.Requests++

	key := keyFor(start, goal, pf.cfg.GridSize)
	if cached, hit := pf.cache.get(key); hit {
		if !pf.bypass() {
			pf.stats.CacheHits++
			return cached, true
		}
		pf.stats.Bypassed++
	}

	path, found := pf.search(start, goal, avoid)
	if !found {
		pf.stats.Fallbacks++
		return []core.Vec{start, goal}, false
	}

	path = Smooth(path, pf.cfg.SmoothWindow)
	pf.cache.put(key, path)
	return clonePath(path), true
}

func (pf *Pathfinder) bypass() bool {
	if pf.rng == nil || pf.cfg.CacheBypass <= 0 {
		return false
	}
	return pf.rng.Float64() < pf.cfg.CacheBypass
}

type cell struct{ x, y int }

func (pf *Pathfinder) cellOf(p core.Vec) cell {
	return cell{
		x: int(math.Round(p.X / pf.cfg.GridSize)),
		y: int(math.Round(p.Y / pf.cfg.GridSize)),
	}
}

// neighbours steps from the centre of p's cell, so every direction lands in a
// distinct adjacent cell whatever p's offset within its own cell.
func (pf *Pathfinder) neighbours(p core.Vec) [8]core.Vec {
	step := pf.cfg.GridSize
	c := pf.cellOf(p)
	centre := core.V(float64(c.x)*step, float64(c.y)*step)
	var out [8]core.Vec
	for i, d := range directions {
		out[i] = centre.Add(d.Scale(step))
	}
	return out
}

// search runs A* with an f = g + h frontier and Euclidean heuristic.
func (pf *Pathfinder) search(start, goal core.Vec, avoid []core.Vec) ([]core.Vec, bool) {
	step := pf.cfg.GridSize
	reach := pf.cfg.GoalFactor * step

	open := &frontier{}
	heap.Init(open)
	h0 := start.Dist(goal)
	heap.Push(open, &node{pos: start, h: h0, f: h0})

	closed := make(map[cell]bool)
	best := map[cell]float64{pf.cellOf(start): 0}
	seq := 0

	for expanded := 0; open.Len() > 0 && expanded < pf.cfg.MaxIterations; {
		cur := heap.Pop(open).(*node)
		c := pf.cellOf(cur.pos)
		if closed[c] {
			continue
		}
		expanded++
		pf.stats.Expansions++

		if cur.h < reach {
			return reconstruct(cur, goal), true
		}
		closed[c] = true

		for i, next := range pf.neighbours(cur.pos) {
			d := directions[i]
			nc := pf.cellOf(next)
			if closed[nc] || !pf.walkable(next, avoid) {
				continue
			}
			g := cur.g + step*d.Len()
			if old, ok := best[nc]; ok && g >= old {
				continue
			}
			best[nc] = g
			seq++
			h := next.Dist(goal)
			heap.Push(open, &node{pos: next, g: g, h: h, f: g + h, seq: seq, parent: cur})
		}
	}
	return nil, false
}

// walkable rejects out-of-bounds points, points near obstacles and points near danger.
func (pf *Pathfinder) walkable(p core.Vec, avoid []core.Vec) bool {
	if !pf.arena.InBounds(p) || pf.arena.IsInsideObstacle(p, pf.cfg.ObstacleMargin) {
		return false
	}
	for _, a := range avoid {
		if p.Dist(a) < pf.cfg.AvoidRadius {
			return false
		}
	}
	return true
}

func reconstruct(n *node, goal core.Vec) []core.Vec {
	var path []core.Vec
	for ; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if path[len(path)-1] != goal {
		path = append(path, goal)
	}
	return path
}

// Smooth thins a dense path by skipping up to window intermediate waypoints at a
// time. The first and last points are always kept. It does not check visibility,
// so it may cut corners on tight geometry.
func Smooth(path []core.Vec, window int) []core.Vec {
	if len(path) <= 2 || window <= 0 {
		return path
	}
	out := []core.Vec{path[0]}
	last := len(path) - 1
	for i := 0; i < last; {
		i = min(i+window+1, last)
		out = append(out, path[i])
	}
	return out
}
