package pathfind

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/kiosk-idle/internal/arena"
	"github.com/vovakirdan/kiosk-idle/internal/config"
	"github.com/vovakirdan/kiosk-idle/internal/core"
)

func testConfig() config.AttractConfig {
	cfg := config.DefaultAttractConfig()
	cfg.Pathfinder.CacheBypass = 0
	return cfg
}

func emptyArena(cfg config.AttractConfig) *arena.Arena {
	return arena.New(cfg)
}

func TestFindPathOpenArena(t *testing.T) {
	cfg := testConfig()
	a := emptyArena(cfg)
	pf := New(a, cfg.Pathfinder, nil)

	start, goal := core.V(10, 50), core.V(40, 50)
	path, ok := pf.FindPath(start, goal, nil)

	if !ok {
		t.Error("open arena search reported a fallback")
	}
	if len(path) < 2 {
		t.Fatalf("path too short: %v", path)
	}
	if path[0] != start {
		t.Errorf("path starts at %v, expected %v", path[0], start)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path ends at %v, expected %v", path[len(path)-1], goal)
	}
	if pf.Stats().Fallbacks != 0 {
		t.Error("open arena search should not fall back")
	}
}

func TestFindPathAroundObstacle(t *testing.T) {
	cfg := testConfig()
	cfg.Pathfinder.MaxIterations = 2000
	cfg.Pathfinder.SmoothWindow = 0
	a := emptyArena(cfg)
	a.Obstacles = []arena.Obstacle{{X: 40, Y: 20, Width: 20, Height: 60}}
	pf := New(a, cfg.Pathfinder, nil)

	start, goal := core.V(20, 50), core.V(80, 50)
	path, _ := pf.FindPath(start, goal, nil)

	if pf.Stats().Fallbacks != 0 {
		t.Fatalf("expected a real path, got fallback %v", path)
	}
	for i, p := range path {
		if a.IsInsideObstacle(p, 0) {
			t.Errorf("waypoint %d %v is inside the obstacle", i, p)
		}
		if !a.InBounds(p) {
			t.Errorf("waypoint %d %v is out of bounds", i, p)
		}
	}
	if len(path) <= 2 {
		t.Errorf("path around the obstacle should have intermediate waypoints, got %v", path)
	}
}

func TestFindPathFallbackThroughWall(t *testing.T) {
	cfg := testConfig()
	a := emptyArena(cfg)
	// Wall spanning the full height, no gap
	a.Obstacles = []arena.Obstacle{{X: 45, Y: 0, Width: 10, Height: 100}}
	pf := New(a, cfg.Pathfinder, nil)

	start, goal := core.V(20, 50), core.V(80, 50)
	path, ok := pf.FindPath(start, goal, nil)

	if ok {
		t.Error("fallback must be reported as not ok")
	}
	expected := []core.Vec{start, goal}
	if !reflect.DeepEqual(path, expected) {
		t.Errorf("FindPath() = %v, expected direct fallback %v", path, expected)
	}
	if pf.Stats().Fallbacks != 1 {
		t.Errorf("Fallbacks = %d, expected 1", pf.Stats().Fallbacks)
	}
	if pf.Cache().Len() != 0 {
		t.Error("fallback paths must not be cached")
	}
}

func TestFindPathDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Pathfinder.CacheSize = 0 // force a fresh search every call
	cfg.Pathfinder.MaxIterations = 500
	a := arena.Generate(cfg, rand.New(rand.NewSource(11)))
	avoid := []core.Vec{core.V(50, 30)}

	pf := New(a, cfg.Pathfinder, nil)
	first, _ := pf.FindPath(core.V(10, 10), core.V(90, 90), avoid)
	for i := range 5 {
		again, _ := pf.FindPath(core.V(10, 10), core.V(90, 90), avoid)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d differs:\n%v\nvs\n%v", i, first, again)
		}
	}

	other := New(a, cfg.Pathfinder, nil)
	if got, _ := other.FindPath(core.V(10, 10), core.V(90, 90), avoid); !reflect.DeepEqual(first, got) {
		t.Errorf("fresh pathfinder differs:\n%v\nvs\n%v", first, got)
	}
}

func TestFindPathAvoidsDanger(t *testing.T) {
	cfg := testConfig()
	cfg.Pathfinder.MaxIterations = 1000
	cfg.Pathfinder.SmoothWindow = 0
	a := emptyArena(cfg)
	pf := New(a, cfg.Pathfinder, nil)

	danger := core.V(50, 50)
	path, _ := pf.FindPath(core.V(20, 50), core.V(80, 50), []core.Vec{danger})

	if pf.Stats().Fallbacks != 0 {
		t.Fatalf("expected a detour, got fallback")
	}
	for i, p := range path[1 : len(path)-1] {
		if p.Dist(danger) < cfg.Pathfinder.AvoidRadius {
			t.Errorf("waypoint %d %v passes within %.1f of danger", i+1, p, p.Dist(danger))
		}
	}
}

func TestFindPathCacheHit(t *testing.T) {
	cfg := testConfig()
	pf := New(emptyArena(cfg), cfg.Pathfinder, rand.New(rand.NewSource(1)))

	p1, _ := pf.FindPath(core.V(10, 10), core.V(30, 30), nil)
	// Same rounded cells
	p2, ok := pf.FindPath(core.V(10.4, 10.2), core.V(29.8, 30.1), nil)

	if !ok {
		t.Error("cache hit reported as fallback")
	}
	if pf.Stats().CacheHits != 1 {
		t.Errorf("CacheHits = %d, expected 1", pf.Stats().CacheHits)
	}
	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("cached path differs: %v vs %v", p1, p2)
	}

	// Mutating a returned path must not corrupt the cache
	p2[0] = core.V(-1, -1)
	p3, _ := pf.FindPath(core.V(10, 10), core.V(30, 30), nil)
	if p3[0] == core.V(-1, -1) {
		t.Error("cache returned a shared slice")
	}
}

func TestFindPathCacheBypass(t *testing.T) {
	cfg := testConfig()
	cfg.Pathfinder.CacheBypass = 1
	pf := New(emptyArena(cfg), cfg.Pathfinder, rand.New(rand.NewSource(1)))

	for range 4 {
		pf.FindPath(core.V(10, 10), core.V(30, 30), nil)
	}
	st := pf.Stats()
	if st.CacheHits != 0 {
		t.Errorf("CacheHits = %d, expected 0 with full bypass", st.CacheHits)
	}
	if st.Bypassed != 3 {
		t.Errorf("Bypassed = %d, expected 3", st.Bypassed)
	}
}

func TestNeighboursLandInDistinctAdjacentCells(t *testing.T) {
	cfg := testConfig()
	pf := New(emptyArena(cfg), cfg.Pathfinder, nil)

	// Offsets in [0.5, 0.8) of a cell used to round a diagonal back home
	for _, p := range []core.Vec{core.V(13, 13), core.V(13.9, 13.9), core.V(12, 17), core.V(10, 10)} {
		home := pf.cellOf(p)
		seen := map[cell]bool{}
		for _, n := range pf.neighbours(p) {
			nc := pf.cellOf(n)
			if nc == home {
				t.Errorf("neighbour %v of %v rounds into its own cell", n, p)
			}
			if dx, dy := nc.x-home.x, nc.y-home.y; dx < -1 || dx > 1 || dy < -1 || dy > 1 {
				t.Errorf("neighbour %v of %v is not adjacent", n, p)
			}
			seen[nc] = true
		}
		if len(seen) != 8 {
			t.Errorf("neighbours of %v cover %d cells, want 8", p, len(seen))
		}
	}
}

func TestCacheEvictsOldestInserted(t *testing.T) {
	c := NewCache(2)
	k1, k2, k3 := cacheKey{1, 1, 2, 2}, cacheKey{3, 3, 4, 4}, cacheKey{5, 5, 6, 6}
	path := []core.Vec{core.V(0, 0), core.V(1, 1)}

	c.put(k1, path)
	c.put(k2, path)
	// Reading k1 does not refresh it
	c.get(k1)
	c.put(k3, path)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", c.Len())
	}
	if _, ok := c.get(k1); ok {
		t.Error("k1 should have been evicted first")
	}
	if _, ok := c.get(k3); !ok {
		t.Error("k3 should be cached")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Error("Clear() left entries behind")
	}
}

func TestSmooth(t *testing.T) {
	var path []core.Vec
	for i := range 10 {
		path = append(path, core.V(float64(i), 0))
	}

	got := Smooth(path, 3)
	expected := []core.Vec{core.V(0, 0), core.V(4, 0), core.V(8, 0), core.V(9, 0)}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Smooth() = %v, expected %v", got, expected)
	}

	short := []core.Vec{core.V(0, 0), core.V(1, 1)}
	if !reflect.DeepEqual(Smooth(short, 3), short) {
		t.Error("two-point paths must be returned unchanged")
	}
}
