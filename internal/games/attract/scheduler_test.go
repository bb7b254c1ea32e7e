package attract

import (
	"reflect"
	"testing"
	"time"
)

func TestSchedulerRunsLoopsInOrder(t *testing.T) {
	var calls []string
	s := NewScheduler()
	s.Add("a", 20*time.Millisecond, func() { calls = append(calls, "a") })
	s.Add("b", 10*time.Millisecond, func() { calls = append(calls, "b") })
	s.Add("off", 0, func() { calls = append(calls, "off") })

	s.Advance(10 * time.Millisecond)
	s.Advance(10 * time.Millisecond)

	want := []string{"b", "a", "b"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if names := s.Names(); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("names = %v", names)
	}
}

func TestSchedulerCatchUpIsBounded(t *testing.T) {
	n := 0
	s := NewScheduler()
	s.Add("fast", time.Millisecond, func() { n++ })

	s.Advance(time.Second)
	if n != maxCatchUp {
		t.Errorf("runs = %d, want %d", n, maxCatchUp)
	}

	// The backlog is dropped, not deferred
	s.Advance(time.Millisecond)
	if n != maxCatchUp+1 {
		t.Errorf("runs = %d after backlog, want %d", n, maxCatchUp+1)
	}
}

func TestSchedulerRestart(t *testing.T) {
	n := 0
	s := NewScheduler()
	s.Add("tick", 100*time.Millisecond, func() { n++ })

	s.Advance(90 * time.Millisecond)
	s.Restart("tick")
	s.Advance(90 * time.Millisecond)
	if n != 0 {
		t.Fatalf("restarted loop fired early")
	}
	s.Advance(10 * time.Millisecond)
	if n != 1 {
		t.Errorf("runs = %d, want 1", n)
	}
}

func TestParticlePoolBounded(t *testing.T) {
	cfg := quietConfig()
	g := startedGame(t, cfg, true, 1)
	pool := NewParticlePool(10)

	pool.Burst(g.rng, g.World().Arena.Center(), 25, 1, 3, 0)
	if pool.Len() != 10 {
		t.Fatalf("len = %d, want capped at 10", pool.Len())
	}

	start := pool.Items()[0].Pos
	pool.Update()
	if pool.Items()[0].Pos == start {
		t.Error("particles should move")
	}
	pool.Update()
	pool.Update()
	if pool.Len() != 0 {
		t.Errorf("len = %d after lifetime, want 0", pool.Len())
	}

	pool.Burst(g.rng, start, 2, 1, 3, 0)
	pool.Clear()
	if pool.Len() != 0 {
		t.Error("Clear left particles")
	}
}
