package attract

import "time"

// maxCatchUp bounds how many times one loop may fire for a single Advance, so a
// long stall cannot turn into a burst of hundreds of updates.
const maxCatchUp = 8

// loop is one periodic subsystem update.
type loop struct {
	name   string
	period time.Duration
	acc    time.Duration
	run    func()
}

// Scheduler is a fixed-timestep accumulator driving periodic loops in
// registration order. Each Advance feeds the same elapsed time to every loop;
// a loop runs once per whole period accumulated.
type Scheduler struct {
	loops []*loop
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers a loop. Loops with a non-positive period are ignored.
func (s *Scheduler) Add(name string, period time.Duration, run func()) {
	if period <= 0 || run == nil {
		return
	}
	s.loops = append(s.loops, &loop{name: name, period: period, run: run})
}

// Advance moves simulated time forward by dt and runs every due loop.
func (s *Scheduler) Advance(dt time.Duration) {
	for _, l := range s.loops {
		l.acc += dt
		fired := 0
		for l.acc >= l.period {
			l.acc -= l.period
			if fired < maxCatchUp {
				l.run()
				fired++
			}
		}
	}
}

// Restart zeroes the accumulator of the named loop so its next run is a full
// period away. Unknown names are ignored.
func (s *Scheduler) Restart(name string) {
	for _, l := range s.loops {
		if l.name == name {
			l.acc = 0
		}
	}
}

// Names returns the loop names in run order.
func (s *Scheduler) Names() []string {
	names := make([]string, len(s.loops))
	for i, l := range s.loops {
		names[i] = l.name
	}
	return names
}
