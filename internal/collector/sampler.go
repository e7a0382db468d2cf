package collector

import (
	"math"
	"sync"
)

// ProcessKey identifies one process incarnation. The kernel recycles pids, so
// history is keyed by pid and start time together.
type ProcessKey struct {
	PID       int
	StartTime uint64
}

type processSample struct {
	ticks       uint64
	systemTotal uint64
}

// Sampler retains the previous sample of each counter and turns pairs of
// samples into utilization fractions. The readers never cache; this is the
// caller-side history they leave to their consumers.
type Sampler struct {
	previousSystem TickCounters
	processes      map[ProcessKey]processSample

	mutex sync.Mutex
}

func NewSampler() *Sampler {
	return &Sampler{
		processes: make(map[ProcessKey]processSample),
	}
}

// SystemUtilization returns the busy fraction of all CPUs between the
// previous call and cur. The first call, or one after the counters went
// backwards, reports the average since boot.
func (s *Sampler) SystemUtilization(cur TickCounters) float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	prev := s.previousSystem
	s.previousSystem = cur

	if prev == nil || cur.Total() < prev.Total() || cur.Active() < prev.Active() {
		return clamp01(safeDiv(float64(cur.Active()), float64(cur.Total())))
	}
	return clamp01(safeDiv(
		float64(cur.Active()-prev.Active()),
		float64(cur.Total()-prev.Total()),
	))
}

// ProcessUtilization returns the fraction of machine CPU time the process
// used since it was last sampled. systemTotal is the current aggregate
// Jiffies value. Without usable history it falls back to the lifetime
// average (ticks / hz) / age / cpus, which is in the same unit.
func (s *Sampler) ProcessUtilization(key ProcessKey, ticks ProcessTicks, systemTotal uint64, ageSeconds int64, cpus int) float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cur := processSample{ticks: ticks.Total(), systemTotal: systemTotal}
	prev, ok := s.processes[key]
	s.processes[key] = cur

	if ok && cur.ticks >= prev.ticks && cur.systemTotal > prev.systemTotal {
		return clamp01(safeDiv(
			float64(cur.ticks-prev.ticks),
			float64(cur.systemTotal-prev.systemTotal),
		))
	}

	seconds := float64(cur.ticks) / float64(ClockTicks())
	return clamp01(safeDiv(seconds, float64(ageSeconds)*float64(max(cpus, 1))))
}

// Prune forgets every process not present in seen.
func (s *Sampler) Prune(seen map[ProcessKey]struct{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.processes {
		if _, ok := seen[key]; !ok {
			delete(s.processes, key)
		}
	}
}

// Tracked returns how many process incarnations have history.
func (s *Sampler) Tracked() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.processes)
}

func (s *Sampler) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.previousSystem = nil
	s.processes = make(map[ProcessKey]processSample)
}

func safeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
