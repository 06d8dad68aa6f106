package engine

import (
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Interval       time.Duration
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// scheduledSystem is a registered system and its running timings.
type scheduledSystem struct {
	system   System
	name     string
	interval time.Duration

	runs    int64
	fastest time.Duration
	slowest time.Duration
	last    time.Duration
	total   time.Duration
}

func (ss *scheduledSystem) observe(d time.Duration) {
	if ss.runs == 0 || d < ss.fastest {
		ss.fastest = d
	}
	ss.slowest = max(ss.slowest, d)
	ss.last = d
	ss.total += d
	ss.runs++
}

func (ss *scheduledSystem) stats() SystemStats {
	st := SystemStats{
		Name:           ss.name,
		Interval:       ss.interval,
		ExecutionCount: ss.runs,
		MinDuration:    ss.fastest,
		MaxDuration:    ss.slowest,
		LastDuration:   ss.last,
		TotalDuration:  ss.total,
	}
	if ss.runs > 0 {
		st.AvgDuration = ss.total / time.Duration(ss.runs)
	}
	return st
}

// Scheduler holds the systems in execution order, each with the interval its
// task ticks at, and records how long every execution takes.
type Scheduler struct {
	systems []*scheduledSystem
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register appends a system that should run every interval. It returns the
// index used by Execute.
func (s *Scheduler) Register(system System, interval time.Duration) int {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &scheduledSystem{
		system:   system,
		name:     systemType.Name(),
		interval: interval,
	})
	return len(s.systems) - 1
}

// Len returns the number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Interval returns the tick interval of system idx.
func (s *Scheduler) Interval(idx int) time.Duration {
	return s.systems[idx].interval
}

// Name returns the type name of system idx.
func (s *Scheduler) Name(idx int) string {
	return s.systems[idx].name
}

// Execute runs system idx against the frame. Commands are not flushed.
func (s *Scheduler) Execute(idx int, frame *Frame) {
	entry := s.systems[idx]

	start := time.Now()
	entry.system.Execute(frame)
	entry.observe(time.Since(start))
}

// Once executes every registered system once, in registration order.
func (s *Scheduler) Once(frame *Frame) {
	for i := range s.systems {
		s.Execute(i, frame)
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		stats.Systems[i] = entry.stats()
		stats.TotalExecutions += entry.runs
	}
	return stats
}
