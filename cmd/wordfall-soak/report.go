package main

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"text/template"
	"time"

	"github.com/plus3/wordfall/engine"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	List           string
	Category       int
	Common         bool
	HitRate        float64
	Accuracy       float64
	MaxConcurrent  int
	GCPauseMetrics bool

	// Results
	TotalFrames   int64
	TotalTime     time.Duration
	FrameTime     Stats
	Spawned       int64
	Missed        int64
	Outcomes      map[string]int64
	PeakLive      int
	Final         engine.Snapshot
	Systems       []engine.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats

	mu   sync.Mutex
	live int
}

// Observe tallies engine events.
func (r *Report) Observe(ev engine.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case engine.EventSpawned:
		r.Spawned++
		r.live++
		r.PeakLive = max(r.PeakLive, r.live)
	case engine.EventMissed:
		r.Missed++
		r.live--
	case engine.EventHit:
		r.Outcomes[ev.Outcome.String()]++
		r.live--
	}
}

// Check verifies the invariants the soak exists to exercise.
func (r *Report) Check() error {
	if r.PeakLive > r.MaxConcurrent {
		return fmt.Errorf("peak live items %d exceeded cap %d", r.PeakLive, r.MaxConcurrent)
	}
	if r.Final.HighScore < r.Final.Score {
		return fmt.Errorf("high score %d below score %d", r.Final.HighScore, r.Final.Score)
	}
	resolved := r.Spawned - r.Missed - r.Outcomes[engine.HitCorrect.String()] -
		r.Outcomes[engine.HitIncorrect.String()] - r.Outcomes[engine.HitSentinel.String()]
	if resolved != int64(len(r.Final.Items)) {
		return fmt.Errorf("%d items unaccounted for, %d still live", resolved, len(r.Final.Items))
	}
	return nil
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# wordfall Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **List:** {{.List}} (category {{.Category}}{{if .Common}}, common words{{end}})
- **Hit Rate:** {{.HitRate}}/s at {{.Accuracy}} accuracy
- **Max Concurrent:** {{.MaxConcurrent}}

## Session
- **Simulated Frames:** {{.TotalFrames}}
- **Simulated Time:** {{.Final.Elapsed}}s
- **Spawned:** {{.Spawned}}  **Missed:** {{.Missed}}  **Peak Live:** {{.PeakLive}}
- **Hits:**{{range $outcome, $n := .Outcomes}} {{$outcome}}={{$n}}{{end}}
- **Final Score:** {{.Final.Score}}  **High Score:** {{.Final.HighScore}}
- **Found:** {{.Final.Progress.Found}} / {{.Final.Progress.Total}}

## Frame Time
- **Total Wall Time:** {{.TotalTime}}
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
