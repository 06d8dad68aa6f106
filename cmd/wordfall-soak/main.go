package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
	"golang.org/x/time/rate"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	listID := flag.String("list", "algae-fungi", "Word list to play.")
	category := flag.Int("category", 0, "Category (0 or 1) to score.")
	common := flag.Bool("common", false, "Play the common-word hunt instead of a category.")
	hitRate := flag.Float64("hits", 50, "Synthetic hits per second of wall time.")
	accuracy := flag.Float64("accuracy", 0.8, "Probability that a synthetic hit aims for a correct item.")
	seed := flag.Uint64("seed", 1, "Seed for the engine and the synthetic player.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log engine lifecycle lines.")
	flag.Parse()

	log.Println("Starting wordfall soak...")

	engineLog := log.New(io.Discard, "", 0)
	if *verbose {
		engineLog = log.New(os.Stderr, "wordfall: ", log.LstdFlags)
	}

	cfg := engine.DefaultConfig()
	e, err := engine.New(content.DefaultCatalog(), cfg,
		engine.WithManualTicks(),
		engine.WithRand(rand.New(rand.NewPCG(*seed, *seed))),
		engine.WithLogger(engineLog),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer e.Close()

	e.SetPlayfield(1280, 720)
	if err := e.SelectList(*listID, *category); err != nil {
		log.Fatalf("Failed to select list: %v", err)
	}
	if *common {
		if err := e.SetMode(content.ModeCommon); err != nil {
			log.Fatalf("Failed to set mode: %v", err)
		}
	}
	if err := e.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	report := &Report{
		Duration:       *duration,
		List:           *listID,
		Category:       *category,
		Common:         *common,
		HitRate:        *hitRate,
		Accuracy:       *accuracy,
		MaxConcurrent:  cfg.MaxConcurrent,
		GCPauseMetrics: *gcPauseMetrics,
		Outcomes:       make(map[string]int64),
		FrameTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	e.Subscribe(report.Observe)

	player := newPlayer(e, rand.New(rand.NewPCG(*seed+1, *seed+1)), *accuracy)
	limiter := rate.NewLimiter(rate.Limit(*hitRate), 1)

	// Simulated time advances one frame interval per loop; spawn and clock
	// ticks fire when their interval has elapsed in simulated time.
	spawnEvery := max(int(cfg.SpawnInterval/cfg.FrameInterval), 1)
	clockEvery := max(int(cfg.ClockInterval/cfg.FrameInterval), 1)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running soak for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var frames int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			if frames%int64(spawnEvery) == 0 {
				e.TickSpawn()
			}
			e.TickMotion()
			if frames%int64(clockEvery) == 0 {
				e.TickClock()
			}
			if limiter.Allow() {
				player.hit()
			}
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			frames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = frames
	report.FrameTime.Finalize()
	report.Final = e.Snapshot()
	report.Systems = e.Stats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if err := report.Check(); err != nil {
		log.Fatalf("Soak failed: %v", err)
	}
	log.Println("Soak complete.")
}
