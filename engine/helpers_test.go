package engine_test

import (
	"io"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/registry"
	"github.com/stretchr/testify/require"
)

func testCatalog(t testing.TB) *content.Catalog {
	t.Helper()
	catalog, err := content.NewCatalog(
		content.WordList{
			ID:            "pets",
			CategoryNames: [2]string{"A", "B"},
			CategoryWords: [2][]string{{"fish"}, {"cat"}},
		},
		content.WordList{
			ID:            "many",
			CategoryNames: [2]string{"Fruit", "Tools"},
			CategoryWords: [2][]string{
				{"apple", "pear", "plum", "fig", "kiwi", "lime", "date", "peach", "grape", "mango", "melon", "cherry"},
				{"saw", "drill"},
			},
			CommonWords: []string{"useful", "sold in shops"},
		},
		content.WordList{
			ID:            "lopsided",
			CategoryNames: [2]string{"Full", "Empty"},
			CategoryWords: [2][]string{{"something"}, nil},
		},
	)
	require.NoError(t, err)
	return catalog
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.MaxConcurrent = 40
	return cfg
}

func newTestEngine(t testing.TB, cfg engine.Config, opts ...engine.Option) *engine.Engine {
	t.Helper()
	opts = append([]engine.Option{
		engine.WithManualTicks(),
		engine.WithRand(rand.New(rand.NewPCG(7, 11))),
		engine.WithLogger(discardLogger()),
	}, opts...)

	e, err := engine.New(testCatalog(t), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	e.SetPlayfield(800, 600)
	return e
}

func startList(t testing.TB, e *engine.Engine, id string, category int) {
	t.Helper()
	require.NoError(t, e.SelectList(id, category))
	require.NoError(t, e.Start())
}

// spawnUntil runs spawn ticks until a live item matches pred.
func spawnUntil(t testing.TB, e *engine.Engine, pred func(registry.FallingItem) bool) registry.FallingItem {
	t.Helper()
	for range e.Config().MaxConcurrent {
		for _, item := range e.Snapshot().Items {
			if pred(item) {
				return item
			}
		}
		e.TickSpawn()
	}
	for _, item := range e.Snapshot().Items {
		if pred(item) {
			return item
		}
	}
	require.FailNow(t, "no matching item spawned")
	return registry.FallingItem{}
}

func isCorrect(item registry.FallingItem) bool   { return item.IsCorrect && !item.Sentinel }
func isIncorrect(item registry.FallingItem) bool { return !item.IsCorrect && !item.Sentinel }
