package main

import (
	"math/rand/v2"

	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/registry"
	"github.com/samber/lo"
)

// player is a synthetic user that clicks live items, preferring correct ones
// with the configured accuracy.
type player struct {
	engine   *engine.Engine
	rng      *rand.Rand
	accuracy float64
}

func newPlayer(e *engine.Engine, rng *rand.Rand, accuracy float64) *player {
	return &player{engine: e, rng: rng, accuracy: accuracy}
}

func (p *player) hit() {
	items := p.engine.Snapshot().Items
	if len(items) == 0 {
		return
	}

	wantCorrect := p.rng.Float64() < p.accuracy
	candidates := lo.Filter(items, func(item registry.FallingItem, _ int) bool {
		return item.IsCorrect == wantCorrect
	})
	if len(candidates) == 0 {
		candidates = items
	}
	target := candidates[p.rng.IntN(len(candidates))]

	// Every other click goes through hit testing, like a real pointer.
	if p.rng.IntN(2) == 0 {
		p.engine.HitAt(target.X+target.Width/2, target.Y+target.Height/2)
		return
	}
	p.engine.HandleHit(target.ID)
}
