package engine

import "github.com/plus3/wordfall/registry"

// HandleHit resolves a hit on the item with the given id. The item is removed
// before it is scored, so a second hit on the same id finds nothing.
func (e *Engine) HandleHit(id registry.ItemId) HitOutcome {
	e.mu.Lock()
	outcome := e.resolveHitLocked(id)
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return outcome
}

// HitAt resolves a pointer press at (x, y) against the live items. When items
// overlap the most recently spawned one is hit. It returns the id that was
// hit, or zero with HitMissing when the press landed on nothing.
func (e *Engine) HitAt(x, y float64) (registry.ItemId, HitOutcome) {
	e.mu.Lock()
	if e.closed || e.session.State != StateActive {
		e.mu.Unlock()
		return 0, HitIgnored
	}
	id, ok := e.session.Registry.At(x, y)
	if !ok {
		e.mu.Unlock()
		return 0, HitMissing
	}
	outcome := e.resolveHitLocked(id)
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return id, outcome
}

func (e *Engine) resolveHitLocked(id registry.ItemId) HitOutcome {
	s := e.session
	if e.closed || s.State != StateActive {
		return HitIgnored
	}

	item, ok := s.Registry.Remove(id)
	if !ok {
		return HitMissing
	}

	var outcome HitOutcome
	switch {
	case item.Sentinel:
		outcome = HitSentinel
	case item.IsCorrect:
		s.award(item.Text)
		outcome = HitCorrect
	default:
		s.penalize()
		outcome = HitIncorrect
	}

	e.pending = append(e.pending, Event{
		Kind:    EventHit,
		Item:    item,
		Outcome: outcome,
		State:   s.State,
		Score:   s.Score,
	})
	return outcome
}
