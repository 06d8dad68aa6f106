package engine

import "github.com/plus3/wordfall/registry"

// EventKind identifies an Event.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventHit
	EventMissed
	EventStateChanged
)

// Event is a notification delivered to subscribers after the engine lock is
// released. Events are informational; handlers must not assume the session
// still looks the same when they run.
type Event struct {
	Kind    EventKind
	Item    registry.FallingItem
	Outcome HitOutcome
	State   State
	Score   uint
}

type subscriber struct {
	id int
	fn func(Event)
}
