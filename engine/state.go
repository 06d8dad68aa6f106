package engine

//go:generate go tool stringer -type=State -trimprefix=State
//go:generate go tool stringer -type=HitOutcome -trimprefix=Hit
//go:generate go tool stringer -type=EventKind -trimprefix=Event

// State is the lifecycle phase of a session.
type State int

const (
	// StateIdle means no list has been selected.
	StateIdle State = iota
	// StateReady means a list is selected and the round has not started.
	StateReady
	// StateActive means spawning, motion and the clock are running.
	StateActive
	// StatePaused keeps score and items but stops every task.
	StatePaused
)

// HitOutcome is the result of resolving one pointer hit.
type HitOutcome int

const (
	// HitIgnored means the session was not Active. Nothing changed.
	HitIgnored HitOutcome = iota
	// HitMissing means the id was not live, e.g. already hit or evicted.
	HitMissing
	// HitSentinel removed the placeholder item without scoring.
	HitSentinel
	// HitCorrect added a point.
	HitCorrect
	// HitIncorrect took a point away, never below zero.
	HitIncorrect
)

// Scored reports whether the outcome changed the score (or tried to).
func (o HitOutcome) Scored() bool {
	return o == HitCorrect || o == HitIncorrect
}
