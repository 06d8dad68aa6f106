package engine

import (
	"github.com/google/uuid"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/registry"
)

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	SessionID    uuid.UUID
	State        State
	Score        uint
	HighScore    uint
	Elapsed      uint
	SelectedList string
	CategoryName string
	Category     int
	Mode         content.Mode
	Playfield    Playfield
	Items        []registry.FallingItem
	Progress     Progress

	PoolDegenerate         bool
	MeasurementUnavailable bool
}

// Snapshot copies the current session. Items are sorted by spawn order.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	snap := Snapshot{
		SessionID:              s.ID,
		State:                  s.State,
		Score:                  s.Score,
		HighScore:              s.HighScore,
		Elapsed:                s.Elapsed,
		SelectedList:           s.listID(),
		Category:               s.Category,
		Mode:                   s.Mode,
		Playfield:              s.Playfield,
		Items:                  s.Registry.Snapshot(),
		Progress:               s.progress(),
		PoolDegenerate:         s.PoolErr != nil,
		MeasurementUnavailable: s.MeasurementUnavailable,
	}
	if s.List != nil {
		switch s.Mode {
		case content.ModeCommon:
			snap.CategoryName = "common"
		default:
			snap.CategoryName = s.List.CategoryNames[s.Category]
		}
	}
	return snap
}
