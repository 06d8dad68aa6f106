package engine

import (
	"github.com/google/uuid"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/registry"
	"github.com/samber/lo"
)

// Playfield is the host viewport in pixels. A non-positive dimension means the
// host has not measured it yet.
type Playfield struct {
	Width  float64
	Height float64
}

// Progress counts the distinct correct texts found since the last reset.
type Progress struct {
	Found int
	Total int
}

// Remaining returns how many correct texts have not been hit yet.
func (p Progress) Remaining() int {
	return max(p.Total-p.Found, 0)
}

// Percent returns Found/Total in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Found) * 100 / float64(p.Total)
}

// Session is the mutable state of one player. It is owned by the Engine and
// only touched while the engine lock is held.
type Session struct {
	ID        uuid.UUID
	State     State
	Score     uint
	HighScore uint
	Elapsed   uint

	List     *content.WordList
	Category int
	Mode     content.Mode

	Pool    []content.ItemSpec
	PoolErr error
	Found   map[string]struct{}

	Playfield              Playfield
	MeasurementUnavailable bool

	Registry *registry.Registry
}

func newSession(reg *registry.Registry) *Session {
	return &Session{
		ID:       uuid.New(),
		Pool:     []content.ItemSpec{content.SentinelSpec()},
		PoolErr:  content.ErrDegenerateContentPool,
		Found:    make(map[string]struct{}),
		Registry: reg,
	}
}

// rebuildPool derives the pool for the current list, category and mode.
func (s *Session) rebuildPool() {
	s.Pool = content.BuildPool(s.List, s.Category, s.Mode)
	s.PoolErr = content.CheckPool(s.Pool)
}

// resetRound clears everything a new round starts without. HighScore survives.
func (s *Session) resetRound() {
	s.Score = 0
	s.Elapsed = 0
	s.MeasurementUnavailable = false
	clear(s.Found)
	s.Registry.Clear()
}

func (s *Session) award(text string) {
	s.Score++
	s.HighScore = max(s.HighScore, s.Score)
	s.Found[text] = struct{}{}
}

func (s *Session) penalize() {
	if s.Score > 0 {
		s.Score--
	}
}

func (s *Session) progress() Progress {
	correct := content.CorrectTexts(s.Pool)
	return Progress{
		Found: len(lo.Filter(correct, func(text string, _ int) bool {
			_, ok := s.Found[text]
			return ok
		})),
		Total: len(correct),
	}
}

func (s *Session) listID() string {
	if s.List == nil {
		return ""
	}
	return s.List.ID
}
