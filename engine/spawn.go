package engine

import (
	"math/rand/v2"

	"github.com/plus3/wordfall/registry"
)

// SpawnSystem drops one item from the session pool per tick while the
// registry is below MaxConcurrent.
type SpawnSystem struct {
	Rand     *rand.Rand
	Measurer Measurer
}

func (s *SpawnSystem) Execute(frame *Frame) {
	session, cfg := frame.Session, frame.Config
	if session.Registry.Len()+frame.Commands.Pending() >= cfg.MaxConcurrent {
		return
	}
	if len(session.Pool) == 0 {
		return
	}

	spec := session.Pool[s.Rand.IntN(len(session.Pool))]

	width, x := cfg.DefaultWidth, 0.0
	if session.Playfield.Width > 0 {
		width = s.measure(frame, spec.Text)
		if room := session.Playfield.Width - width; room > 0 {
			x = s.Rand.Float64() * room
		}
	}

	frame.Commands.Spawn(registry.FallingItem{
		Text:      spec.Text,
		IsCorrect: spec.IsCorrect,
		Sentinel:  spec.Sentinel,
		Category:  spec.Category,
		X:         x,
		Y:         cfg.SpawnOffset,
		Width:     width,
		Height:    cfg.ItemHeight,
		Speed:     cfg.BaseSpeed + s.Rand.Float64()*cfg.SpeedVariation,
	})
}

func (s *SpawnSystem) measure(frame *Frame, text string) float64 {
	if s.Measurer == nil {
		frame.Session.MeasurementUnavailable = true
		return frame.Config.DefaultWidth
	}
	w, err := s.Measurer.MeasureText(text)
	if err != nil {
		frame.Session.MeasurementUnavailable = true
		return frame.Config.DefaultWidth
	}
	return frame.Config.clampWidth(w)
}
