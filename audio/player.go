// Package audio plays short arpeggio cues for hit outcomes.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/wordfall/engine"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes cues into a single output. A new cue cuts off whatever was
// still playing.
type Player struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	rate     beep.SampleRate
	speaker  bool
	disabled bool
}

// NewPlayer creates a player with an unattached mixer. Call Init to route it
// to the speaker, or read from Mixer directly.
func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
		rate:  sampleRate,
	}
}

// Init opens the default audio device. On failure the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speaker {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.disabled = true
		return err
	}
	speaker.Play(p.mixer)
	p.speaker = true
	return nil
}

// Mixer exposes the output stream, mostly for tests and offline rendering.
func (p *Player) Mixer() *beep.Mixer {
	return p.mixer
}

// Play queues a cue, replacing anything still sounding.
func (p *Player) Play(c Cue) {
	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disabled {
		return
	}
	p.mixer.Clear()
	p.mixer.Add(c.Streamer(p.rate))
}

// Close silences the player. The speaker itself stays open.
func (p *Player) Close() {
	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.mixer.Clear()
	p.disabled = true
}

// Attach plays a cue for every scored hit on e until the returned function
// is called.
func (p *Player) Attach(e *engine.Engine) (detach func()) {
	return e.Subscribe(func(ev engine.Event) {
		if ev.Kind != engine.EventHit {
			return
		}
		cue, ok := CueFor(ev.Outcome, e.Snapshot().Progress)
		if !ok {
			return
		}
		p.Play(cue)
	})
}

// CueFor picks the cue for a hit outcome. Finding the last correct word
// plays CueGood instead of CueHappy.
func CueFor(outcome engine.HitOutcome, progress engine.Progress) (Cue, bool) {
	switch outcome {
	case engine.HitCorrect:
		if progress.Total > 0 && progress.Remaining() == 0 {
			return CueGood, true
		}
		return CueHappy, true
	case engine.HitIncorrect:
		return CueSad, true
	default:
		return 0, false
	}
}

// InitOrWarn is Init for hosts that can run without sound.
func (p *Player) InitOrWarn(logger *log.Logger) {
	if err := p.Init(); err != nil {
		logger.Printf("Audio initialization failed: %v", err)
	}
}
