package audio

import (
	"io"
	"log"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gopxl/beep"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for _, sample := range buf[:got] {
			peak = max(peak, math.Abs(sample[0]))
		}
		n += got
		if !ok {
			return n, peak
		}
	}
}

func TestCueStreamsAreFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, cue := range []Cue{CueHappy, CueSad, CueGood} {
		n, peak := drain(cue.Streamer(rate))
		assert.InDelta(t, rate.N(cue.Duration()), n, 4, "cue %d", cue)
		assert.Greater(t, peak, 0.0)
		assert.LessOrEqual(t, peak, 1.0)
	}
}

func TestUnknownCueIsSilent(t *testing.T) {
	n, _ := drain(Cue(42).Streamer(sampleRate))
	assert.Zero(t, n)
	assert.Zero(t, Cue(42).Duration())
}

func TestNoteEnvelopeStartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(8000)
	n := newNote(440, 0, 0.3, rate)
	got, ok := n.Stream(make([][2]float64, 8))
	assert.Zero(t, got)
	assert.False(t, ok)

	n = newNote(440, CueHappy.Duration(), 0.3, rate)
	buf := make([][2]float64, n.total)
	got, _ = n.Stream(buf)
	assert.Equal(t, n.total, got)
	assert.InDelta(t, 0, buf[0][0], 1e-9)
	assert.InDelta(t, 0, buf[got-1][0], 0.01)
}

func TestPlayReplacesRunningCue(t *testing.T) {
	p := NewPlayer()
	p.Play(CueHappy)
	p.Play(CueSad)
	assert.Equal(t, 1, p.Mixer().Len())

	p.Close()
	assert.Zero(t, p.Mixer().Len())
	p.Play(CueGood)
	assert.Zero(t, p.Mixer().Len())
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name     string
		outcome  engine.HitOutcome
		progress engine.Progress
		want     Cue
		ok       bool
	}{
		{"correct", engine.HitCorrect, engine.Progress{Found: 1, Total: 3}, CueHappy, true},
		{"last correct", engine.HitCorrect, engine.Progress{Found: 3, Total: 3}, CueGood, true},
		{"incorrect", engine.HitIncorrect, engine.Progress{}, CueSad, true},
		{"sentinel", engine.HitSentinel, engine.Progress{}, 0, false},
		{"missing", engine.HitMissing, engine.Progress{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, ok := CueFor(tt.outcome, tt.progress)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, cue)
		})
	}
}

func TestAttachPlaysOnScoredHits(t *testing.T) {
	catalog, err := content.NewCatalog(content.WordList{
		ID:            "pets",
		CategoryNames: [2]string{"A", "B"},
		CategoryWords: [2][]string{{"fish"}, {"cat"}},
	})
	require.NoError(t, err)

	e, err := engine.New(catalog, engine.DefaultConfig(),
		engine.WithManualTicks(),
		engine.WithRand(rand.New(rand.NewPCG(5, 5))),
		engine.WithLogger(log.New(io.Discard, "", 0)),
	)
	require.NoError(t, err)
	defer e.Close()

	p := NewPlayer()
	detach := p.Attach(e)

	require.NoError(t, e.SelectList("pets", 0))
	require.NoError(t, e.Start())
	e.TickSpawn()
	item := e.Snapshot().Items[0]
	assert.True(t, e.HandleHit(item.ID).Scored())
	assert.Equal(t, 1, p.Mixer().Len())

	detach()
	p.Mixer().Clear()
	e.TickSpawn()
	e.HandleHit(e.Snapshot().Items[0].ID)
	assert.Zero(t, p.Mixer().Len())
}
