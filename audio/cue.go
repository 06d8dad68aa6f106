package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Cue names one of the feedback sounds.
type Cue int

const (
	CueHappy Cue = iota // correct hit
	CueSad              // wrong hit
	CueGood             // every correct word found
)

type arpeggio struct {
	freqs    []float64
	note     time.Duration
	step     time.Duration
	gainStep float64
}

var arpeggios = map[Cue]arpeggio{
	CueHappy: {freqs: []float64{523.25, 659.25, 783.99, 1046.50}, note: 150 * time.Millisecond, step: 100 * time.Millisecond, gainStep: 0.15},
	CueSad:   {freqs: []float64{440, 523.25, 659.25, 880}, note: 200 * time.Millisecond, step: 150 * time.Millisecond, gainStep: 0.1},
	CueGood:  {freqs: []float64{440, 554.37, 659.25, 880}, note: 120 * time.Millisecond, step: 80 * time.Millisecond, gainStep: 0.1},
}

const baseGain = 0.3

// Streamer renders the cue as a finite stream at the given rate.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	arp, ok := arpeggios[c]
	if !ok {
		return beep.Silence(0)
	}

	voices := make([]beep.Streamer, 0, len(arp.freqs))
	for i, freq := range arp.freqs {
		gain := baseGain * (1 - float64(i)*arp.gainStep)
		voices = append(voices, beep.Seq(
			beep.Silence(rate.N(time.Duration(i)*arp.step)),
			newNote(freq, arp.note, gain, rate),
		))
	}
	return beep.Mix(voices...)
}

// Duration returns how long the cue plays.
func (c Cue) Duration() time.Duration {
	arp, ok := arpeggios[c]
	if !ok {
		return 0
	}
	return time.Duration(len(arp.freqs)-1)*arp.step + arp.note
}

// note is a sine tone with a slight upward vibrato and a short
// attack/sustain/release envelope.
type note struct {
	freq  float64
	gain  float64
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

func newNote(freq float64, d time.Duration, gain float64, rate beep.SampleRate) *note {
	return &note{freq: freq, gain: gain, rate: rate, total: rate.N(d)}
}

func (n *note) Stream(samples [][2]float64) (int, bool) {
	if n.pos >= n.total {
		return 0, false
	}
	attack := min(float64(n.rate.N(50*time.Millisecond))/float64(n.total), 0.5)

	for i := range samples {
		if n.pos >= n.total {
			return i, true
		}
		progress := float64(n.pos) / float64(n.total)

		var env float64
		switch {
		case progress < attack:
			env = progress / attack
		case progress < 0.7:
			env = 1 - 0.3*(progress-attack)/(0.7-attack)
		default:
			env = 0.7 * (1 - progress) / 0.3
		}

		v := n.gain * env * math.Sin(2*math.Pi*n.phase)
		samples[i][0] = v
		samples[i][1] = v

		freq := n.freq * (1 + 0.02*(1-math.Abs(2*progress-1)))
		n.phase += freq / float64(n.rate)
		n.phase -= math.Floor(n.phase)
		n.pos++
	}
	return len(samples), true
}

func (n *note) Err() error { return nil }
