// Package audio synthesizes the short sound cues of the cuboid puzzle.
// Nothing here reads sample files; every cue is built from oscillators.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Triangle
)

// tone is a pitch glide from From to To Hz over Dur.
type tone struct {
	From, To float64
	Dur      time.Duration
	Wave     Wave
}

// glide streams a single tone, sweeping its frequency linearly.
type glide struct {
	t     tone
	rate  beep.SampleRate
	phase float64
	pos   int
	total int
}

func newGlide(t tone, rate beep.SampleRate) *glide {
	return &glide{t: t, rate: rate, total: rate.N(t.Dur)}
}

func (g *glide) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.t.From + (g.t.To-g.t.From)*progress

		var v float64
		switch g.t.Wave {
		case Square:
			v = 1
			if g.phase >= 0.5 {
				v = -1
			}
		case Triangle:
			v = 4*math.Abs(g.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * g.phase)
		}
		v *= fade(g.pos, g.total, g.rate.N(5*time.Millisecond))

		samples[i][0] = v
		samples[i][1] = v
		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *glide) Err() error { return nil }

// fade is a linear attack and release of edge samples to avoid clicks.
func fade(pos, total, edge int) float64 {
	if edge <= 0 {
		return 1
	}
	switch {
	case pos < edge:
		return float64(pos) / float64(edge)
	case total-pos < edge:
		return float64(total-pos) / float64(edge)
	}
	return 1
}

// cueTones describes every known cue.
var cueTones = map[string][]tone{
	"move":   {{From: 330, To: 300, Dur: 45 * time.Millisecond, Wave: Triangle}},
	"fall":   {{From: 440, To: 70, Dur: 450 * time.Millisecond, Wave: Square}},
	"goal":   {{From: 523, To: 523, Dur: 80 * time.Millisecond}, {From: 659, To: 659, Dur: 80 * time.Millisecond}, {From: 784, To: 784, Dur: 160 * time.Millisecond}},
	"switch": {{From: 880, To: 880, Dur: 50 * time.Millisecond, Wave: Square}, {From: 1320, To: 1320, Dur: 70 * time.Millisecond, Wave: Square}},
	"split":  {{From: 660, To: 660, Dur: 70 * time.Millisecond}, {From: 330, To: 330, Dur: 110 * time.Millisecond}},
	"merge":  {{From: 330, To: 330, Dur: 70 * time.Millisecond}, {From: 660, To: 660, Dur: 110 * time.Millisecond}},
	"level":  {{From: 523, To: 523, Dur: 110 * time.Millisecond}, {From: 659, To: 659, Dur: 110 * time.Millisecond}, {From: 784, To: 784, Dur: 110 * time.Millisecond}, {From: 1047, To: 1047, Dur: 260 * time.Millisecond}},
}

// Known reports whether a cue has a sound.
func Known(cue string) bool {
	_, ok := cueTones[cue]
	return ok
}

// Duration returns how long a cue plays.
func Duration(cue string) time.Duration {
	var d time.Duration
	for _, t := range cueTones[cue] {
		d += t.Dur
	}
	return d
}

// Streamer builds the sound for a cue at the given volume (0.0 to 1.0).
// Unknown cues return nil.
func Streamer(cue string, volume float64) beep.Streamer {
	tones, ok := cueTones[cue]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		parts[i] = newGlide(t, SampleRate)
	}
	return withVolume(beep.Seq(parts...), volume)
}

// withVolume scales a stream linearly. effects.Volume works in powers of
// Base, so zero volume maps to Silent.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}
