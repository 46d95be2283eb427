// Package sound plays a short audible cue for each toast.
package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/iburimskiy/neuralbg/internal/toast"
)

const (
	SampleRate    = beep.SampleRate(44100)
	ChimeDuration = 120 * time.Millisecond
	chimeVolume   = 0.2
)

// chime is a sine burst with a linear fade-out, written into both channels.
type chime struct {
	freq  float64
	rate  beep.SampleRate
	total int
	pos   int
}

func newChime(freq float64, rate beep.SampleRate, d time.Duration) *chime {
	return &chime{
		freq:  freq,
		rate:  rate,
		total: rate.N(d),
	}
}

func (c *chime) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.total {
		return 0, false
	}

	n := 0
	for i := range samples {
		if c.pos >= c.total {
			break
		}
		t := float64(c.pos) / float64(c.rate)
		env := 1 - float64(c.pos)/float64(c.total)
		v := chimeVolume * env * math.Sin(2*math.Pi*c.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
		n++
	}
	return n, true
}

func (c *chime) Err() error { return nil }

// Frequency is the pitch used for a severity.
func Frequency(sev toast.Severity) float64 {
	switch sev {
	case toast.Success:
		return 880
	case toast.Warning:
		return 523.25
	case toast.Error:
		return 329.63
	}
	return 659.25
}

// Chime returns the cue for a severity.
func Chime(sev toast.Severity) beep.Streamer {
	return newChime(Frequency(sev), SampleRate, ChimeDuration)
}
