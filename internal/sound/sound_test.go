package sound

import (
	"errors"
	"math"
	"testing"

	"github.com/faiface/beep"
	"github.com/iburimskiy/neuralbg/internal/toast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestChimeLengthAndEnvelope(t *testing.T) {
	samples := drain(Chime(toast.Info))
	require.Len(t, samples, SampleRate.N(ChimeDuration))

	peakFirst, peakLast := 0.0, 0.0
	quarter := len(samples) / 4
	for i, s := range samples {
		assert.Equal(t, s[0], s[1])
		assert.LessOrEqual(t, math.Abs(s[0]), chimeVolume)
		if i < quarter {
			peakFirst = math.Max(peakFirst, math.Abs(s[0]))
		}
		if i >= len(samples)-quarter {
			peakLast = math.Max(peakLast, math.Abs(s[0]))
		}
	}
	assert.Greater(t, peakFirst, peakLast)
}

func TestChimeEndsCleanly(t *testing.T) {
	c := Chime(toast.Error)
	drain(c)
	n, ok := c.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.NoError(t, c.Err())
}

func TestFrequencyPerSeverity(t *testing.T) {
	seen := map[float64]bool{}
	for _, sev := range []toast.Severity{toast.Info, toast.Success, toast.Warning, toast.Error} {
		seen[Frequency(sev)] = true
	}
	assert.Len(t, seen, 4)
}

func TestSpeakerSinkInitOnce(t *testing.T) {
	inits, plays := 0, 0
	s := NewSpeakerSink()
	s.init = func(beep.SampleRate, int) error { inits++; return nil }
	s.play = func(...beep.Streamer) { plays++ }

	require.NoError(t, s.Notify(toast.Toast{Severity: toast.Success}))
	require.NoError(t, s.Notify(toast.Toast{Severity: toast.Info}))
	assert.Equal(t, 1, inits)
	assert.Equal(t, 2, plays)
}

func TestSpeakerSinkInitFailure(t *testing.T) {
	plays := 0
	s := NewSpeakerSink()
	s.init = func(beep.SampleRate, int) error { return errors.New("no device") }
	s.play = func(...beep.Streamer) { plays++ }

	assert.Error(t, s.Notify(toast.Toast{}))
	assert.Error(t, s.Notify(toast.Toast{}))
	assert.Zero(t, plays)
}
