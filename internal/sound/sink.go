package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/iburimskiy/neuralbg/internal/logging"
	"github.com/iburimskiy/neuralbg/internal/toast"
	"github.com/rs/zerolog"
)

// SpeakerSink plays a chime through the default audio device. The speaker is
// initialised on the first toast; if that fails the sink stays silent.
type SpeakerSink struct {
	logger zerolog.Logger

	once    sync.Once
	initErr error
	init    func(beep.SampleRate, int) error
	play    func(...beep.Streamer)
}

func NewSpeakerSink() *SpeakerSink {
	return &SpeakerSink{
		logger: logging.Component("sound"),
		init:   speaker.Init,
		play:   speaker.Play,
	}
}

func (s *SpeakerSink) Notify(t toast.Toast) error {
	s.once.Do(func() {
		s.initErr = s.init(SampleRate, SampleRate.N(time.Second/20))
		if s.initErr != nil {
			s.logger.Warn().Err(s.initErr).Msg("speaker unavailable, toast sounds disabled")
		}
	})
	if s.initErr != nil {
		return fmt.Errorf("speaker init: %w", s.initErr)
	}

	s.play(Chime(t.Severity))
	return nil
}
