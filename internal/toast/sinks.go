package toast

import (
	"fmt"

	"github.com/iburimskiy/neuralbg/internal/logging"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"
)

// DesktopSink mirrors toasts as native desktop notifications.
type DesktopSink struct {
	notify func(text string, options ...zenity.Option) error
}

func NewDesktopSink() *DesktopSink {
	return &DesktopSink{notify: zenity.Notify}
}

func (s *DesktopSink) Notify(t Toast) error {
	if err := s.notify(t.Message, zenity.Title(title(t.Severity)), icon(t.Severity)); err != nil {
		return fmt.Errorf("desktop notify: %w", err)
	}
	return nil
}

func title(sev Severity) string {
	switch sev {
	case Success:
		return "Success"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	}
	return "Info"
}

func icon(sev Severity) zenity.DialogIcon {
	switch sev {
	case Warning:
		return zenity.WarningIcon
	case Error:
		return zenity.ErrorIcon
	}
	return zenity.InfoIcon
}

// AsyncSink runs a slow sink off the caller's goroutine so a notification
// never stalls a frame. Errors are logged.
type AsyncSink struct {
	sink   Sink
	logger zerolog.Logger
}

func NewAsyncSink(s Sink) *AsyncSink {
	return &AsyncSink{sink: s, logger: logging.Component("toast-sink")}
}

func (a *AsyncSink) Notify(t Toast) error {
	go func() {
		if err := a.sink.Notify(t); err != nil {
			a.logger.Warn().Err(err).Str("id", t.ID).Msg("async sink failed")
		}
	}()
	return nil
}
