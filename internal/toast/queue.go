package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/iburimskiy/neuralbg/internal/eventloop"
	"github.com/iburimskiy/neuralbg/internal/logging"
	"github.com/rs/zerolog"
)

// Scheduler runs the lifecycle timers. *eventloop.Loop satisfies it.
type Scheduler interface {
	eventloop.Scheduler
	Now() time.Time
}

// Sink mirrors every notification somewhere else (desktop, speaker).
type Sink interface {
	Notify(t Toast) error
}

// Options configures the queue.
type Options struct {
	// EnterDelay lets the entrance fade start from zero.
	EnterDelay time.Duration
	// Duration is the time from creation to auto-dismiss.
	Duration time.Duration
	// ExitDuration is the fade-out time before the toast is detached.
	ExitDuration time.Duration
	// MaxToasts caps live toasts; the oldest are dismissed early. Zero
	// means unbounded.
	MaxToasts int
}

func DefaultOptions() Options {
	return Options{
		EnterDelay:   config.ToastEnterDelay,
		Duration:     config.ToastDuration,
		ExitDuration: config.ToastExitDuration,
		MaxToasts:    config.MaxToasts,
	}
}

type entry struct {
	toast *Toast
	enter eventloop.TimerID
	auto  eventloop.TimerID
	exit  eventloop.TimerID
}

// Queue creates toasts and drives their lifecycles.
type Queue struct {
	opts   Options
	sched  Scheduler
	sinks  []Sink
	logger zerolog.Logger

	mu        sync.Mutex
	container *Container
	entries   map[string]*entry
	onRemove  func(Toast)
	removed   int
}

// NewQueue creates a queue. Non-positive durations take the defaults;
// MaxToasts is used as given.
func NewQueue(opts Options, sched Scheduler, sinks ...Sink) *Queue {
	def := DefaultOptions()
	if opts.EnterDelay <= 0 {
		opts.EnterDelay = def.EnterDelay
	}
	if opts.Duration <= 0 {
		opts.Duration = def.Duration
	}
	if opts.ExitDuration <= 0 {
		opts.ExitDuration = def.ExitDuration
	}
	if opts.MaxToasts < 0 {
		opts.MaxToasts = 0
	}

	return &Queue{
		opts:    opts,
		sched:   sched,
		sinks:   sinks,
		logger:  logging.Component("toast"),
		entries: make(map[string]*entry),
	}
}

// OnRemove registers fn to run each time a toast is detached.
func (q *Queue) OnRemove(fn func(Toast)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onRemove = fn
}

// Notify shows a new toast and returns its id. Callers usually ignore it.
func (q *Queue) Notify(message string, sev Severity) string {
	now := q.sched.Now()
	t := &Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  sev,
		State:     Pending,
		CreatedAt: now,
		ChangedAt: now,
	}

	q.mu.Lock()
	if q.container == nil {
		q.container = &Container{}
	}
	q.container.append(t)

	e := &entry{toast: t}
	q.entries[t.ID] = e
	e.enter = q.sched.After(q.opts.EnterDelay, func() { q.show(t.ID) })
	e.auto = q.sched.After(q.opts.Duration, func() { q.dismiss(t.ID, "timeout") })

	overflow := q.overflowLocked()
	snapshot := *t
	q.mu.Unlock()

	q.logger.Debug().
		Str("id", t.ID).
		Stringer("severity", sev).
		Str("message", message).
		Msg("toast created")

	for _, id := range overflow {
		q.dismiss(id, "overflow")
	}
	for _, s := range q.sinks {
		if err := s.Notify(snapshot); err != nil {
			q.logger.Warn().Err(err).Str("id", t.ID).Msg("toast sink failed")
		}
	}
	return t.ID
}

// overflowLocked returns the oldest live toasts beyond the cap.
func (q *Queue) overflowLocked() []string {
	if q.opts.MaxToasts == 0 {
		return nil
	}
	var live []string
	for _, t := range q.container.items {
		if t.Live() {
			live = append(live, t.ID)
		}
	}
	if len(live) <= q.opts.MaxToasts {
		return nil
	}
	return live[:len(live)-q.opts.MaxToasts]
}

// Dismiss closes a toast out of turn. It reports false when the toast is
// unknown or already on its way out.
func (q *Queue) Dismiss(id string) bool {
	return q.dismiss(id, "manual")
}

func (q *Queue) show(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.entries[id]
	if !ok || e.toast.State != Pending {
		return
	}
	e.enter = 0
	e.toast.State = Visible
	e.toast.ChangedAt = q.sched.Now()
}

func (q *Queue) dismiss(id, reason string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.entries[id]
	if !ok || !e.toast.Live() {
		return false
	}

	if e.enter != 0 {
		q.sched.Cancel(e.enter)
		e.enter = 0
	}
	if e.auto != 0 {
		q.sched.Cancel(e.auto)
		e.auto = 0
	}

	now := q.sched.Now()
	e.toast.FadeFrom = q.Opacity(*e.toast, now)
	e.toast.State = Dismissing
	e.toast.ChangedAt = now
	e.exit = q.sched.After(q.opts.ExitDuration, func() { q.remove(id) })

	q.logger.Debug().Str("id", id).Str("reason", reason).Msg("toast dismissing")
	return true
}

func (q *Queue) remove(id string) {
	q.mu.Lock()
	e, ok := q.entries[id]
	if !ok || e.toast.State != Dismissing {
		q.mu.Unlock()
		return
	}
	delete(q.entries, id)
	e.toast.State = Removed
	e.toast.ChangedAt = q.sched.Now()

	if !q.container.remove(id) {
		q.mu.Unlock()
		return
	}
	q.removed++
	fn := q.onRemove
	snapshot := *e.toast
	q.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Toasts returns the attached toasts in insertion order.
func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.container.snapshot()
}

// Get returns a snapshot of one attached toast.
func (q *Queue) Get(id string) (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[id]
	if !ok {
		return Toast{}, false
	}
	return *e.toast, true
}

// Len is the number of attached toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.container.Len()
}

// Removed counts detached toasts over the queue's lifetime.
func (q *Queue) Removed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.removed
}

// Opacity is the fade level of t at now, in [0,1]. Entrance and exit fades
// both last ExitDuration; the exit fade starts from wherever the toast was
// when it was dismissed, so a toast that never showed stays hidden.
func (q *Queue) Opacity(t Toast, now time.Time) float64 {
	fade := q.opts.ExitDuration
	progress := 1.0
	if fade > 0 {
		progress = float64(now.Sub(t.ChangedAt)) / float64(fade)
		progress = min(max(progress, 0), 1)
	}

	switch t.State {
	case Visible:
		return progress
	case Dismissing:
		return t.FadeFrom * (1 - progress)
	}
	return 0
}
