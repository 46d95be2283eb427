// Package eventloop provides delayed callbacks that run on the goroutine that
// advances the loop, the way timers run on a UI event loop.
package eventloop

import (
	"container/heap"
	"sync"
	"time"
)

// TimerID identifies a scheduled callback. Zero is never issued.
type TimerID uint64

// Scheduler is the "run after d" primitive.
type Scheduler interface {
	After(d time.Duration, fn func()) TimerID
	Cancel(id TimerID) bool
}

type timer struct {
	id  TimerID
	due time.Time
	fn  func()
	idx int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].id < h[j].id
	}
	return h[i].due.Before(h[j].due)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.idx = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	t.idx = -1
	return t
}

// Loop is a timer queue. After and Cancel may be called from any goroutine;
// callbacks only ever run inside Advance.
type Loop struct {
	mu     sync.Mutex
	now    time.Time
	nextID TimerID
	timers timerHeap
	byID   map[TimerID]*timer
}

// New returns a loop whose clock starts at start.
func New(start time.Time) *Loop {
	return &Loop{
		now:  start,
		byID: make(map[TimerID]*timer),
	}
}

// Now is the loop clock: the time passed to the last Advance.
func (l *Loop) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

// After schedules fn to run d after the current loop time.
func (l *Loop) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	t := &timer{id: l.nextID, due: l.now.Add(d), fn: fn}
	heap.Push(&l.timers, t)
	l.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer. It reports false if the timer already ran
// or was cancelled.
func (l *Loop) Cancel(id TimerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&l.timers, t.idx)
	delete(l.byID, id)
	return true
}

// Advance moves the clock to now and runs every timer due at or before it,
// in due order. Timers scheduled by callbacks run in the same call if they
// are already due. The clock never moves backwards.
func (l *Loop) Advance(now time.Time) int {
	ran := 0
	for {
		l.mu.Lock()
		if now.After(l.now) {
			l.now = now
		}
		if len(l.timers) == 0 || l.timers[0].due.After(l.now) {
			l.mu.Unlock()
			return ran
		}
		t := heap.Pop(&l.timers).(*timer)
		delete(l.byID, t.id)
		l.mu.Unlock()

		t.fn()
		ran++
	}
}

// Pending is the number of scheduled timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}
