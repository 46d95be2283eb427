// Package toast implements stackable, auto-dismissing status messages.
//
// Each toast walks a small state machine, Pending → Visible → Dismissing →
// Removed. Every transition is guarded, so the auto-dismiss timer and a
// manual close can race without detaching the toast twice.
package toast

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Severity indicates how a toast is styled.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

var ErrUnknownSeverity = errors.New("unknown severity")

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity accepts the lowercase names plus "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info", "":
		return Info, nil
	case "success":
		return Success, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}

// State is the lifecycle position of a toast.
type State int

const (
	Pending State = iota
	Visible
	Dismissing
	Removed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Visible:
		return "visible"
	case Dismissing:
		return "dismissing"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Toast is a snapshot of one notification.
type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	State     State
	CreatedAt time.Time
	// ChangedAt is when State was entered.
	ChangedAt time.Time
	// FadeFrom is the opacity the exit fade starts at, set on dismissal.
	FadeFrom float64
}

// Live reports whether the toast still counts against the cap.
func (t Toast) Live() bool {
	return t.State == Pending || t.State == Visible
}

// Container is the ordered list of attached toasts. Order is insertion
// order; nothing is ever reordered.
type Container struct {
	items []*Toast
}

func (c *Container) append(t *Toast) {
	c.items = append(c.items, t)
}

// remove detaches id and reports whether it was attached. Removing an
// absent toast is a no-op.
func (c *Container) remove(id string) bool {
	for i, t := range c.items {
		if t.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

func (c *Container) snapshot() []Toast {
	if c == nil {
		return nil
	}
	out := make([]Toast, 0, len(c.items))
	for _, t := range c.items {
		out = append(out, *t)
	}
	return out
}
