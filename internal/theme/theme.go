// Package theme holds the light/dark flag and the palettes derived from it.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/iburimskiy/neuralbg/internal/logging"
	"github.com/iburimskiy/neuralbg/internal/prefs"
	"github.com/rs/zerolog"
)

const (
	Dark  = "dark"
	Light = "light"
)

var ErrInvalidTheme = errors.New("theme must be dark or light")

// Source is queried by anything that needs the current flag. Implementations
// must be cheap: the renderer asks once per frame.
type Source interface {
	Dark() bool
}

// Flag is the process-wide theme flag, passed around explicitly.
type Flag struct {
	dark atomic.Bool
}

func NewFlag(dark bool) *Flag {
	f := &Flag{}
	f.dark.Store(dark)
	return f
}

func (f *Flag) Dark() bool { return f.dark.Load() }

func (f *Flag) Set(dark bool) { f.dark.Store(dark) }

// Toggle flips the flag and returns the new value.
func (f *Flag) Toggle() bool {
	for {
		old := f.dark.Load()
		if f.dark.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Name returns "dark" or "light".
func Name(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}

// Parse converts "dark"/"light" to the flag value.
func Parse(s string) (bool, error) {
	switch s {
	case Dark:
		return true, nil
	case Light:
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// Resolve picks the initial flag: a valid stored preference wins, otherwise
// the system appearance query decides.
func Resolve(store prefs.Store, systemDark func() bool) bool {
	if store != nil {
		if v, ok := store.Get(config.ThemeKey); ok {
			if dark, err := Parse(v); err == nil {
				return dark
			}
		}
	}
	if systemDark == nil {
		return false
	}
	return systemDark()
}

// Controller owns the toggle path: flip the flag, persist it, tell listeners.
type Controller struct {
	flag   *Flag
	store  prefs.Store
	logger zerolog.Logger

	mu        sync.Mutex
	listeners []func(dark bool)
}

func NewController(flag *Flag, store prefs.Store) *Controller {
	return &Controller{
		flag:   flag,
		store:  store,
		logger: logging.Component("theme"),
	}
}

func (c *Controller) Flag() *Flag { return c.flag }

// OnChange registers fn to run after every toggle or set.
func (c *Controller) OnChange(fn func(dark bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Toggle flips the theme and persists the new value. A failed write is
// returned but the in-memory flag stays flipped.
func (c *Controller) Toggle() (bool, error) {
	dark := c.flag.Toggle()
	return dark, c.commit(dark)
}

// Set stores an explicit value.
func (c *Controller) Set(dark bool) error {
	c.flag.Set(dark)
	return c.commit(dark)
}

func (c *Controller) commit(dark bool) error {
	c.logger.Debug().Str("theme", Name(dark)).Msg("theme changed")

	var err error
	if c.store != nil {
		if err = c.store.Set(config.ThemeKey, Name(dark)); err != nil {
			c.logger.Warn().Err(err).Msg("failed to persist theme")
			err = fmt.Errorf("persist theme: %w", err)
		}
	}

	c.mu.Lock()
	listeners := append([]func(bool){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(dark)
	}
	return err
}

// Palette is the color set for one theme.
type Palette struct {
	Node       color.NRGBA
	Line       color.NRGBA
	Highlight  color.NRGBA
	Background color.NRGBA
	Text       color.NRGBA
	Button     color.NRGBA
}

// rgba builds a color from CSS-style rgba() components.
func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

var (
	LightPalette = Palette{
		Node:       rgba(67, 97, 238, 0.5),
		Line:       rgba(67, 97, 238, 0.2),
		Highlight:  rgba(239, 71, 111, 0.8),
		Background: rgba(248, 249, 252, 1),
		Text:       rgba(33, 37, 41, 1),
		Button:     rgba(67, 97, 238, 1),
	}
	DarkPalette = Palette{
		Node:       rgba(255, 255, 255, 0.5),
		Line:       rgba(255, 255, 255, 0.2),
		Highlight:  rgba(124, 180, 255, 0.8),
		Background: rgba(18, 20, 28, 1),
		Text:       rgba(230, 232, 240, 1),
		Button:     rgba(60, 80, 120, 1),
	}
)

func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}
