package game

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/iburimskiy/neuralbg/internal/eventloop"
	"github.com/iburimskiy/neuralbg/internal/graph"
	"github.com/iburimskiy/neuralbg/internal/prefs"
	"github.com/iburimskiy/neuralbg/internal/theme"
	"github.com/iburimskiy/neuralbg/internal/toast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	game  *Game
	loop  *eventloop.Loop
	queue *toast.Queue
	store *prefs.MemoryStore
	flag  *theme.Flag
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool) { return "", false }
func (failingStore) Set(string, string) error  { return errors.New("read-only file system") }

func newFixture(t *testing.T, welcome bool) *fixture {
	t.Helper()
	return newFixtureWithStore(t, welcome, prefs.NewMemoryStore())
}

func newFixtureWithStore(t *testing.T, welcome bool, store prefs.Store) *fixture {
	t.Helper()

	flag := theme.NewFlag(false)
	loop := eventloop.New(epoch)
	queue := toast.NewQueue(toast.DefaultOptions(), loop)
	renderer := graph.NewRenderer(graph.Options{Count: 10}, flag, rand.New(rand.NewPCG(3, 4)))

	g := New(Deps{
		Renderer: renderer,
		Queue:    queue,
		Loop:     loop,
		Themes:   theme.NewController(flag, store),
		Now:      func() time.Time { return loop.Now() },
		Welcome:  welcome,
	})
	mem, _ := store.(*prefs.MemoryStore)
	return &fixture{game: g, loop: loop, queue: queue, store: mem, flag: flag}
}

func TestLayoutStartsThenResizes(t *testing.T) {
	f := newFixture(t, false)

	w, h := f.game.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.True(t, f.game.renderer.Running())

	f.game.Layout(400, 300)
	bw, bh := f.game.renderer.Bounds()
	assert.Equal(t, 400.0, bw)
	assert.Equal(t, 300.0, bh)
	assert.Len(t, f.game.renderer.Particles(), 10)
}

func TestLayoutWithoutSizeDoesNotStart(t *testing.T) {
	f := newFixture(t, false)
	f.game.Layout(0, 0)
	assert.False(t, f.game.renderer.Running())
	assert.False(t, f.game.started)
}

func TestToggleThemePersistsAndNotifies(t *testing.T) {
	f := newFixture(t, false)

	f.game.toggleTheme()
	assert.True(t, f.flag.Dark())
	v, ok := f.store.Get(config.ThemeKey)
	require.True(t, ok)
	assert.Equal(t, theme.Dark, v)

	toasts := f.queue.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Dark mode on", toasts[0].Message)

	f.game.toggleTheme()
	assert.False(t, f.flag.Dark())
	assert.Equal(t, "Light mode on", f.queue.Toasts()[1].Message)
}

func TestToggleThemeWarnsWhenSaveFails(t *testing.T) {
	f := newFixtureWithStore(t, false, failingStore{})

	f.game.toggleTheme()
	assert.True(t, f.flag.Dark())

	toasts := f.queue.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "Dark mode on", toasts[0].Message)
	assert.Equal(t, "Could not save the theme preference", toasts[1].Message)
	assert.Equal(t, toast.Warning, toasts[1].Severity)
}

func TestWelcomeToastAfterDelay(t *testing.T) {
	f := newFixture(t, true)

	f.loop.Advance(epoch.Add(999 * time.Millisecond))
	assert.Zero(t, f.queue.Len())

	f.loop.Advance(epoch.Add(config.WelcomeDelay))
	toasts := f.queue.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, toast.Success, toasts[0].Severity)
}

func TestDemoToastCyclesSeverities(t *testing.T) {
	f := newFixture(t, false)
	for range len(demoToasts) + 1 {
		f.game.demoToast()
	}

	toasts := f.queue.Toasts()
	require.Len(t, toasts, 5)
	assert.Equal(t, toast.Info, toasts[0].Severity)
	assert.Equal(t, toast.Error, toasts[3].Severity)
	assert.Equal(t, toast.Info, toasts[4].Severity)
}

func TestCloseToastAt(t *testing.T) {
	f := newFixture(t, false)
	f.game.Layout(800, 600)

	first := f.queue.Notify("one", toast.Info)
	second := f.queue.Notify("two", toast.Info)
	f.loop.Advance(epoch.Add(10 * time.Millisecond))
	f.loop.Advance(epoch.Add(400 * time.Millisecond))

	c := closeRect(toastRect(1, 2, 800, 600))
	assert.True(t, f.game.closeToastAt(c.Min.X+1, c.Min.Y+1))

	a, _ := f.queue.Get(first)
	b, _ := f.queue.Get(second)
	assert.Equal(t, toast.Visible, a.State)
	assert.Equal(t, toast.Dismissing, b.State)

	// a second click on the same spot finds nothing to close
	assert.False(t, f.game.closeToastAt(c.Min.X+1, c.Min.Y+1))
	assert.False(t, f.game.closeToastAt(5, 5))
}

func TestCloseToastAtSkipsHiddenToasts(t *testing.T) {
	f := newFixture(t, false)
	f.game.Layout(800, 600)

	id := f.queue.Notify("pending", toast.Info)
	c := closeRect(toastRect(0, 1, 800, 600))

	// still pending, drawn at opacity zero
	assert.False(t, f.game.closeToastAt(c.Min.X+1, c.Min.Y+1))

	// shown but only a third of the way through the entrance fade
	f.loop.Advance(epoch.Add(10 * time.Millisecond))
	f.loop.Advance(epoch.Add(110 * time.Millisecond))
	assert.False(t, f.game.closeToastAt(c.Min.X+1, c.Min.Y+1))

	f.loop.Advance(epoch.Add(400 * time.Millisecond))
	assert.True(t, f.game.closeToastAt(c.Min.X+1, c.Min.Y+1))
	tst, _ := f.queue.Get(id)
	assert.Equal(t, toast.Dismissing, tst.State)
}

func TestTogglePause(t *testing.T) {
	f := newFixture(t, false)
	f.game.Layout(800, 600)

	f.game.togglePause()
	assert.True(t, f.game.paused)
	assert.False(t, f.game.renderer.Running())

	f.game.togglePause()
	assert.False(t, f.game.paused)
	assert.True(t, f.game.renderer.Running())
}

func TestLayoutGeometry(t *testing.T) {
	r0 := toastRect(0, 2, 1024, 640)
	r1 := toastRect(1, 2, 1024, 640)
	assert.Equal(t, 1024-config.ToastMargin, r0.Max.X)
	assert.Equal(t, 640-config.ToastMargin, r1.Max.Y)
	assert.Equal(t, r0.Max.Y+config.ToastGap, r1.Min.Y)

	// a lone toast sits against the bottom margin
	assert.Equal(t, r1, toastRect(0, 1, 1024, 640))

	c := closeRect(r0)
	assert.True(t, c.In(r0))
	assert.True(t, hit(buttonRect(), config.ButtonX+1, config.ButtonY+1))
	assert.False(t, hit(buttonRect(), 0, 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
