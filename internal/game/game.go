// Package game hosts the particle graph and the toast overlay in an ebiten
// window.
package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/iburimskiy/neuralbg/internal/eventloop"
	"github.com/iburimskiy/neuralbg/internal/graph"
	"github.com/iburimskiy/neuralbg/internal/logging"
	"github.com/iburimskiy/neuralbg/internal/theme"
	"github.com/iburimskiy/neuralbg/internal/toast"
	"github.com/rs/zerolog"
)

const welcomeMessage = "Welcome to the interactive guide to LLMs!"

var demoToasts = []struct {
	msg string
	sev toast.Severity
}{
	{"Table sorted by parameters", toast.Info},
	{"Correct answer!", toast.Success},
	{"Token count is only an estimate", toast.Warning},
	{"Wrong answer", toast.Error},
}

// Game implements ebiten.Game.
type Game struct {
	renderer *graph.Renderer
	queue    *toast.Queue
	loop     *eventloop.Loop
	themes   *theme.Controller
	now      func() time.Time
	logger   zerolog.Logger

	width   int
	height  int
	started bool
	paused  bool
	demo    int

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool
}

// Deps are the collaborators the window drives.
type Deps struct {
	Renderer *graph.Renderer
	Queue    *toast.Queue
	Loop     *eventloop.Loop
	Themes   *theme.Controller
	// Now defaults to time.Now.
	Now func() time.Time
	// Welcome schedules the greeting toast.
	Welcome bool
}

func New(d Deps) *Game {
	if d.Now == nil {
		d.Now = time.Now
	}

	g := &Game{
		renderer: d.Renderer,
		queue:    d.Queue,
		loop:     d.Loop,
		themes:   d.Themes,
		now:      d.Now,
		logger:   logging.Component("game"),
		prevKey:  map[ebiten.Key]bool{},
	}

	g.themes.OnChange(func(dark bool) {
		if dark {
			g.queue.Notify("Dark mode on", toast.Info)
		} else {
			g.queue.Notify("Light mode on", toast.Info)
		}
	})

	if d.Welcome {
		g.loop.After(config.WelcomeDelay, func() {
			g.queue.Notify(welcomeMessage, toast.Success)
		})
	}
	return g
}

func (g *Game) Update() error {
	g.loop.Advance(g.now())

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = hit(buttonRect(), mouseX, mouseY)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.buttonHovered {
			g.buttonPressed = true
		} else {
			g.closeToastAt(mouseX, mouseY)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.toggleTheme()
		}
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeyD) {
		g.toggleTheme()
	}
	if justPressed(ebiten.KeyN) {
		g.demoToast()
	}
	if justPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	pal := theme.PaletteFor(g.themes.Flag().Dark())

	if g.renderer.Running() {
		g.renderer.Frame(surface{img: screen, bg: pal.Background})
	} else {
		screen.Fill(pal.Background)
	}

	g.drawButton(screen, pal)
	g.drawToasts(screen)

	status := fmt.Sprintf("Theme: %s | Toasts: %d", theme.Name(g.themes.Flag().Dark()), g.queue.Len())
	if g.paused {
		status += " | Paused - Space to resume"
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window size so a resize reaches the renderer.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) resize(w, h int) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h

	if !g.started {
		g.started = g.renderer.Start(w, h)
		return
	}
	g.renderer.Resize(w, h)
	g.logger.Debug().Int("width", w).Int("height", h).Msg("surface resized")
}

func (g *Game) toggleTheme() {
	if _, err := g.themes.Toggle(); err != nil {
		g.queue.Notify("Could not save the theme preference", toast.Warning)
	}
}

func (g *Game) demoToast() {
	d := demoToasts[g.demo%len(demoToasts)]
	g.demo++
	g.queue.Notify(d.msg, d.sev)
}

func (g *Game) togglePause() {
	if !g.started {
		return
	}
	g.paused = !g.paused
	if g.paused {
		g.renderer.Stop()
		return
	}
	g.renderer.Start(g.width, g.height)
}

// closeToastAt dismisses the toast whose close box contains (x, y). Boxes
// too faded to be drawn are skipped.
func (g *Game) closeToastAt(x, y int) bool {
	now := g.loop.Now()
	toasts := g.queue.Toasts()
	for i, t := range toasts {
		if g.queue.Opacity(t, now) < closeMinOpacity {
			continue
		}
		if hit(closeRect(toastRect(i, len(toasts), g.width, g.height)), x, y) {
			return g.queue.Dismiss(t.ID)
		}
	}
	return false
}
