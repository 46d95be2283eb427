package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/neuralbg/internal/theme"
	"github.com/iburimskiy/neuralbg/internal/toast"
)

func severityColor(sev toast.Severity) color.NRGBA {
	switch sev {
	case toast.Success:
		return color.NRGBA{R: 6, G: 160, B: 120, A: 235}
	case toast.Warning:
		return color.NRGBA{R: 214, G: 150, B: 20, A: 235}
	case toast.Error:
		return color.NRGBA{R: 239, G: 71, B: 111, A: 235}
	}
	return color.NRGBA{R: 67, G: 97, B: 238, A: 235}
}

func fade(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(float64(c.A) * f)
	return c
}

func (g *Game) drawButton(screen *ebiten.Image, pal theme.Palette) {
	bg := pal.Button
	if g.buttonPressed {
		bg = fade(bg, 0.7)
	} else if g.buttonHovered {
		bg = fade(bg, 0.85)
	}

	r := buttonRect()
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, pal.Highlight, false)

	text := "Switch to dark"
	if g.themes.Flag().Dark() {
		text = "Switch to light"
	}
	textWidth := len(text) * 6 // debug font glyphs are 6px wide
	ebitenutil.DebugPrintAt(screen, text, r.Min.X+(r.Dx()-textWidth)/2, r.Min.Y+(r.Dy()-16)/2)
}

func (g *Game) drawToasts(screen *ebiten.Image) {
	now := g.loop.Now()
	toasts := g.queue.Toasts()
	for i, t := range toasts {
		op := g.queue.Opacity(t, now)
		if op <= 0 {
			continue
		}

		r := toastRect(i, len(toasts), g.width, g.height)
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fade(severityColor(t.Severity), op), false)

		// the debug font has no alpha, so text only shows once mostly opaque
		if op < closeMinOpacity {
			continue
		}
		ebitenutil.DebugPrintAt(screen, truncate(t.Message, 40), r.Min.X+10, r.Min.Y+(r.Dy()-16)/2)

		c := closeRect(r)
		vector.StrokeRect(screen, float32(c.Min.X), float32(c.Min.Y), float32(c.Dx()), float32(c.Dy()), 1, color.NRGBA{R: 255, G: 255, B: 255, A: 160}, false)
		ebitenutil.DebugPrintAt(screen, "x", c.Min.X+7, c.Min.Y+2)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
