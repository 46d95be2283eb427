package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// surface adapts an ebiten image to graph.Surface. Clearing paints the theme
// background rather than transparency.
type surface struct {
	img *ebiten.Image
	bg  color.Color
}

func (s surface) Clear() {
	s.img.Fill(s.bg)
}

func (s surface) StrokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	vector.StrokeLine(s.img, x0, y0, x1, y1, width, c, true)
}

func (s surface) FillCircle(cx, cy, r float32, c color.Color) {
	vector.DrawFilledCircle(s.img, cx, cy, r, c, true)
}
