package graph

import "image/color"

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lineColor keeps the palette hue and replaces its alpha with a (0-1).
func lineColor(base color.NRGBA, a float64) color.NRGBA {
	base.A = uint8(clamp01(a)*255 + 0.5)
	return base
}

// withAlpha scales the existing alpha of c by f.
func withAlpha(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(float64(c.A)*clamp01(f) + 0.5)
	return c
}
