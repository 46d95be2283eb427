// Package graph animates the particle graph drawn behind the page: a fixed
// pool of drifting nodes joined by lines when they come close.
package graph

import (
	"math"
	"math/rand/v2"
)

// Particle is one node of the graph.
type Particle struct {
	X, Y           float64
	SpeedX, SpeedY float64
	Radius         float64
}

// Connection is a pair of particles closer than the connection radius.
type Connection struct {
	I, J     int
	Distance float64
	// Opacity is 1 - Distance/radius, in (0, 1].
	Opacity float64
}

func newParticle(rng *rand.Rand, w, h, speed, radius float64) Particle {
	return Particle{
		X:      rng.Float64() * w,
		Y:      rng.Float64() * h,
		SpeedX: (rng.Float64() - 0.5) * speed,
		SpeedY: (rng.Float64() - 0.5) * speed,
		Radius: radius,
	}
}

// advance moves p by its velocity and reflects each axis independently when
// it leaves [0,w] or [0,h]. The reflected component always points back
// inside, so a particle stranded outside by a shrinking resize drifts home
// instead of flipping every frame.
func (p *Particle) advance(w, h float64) {
	p.X += p.SpeedX
	p.Y += p.SpeedY

	switch {
	case p.X < 0:
		p.SpeedX = math.Abs(p.SpeedX)
	case p.X > w:
		p.SpeedX = -math.Abs(p.SpeedX)
	}
	switch {
	case p.Y < 0:
		p.SpeedY = math.Abs(p.SpeedY)
	case p.Y > h:
		p.SpeedY = -math.Abs(p.SpeedY)
	}
}

func distance(a, b Particle) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// ConnectionOpacity is max(0, 1 - d/radius); it is zero at and beyond the
// radius.
func ConnectionOpacity(d, radius float64) float64 {
	if radius <= 0 || d >= radius {
		return 0
	}
	return 1 - d/radius
}

// connections scans every unordered pair, O(n²) per frame.
func connections(ps []Particle, radius float64, out []Connection) []Connection {
	out = out[:0]
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := distance(ps[i], ps[j])
			if d < radius {
				out = append(out, Connection{I: i, J: j, Distance: d, Opacity: ConnectionOpacity(d, radius)})
			}
		}
	}
	return out
}
