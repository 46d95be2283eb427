package graph

import (
	"image/color"
	"math/rand/v2"
	"sync"

	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/iburimskiy/neuralbg/internal/logging"
	"github.com/iburimskiy/neuralbg/internal/theme"
	"github.com/rs/zerolog"
)

// Surface is the 2D drawing target.
type Surface interface {
	Clear()
	StrokeLine(x0, y0, x1, y1, width float32, c color.Color)
	FillCircle(cx, cy, r float32, c color.Color)
}

// Options configures the renderer. Zero fields take the defaults.
type Options struct {
	Count            int
	Radius           float64
	Speed            float64
	ConnectionRadius float64
	// LineAlpha is the line alpha at opacity 1.
	LineAlpha float64
	// LineWidth is the stroke width at opacity 1.
	LineWidth float64
	// Glow adds a larger faint circle under each node.
	Glow bool
}

func DefaultOptions() Options {
	return Options{
		Count:            config.ParticleCount,
		Radius:           config.ParticleRadius,
		Speed:            config.ParticleSpeed,
		ConnectionRadius: config.ConnectionRadius,
		LineAlpha:        config.LineAlpha,
		LineWidth:        config.LineWidth,
	}
}

const (
	glowScale = 3
	glowAlpha = 0.15
)

// Renderer owns the particle pool and draws one frame per call to Frame.
// The host calls Frame once per display refresh; Stop and Start pause and
// resume it.
type Renderer struct {
	opts   Options
	theme  theme.Source
	rng    *rand.Rand
	logger zerolog.Logger

	mu        sync.Mutex
	particles []Particle
	conns     []Connection
	width     float64
	height    float64
	running   bool
	frames    uint64
}

// NewRenderer creates a stopped renderer. A nil rng seeds from the runtime.
func NewRenderer(opts Options, src theme.Source, rng *rand.Rand) *Renderer {
	def := DefaultOptions()
	if opts.Count <= 0 {
		opts.Count = def.Count
	}
	if opts.Radius <= 0 {
		opts.Radius = def.Radius
	}
	if opts.Speed <= 0 {
		opts.Speed = def.Speed
	}
	if opts.ConnectionRadius <= 0 {
		opts.ConnectionRadius = def.ConnectionRadius
	}
	if opts.LineAlpha <= 0 {
		opts.LineAlpha = def.LineAlpha
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Renderer{
		opts:   opts,
		theme:  src,
		rng:    rng,
		logger: logging.Component("graph"),
	}
}

// Start sizes the surface and creates the particle pool on first use. A
// non-positive size means there is nothing to draw on and the renderer stays
// inactive. Restarting after Stop keeps the existing pool.
func (r *Renderer) Start(w, h int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w <= 0 || h <= 0 {
		r.logger.Debug().Int("width", w).Int("height", h).Msg("no drawing surface, renderer not started")
		return false
	}
	if r.running {
		return true
	}

	r.width, r.height = float64(w), float64(h)
	if r.particles == nil {
		r.particles = make([]Particle, r.opts.Count)
		for i := range r.particles {
			r.particles[i] = newParticle(r.rng, r.width, r.height, r.opts.Speed, r.opts.Radius)
		}
	}
	r.running = true

	r.logger.Info().
		Int("particles", len(r.particles)).
		Float64("connection_radius", r.opts.ConnectionRadius).
		Msg("renderer started")
	return true
}

// Stop halts the loop. Frames are no-ops until the next Start.
func (r *Renderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	r.running = false
	r.logger.Info().Uint64("frames", r.frames).Msg("renderer stopped")
}

func (r *Renderer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Resize changes the bounds. Particle positions are left alone; anything now
// outside bounces back on its own.
func (r *Renderer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = float64(w), float64(h)
}

// Frame clears s, draws the connections, then advances and draws every node.
// The theme is read on every call so a toggle shows up on the next frame.
func (r *Renderer) Frame(s Surface) {
	if s == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	s.Clear()

	pal := theme.PaletteFor(r.theme != nil && r.theme.Dark())

	r.conns = connections(r.particles, r.opts.ConnectionRadius, r.conns)
	for _, c := range r.conns {
		a, b := r.particles[c.I], r.particles[c.J]
		s.StrokeLine(
			float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			float32(c.Opacity*r.opts.LineWidth),
			lineColor(pal.Line, c.Opacity*r.opts.LineAlpha),
		)
	}

	for i := range r.particles {
		p := &r.particles[i]
		p.advance(r.width, r.height)

		if r.opts.Glow {
			s.FillCircle(float32(p.X), float32(p.Y), float32(p.Radius*glowScale), withAlpha(pal.Node, glowAlpha))
		}
		s.FillCircle(float32(p.X), float32(p.Y), float32(p.Radius), pal.Node)
	}

	r.frames++
}

// Connections returns the pairs within the connection radius for the
// current positions.
func (r *Renderer) Connections() []Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return connections(r.particles, r.opts.ConnectionRadius, nil)
}

// Particles returns a copy of the pool.
func (r *Renderer) Particles() []Particle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Particle(nil), r.particles...)
}

// Bounds is the current surface size.
func (r *Renderer) Bounds() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Frames counts drawn frames.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}
