package disintegrate

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/core"
)

// cellKind classifies a grid cell of the rasterized control.
type cellKind int

const (
	cellFill  cellKind = iota // Control background
	cellEdge                  // Within one pitch of the outline
	cellLabel                 // Inside the label region
)

// Rasterizer turns a control's rectangle into particles.
type Rasterizer struct {
	cfg     config.RasterConfig
	palette Palette
	rng     *rand.Rand
}

// NewRasterizer creates a rasterizer drawing randomness from rng.
func NewRasterizer(cfg config.RasterConfig, palette Palette, rng *rand.Rand) *Rasterizer {
	return &Rasterizer{
		cfg:     cfg,
		palette: palette,
		rng:     rng,
	}
}

// MaxParticles bounds the grid of a single run. Larger controls are
// treated as unrenderable.
const MaxParticles = 1 << 16

// GridSize returns the number of columns and rows a w x h control is cut into.
// It returns 0, 0 when the grid would exceed MaxParticles.
func (r *Rasterizer) GridSize(w, h float64) (cols, rows int) {
	pitch := r.cfg.Pitch
	if !(w > 0) || !(h > 0) || !(pitch > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return 0, 0
	}
	c, rw := math.Ceil(w/pitch), math.Ceil(h/pitch)
	if c*rw > MaxParticles {
		return 0, 0
	}
	return int(c), int(rw)
}

// Rasterize cuts control into a grid of particles expressed in the
// coordinate space of container. Each particle is launched outward from the
// control's center with a slight upward kick.
//
// An empty control yields no particles; callers treat that as "skip the effect".
func (r *Rasterizer) Rasterize(control, container core.Rect) []Particle {
	if control.Empty() {
		return nil
	}

	local := control.Relative(container)
	cols, rows := r.GridSize(local.W, local.H)
	if cols == 0 || rows == 0 {
		return nil
	}

	pitch := r.cfg.Pitch
	centerX, centerY := local.Center()
	particles := make([]Particle, 0, cols*rows)

	for col := 0; col < cols; col++ {
		px := float64(col) * pitch
		for row := 0; row < rows; row++ {
			py := float64(row) * pitch

			kind := r.classify(px, py, local.W, local.H)
			x := local.X + px + pitch/2
			y := local.Y + py + pitch/2
			vx, vy := r.launch(x-centerX, y-centerY, kind == cellEdge)

			particles = append(particles, Particle{
				ID:       nextParticleID(),
				X:        x,
				Y:        y,
				VX:       vx,
				VY:       vy,
				Size:     pitch - 1,
				Color:    r.swatch(kind, px, local.W),
				Opacity:  1,
				Friction: r.cfg.FrictionMin + r.rng.Float64()*(r.cfg.FrictionMax-r.cfg.FrictionMin),
			})
		}
	}

	return particles
}

// classify decides which part of the control the cell at (px, py) shows.
// Offsets are relative to the control's top-left corner.
func (r *Rasterizer) classify(px, py, w, h float64) cellKind {
	pitch := r.cfg.Pitch
	if px < pitch || px > w-pitch*2 || py < pitch || py > h-pitch*2 {
		return cellEdge
	}

	l := r.cfg.Label
	if px >= w*l.Left && px <= w*l.Right && py >= h*l.Top && py <= h*l.Bottom {
		return cellLabel
	}
	return cellFill
}

// swatch picks the color of a cell. Label cells stipple border ink and
// filler in a border, filler, border pattern two cells wide, which reads
// as text without sampling any glyphs.
func (r *Rasterizer) swatch(kind cellKind, px, w float64) Swatch {
	switch kind {
	case cellEdge:
		return r.palette.Border
	case cellLabel:
		stroke := int(math.Floor((px-w*r.cfg.Label.Left)/(r.cfg.Pitch*2))) % 3
		if stroke == 1 {
			return r.palette.Filler
		}
		return r.palette.Border
	default:
		return r.palette.Fill
	}
}

// launch computes the initial velocity of a particle offset (dx, dy) from
// the control's center.
func (r *Rasterizer) launch(dx, dy float64, edge bool) (vx, vy float64) {
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1
	}

	boost := 1.0
	if edge {
		boost = r.cfg.EdgeBoost
	}
	speed := (r.cfg.SpeedMin + r.rng.Float64()*(r.cfg.SpeedMax-r.cfg.SpeedMin)) * boost

	vx = dx/dist*speed + (r.rng.Float64()-0.5)*r.cfg.Jitter
	vy = dy/dist*speed - r.rng.Float64()*r.cfg.UpwardKick
	return vx, vy
}
