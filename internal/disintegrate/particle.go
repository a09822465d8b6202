// Package disintegrate implements the button disintegration transition:
// a control is rasterized into a grid of particles, the particles are
// blown apart frame by frame, and the host is told exactly once when the
// last of them has faded.
//
// Everything in this package runs on a single logical thread. Frames are
// requested through a Scheduler and never overlap, so nothing here locks.
package disintegrate

import (
	"math"
	"sync/atomic"
)

// particleIDs hands out process-unique particle ids.
var particleIDs atomic.Int64

func nextParticleID() int64 {
	return particleIDs.Add(1)
}

// Particle is one square fragment of a disintegrating control.
// Size, Color, Friction and ID never change after creation; Opacity only
// goes down.
type Particle struct {
	ID       int64
	X, Y     float64 // Center, in the container's coordinate space
	VX, VY   float64 // Velocity in units per tick
	Size     float64 // Edge length of the square glyph
	Color    Swatch
	Opacity  float64 // 1 at creation, decays to 0
	Friction float64 // Per-tick velocity multiplier in (0, 1)
}

// Visible reports whether the particle should still be drawn.
func (p Particle) Visible(threshold float64) bool {
	return p.Opacity > threshold
}

// Speed returns |vx| + |vy|, the measure used for settling.
func (p Particle) Speed() float64 {
	return math.Abs(p.VX) + math.Abs(p.VY)
}

// Glow returns the strength of the halo a renderer may draw around the
// particle. Bright particles glow in proportion to their opacity; faded
// ones (opacity 0.5 or less) do not glow at all.
func (p Particle) Glow() float64 {
	if p.Opacity <= 0.5 {
		return 0
	}
	return p.Opacity
}
