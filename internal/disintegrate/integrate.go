package disintegrate

import (
	"github.com/vovakirdan/chronoshift/internal/config"
)

// Integrate advances every particle by one tick in place.
// Particles do not interact, so the order of updates is irrelevant.
//
// Position moves by the current velocity, gravity is added to vy, both
// velocity components are damped by the particle's friction, and opacity
// drops by the decay (never below zero).
func Integrate(particles []Particle, ph config.PhysicsConfig) {
	for i := range particles {
		p := &particles[i]

		p.X += p.VX
		p.Y += p.VY

		p.VY += ph.Gravity
		p.VX *= p.Friction
		p.VY *= p.Friction

		p.Opacity -= ph.Decay
		if p.Opacity < 0 {
			p.Opacity = 0
		}
	}
}

// Survey reports whether any particle is still visible and the mean of
// |vx| + |vy| across all particles.
func Survey(particles []Particle, ph config.PhysicsConfig) (alive bool, meanSpeed float64) {
	if len(particles) == 0 {
		return false, 0
	}

	var total float64
	for _, p := range particles {
		if p.Visible(ph.VisibilityThreshold) {
			alive = true
		}
		total += p.Speed()
	}
	return alive, total / float64(len(particles))
}

// Live returns copies of the particles that are still visible.
func Live(particles []Particle, threshold float64) []Particle {
	live := make([]Particle, 0, len(particles))
	for _, p := range particles {
		if p.Visible(threshold) {
			live = append(live, p)
		}
	}
	return live
}
