package disintegrate

import (
	"sync/atomic"
	"time"
)

// runIDs hands out process-unique run ids.
var runIDs atomic.Int64

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed" // Every particle faded out
	OutcomeSkipped   Outcome = "skipped"   // Nothing to rasterize, completed at once
	OutcomeCanceled  Outcome = "canceled"  // Torn down before completion
)

// RunReport summarises a finished run.
type RunReport struct {
	RunID     int64
	Outcome   Outcome
	Particles int           // Particles created at start
	Ticks     int           // Physics ticks executed
	FadeTick  int           // Tick at which fading began, 0 if it never did
	Duration  time.Duration // Wall time from start to finish
}

// Run is one lifecycle of the effect: the particles created at trigger
// time plus the bookkeeping of the frame loop. It is owned by the Machine.
type Run struct {
	id        int64
	particles []Particle
	lead      int // Frames left before the first physics tick
	ticks     int
	fadeTick  int
	started   time.Time
}

func newRun(particles []Particle, leadFrames int, now time.Time) *Run {
	return &Run{
		id:        runIDs.Add(1),
		particles: particles,
		lead:      leadFrames,
		started:   now,
	}
}

func (r *Run) report(outcome Outcome, now time.Time) RunReport {
	return RunReport{
		RunID:     r.id,
		Outcome:   outcome,
		Particles: len(r.particles),
		Ticks:     r.ticks,
		FadeTick:  r.fadeTick,
		Duration:  now.Sub(r.started),
	}
}
