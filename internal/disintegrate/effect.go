package disintegrate

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/core"
)

// Geometry measures the control to disintegrate and the container it sits
// in, both in the same coordinate space. ok is false when the control
// cannot be measured right now.
type Geometry interface {
	Measure() (control, container core.Rect, ok bool)
}

// GeometryFunc adapts a function to the Geometry interface.
type GeometryFunc func() (control, container core.Rect, ok bool)

// Measure calls f.
func (f GeometryFunc) Measure() (control, container core.Rect, ok bool) {
	return f()
}

// Options holds optional collaborators of an Effect.
type Options struct {
	Rand     *rand.Rand      // Source for jitter and friction; time-seeded if nil
	Logger   *log.Logger     // Discards output if nil
	OnPhase  func(Phase)     // Observes phase changes
	OnReport func(RunReport) // Receives every run report, canceled runs included
}

// Effect binds the transition to a host screen. The host calls Trigger on
// a confirmed start action and is called back through onComplete exactly
// once per trigger that was not ignored or canceled.
//
// An Effect is not safe for concurrent use; drive it from the host's UI loop.
type Effect struct {
	cfg        config.TransitionConfig
	palette    Palette
	geometry   Geometry
	raster     *Rasterizer
	machine    *Machine
	logger     *log.Logger
	onComplete func()
	onReport   func(RunReport)
}

// NewEffect creates an idle effect.
func NewEffect(cfg config.TransitionConfig, geometry Geometry, sched Scheduler, onComplete func(), opts Options) (*Effect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("disintegrate: %w", err)
	}
	if geometry == nil || sched == nil {
		return nil, fmt.Errorf("disintegrate: geometry and scheduler are required")
	}

	palette, err := NewPalette(cfg.Palette)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Effect{
		cfg:        cfg,
		palette:    palette,
		geometry:   geometry,
		raster:     NewRasterizer(cfg.Raster, palette, rng),
		machine:    NewMachine(sched, cfg.Physics, cfg.Schedule.LeadFrames, logger),
		logger:     logger,
		onComplete: onComplete,
		onReport:   opts.OnReport,
	}
	e.machine.OnPhase(opts.OnPhase)
	e.machine.OnFinish(e.finished)
	return e, nil
}

// Trigger starts a run from the control's current geometry. It is ignored
// (returning false) while a run is active. An unmeasurable control completes
// immediately: onComplete runs before Trigger returns. A callback that
// triggers again while the control stays unmeasurable therefore recurses
// without bound, so such hosts must retrigger from a later frame.
func (e *Effect) Trigger() bool {
	if e.machine.Active() {
		e.logger.Debug("trigger ignored, run in progress")
		return false
	}

	control, container, ok := e.geometry.Measure()
	var particles []Particle
	if ok {
		particles = e.raster.Rasterize(control, container)
	} else {
		e.logger.Debug("control not measurable")
	}
	return e.machine.Start(particles)
}

// Cancel tears down the active run, if any, without signalling completion.
func (e *Effect) Cancel() {
	e.machine.Cancel()
}

// Phase returns the current phase.
func (e *Effect) Phase() Phase {
	return e.machine.Phase()
}

// Fading reports whether the host should layer its fade overlay.
func (e *Effect) Fading() bool {
	return e.machine.Phase() == PhaseFading
}

// Active reports whether a run is in flight. Hosts hide the control while
// it is.
func (e *Effect) Active() bool {
	return e.machine.Active()
}

// Particles returns the visible particles of the active run.
func (e *Effect) Particles() []Particle {
	return e.machine.Particles()
}

// Palette returns the colors the effect rasterizes with.
func (e *Effect) Palette() Palette {
	return e.palette
}

// Config returns the configuration the effect was built with.
func (e *Effect) Config() config.TransitionConfig {
	return e.cfg
}

func (e *Effect) finished(r RunReport) {
	e.logger.Info("transition finished",
		"run", r.RunID,
		"outcome", r.Outcome,
		"particles", r.Particles,
		"ticks", r.Ticks,
	)
	if e.onReport != nil {
		e.onReport(r)
	}
	if r.Outcome != OutcomeCanceled && e.onComplete != nil {
		e.onComplete()
	}
}
