package disintegrate

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chronoshift/internal/config"
)

// Phase is the state of the transition.
type Phase int

const (
	PhaseIdle      Phase = iota // No run active
	PhaseExploding              // Particles flying apart
	PhaseFading                 // Particles have settled; host darkens the screen
	PhaseComplete               // Reported to observers only; the machine returns to Idle
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExploding:
		return "exploding"
	case PhaseFading:
		return "fading"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Machine owns the active run and drives it frame by frame until every
// particle has faded. At most one run is active at a time.
type Machine struct {
	physics    config.PhysicsConfig
	leadFrames int
	sched      Scheduler
	logger     *log.Logger
	now        func() time.Time

	phase  Phase
	run    *Run
	cancel CancelFunc

	onPhase  func(Phase)
	onFinish func(RunReport)
}

// NewMachine creates an idle machine that schedules frames on sched.
// A nil logger discards log output.
func NewMachine(sched Scheduler, physics config.PhysicsConfig, leadFrames int, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{
		physics:    physics,
		leadFrames: max(leadFrames, 0),
		sched:      sched,
		logger:     logger,
		now:        time.Now,
		phase:      PhaseIdle,
	}
}

// OnPhase registers fn to be called on every phase change, including the
// transient PhaseComplete.
func (m *Machine) OnPhase(fn func(Phase)) {
	m.onPhase = fn
}

// OnFinish registers fn to receive the report of every run that ends,
// whether completed, skipped or canceled.
func (m *Machine) OnFinish(fn func(RunReport)) {
	m.onFinish = fn
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Active reports whether a run is in flight.
func (m *Machine) Active() bool {
	return m.run != nil
}

// Particles returns copies of the active run's visible particles.
// Dead particles are never exposed.
func (m *Machine) Particles() []Particle {
	if m.run == nil {
		return nil
	}
	return Live(m.run.particles, m.physics.VisibilityThreshold)
}

// Start begins a run over particles. It returns false, doing nothing, if a
// run is already active. An empty particle set finishes the run at once,
// synchronously, without entering Exploding or Fading.
func (m *Machine) Start(particles []Particle) bool {
	if m.phase != PhaseIdle {
		m.logger.Debug("start ignored, run in progress", "phase", m.phase)
		return false
	}

	run := newRun(particles, m.leadFrames, m.now())

	if len(particles) == 0 {
		m.logger.Debug("nothing to disintegrate, skipping", "run", run.id)
		m.notify(PhaseComplete)
		m.finish(run.report(OutcomeSkipped, m.now()))
		return true
	}

	m.run = run
	m.logger.Debug("run started", "run", run.id, "particles", len(particles))
	m.setPhase(PhaseExploding)
	m.schedule(run)
	return true
}

// Cancel discards the active run without completing it. No further frames
// execute for it and no completion is signalled. It returns false if no
// run was active.
func (m *Machine) Cancel() bool {
	run := m.run
	if run == nil {
		return false
	}

	if m.cancel != nil {
		m.cancel()
	}
	m.run = nil
	m.cancel = nil

	m.logger.Debug("run canceled", "run", run.id, "ticks", run.ticks)
	m.setPhase(PhaseIdle)
	m.finish(run.report(OutcomeCanceled, m.now()))
	return true
}

// schedule requests the next frame for run.
func (m *Machine) schedule(run *Run) {
	m.cancel = m.sched.RequestFrame(func() {
		m.frame(run)
	})
}

// frame runs one scheduled frame of run.
func (m *Machine) frame(run *Run) {
	// A frame for a canceled or finished run is stale.
	if m.run != run {
		return
	}
	m.cancel = nil

	if run.lead > 0 {
		run.lead--
		m.schedule(run)
		return
	}

	Integrate(run.particles, m.physics)
	run.ticks++

	alive, meanSpeed := Survey(run.particles, m.physics)
	if !alive {
		m.complete(run)
		return
	}

	if meanSpeed < m.physics.SettleThreshold && m.phase != PhaseFading {
		run.fadeTick = run.ticks
		m.setPhase(PhaseFading)
	}

	m.schedule(run)
}

// complete ends run. The machine is back to Idle before the report is
// delivered, so the receiver may start a new run.
func (m *Machine) complete(run *Run) {
	m.run = nil
	m.cancel = nil
	m.phase = PhaseIdle

	m.logger.Debug("run complete", "run", run.id, "ticks", run.ticks, "fade_tick", run.fadeTick)
	m.notify(PhaseComplete)
	m.finish(run.report(OutcomeCompleted, m.now()))
}

func (m *Machine) setPhase(p Phase) {
	if m.phase == p {
		return
	}
	m.logger.Debug("phase change", "from", m.phase, "to", p)
	m.phase = p
	m.notify(p)
}

func (m *Machine) notify(p Phase) {
	if m.onPhase != nil {
		m.onPhase(p)
	}
}

func (m *Machine) finish(r RunReport) {
	if m.onFinish != nil {
		m.onFinish(r)
	}
}
