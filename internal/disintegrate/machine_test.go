package disintegrate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/core"
)

// recorder collects what an effect reports to its host.
type recorder struct {
	completions int
	phases      []Phase
	reports     []RunReport
}

func (r *recorder) complete() { r.completions++ }
func (r *recorder) phase(p Phase) { r.phases = append(r.phases, p) }
func (r *recorder) report(rep RunReport) { r.reports = append(r.reports, rep) }
func (r *recorder) last() RunReport { return r.reports[len(r.reports)-1] }
func (r *recorder) sawPhase(p Phase) bool { return r.indexOf(p) >= 0 }

func (r *recorder) indexOf(p Phase) int {
	for i, got := range r.phases {
		if got == p {
			return i
		}
	}
	return -1
}

func staticGeometry(control core.Rect) Geometry {
	return GeometryFunc(func() (core.Rect, core.Rect, bool) {
		return control, core.NewRect(0, 0, 400, 300), true
	})
}

func newTestEffect(t *testing.T, cfg config.TransitionConfig, geom Geometry) (*Effect, *FrameQueue, *recorder) {
	t.Helper()
	queue := NewFrameQueue()
	rec := &recorder{}
	e, err := NewEffect(cfg, geom, queue, rec.complete, Options{
		Rand:     rand.New(rand.NewSource(99)),
		OnPhase:  rec.phase,
		OnReport: rec.report,
	})
	if err != nil {
		t.Fatalf("NewEffect() failed: %v", err)
	}
	return e, queue, rec
}

func TestEffectCompletesOnce(t *testing.T) {
	e, queue, rec := newTestEffect(t, config.DefaultTransitionConfig(), staticGeometry(core.NewRect(100, 125, 200, 50)))

	if !e.Trigger() {
		t.Fatal("Trigger() on an idle effect should start a run")
	}
	if e.Phase() != PhaseExploding {
		t.Errorf("Phase() = %v after trigger, expected exploding", e.Phase())
	}
	if got := len(e.Particles()); got != 400 {
		t.Errorf("Particles() = %d, expected 400", got)
	}

	queue.Drain(0)

	if rec.completions != 1 {
		t.Fatalf("completions = %d, expected 1", rec.completions)
	}
	if e.Phase() != PhaseIdle || e.Active() {
		t.Errorf("after completion Phase() = %v, Active() = %v, expected idle", e.Phase(), e.Active())
	}
	if e.Particles() != nil {
		t.Error("Particles() should be empty once the run is released")
	}
	if queue.Pending() != 0 {
		t.Errorf("Pending() = %d after completion, expected no scheduled frames", queue.Pending())
	}

	r := rec.last()
	if r.Outcome != OutcomeCompleted || r.Particles != 400 {
		t.Errorf("report = %+v, expected completed with 400 particles", r)
	}
	limit := int(math.Ceil(1.0 / config.DefaultTransitionConfig().Physics.Decay))
	if r.Ticks > limit {
		t.Errorf("run took %d ticks, expected liveness to fire within %d", r.Ticks, limit)
	}
	if !rec.sawPhase(PhaseComplete) {
		t.Error("observers should see the complete phase")
	}

	// Nothing fires later
	queue.Drain(10)
	if rec.completions != 1 {
		t.Errorf("completions = %d after extra frames, expected 1", rec.completions)
	}
}

func TestEffectZeroAreaSkips(t *testing.T) {
	e, queue, rec := newTestEffect(t, config.DefaultTransitionConfig(), staticGeometry(core.NewRect(100, 100, 0, 0)))

	if !e.Trigger() {
		t.Fatal("Trigger() should accept a skip run")
	}

	// Completion is synchronous
	if rec.completions != 1 {
		t.Fatalf("completions = %d right after trigger, expected 1", rec.completions)
	}
	if queue.Pending() != 0 {
		t.Errorf("a skipped run should not schedule frames, %d pending", queue.Pending())
	}
	if rec.sawPhase(PhaseExploding) || rec.sawPhase(PhaseFading) {
		t.Errorf("skipped run went through %v", rec.phases)
	}
	if r := rec.last(); r.Outcome != OutcomeSkipped || r.Particles != 0 {
		t.Errorf("report = %+v, expected skipped with no particles", r)
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, expected idle", e.Phase())
	}
}

func TestEffectUnmeasurableSkips(t *testing.T) {
	geom := GeometryFunc(func() (core.Rect, core.Rect, bool) {
		return core.Rect{}, core.Rect{}, false
	})
	e, _, rec := newTestEffect(t, config.DefaultTransitionConfig(), geom)

	e.Trigger()
	if rec.completions != 1 || rec.last().Outcome != OutcomeSkipped {
		t.Errorf("unmeasurable control: completions = %d, reports = %+v", rec.completions, rec.reports)
	}
}

func TestEffectIgnoresRedundantTrigger(t *testing.T) {
	measured := 0
	geom := GeometryFunc(func() (core.Rect, core.Rect, bool) {
		measured++
		return core.NewRect(100, 125, 200, 50), core.NewRect(0, 0, 400, 300), true
	})
	e, queue, rec := newTestEffect(t, config.DefaultTransitionConfig(), geom)

	e.Trigger()
	queue.Advance()
	queue.Advance()

	if e.Trigger() {
		t.Error("Trigger() during a run should be ignored")
	}
	if measured != 1 {
		t.Errorf("geometry measured %d times, expected once per run", measured)
	}

	queue.Drain(0)
	if rec.completions != 1 {
		t.Errorf("completions = %d, expected 1", rec.completions)
	}
	if len(rec.reports) != 1 {
		t.Errorf("reports = %d, expected 1 run", len(rec.reports))
	}
}

func TestEffectCancelBeforeTick(t *testing.T) {
	e, queue, rec := newTestEffect(t, config.DefaultTransitionConfig(), staticGeometry(core.NewRect(100, 125, 200, 50)))

	e.Trigger()
	e.Cancel()

	if queue.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel, expected 0", queue.Pending())
	}
	queue.Drain(500)

	if rec.completions != 0 {
		t.Errorf("completions = %d after cancel, expected 0", rec.completions)
	}
	if r := rec.last(); r.Outcome != OutcomeCanceled || r.Ticks != 0 {
		t.Errorf("report = %+v, expected canceled before any tick", r)
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v after cancel, expected idle", e.Phase())
	}

	// A canceled effect can run again
	e.Trigger()
	queue.Drain(0)
	if rec.completions != 1 {
		t.Errorf("completions = %d after a fresh run, expected 1", rec.completions)
	}
}

func TestEffectCancelMidRun(t *testing.T) {
	e, queue, rec := newTestEffect(t, config.DefaultTransitionConfig(), staticGeometry(core.NewRect(100, 125, 200, 50)))

	e.Trigger()
	for i := 0; i < 20; i++ {
		queue.Advance()
	}
	e.Cancel()
	e.Cancel() // no-op
	queue.Drain(500)

	if rec.completions != 0 {
		t.Errorf("completions = %d, expected 0", rec.completions)
	}
	if len(rec.reports) != 1 {
		t.Errorf("reports = %d, expected exactly one canceled report", len(rec.reports))
	}
}

func TestEffectLeadFrames(t *testing.T) {
	cfg := config.DefaultTransitionConfig()
	cfg.Schedule.LeadFrames = 2
	e, queue, _ := newTestEffect(t, cfg, staticGeometry(core.NewRect(100, 125, 200, 50)))

	e.Trigger()
	before := e.Particles()
	queue.Advance()
	queue.Advance()

	after := e.Particles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d moved during lead-in frames", i)
		}
	}

	queue.Advance()
	if e.Particles()[0].Opacity >= 1 {
		t.Error("first physics tick should follow the lead-in frames")
	}
}

func TestEffectCompletionMayRetrigger(t *testing.T) {
	queue := NewFrameQueue()
	var e *Effect
	completions := 0
	onComplete := func() {
		completions++
		if completions == 1 {
			if !e.Trigger() {
				t.Error("Trigger() from the completion callback should start a new run")
			}
		}
	}

	var err error
	e, err = NewEffect(config.DefaultTransitionConfig(), staticGeometry(core.NewRect(100, 125, 50, 20)), queue, onComplete, Options{
		Rand: rand.New(rand.NewSource(5)),
	})
	if err != nil {
		t.Fatalf("NewEffect() failed: %v", err)
	}

	e.Trigger()
	queue.Drain(0)

	if completions != 2 {
		t.Errorf("completions = %d, expected 2 (original run and the re-triggered one)", completions)
	}
}

func TestEffectSkipCompletesInsideTrigger(t *testing.T) {
	queue := NewFrameQueue()
	var e *Effect
	measured, completions, depth, maxDepth := 0, 0, 0, 0
	geom := GeometryFunc(func() (core.Rect, core.Rect, bool) {
		measured++
		return core.Rect{}, core.Rect{}, false
	})
	onComplete := func() {
		completions++
		// Retriggering from the callback nests inside the current Trigger
		if completions < 3 {
			depth++
			maxDepth = max(maxDepth, depth)
			e.Trigger()
			depth--
		}
	}

	var err error
	e, err = NewEffect(config.DefaultTransitionConfig(), geom, queue, onComplete, Options{
		Rand: rand.New(rand.NewSource(5)),
	})
	if err != nil {
		t.Fatalf("NewEffect() failed: %v", err)
	}

	if !e.Trigger() {
		t.Error("Trigger() on an unmeasurable control should still report a run")
	}
	if completions != 3 || measured != 3 {
		t.Errorf("completions = %d, measured = %d, expected 3 each before Trigger() returned", completions, measured)
	}
	if maxDepth != 2 {
		t.Errorf("nesting depth = %d, expected 2", maxDepth)
	}
	if queue.Pending() != 0 || e.Active() {
		t.Error("skipped runs should leave nothing scheduled")
	}
}

func TestNewEffectRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultTransitionConfig()
	cfg.Raster.Pitch = 0
	if _, err := NewEffect(cfg, staticGeometry(core.Rect{}), NewFrameQueue(), nil, Options{}); err == nil {
		t.Error("NewEffect() with zero pitch should fail")
	}

	cfg = config.DefaultTransitionConfig()
	cfg.Palette.Border = "#zzz"
	if _, err := NewEffect(cfg, staticGeometry(core.Rect{}), NewFrameQueue(), nil, Options{}); err == nil {
		t.Error("NewEffect() with a bad palette should fail")
	}

	if _, err := NewEffect(config.DefaultTransitionConfig(), nil, NewFrameQueue(), nil, Options{}); err == nil {
		t.Error("NewEffect() without geometry should fail")
	}
}

func TestMachineFadesBeforeComplete(t *testing.T) {
	physics := config.DefaultTransitionConfig().Physics
	physics.Gravity = 0

	queue := NewFrameQueue()
	m := NewMachine(queue, physics, 0, nil)
	rec := &recorder{}
	m.OnPhase(rec.phase)
	m.OnFinish(rec.report)

	// Slow particles: mean speed is already below the settle threshold.
	particles := make([]Particle, 10)
	for i := range particles {
		particles[i] = Particle{ID: nextParticleID(), VX: 0.2, VY: -0.05, Size: 4, Opacity: 1, Friction: 0.97}
	}

	if !m.Start(particles) {
		t.Fatal("Start() on an idle machine should succeed")
	}
	queue.Advance()
	if m.Phase() != PhaseFading {
		t.Fatalf("Phase() = %v after one slow tick, expected fading", m.Phase())
	}

	queue.Drain(0)

	fading, complete := rec.indexOf(PhaseFading), rec.indexOf(PhaseComplete)
	if fading < 0 || complete < 0 || fading >= complete {
		t.Errorf("phases = %v, expected fading strictly before complete", rec.phases)
	}
	if len(rec.reports) != 1 || rec.reports[0].FadeTick != 1 {
		t.Errorf("reports = %+v, expected one run that began fading at tick 1", rec.reports)
	}

	// Fading is entered once per run
	count := 0
	for _, p := range rec.phases {
		if p == PhaseFading {
			count++
		}
	}
	if count != 1 {
		t.Errorf("fading entered %d times, expected 1", count)
	}
}

func TestMachineLivenessBeforeSettling(t *testing.T) {
	physics := config.DefaultTransitionConfig().Physics
	physics.Gravity = 0

	queue := NewFrameQueue()
	m := NewMachine(queue, physics, 0, nil)
	rec := &recorder{}
	m.OnPhase(rec.phase)
	m.OnFinish(rec.report)

	// Slow and nearly transparent: one tick of decay drops every particle
	// below the visibility threshold while it is also slow enough to settle.
	particles := make([]Particle, 10)
	for i := range particles {
		particles[i] = Particle{ID: nextParticleID(), VX: 0.1, VY: 0.05, Size: 4, Opacity: 0.055, Friction: 0.97}
	}

	if !m.Start(particles) {
		t.Fatal("Start() on an idle machine should succeed")
	}
	queue.Advance()

	if m.Phase() != PhaseIdle || m.Active() {
		t.Errorf("Phase() = %v after the last particle died, expected idle", m.Phase())
	}
	if rec.sawPhase(PhaseFading) {
		t.Errorf("phases = %v, expected no fading when every particle died on the same tick", rec.phases)
	}
	if !rec.sawPhase(PhaseComplete) {
		t.Errorf("phases = %v, expected complete", rec.phases)
	}
	if len(rec.reports) != 1 {
		t.Fatalf("%d reports, expected 1", len(rec.reports))
	}
	if r := rec.reports[0]; r.Outcome != OutcomeCompleted || r.Ticks != 1 || r.FadeTick != 0 {
		t.Errorf("report = %+v, expected completed after 1 tick with no fade tick", r)
	}
	if queue.Pending() != 0 {
		t.Errorf("Pending() = %d after completion, expected 0", queue.Pending())
	}
}

func TestMachineStartWhileActive(t *testing.T) {
	queue := NewFrameQueue()
	m := NewMachine(queue, config.DefaultTransitionConfig().Physics, 0, nil)

	one := []Particle{{ID: nextParticleID(), Opacity: 1, Friction: 0.97, Size: 4}}
	if !m.Start(one) {
		t.Fatal("first Start() should succeed")
	}
	if m.Start(one) {
		t.Error("second Start() while active should be ignored")
	}
	if queue.Pending() != 1 {
		t.Errorf("Pending() = %d, expected a single frame loop", queue.Pending())
	}
}

func TestMachineHidesDeadParticles(t *testing.T) {
	queue := NewFrameQueue()
	m := NewMachine(queue, config.DefaultTransitionConfig().Physics, 0, nil)

	m.Start([]Particle{
		{ID: 1, Opacity: 1, Friction: 0.97},
		{ID: 2, Opacity: 0.05, Friction: 0.97},
		{ID: 3, Opacity: 0.5, Friction: 0.97},
	})

	live := m.Particles()
	if len(live) != 2 || live[0].ID != 1 || live[1].ID != 3 {
		t.Errorf("Particles() = %+v, expected ids 1 and 3", live)
	}

	// The run still owns the dead particle
	if len(m.run.particles) != 3 {
		t.Errorf("run holds %d particles, expected 3", len(m.run.particles))
	}

	// Mutating the returned copies does not touch the run
	live[0].Opacity = 0
	if m.Particles()[0].Opacity != 1 {
		t.Error("Particles() should return copies")
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:      "idle",
		PhaseExploding: "exploding",
		PhaseFading:    "fading",
		PhaseComplete:  "complete",
		Phase(42):      "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, expected %q", p, got, want)
		}
	}
}
