package tui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/core"
	"github.com/vovakirdan/chronoshift/internal/disintegrate"
	"github.com/vovakirdan/chronoshift/internal/storage"
)

// screen identifies which screen the session shows.
type screen int

const (
	screenTitle screen = iota
	screenLevels
	screenStage
)

// String returns the screen name used in logs.
func (s screen) String() string {
	switch s {
	case screenTitle:
		return "title"
	case screenLevels:
		return "levels"
	case screenStage:
		return "stage"
	default:
		return "unknown"
	}
}

// Options configures a front-end session.
type Options struct {
	Transition config.TransitionConfig
	Levels     config.LevelsConfig
	Runtime    core.RuntimeConfig
	Store      *storage.Store     // Optional; nil disables persistence
	Logger     *log.Logger        // Optional; nil discards
	Renderer   *lipgloss.Renderer // Optional; nil uses the default renderer
	Source     string             // Recorded with every run, e.g. "tui" or "ssh"
}

// session is the mutable state behind an App. Bubble Tea copies the App on
// every update, while the effect's callbacks need a stable target.
type session struct {
	opts    Options
	logger  *log.Logger
	keys    KeyMap
	help    help.Model
	painter *Painter
	theme   titleTheme

	scr    *core.Screen
	queue  *disintegrate.FrameQueue
	effect *disintegrate.Effect

	current    screen
	width      int
	height     int
	frame      int
	fadeFrames int
	ticking    bool

	levels levelsView
	stage  config.LevelConfig
}

// App is the Bubble Tea model of a front-end session.
type App struct {
	s        *session
	quitting bool
}

// NewApp creates a session that opens on the title screen.
func NewApp(opts Options) (App, error) {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Source == "" {
		opts.Source = "tui"
	}
	if err := opts.Levels.Validate(); err != nil {
		return App{}, fmt.Errorf("tui: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := opts.Runtime.ScreenW, opts.Runtime.ScreenH
	s := &session{
		opts:    opts,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		painter: NewPainter(opts.Renderer),
		scr:     core.NewScreen(w, max(h-1, 0)),
		queue:   disintegrate.NewFrameQueue(),
		width:   w,
		height:  h,
		levels:  newLevelsView(opts.Levels, w, max(h-1, 0)),
	}
	s.help.Width = w

	geometry := disintegrate.GeometryFunc(func() (core.Rect, core.Rect, bool) {
		return measureButton(s.scr.Width(), s.scr.Height(), opts.Transition.Display)
	})

	effect, err := disintegrate.NewEffect(opts.Transition, geometry, s.queue, s.enterLevels, disintegrate.Options{
		Rand:     rand.New(rand.NewSource(opts.Runtime.Seed)),
		Logger:   logger,
		OnPhase:  s.phaseChanged,
		OnReport: s.record,
	})
	if err != nil {
		return App{}, fmt.Errorf("tui: %w", err)
	}
	s.effect = effect
	s.theme = newTitleTheme(effect.Palette())

	return App{s: s}, nil
}

// Init starts the frame loop.
func (m App) Init() tea.Cmd {
	m.s.ticking = true
	return tickCmd(m.s.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.s.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m, m.s.tick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.s
	action := s.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		s.effect.Cancel()
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		s.help.ShowAll = !s.help.ShowAll
		return m, nil
	}

	switch s.current {
	case screenTitle:
		if action == core.ActionConfirm {
			s.effect.Trigger()
		}

	case screenLevels:
		switch action {
		case core.ActionUp, core.ActionLeft:
			s.levels.move(-1)
		case core.ActionDown, core.ActionRight:
			s.levels.move(1)
		case core.ActionConfirm:
			s.selectLevel()
		case core.ActionBack:
			s.show(screenTitle)
			return m, s.ensureTicking()
		}

	case screenStage:
		if action == core.ActionBack {
			s.show(screenLevels)
		}
	}

	return m, nil
}

// View renders the current screen with its help footer.
func (m App) View() string {
	if m.quitting {
		return ""
	}
	s := m.s

	var body string
	switch s.current {
	case screenTitle:
		drawTitle(s.scr, s.theme, s.effect.Palette(), s.opts.Transition.Display, titleFrame{
			active:    s.effect.Active(),
			frame:     s.frame,
			fade:      fadeAmount(s.fadeFrames, s.opts.Transition.Display.FadeOverlay),
			scanlines: s.opts.Transition.Display.Scanlines,
			particles: s.effect.Particles(),
		})
		body = s.painter.Render(s.scr)
	case screenLevels:
		body = s.levels.view(s.painter)
	case screenStage:
		body = renderStage(s.painter, s.stage, s.width, max(s.height-1, 0))
	}

	helpStyle := s.painter.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	footer := helpStyle.Render(s.help.View(s.keys.helpFor(s.current)))

	return strings.Join([]string{body, footer}, "\n")
}

// Screen returns the name of the screen currently shown.
func (m App) Screen() string {
	return m.s.current.String()
}

// tick advances the transition by one frame and decides whether the frame
// loop keeps running.
func (s *session) tick() tea.Cmd {
	s.ticking = false
	s.frame++
	s.queue.Advance()
	if s.effect.Fading() {
		s.fadeFrames++
	}
	return s.ensureTicking()
}

// ensureTicking restarts the frame loop if the current screen animates and
// no tick is already in flight.
func (s *session) ensureTicking() tea.Cmd {
	if s.ticking {
		return nil
	}
	if s.current != screenTitle && s.queue.Pending() == 0 {
		return nil
	}
	s.ticking = true
	return tickCmd(s.opts.Runtime.TickRate)
}

func (s *session) resize(w, h int) {
	s.width = w
	s.height = h
	s.scr.Resize(w, max(h-1, 0))
	s.levels.resize(w, max(h-1, 0))
	s.help.Width = w
}

func (s *session) show(sc screen) {
	if s.current == sc {
		return
	}
	s.logger.Debug("screen change", "from", s.current, "to", sc)
	s.current = sc
}

func (s *session) phaseChanged(p disintegrate.Phase) {
	if p == disintegrate.PhaseExploding {
		s.fadeFrames = 0
	}
}

// enterLevels is the transition's completion callback.
func (s *session) enterLevels() {
	s.fadeFrames = 0
	if s.opts.Store != nil {
		last, err := s.opts.Store.LastSelection()
		if err != nil {
			s.logger.Warn("could not load last selection", "error", err)
		} else if last != "" {
			s.levels.focus(last)
		}
	}
	s.show(screenLevels)
}

func (s *session) selectLevel() {
	level, ok := s.levels.selected()
	if !ok {
		return
	}
	if s.opts.Store != nil {
		if err := s.opts.Store.SaveSelection(level.ID); err != nil {
			s.logger.Warn("could not save selection", "error", err)
		}
	}
	s.logger.Info("level selected", "level", level.ID, "difficulty", level.Difficulty)
	s.stage = level
	s.show(screenStage)
}

func (s *session) record(r disintegrate.RunReport) {
	if s.opts.Store == nil {
		return
	}
	if _, err := s.opts.Store.RecordRun(s.opts.Source, r); err != nil {
		s.logger.Warn("could not record run", "error", err)
	}
}

// Close cancels a run still in flight, recording it as canceled. Call it
// only after the program driving the app has exited.
func (m App) Close() {
	m.s.effect.Cancel()
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	app.Close()
	return err
}
