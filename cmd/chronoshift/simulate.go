package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/core"
	"github.com/vovakirdan/chronoshift/internal/disintegrate"
	"github.com/vovakirdan/chronoshift/internal/storage"
)

var (
	flagSimWidth  float64
	flagSimHeight float64
	flagSimRuns   int
	flagSimTrace  int
	flagSimRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the transition headless",
	Long: `Disintegrate a control of the given size without a terminal and print
what happened: particle count, ticks until the last particle faded, the tick
at which fading began and the outcome.

Frames are advanced as fast as possible; --fps does not apply.

Examples:
  chronoshift simulate
  chronoshift simulate --width 120 --height 40 --runs 5 --seed 1
  chronoshift simulate --trace 20
  chronoshift simulate --record`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSimWidth, "width", 200, "Control width in units")
	simulateCmd.Flags().Float64Var(&flagSimHeight, "height", 50, "Control height in units")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().IntVar(&flagSimTrace, "trace", 0, "Print live particles every N frames (0 = off)")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record the runs in the run database")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	transition, _, err := loadConfigs()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger("simulate", os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	sim := simulation{
		width:  flagSimWidth,
		height: flagSimHeight,
		runs:   flagSimRuns,
		trace:  flagSimTrace,
		seed:   flagSeed,
		fps:    flagFPS,
	}
	if flagSimRecord {
		sim.dbPath = flagDBPath
	}

	_, err = sim.run(cmd.OutOrStdout(), transition, logger)
	closeLog()
	if err != nil {
		fail("%v", err)
	}
}

// simulation is one invocation of the simulate command.
type simulation struct {
	width, height float64
	runs          int
	trace         int    // Print live particles every trace frames, 0 = off
	seed          int64  // 0 picks a time-based seed
	fps           int    // Used for the duration estimate only
	dbPath        string // Empty: runs are not recorded
}

// run performs the simulation, writing the result table to out, and returns
// the report of every run.
func (s simulation) run(out io.Writer, transition config.TransitionConfig, logger *log.Logger) ([]disintegrate.RunReport, error) {
	var store *storage.Store
	if s.dbPath != "" {
		var err error
		store, err = storage.Open(s.dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening run database: %w", err)
		}
		defer store.Close()
	}

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The control sits in the middle of a container twice its size
	control := core.NewRect(s.width/2, s.height/2, s.width, s.height)
	container := core.NewRect(0, 0, s.width*2, s.height*2)
	geometry := disintegrate.GeometryFunc(func() (core.Rect, core.Rect, bool) {
		return control, container, true
	})

	queue := disintegrate.NewFrameQueue()
	var reports []disintegrate.RunReport
	completions := 0

	effect, err := disintegrate.NewEffect(transition, geometry, queue, func() { completions++ }, disintegrate.Options{
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
		OnPhase: func(p disintegrate.Phase) {
			logger.Debug("phase", "phase", p)
		},
		OnReport: func(r disintegrate.RunReport) {
			reports = append(reports, r)
			if store != nil {
				if _, err := store.RecordRun("simulate", r); err != nil {
					logger.Warn("could not record run", "error", err)
				}
			}
		},
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Simulating %gx%g control, seed %d\n", s.width, s.height, seed)
	fmt.Fprintln(out)

	for i := 0; i < max(s.runs, 1); i++ {
		effect.Trigger()

		frame := 0
		for queue.Pending() > 0 {
			queue.Advance()
			frame++
			if s.trace > 0 && frame%s.trace == 0 {
				fmt.Fprintf(out, "  frame %4d  %-9s  %4d live\n", frame, effect.Phase(), len(effect.Particles()))
			}
		}
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-9s  %-9s  %-5s  %-5s  %s\n", "Run", "Outcome", "Particles", "Ticks", "Fade", "Time")
	fmt.Fprintf(out, "  %-4s  %-9s  %-9s  %-5s  %-5s  %s\n", "---", "-------", "---------", "-----", "----", "----")

	for i, r := range reports {
		fade := "-"
		if r.FadeTick > 0 {
			fade = fmt.Sprintf("%d", r.FadeTick)
		}
		fmt.Fprintf(out, "  %-4d  %-9s  %-9d  %-5d  %-5s  %s\n", i+1, r.Outcome, r.Particles, r.Ticks, fade, r.Duration.Round(time.Microsecond))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Completed %d of %d runs\n", completions, len(reports))
	if s.fps > 0 && len(reports) > 0 {
		fmt.Fprintf(out, "At %d fps the first run would last %.2fs\n", s.fps, float64(reports[0].Ticks+effect.Config().Schedule.LeadFrames)/float64(s.fps))
	}
	return reports, nil
}
