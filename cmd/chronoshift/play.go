package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chronoshift/internal/core"
	"github.com/vovakirdan/chronoshift/internal/platform/tui"
	"github.com/vovakirdan/chronoshift/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the title screen",
	Long: `Open the CHRONO SHIFT title screen in this terminal.

Controls:
  Enter/Space  - Press START / pick a level
  Up/Down      - Move through the level list
  Esc/B        - Back
  ?            - More help
  Q/Ctrl+C     - Quit

The alternate screen owns the terminal, so logs are discarded unless
--log names a file.

Examples:
  chronoshift play
  chronoshift play --seed 42
  chronoshift play --log ./chronoshift.log --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	transition, levels, err := loadConfigs()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger("chronoshift", io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// Get terminal size before the first WindowSizeMsg arrives
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Transition: transition,
		Levels:     levels,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Logger: logger,
		Source: "tui",
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running front end: %v", runErr)
	}
}
