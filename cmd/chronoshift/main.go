// chronoshift is the front end of a temporal platformer: a neon title screen
// whose start button disintegrates into particles before the level select.
//
// Usage:
//
//	chronoshift play             - Open the title screen in this terminal
//	chronoshift serve            - Start SSH server for remote sessions
//	chronoshift levels           - List the configured levels
//	chronoshift runs             - Show recorded transition runs
//	chronoshift simulate         - Run the transition headless and print the result
//	chronoshift defaults <name>  - Print a default config file
//
// Global flags:
//
//	--fps <rate>      - Set frame rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible particles
//	--db <path>       - Set database path (default: ~/.chronoshift/chronoshift.db)
//	--config <path>   - Custom transition config YAML
//	--levels <path>   - Custom levels YAML
//	--log <path>      - Write logs to a file
//	--debug           - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsPath string
	flagLogPath    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chronoshift",
	Short: "CHRONO SHIFT - Outrun your past. Escape your shadow.",
	Long: `CHRONO SHIFT is the terminal front end of a temporal platformer.
Pressing START disintegrates the button into a burst of particles and
hands over to the level select once the last particle has faded.

Available commands:
  play      - Open the title screen in this terminal
  serve     - Start SSH server for remote sessions
  levels    - List the configured levels
  runs      - Show recorded transition runs
  simulate  - Run the transition headless

Examples:
  chronoshift play
  chronoshift play --seed 42 --config ./transition.yaml
  chronoshift serve --ssh :2222
  chronoshift simulate --width 200 --height 50`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom transition config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsPath, "levels", "", "Path to custom levels YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// loadConfigs loads the transition and level configs named by the global flags.
func loadConfigs() (config.TransitionConfig, config.LevelsConfig, error) {
	transition, err := config.LoadTransition(flagConfig)
	if err != nil {
		return config.TransitionConfig{}, config.LevelsConfig{}, err
	}
	levels, err := config.LoadLevels(flagLevelsPath)
	if err != nil {
		return config.TransitionConfig{}, config.LevelsConfig{}, err
	}
	return transition, levels, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
