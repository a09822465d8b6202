package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chronoshift/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults <transition|levels>",
	Short: "Print a default config file",
	Long: `Print the built-in YAML for a config file, as a starting point for
--config or --levels, or for ~/.chronoshift/configs/.

Examples:
  chronoshift defaults transition > transition.yaml
  chronoshift defaults levels > ~/.chronoshift/configs/levels.yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"transition", "levels"},
	Run:       runDefaults,
}

func runDefaults(_ *cobra.Command, args []string) {
	data := config.GetDefaultYAML(args[0])
	if data == nil {
		fail("unknown config %q (expected transition or levels)", args[0])
	}
	os.Stdout.Write(data)
}
