package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chronoshift/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded transition runs",
	Long: `Display the most recent transition runs and totals over all runs.

Examples:
  chronoshift runs
  chronoshift runs --limit 50
  chronoshift runs --clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every recorded run")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run database: %v", err)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Println("All runs deleted.")
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'chronoshift play' and press START to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-8s  %-9s  %-9s  %-5s  %-5s  %-8s  %s\n",
		"Run", "Source", "Outcome", "Particles", "Ticks", "Fade", "Duration", "Date")
	fmt.Printf("  %-6s  %-8s  %-9s  %-9s  %-5s  %-5s  %-8s  %s\n",
		"---", "------", "-------", "---------", "-----", "----", "--------", "----")

	for _, r := range runs {
		fade := "-"
		if r.FadeTick > 0 {
			fade = fmt.Sprintf("%d", r.FadeTick)
		}
		fmt.Printf("  %-6d  %-8s  %-9s  %-9d  %-5d  %-5s  %-8s  %s\n",
			r.RunID, r.Source, r.Outcome, r.Particles, r.Ticks, fade,
			r.Duration.Round(10*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	totals, err := store.Totals()
	if err == nil {
		fmt.Println()
		fmt.Printf("Total: %d runs (%d completed, %d skipped, %d canceled)\n",
			totals.Runs, totals.Completed, totals.Skipped, totals.Canceled)
		if totals.Completed > 0 {
			fmt.Printf("Average completed run: %.1f ticks\n", totals.AvgTicks)
		}
	}
}
