package commands

import (
	"context"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/kmorling/elevbench/internal/compare"
	"github.com/kmorling/elevbench/internal/elevation"
	"github.com/kmorling/elevbench/internal/render"
)

// compareQueries is the timed query count per implementation.
var compareQueries int

// compareCmd benchmarks the configured implementations against each other.
// Targets run in config order: the first target may populate shared fixture
// data the later ones rely on.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Benchmark multiple elevation implementations side by side",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration is not initialized")
		}
		if len(cfg.Targets) < 2 {
			return fmt.Errorf("comparison runs require at least two targets in the configuration")
		}

		targets := make([]compare.Target, 0, len(cfg.Targets))
		for _, t := range cfg.Targets {
			client := elevation.NewClient(t.URL, cfg.RequestTimeout())
			targets = append(targets, compare.Target{
				Name:           t.Name,
				Implementation: t.Implementation,
				Query: func(ctx context.Context, lat, lon float64) (float64, error) {
					return client.Elevation(ctx, lat, lon, false)
				},
			})
		}

		// Mount Fuji sits well inside the standard fixture grid.
		records := compare.Run(context.Background(), targets, compareQueries, 35.3606, 138.7274)
		ratios := compare.Ratios(records)

		fmt.Println(render.Comparison(records, ratios))
		if DebugEnabled() {
			pp.Println(records)
		}

		return nil
	},
}

func init() {
	compareCmd.Flags().IntVar(&compareQueries, "queries", 1000, "timed queries per implementation")
	rootCmd.AddCommand(compareCmd)
}
