package commands

import (
	"context"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/kmorling/elevbench/internal/bench"
	"github.com/kmorling/elevbench/internal/elevation"
	"github.com/kmorling/elevbench/internal/render"
)

// benchCmd runs the full benchmark suite against the configured service.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the memory/latency/throughput benchmark suite",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration is not initialized")
		}

		client := elevation.NewClient(cfg.BaseURL(), cfg.RequestTimeout())
		opts := bench.Options{
			Container:   cfg.ContainerName(),
			Tiles:       cfg.TileCount(),
			Requests:    cfg.BenchRequests(),
			Duration:    cfg.BenchDuration(),
			Concurrency: cfg.BenchConcurrency(),
			StartLat:    35,
			StartLon:    135,
		}

		result, err := bench.RunSuite(context.Background(), client, opts)
		if err != nil {
			return err
		}

		fmt.Println(render.Suite(result))
		if DebugEnabled() {
			pp.Println(result)
		}

		return bench.WriteSuiteResult(cfg.ResultsDir(), cfg.BaseURL(), result)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
}
