package commands

import (
	"context"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/kmorling/elevbench/internal/elevation"
	"github.com/kmorling/elevbench/internal/render"
	"github.com/kmorling/elevbench/internal/validate"
)

// validateCmd cross-checks the service's elevations against public reference
// APIs. Reference responses are cached on disk so repeat runs don't burn
// rate-limited quota.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-validate elevations against public reference APIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration is not initialized")
		}

		client := elevation.NewClient(cfg.BaseURL(), cfg.RequestTimeout())
		sources := []validate.Source{
			validate.NewOpenTopoData(cfg.RequestTimeout()),
			validate.NewOpenElevation(cfg.RequestTimeout()),
		}
		cache := validate.LoadCache(cfg.CacheFilePath())

		validator := validate.New(client, sources, cache, nil)
		report, err := validator.Run(context.Background())
		if err != nil {
			return err
		}

		sourceNames := make(map[string]string, len(sources))
		for _, s := range sources {
			sourceNames[s.Tag()] = s.Name()
		}

		fmt.Println(render.Validation(report, sourceNames))
		if DebugEnabled() {
			pp.Println(report)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
