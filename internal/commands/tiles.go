package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmorling/elevbench/internal/logging"
	"github.com/kmorling/elevbench/internal/tiles"
	"github.com/kmorling/elevbench/internal/tui"
)

var (
	tilesOutputDir  string
	tilesCount      int
	tilesResolution string
	tilesStartLat   int
	tilesStartLon   int
	tilesPattern    string
)

// tilesCmd generates synthetic SRTM tiles for the service under test to load.
var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Generate synthetic SRTM elevation tiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resolutions []tiles.Resolution
		switch tilesResolution {
		case "srtm3":
			resolutions = []tiles.Resolution{tiles.SRTM3}
		case "srtm1":
			resolutions = []tiles.Resolution{tiles.SRTM1}
		case "both":
			resolutions = []tiles.Resolution{tiles.SRTM3, tiles.SRTM1}
		default:
			return fmt.Errorf("unknown resolution %q (want srtm3, srtm1, or both)", tilesResolution)
		}

		for _, res := range resolutions {
			opts := tiles.BatchOptions{
				Count:      tilesCount,
				Resolution: res,
				Pattern:    tiles.Pattern(tilesPattern),
				StartLat:   tilesStartLat,
				StartLon:   tilesStartLon,
			}

			dir := tilesOutputDir
			if len(resolutions) > 1 {
				dir = fmt.Sprintf("%s/%s", tilesOutputDir, res)
			}

			logging.LogPhase("tile generation", fmt.Sprintf("resolution=%s count=%d", res, tilesCount))

			var created []string
			var err error
			if QuietEnabled() {
				created, err = tiles.GenerateBatch(dir, opts)
			} else {
				label := fmt.Sprintf("Generating %d %s tiles in %s", tilesCount, res, dir)
				err = tui.RunWithProgress(label, tilesCount, func(report func(int)) error {
					opts.Progress = func(done, total int) { report(done) }
					var genErr error
					created, genErr = tiles.GenerateBatch(dir, opts)
					return genErr
				})
			}
			if err != nil {
				return fmt.Errorf("tile generation failed: %w", err)
			}

			fmt.Printf("Wrote %d %s tiles to %s\n", len(created), res, dir)
		}

		return nil
	},
}

func init() {
	tilesCmd.Flags().StringVar(&tilesOutputDir, "output-dir", "testData", "directory to write tiles into")
	tilesCmd.Flags().IntVar(&tilesCount, "num-tiles", 100, "number of tiles to generate")
	tilesCmd.Flags().StringVar(&tilesResolution, "resolution", "srtm3", "tile resolution: srtm3, srtm1, or both")
	tilesCmd.Flags().IntVar(&tilesStartLat, "start-lat", 35, "southwest latitude of the first tile")
	tilesCmd.Flags().IntVar(&tilesStartLon, "start-lon", 135, "southwest longitude of the first tile")
	tilesCmd.Flags().StringVar(&tilesPattern, "pattern", "gradient", "elevation pattern: flat, gradient, or random")
	rootCmd.AddCommand(tilesCmd)
}
