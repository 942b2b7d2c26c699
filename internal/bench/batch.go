package bench

import (
	"context"
	"time"

	"github.com/kmorling/elevbench/internal/elevation"
)

// MeasureLineString posts a LineString walking northeast from (35.0, 138.0)
// in 0.01° steps and returns the elapsed time in milliseconds, or -1 when the
// batch request failed.
func MeasureLineString(ctx context.Context, client *elevation.Client, points int) float64 {
	coordinates := make([][2]float64, points)
	for i := 0; i < points; i++ {
		coordinates[i] = [2]float64{138.0 + float64(i)*0.01, 35.0 + float64(i)*0.01}
	}

	start := time.Now()
	ok, err := client.LineString(ctx, coordinates)
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)

	if err != nil || !ok {
		return -1
	}
	return elapsed
}

// WarmCache queries the center of numTiles distinct tiles so the service has
// them resident, returning how many lookups succeeded. Tiles are visited on
// a 10-per-row grid starting at the given integer corner.
func WarmCache(ctx context.Context, client *elevation.Client, numTiles, startLat, startLon int) int {
	const tilesPerRow = 10

	loaded := 0
	for i := 0; i < numTiles; i++ {
		lat := float64(startLat+i/tilesPerRow) + 0.5
		lon := float64(startLon+i%tilesPerRow) + 0.5

		ok, err := client.Probe(ctx, lat, lon)
		if err == nil && ok {
			loaded++
		}
	}
	return loaded
}
