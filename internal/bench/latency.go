package bench

import (
	"context"
	"sort"
	"time"

	"github.com/kmorling/elevbench/internal/elevation"
)

// MeasureLatency issues n sequential elevation requests against a fixed
// coordinate and summarizes the elapsed times of the status-OK responses.
// Failed requests are dropped from the sample set, never recorded as zero.
func MeasureLatency(ctx context.Context, client *elevation.Client, lat, lon float64, n int) LatencySummary {
	samples := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		start := time.Now()
		ok, err := client.Probe(ctx, lat, lon)
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)

		if err == nil && ok {
			samples = append(samples, elapsed)
		}
	}

	return Summarize(samples)
}

// Summarize computes percentile and summary statistics over a closed sample
// set. Percentiles use the sorted sample at index floor(n*q), without
// interpolation. An empty set yields an all-zero summary.
func Summarize(samples []float64) LatencySummary {
	if len(samples) == 0 {
		return LatencySummary{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	n := len(sorted)
	var sum float64
	for _, s := range sorted {
		sum += s
	}

	return LatencySummary{
		P50:   sorted[n/2],
		P95:   sorted[int(float64(n)*0.95)],
		P99:   sorted[int(float64(n)*0.99)],
		Min:   sorted[0],
		Max:   sorted[n-1],
		Mean:  sum / float64(n),
		Count: n,
	}
}
