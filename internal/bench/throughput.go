package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kmorling/elevbench/internal/elevation"
)

// MeasureThroughput drives concurrent load against a fixed coordinate for the
// given duration and reports the sustained success rate. All workers race one
// deadline computed before dispatch; the only shared state is the two
// counters. A non-200 status or transport error increments the error counter
// and the worker keeps going. The reported duration is measured after every
// worker has finished, so in-flight requests past the deadline still count.
func MeasureThroughput(ctx context.Context, client *elevation.Client, lat, lon float64, duration time.Duration, concurrency int) ThroughputResult {
	var successes, errors atomic.Int64

	deadline := time.Now().Add(duration)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				ok, err := client.Probe(ctx, lat, lon)
				if err != nil || !ok {
					errors.Add(1)
					continue
				}
				successes.Add(1)
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	rate := 0.0
	if elapsed > 0 {
		rate = float64(successes.Load()) / elapsed.Seconds()
	}

	return ThroughputResult{
		RequestsPerSecond: rate,
		TotalRequests:     successes.Load(),
		Errors:            errors.Load(),
		DurationSeconds:   elapsed.Seconds(),
	}
}
