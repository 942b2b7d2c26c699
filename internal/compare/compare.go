// Package compare benchmarks several elevation implementations side by side.
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/kmorling/elevbench/internal/logging"
)

// QueryFunc looks up one elevation from a specific implementation.
type QueryFunc func(ctx context.Context, lat, lon float64) (float64, error)

// Target is one explicit, statically distinct implementation binding.
// Targets run in caller order: an earlier target's side effects (such as
// populating a shared on-disk tile cache) may be a precondition for a
// later one.
type Target struct {
	Name           string
	Implementation string
	Query          QueryFunc
}

// Record holds the benchmark outcome for one target. An unavailable record
// never contributes to relative-ratio computation.
type Record struct {
	Name           string  `json:"name"`
	Implementation string  `json:"implementation,omitempty"`
	PerQueryMicros float64 `json:"per_query_us"`
	QueriesPerSec  int     `json:"queries_per_sec"`
	TotalTimeMS    float64 `json:"total_time_ms"`
	Available      bool    `json:"available"`
	Error          string  `json:"error,omitempty"`
}

// Ratio expresses a target's per-query time relative to the fastest
// available target (the baseline, 1.0).
type Ratio struct {
	Name     string  `json:"name"`
	Factor   float64 `json:"factor"`
	Baseline bool    `json:"baseline"`
}

// Run benchmarks every target in order: one warm-up query, then queries
// timed lookups against the fixed coordinate. A failing or panicking target
// is recorded as unavailable with a readable cause and does not stop the
// remaining targets.
func Run(ctx context.Context, targets []Target, queries int, lat, lon float64) []Record {
	records := make([]Record, 0, len(targets))
	for i, target := range targets {
		logging.LogEvent("[%d/%d] Benchmarking %s...", i+1, len(targets), target.Name)
		records = append(records, runOne(ctx, target, queries, lat, lon))
	}
	return records
}

func runOne(ctx context.Context, target Target, queries int, lat, lon float64) (record Record) {
	record = Record{
		Name:           target.Name,
		Implementation: target.Implementation,
	}

	defer func() {
		if r := recover(); r != nil {
			record.Available = false
			record.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	// Warm-up excludes first-access cost from the timed loop.
	if _, err := target.Query(ctx, lat, lon); err != nil {
		record.Error = err.Error()
		return record
	}

	start := time.Now()
	for i := 0; i < queries; i++ {
		if _, err := target.Query(ctx, lat, lon); err != nil {
			record.Error = err.Error()
			return record
		}
	}
	elapsed := time.Since(start)

	record.Available = true
	record.PerQueryMicros = float64(elapsed.Microseconds()) / float64(queries)
	record.TotalTimeMS = float64(elapsed) / float64(time.Millisecond)
	if elapsed > 0 {
		record.QueriesPerSec = int(float64(queries) / elapsed.Seconds())
	}
	return record
}

// Ratios computes relative per-query performance across the available
// records, anchored to the fastest as 1.0. Fewer than one available record
// yields nil.
func Ratios(records []Record) []Ratio {
	var fastest *Record
	for i := range records {
		if !records[i].Available {
			continue
		}
		if fastest == nil || records[i].PerQueryMicros < fastest.PerQueryMicros {
			fastest = &records[i]
		}
	}
	if fastest == nil || fastest.PerQueryMicros <= 0 {
		return nil
	}

	var ratios []Ratio
	for _, record := range records {
		if !record.Available {
			continue
		}
		ratios = append(ratios, Ratio{
			Name:     record.Name,
			Factor:   record.PerQueryMicros / fastest.PerQueryMicros,
			Baseline: record.Name == fastest.Name,
		})
	}
	return ratios
}
