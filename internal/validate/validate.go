// Package validate cross-checks the elevation service against external
// reference APIs and derives an overall accuracy verdict.
package validate

import (
	"context"
	"time"

	"github.com/kmorling/elevbench/internal/elevation"
	"github.com/kmorling/elevbench/internal/logging"
)

// Validator drives one cross-validation run.
type Validator struct {
	primary   *elevation.Client
	sources   []Source
	cache     *Cache
	locations []Location

	// sleep is a seam so tests don't wait out real rate-limit delays.
	sleep func(time.Duration)
}

// New builds a validator over the given service client, reference sources,
// and cache. A nil location list falls back to DefaultLocations.
func New(primary *elevation.Client, sources []Source, cache *Cache, locations []Location) *Validator {
	if locations == nil {
		locations = DefaultLocations
	}
	return &Validator{
		primary:   primary,
		sources:   sources,
		cache:     cache,
		locations: locations,
		sleep:     time.Sleep,
	}
}

// Run queries the primary service (interpolated) and every reference source
// for each location, computes per-source divergence statistics over the
// pairs where both values are present, and derives the overall verdict.
// Individual lookup failures degrade to missing values; Run itself only
// fails on context cancellation of the whole run.
func (v *Validator) Run(ctx context.Context) (*Report, error) {
	report := &Report{SourceStats: make(map[string]Stats)}
	diffsBySource := make(map[string][]float64)

	for _, loc := range v.locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logging.LogEvent("Querying %s...", loc.Name)

		row := Row{Location: loc}

		if value, err := v.primary.Elevation(ctx, loc.Lat, loc.Lon, true); err == nil {
			row.Primary = &value
		}

		for _, source := range v.sources {
			ref := RefValue{Tag: source.Tag()}

			if value, ok := v.lookup(ctx, source, loc.Lat, loc.Lon); ok {
				ref.Value = &value
				if row.Primary != nil {
					diff := *row.Primary - value
					ref.Diff = &diff
					diffsBySource[source.Tag()] = append(diffsBySource[source.Tag()], diff)
				}
			}
			row.References = append(row.References, ref)
		}

		report.Rows = append(report.Rows, row)
	}

	for tag, diffs := range diffsBySource {
		stats := DiffStats(diffs)
		report.SourceStats[tag] = stats
		report.Comparisons += stats.Count
		if stats.MaxAbsError > report.MaxAbsError {
			report.MaxAbsError = stats.MaxAbsError
		}
	}
	report.Verdict = DeriveVerdict(report.MaxAbsError, report.Comparisons)

	if err := v.cache.Save(); err != nil {
		logging.LogEvent("could not save reference cache: %v", err)
	}

	return report, nil
}

// lookup consults the cache first; on a miss it honors the source's minimum
// call spacing, queries it, and caches any value it returns.
func (v *Validator) lookup(ctx context.Context, source Source, lat, lon float64) (float64, bool) {
	key := Key(source.Tag(), lat, lon)
	if value, ok := v.cache.Get(key); ok {
		return value, true
	}

	v.sleep(source.MinDelay())

	value, ok := source.Lookup(ctx, lat, lon)
	if ok {
		v.cache.Put(key, value)
	}
	return value, ok
}
