package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/kmorling/elevbench/internal/elevation"
	"github.com/kmorling/elevbench/internal/logging"
	"github.com/kmorling/elevbench/internal/util"
)

// Options configures a full suite run.
type Options struct {
	Container   string
	Tiles       int
	Requests    int
	Duration    time.Duration
	Concurrency int
	// StartLat/StartLon is the integer corner of the fixture tile grid.
	StartLat int
	StartLon int
}

// benchCoordinate is the warm-tile center every latency/throughput phase hits.
var benchLat, benchLon = 35.5, 135.5

// coldBenchCoordinate sits outside the warm-up grid so its first access pays
// the full tile-load cost.
var coldBenchLat, coldBenchLon = 45.5, 155.5

// batchSizes are the LineString point counts measured per run.
var batchSizes = []int{10, 100, 1000}

var writeResultsFn = writeResults

// RunSuite executes the full benchmark sequence against one service:
// health gate, cold latency, baseline memory, progressive cache warm-up with
// interleaved memory samples, warm latency, throughput, LineString batches,
// and cache stats. Memory is sampled between load phases, never during one.
func RunSuite(ctx context.Context, client *elevation.Client, opts Options) (*SuiteResult, error) {
	health, err := client.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	logging.LogEvent("Service version: %s", health.Version)

	result := &SuiteResult{ServiceVersion: health.Version}

	// Cold latency first, against a tile no later phase touches, so the
	// sample reflects tile-load cost rather than cache hits.
	logging.LogPhase("cold latency")
	coldProbes := util.Min(opts.Requests, 10)
	result.ColdLatency = MeasureLatency(ctx, client, coldBenchLat, coldBenchLon, coldProbes)

	logging.LogPhase("memory", fmt.Sprintf("container=%s", opts.Container))
	result.BaselineMemory = MeasureMemory(ctx, opts.Container)
	if result.BaselineMemory == nil {
		log.Printf("could not measure baseline memory (is the container running?)")
	}

	for _, tileCount := range []int{10, 50, 100} {
		if tileCount > opts.Tiles {
			continue
		}
		loaded := WarmCache(ctx, client, tileCount, opts.StartLat, opts.StartLon)
		result.MemoryPhases = append(result.MemoryPhases, MemoryPhase{
			Tiles:       tileCount,
			TilesLoaded: loaded,
			Memory:      MeasureMemory(ctx, opts.Container),
		})
	}

	logging.LogPhase("latency", fmt.Sprintf("requests=%d", opts.Requests))
	result.WarmLatency = MeasureLatency(ctx, client, benchLat, benchLon, opts.Requests)

	logging.LogPhase("throughput", fmt.Sprintf("duration=%s concurrency=%d", opts.Duration, opts.Concurrency))
	result.Throughput = MeasureThroughput(ctx, client, benchLat, benchLon, opts.Duration, opts.Concurrency)

	logging.LogPhase("batch")
	for _, points := range batchSizes {
		elapsed := MeasureLineString(ctx, client, points)
		if elapsed >= 0 {
			result.BatchTimings = append(result.BatchTimings, BatchTiming{Points: points, ElapsedMS: elapsed})
		} else {
			log.Printf("LineString batch with %d points failed", points)
		}
	}

	if stats, err := client.Stats(ctx); err == nil {
		result.CachedTiles = stats.CachedTiles
		result.HitRate = stats.HitRate
	} else {
		log.Printf("could not fetch cache stats: %v", err)
	}

	result.Checks = suiteChecks(result, opts.Tiles)

	return result, nil
}

// suiteChecks derives pass/fail verdicts from the fixed targets.
func suiteChecks(result *SuiteResult, tiles int) []TargetCheck {
	var checks []TargetCheck

	for _, phase := range result.MemoryPhases {
		if phase.Tiles == 100 && tiles >= 100 && phase.Memory != nil {
			checks = append(checks, CheckTarget("memory_100_tiles_mb", phase.Memory.CurrentMB, TargetMemory100TilesMB, true))
		}
	}
	if result.ColdLatency.Count > 0 {
		checks = append(checks, CheckTarget("latency_uncached_ms", result.ColdLatency.P50, TargetLatencyUncachedMS, true))
	}
	checks = append(checks, CheckTarget("latency_cached_ms", result.WarmLatency.P50, TargetLatencyCachedMS, true))
	checks = append(checks, CheckTarget("throughput_rps", result.Throughput.RequestsPerSecond, TargetThroughputRPS, false))

	return checks
}

// WriteSuiteResult persists a suite run as indented JSON under dataDir.
func WriteSuiteResult(dataDir, serviceName string, result *SuiteResult) error {
	return writeResultsFn(dataDir, serviceName, result)
}

func writeResults(dataDir, serviceName string, result *SuiteResult) error {
	dir := filepath.Join(dataDir, "benchmarks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating results directory: %w", err)
	}
	fileName := filepath.Join(dir, fmt.Sprintf("%s-%s.json", Slugify(serviceName), time.Now().Format("20060102-150405")))

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("error creating result file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("error writing results to file: %w", err)
	}

	logging.LogEvent("Benchmark results written to %s", fileName)

	return nil
}

// Slugify converts a string into a filesystem-friendly slug,
// including replacing colons (:) with underscores (_).
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ":", "_")
	re := regexp.MustCompile(`[^a-z0-9_]+`)
	s = re.ReplaceAllString(s, "-")
	s = regexp.MustCompile(`-+`).ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")

	return s
}
