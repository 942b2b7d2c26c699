package bench

// LatencySummary holds percentile and summary statistics computed from a
// closed set of per-request latency samples, in milliseconds.
type LatencySummary struct {
	P50   float64 `json:"p50_ms"`
	P95   float64 `json:"p95_ms"`
	P99   float64 `json:"p99_ms"`
	Min   float64 `json:"min_ms"`
	Max   float64 `json:"max_ms"`
	Mean  float64 `json:"mean_ms"`
	Count int     `json:"count"`
}

// ThroughputResult holds the outcome of a duration-bounded concurrent run.
// DurationSeconds is the measured wall time, which may exceed the requested
// window because in-flight requests are allowed to finish.
type ThroughputResult struct {
	RequestsPerSecond float64 `json:"requests_per_second"`
	TotalRequests     int64   `json:"total_requests"`
	Errors            int64   `json:"errors"`
	DurationSeconds   float64 `json:"duration_seconds"`
}

// MemorySample is a point-in-time container memory reading in megabytes.
// LimitMB is zero when the container reports no limit.
type MemorySample struct {
	CurrentMB float64 `json:"current_mb"`
	LimitMB   float64 `json:"limit_mb,omitempty"`
}

// BatchTiming records how long one GeoJSON LineString request took.
type BatchTiming struct {
	Points    int     `json:"points"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// MemoryPhase pairs a warm-up tile count with the memory sample taken after it.
type MemoryPhase struct {
	Tiles       int           `json:"tiles"`
	TilesLoaded int           `json:"tiles_loaded"`
	Memory      *MemorySample `json:"memory,omitempty"`
}

// SuiteResult aggregates one full benchmark run against a service.
type SuiteResult struct {
	ServiceVersion string           `json:"service_version"`
	BaselineMemory *MemorySample    `json:"baseline_memory,omitempty"`
	MemoryPhases   []MemoryPhase    `json:"memory_phases,omitempty"`
	ColdLatency    LatencySummary   `json:"cold_latency"`
	WarmLatency    LatencySummary   `json:"warm_latency"`
	Throughput     ThroughputResult `json:"throughput"`
	BatchTimings   []BatchTiming    `json:"batch_timings,omitempty"`
	CachedTiles    int              `json:"cached_tiles"`
	HitRate        float64          `json:"hit_rate"`
	Checks         []TargetCheck    `json:"checks"`
}
