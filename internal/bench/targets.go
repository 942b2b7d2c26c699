package bench

// Fixed success criteria for the service under test.
const (
	// TargetMemory100TilesMB caps resident memory with 100 tiles cached.
	TargetMemory100TilesMB = 100.0
	// TargetLatencyCachedMS caps p50 latency for warm-cache lookups.
	TargetLatencyCachedMS = 10.0
	// TargetLatencyUncachedMS caps p50 latency when the tile must be loaded.
	TargetLatencyUncachedMS = 50.0
	// TargetThroughputRPS is the minimum sustained request rate.
	TargetThroughputRPS = 1000.0
)

// TargetCheck records one pass/fail comparison against a fixed target.
type TargetCheck struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
	Passed bool    `json:"passed"`
}

// CheckTarget compares a measured value against a target. lowerIsBetter
// selects the comparison direction.
func CheckTarget(name string, value, target float64, lowerIsBetter bool) TargetCheck {
	passed := value >= target
	if lowerIsBetter {
		passed = value <= target
	}
	return TargetCheck{
		Name:   name,
		Value:  value,
		Target: target,
		Passed: passed,
	}
}
