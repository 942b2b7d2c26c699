package bench

import "testing"

func TestCheckTargetLowerIsBetter(t *testing.T) {
	if !CheckTarget("latency_cached_ms", 8.2, TargetLatencyCachedMS, true).Passed {
		t.Fatal("8.2ms should pass a 10ms cap")
	}
	if CheckTarget("latency_cached_ms", 10.1, TargetLatencyCachedMS, true).Passed {
		t.Fatal("10.1ms should fail a 10ms cap")
	}
	// Exactly on target passes.
	if !CheckTarget("memory_100_tiles_mb", 100.0, TargetMemory100TilesMB, true).Passed {
		t.Fatal("100MB should pass a 100MB cap")
	}
}

func TestCheckTargetHigherIsBetter(t *testing.T) {
	if !CheckTarget("throughput_rps", 1500, TargetThroughputRPS, false).Passed {
		t.Fatal("1500rps should pass a 1000rps floor")
	}
	if CheckTarget("throughput_rps", 900, TargetThroughputRPS, false).Passed {
		t.Fatal("900rps should fail a 1000rps floor")
	}
}
