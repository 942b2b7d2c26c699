package validate

import (
	"math"
	"testing"
)

func TestDiffStatsEmpty(t *testing.T) {
	stats := DiffStats(nil)
	if stats.Count != 0 || stats.MeanAbsError != 0 || stats.MaxAbsError != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestDiffStatsSinglePair(t *testing.T) {
	// Primary 100.0 vs reference 98.5: off by 1.5m.
	stats := DiffStats([]float64{100.0 - 98.5})
	if stats.Count != 1 {
		t.Fatalf("count = %d", stats.Count)
	}
	if math.Abs(stats.MeanAbsError-1.5) > 1e-9 || math.Abs(stats.MaxAbsError-1.5) > 1e-9 {
		t.Fatalf("mean/max = %v/%v, want 1.5/1.5", stats.MeanAbsError, stats.MaxAbsError)
	}
	if stats.Within1m != 0 {
		t.Fatalf("within 1m = %v, want 0", stats.Within1m)
	}
	if stats.Within5m != 100 {
		t.Fatalf("within 5m = %v, want 100", stats.Within5m)
	}
}

func TestDiffStatsMixedSigns(t *testing.T) {
	// Signed diffs collapse to magnitudes before aggregation.
	stats := DiffStats([]float64{-2, 2, -4, 4})
	if math.Abs(stats.MeanAbsError-3) > 1e-9 {
		t.Fatalf("mean = %v, want 3", stats.MeanAbsError)
	}
	if stats.MaxAbsError != 4 {
		t.Fatalf("max = %v, want 4", stats.MaxAbsError)
	}
	// Population deviation of {2, 2, 4, 4} around 3 is 1.
	if math.Abs(stats.StdDev-1) > 1e-9 {
		t.Fatalf("stddev = %v, want 1", stats.StdDev)
	}
	if stats.Within1m != 0 || stats.Within5m != 100 {
		t.Fatalf("within = %v/%v", stats.Within1m, stats.Within5m)
	}
}

func TestDiffStatsWithinBands(t *testing.T) {
	stats := DiffStats([]float64{0.5, -0.9, 3, 10})
	if stats.Within1m != 50 {
		t.Fatalf("within 1m = %v, want 50", stats.Within1m)
	}
	if stats.Within5m != 75 {
		t.Fatalf("within 5m = %v, want 75", stats.Within5m)
	}
}

func TestDeriveVerdict(t *testing.T) {
	cases := []struct {
		maxAbs      float64
		comparisons int
		want        Verdict
	}{
		{3, 10, VerdictPass},
		{5, 10, VerdictPass},
		{12, 10, VerdictWarning},
		{30, 10, VerdictWarning},
		{45, 10, VerdictFail},
		{0, 0, VerdictInconclusive},
		{100, 0, VerdictInconclusive},
	}
	for _, c := range cases {
		if got := DeriveVerdict(c.maxAbs, c.comparisons); got != c.want {
			t.Fatalf("DeriveVerdict(%v, %d) = %q, want %q", c.maxAbs, c.comparisons, got, c.want)
		}
	}
}
