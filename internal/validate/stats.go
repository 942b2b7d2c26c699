package validate

import "math"

// Stats summarizes signed differences between the primary and one reference
// source, computed only over pairs where both values were present.
type Stats struct {
	MeanAbsError float64 `json:"mean_abs_error"`
	MaxAbsError  float64 `json:"max_abs_error"`
	StdDev       float64 `json:"std_dev"`
	Within1m     float64 `json:"within_1m_pct"`
	Within5m     float64 `json:"within_5m_pct"`
	Count        int     `json:"count"`
}

// DiffStats computes summary statistics for a set of signed differences.
// The standard deviation is the population deviation of the absolute
// differences around the mean absolute error. Empty input yields zero stats.
func DiffStats(diffs []float64) Stats {
	if len(diffs) == 0 {
		return Stats{}
	}

	n := float64(len(diffs))
	abs := make([]float64, len(diffs))
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}

	var sum, max float64
	for _, a := range abs {
		sum += a
		if a > max {
			max = a
		}
	}
	mean := sum / n

	var variance float64
	for _, a := range abs {
		variance += (a - mean) * (a - mean)
	}
	variance /= n

	var within1, within5 int
	for _, a := range abs {
		if a <= 1 {
			within1++
		}
		if a <= 5 {
			within5++
		}
	}

	return Stats{
		MeanAbsError: mean,
		MaxAbsError:  max,
		StdDev:       math.Sqrt(variance),
		Within1m:     float64(within1) / n * 100,
		Within5m:     float64(within5) / n * 100,
		Count:        len(diffs),
	}
}
