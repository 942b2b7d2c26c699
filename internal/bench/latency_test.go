package bench

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kmorling/elevbench/internal/elevation"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Count != 0 || summary.P50 != 0 || summary.P95 != 0 || summary.P99 != 0 || summary.Mean != 0 {
		t.Fatalf("expected all-zero summary, got %+v", summary)
	}
}

func TestSummarizePercentiles(t *testing.T) {
	// 1..100 shuffled: percentile indexes are floor(n*q) on the sorted set.
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = float64((i*37)%100 + 1)
	}

	summary := Summarize(samples)
	if summary.Count != 100 {
		t.Fatalf("count = %d, want 100", summary.Count)
	}
	if summary.P50 != 51 {
		t.Fatalf("p50 = %v, want 51", summary.P50)
	}
	if summary.P95 != 96 {
		t.Fatalf("p95 = %v, want 96", summary.P95)
	}
	if summary.P99 != 100 {
		t.Fatalf("p99 = %v, want 100", summary.P99)
	}
	if summary.Min != 1 || summary.Max != 100 {
		t.Fatalf("min/max = %v/%v, want 1/100", summary.Min, summary.Max)
	}
	if summary.Mean != 50.5 {
		t.Fatalf("mean = %v, want 50.5", summary.Mean)
	}
}

func TestSummarizeOrdering(t *testing.T) {
	samples := []float64{9, 1, 4, 7, 2, 8, 3, 6, 5, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	summary := Summarize(samples)
	if summary.P50 > summary.P95 || summary.P95 > summary.P99 {
		t.Fatalf("percentiles out of order: %+v", summary)
	}
	if summary.P99 > summary.Max || summary.Min > summary.P50 {
		t.Fatalf("percentiles outside min/max: %+v", summary)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	summary := Summarize([]float64{42})
	if summary.P50 != 42 || summary.P95 != 42 || summary.P99 != 42 {
		t.Fatalf("single-sample percentiles = %+v", summary)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	Summarize(samples)
	if samples[0] != 3 || samples[1] != 1 || samples[2] != 2 {
		t.Fatalf("input mutated: %v", samples)
	}
}

func TestMeasureLatencyDropsFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls%2 == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"elevation": 100}`))
	}))
	defer server.Close()

	client := elevation.NewClient(server.URL, time.Second)
	summary := MeasureLatency(context.Background(), client, 35.5, 135.5, 10)

	if summary.Count != 5 {
		t.Fatalf("expected 5 recorded samples, got %d", summary.Count)
	}
	if summary.Min <= 0 {
		t.Fatalf("expected positive latencies, min = %v", summary.Min)
	}
}
