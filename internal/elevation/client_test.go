package elevation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"status": "ok", "version": "0.3.0"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if health.Version != "0.3.0" {
		t.Fatalf("version = %q", health.Version)
	}
}

func TestHealthUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error for non-200 health")
	}
}

func TestElevation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Errorf("missing coordinates in %q", r.URL.RawQuery)
		}
		if q.Get("interpolate") != "true" {
			t.Errorf("expected interpolate=true, got %q", q.Get("interpolate"))
		}
		w.Write([]byte(`{"latitude": 35.36, "longitude": 138.72, "elevation": 3776.0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	value, err := client.Elevation(context.Background(), 35.36, 138.72, true)
	if err != nil {
		t.Fatalf("Elevation error: %v", err)
	}
	if value != 3776.0 {
		t.Fatalf("elevation = %v", value)
	}
}

func TestElevationErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Elevation(context.Background(), 1, 2, false); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestProbe(t *testing.T) {
	var interpolated bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		interpolated = r.URL.Query().Get("interpolate") != ""
		w.Write([]byte(`{"elevation": 100}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	ok, err := client.Probe(context.Background(), 35.5, 135.5)
	if err != nil || !ok {
		t.Fatalf("Probe = %v, %v", ok, err)
	}
	if interpolated {
		t.Fatal("probe should not request interpolation")
	}
}

func TestProbeNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	ok, err := client.Probe(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Probe error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for 500")
	}
}

func TestLineString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var body struct {
			Type        string       `json:"type"`
			Coordinates [][2]float64 `json:"coordinates"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode error: %v", err)
		}
		if body.Type != "LineString" || len(body.Coordinates) != 2 {
			t.Errorf("body = %+v", body)
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	ok, err := client.LineString(context.Background(), [][2]float64{{138.0, 35.0}, {138.01, 35.01}})
	if err != nil || !ok {
		t.Fatalf("LineString = %v, %v", ok, err)
	}
}

func TestStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"cached_tiles": 42, "hit_rate": 0.98}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.CachedTiles != 42 || stats.HitRate != 0.98 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://localhost:8080/", time.Second)
	if client.BaseURL() != "http://localhost:8080" {
		t.Fatalf("base url = %q", client.BaseURL())
	}
}
