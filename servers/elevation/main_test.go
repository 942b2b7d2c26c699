// servers/elevation/main_test.go
package main

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestTile writes a square .hgt tile with the given row-major samples.
func writeTestTile(t *testing.T, dir string, lat, lon int, samples [][]int16) {
	t.Helper()
	n := len(samples)
	data := make([]byte, n*n*2)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			binary.BigEndian.PutUint16(data[(row*n+col)*2:], uint16(samples[row][col]))
		}
	}
	if err := os.WriteFile(filepath.Join(dir, tileFilename(lat, lon)), data, 0o644); err != nil {
		t.Fatalf("write tile: %v", err)
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		cfg:   &Config{DataDir: t.TempDir(), CacheSize: 4},
		tiles: make(map[string]*tile),
	}
}

func TestTileFilename(t *testing.T) {
	cases := []struct {
		lat, lon int
		want     string
	}{
		{35, 135, "N35E135.hgt"},
		{-6, 37, "S06E037.hgt"},
		{36, -117, "N36W117.hgt"},
	}
	for _, c := range cases {
		if got := tileFilename(c.lat, c.lon); got != c.want {
			t.Fatalf("tileFilename(%d, %d) = %q, want %q", c.lat, c.lon, got, c.want)
		}
	}
}

func TestLookupNearest(t *testing.T) {
	s := testServer(t)
	writeTestTile(t, s.cfg.DataDir, 35, 135, [][]int16{
		{10, 20},
		{30, 40},
	})

	// Row 0 is the northern edge, so the tile's southwest corner is sample (1,0).
	value, err := s.lookup(35.0, 135.0, false)
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if value != 30 {
		t.Fatalf("southwest corner = %v, want 30", value)
	}

	value, err = s.lookup(35.99, 135.99, false)
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if value != 20 {
		t.Fatalf("northeast corner = %v, want 20", value)
	}
}

func TestLookupBilinear(t *testing.T) {
	s := testServer(t)
	writeTestTile(t, s.cfg.DataDir, 35, 135, [][]int16{
		{10, 20},
		{30, 40},
	})

	value, err := s.lookup(35.5, 135.5, true)
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if value != 25 {
		t.Fatalf("center = %v, want 25", value)
	}
}

func TestLookupMissingTile(t *testing.T) {
	s := testServer(t)
	if _, err := s.lookup(10.5, 10.5, false); err == nil {
		t.Fatal("expected error for missing tile")
	}
}

func TestTileCacheCountsHits(t *testing.T) {
	s := testServer(t)
	writeTestTile(t, s.cfg.DataDir, 35, 135, [][]int16{{1, 1}, {1, 1}})

	for i := 0; i < 3; i++ {
		if _, err := s.lookup(35.5, 135.5, false); err != nil {
			t.Fatalf("lookup error: %v", err)
		}
	}

	if s.misses != 1 {
		t.Fatalf("misses = %d, want 1", s.misses)
	}
	if s.hits != 2 {
		t.Fatalf("hits = %d, want 2", s.hits)
	}
}

func TestHandlePoint(t *testing.T) {
	s := testServer(t)
	writeTestTile(t, s.cfg.DataDir, 35, 135, [][]int16{{10, 20}, {30, 40}})

	req := httptest.NewRequest(http.MethodGet, "/elevation?lat=35.5&lon=135.5&interpolate=true", nil)
	rec := httptest.NewRecorder()
	s.handlePoint(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Elevation float64 `json:"elevation"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Elevation != 25 {
		t.Fatalf("elevation = %v, want 25", body.Elevation)
	}
}

func TestHandlePointBadCoordinates(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/elevation?lat=abc&lon=1", nil)
	rec := httptest.NewRecorder()
	s.handlePoint(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleLineString(t *testing.T) {
	s := testServer(t)
	writeTestTile(t, s.cfg.DataDir, 35, 135, [][]int16{{10, 20}, {30, 40}})

	body := `{"type": "LineString", "coordinates": [[135.5, 35.5], [10.5, 10.5]]}`
	req := httptest.NewRequest(http.MethodPost, "/elevation", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleLineString(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d", len(resp.Results))
	}
	if resp.Results[0]["elevation"] == nil {
		t.Fatal("covered point should have an elevation")
	}
	if resp.Results[1]["elevation"] != nil {
		t.Fatal("uncovered point should have a null elevation")
	}
}

func TestHandleLineStringRejectsOtherGeometry(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/elevation", strings.NewReader(`{"type": "Point", "coordinates": []}`))
	rec := httptest.NewRecorder()
	s.handleLineString(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStats(t *testing.T) {
	s := testServer(t)
	writeTestTile(t, s.cfg.DataDir, 35, 135, [][]int16{{1, 1}, {1, 1}})
	s.lookup(35.5, 135.5, false)
	s.lookup(35.5, 135.5, false)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	s.handleStats(rec, req)

	var stats struct {
		CachedTiles int     `json:"cached_tiles"`
		HitRate     float64 `json:"hit_rate"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if stats.CachedTiles != 1 {
		t.Fatalf("cached tiles = %d", stats.CachedTiles)
	}
	if stats.HitRate != 0.5 {
		t.Fatalf("hit rate = %v, want 0.5", stats.HitRate)
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/elevation", strings.NewReader(`{"type": "LineString", "coordinates": []}{"extra": 1}`))
	rec := httptest.NewRecorder()
	var geom lineString
	if err := decodeJSON(rec, req, &geom, 1024); err == nil {
		t.Fatal("expected error for trailing data")
	}
}
