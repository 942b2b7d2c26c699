// main.go
//
// Reference elevation service for exercising the harness end to end without
// a container. It serves the same HTTP surface the harness probes: /health,
// /elevation (single point and GeoJSON LineString), and /stats, backed by
// .hgt tiles read from a data directory.
package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"
)

const serverVersion = "0.3.0"

type Config struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	DataDir   string `yaml:"data_dir"`
	CacheSize int    `yaml:"cache_size"`
}

var (
	configOnce sync.Once
	configVal  *Config
	configErr  error
)

func loadConfig() (*Config, error) {
	configOnce.Do(func() {
		path := filepath.Join("servers", "elevation", "elevation.yml")
		data, err := os.ReadFile(path)
		if err != nil {
			// The server is usable without a config file.
			configVal = &Config{}
			applyDefaults(configVal)
			return
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			configErr = err
			return
		}
		applyDefaults(&cfg)
		configVal = &cfg
	})
	return configVal, configErr
}

func applyDefaults(cfg *Config) {
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port <= 0 {
		cfg.Port = 8080
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "testData"
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 128
	}
}

// tile is one loaded .hgt file: big-endian int16 samples, row-major from
// the northwest corner.
type tile struct {
	samples int
	data    []byte
}

func (t *tile) sampleAt(row, col int) int16 {
	offset := (row*t.samples + col) * 2
	return int16(binary.BigEndian.Uint16(t.data[offset : offset+2]))
}

type Server struct {
	cfg *Config

	mu     sync.Mutex
	tiles  map[string]*tile
	hits   int64
	misses int64
}

type ErrResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	s := &Server{cfg: cfg, tiles: make(map[string]*tile)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /elevation", s.handlePoint)
	mux.HandleFunc("POST /elevation", s.handleLineString)
	mux.HandleFunc("GET /stats", s.handleStats)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("elevation config: host=%s port=%d data_dir=%s cache_size=%d", cfg.Host, cfg.Port, cfg.DataDir, cfg.CacheSize)
	log.Printf("listening on %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": serverVersion,
	})
}

func (s *Server) handlePoint(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "invalid lon"})
		return
	}
	interpolate := r.URL.Query().Get("interpolate") == "true"

	elevation, err := s.lookup(lat, lon, interpolate)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrResp{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"latitude":  lat,
		"longitude": lon,
		"elevation": elevation,
	})
}

// lineString is the accepted GeoJSON geometry: coordinates are [lon, lat].
type lineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

func (s *Server) handleLineString(w http.ResponseWriter, r *http.Request) {
	var geom lineString
	if err := decodeJSON(w, r, &geom, 4<<20 /* 4 MiB */); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if geom.Type != "LineString" {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "geometry type must be LineString"})
		return
	}

	results := make([]map[string]any, 0, len(geom.Coordinates))
	for _, coord := range geom.Coordinates {
		if len(coord) < 2 {
			writeJSON(w, http.StatusBadRequest, ErrResp{Error: "coordinates must be [lon, lat] pairs"})
			return
		}
		lon, lat := coord[0], coord[1]
		entry := map[string]any{"latitude": lat, "longitude": lon}
		if elevation, err := s.lookup(lat, lon, false); err == nil {
			entry["elevation"] = elevation
		} else {
			entry["elevation"] = nil
		}
		results = append(results, entry)
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	cached := len(s.tiles)
	hits, misses := s.hits, s.misses
	s.mu.Unlock()

	hitRate := 0.0
	if hits+misses > 0 {
		hitRate = float64(hits) / float64(hits+misses)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cached_tiles": cached,
		"hit_rate":     hitRate,
	})
}

// lookup resolves one coordinate against the tile covering it. Without
// interpolation it returns the nearest sample; with it, the bilinear blend
// of the four surrounding samples.
func (s *Server) lookup(lat, lon float64, interpolate bool) (float64, error) {
	tileLat := int(math.Floor(lat))
	tileLon := int(math.Floor(lon))

	t, err := s.tileFor(tileLat, tileLon)
	if err != nil {
		return 0, err
	}

	// Fractional position within the tile. Row 0 is the northern edge.
	fracLat := lat - float64(tileLat)
	fracLon := lon - float64(tileLon)
	rowF := (1 - fracLat) * float64(t.samples-1)
	colF := fracLon * float64(t.samples-1)

	if !interpolate {
		row := int(math.Round(rowF))
		col := int(math.Round(colF))
		return float64(t.sampleAt(row, col)), nil
	}

	row0 := int(math.Floor(rowF))
	col0 := int(math.Floor(colF))
	row1 := minInt(row0+1, t.samples-1)
	col1 := minInt(col0+1, t.samples-1)
	dr := rowF - float64(row0)
	dc := colF - float64(col0)

	top := float64(t.sampleAt(row0, col0))*(1-dc) + float64(t.sampleAt(row0, col1))*dc
	bottom := float64(t.sampleAt(row1, col0))*(1-dc) + float64(t.sampleAt(row1, col1))*dc
	return top*(1-dr) + bottom*dr, nil
}

// tileFor loads (or returns the cached) tile whose southwest corner is
// (lat, lon). When the cache is full the whole map is dropped; the tile
// working set of a benchmark run fits well under any sane cache_size.
func (s *Server) tileFor(lat, lon int) (*tile, error) {
	name := tileFilename(lat, lon)

	s.mu.Lock()
	if t, ok := s.tiles[name]; ok {
		s.hits++
		s.mu.Unlock()
		return t, nil
	}
	s.misses++
	s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.cfg.DataDir, name))
	if err != nil {
		return nil, fmt.Errorf("no tile for (%d, %d)", lat, lon)
	}

	samples := int(math.Sqrt(float64(len(data) / 2)))
	if samples*samples*2 != len(data) {
		return nil, fmt.Errorf("tile %s has unexpected size %d", name, len(data))
	}
	t := &tile{samples: samples, data: data}

	s.mu.Lock()
	if len(s.tiles) >= s.cfg.CacheSize {
		s.tiles = make(map[string]*tile)
	}
	s.tiles[name] = t
	s.mu.Unlock()

	return t, nil
}

func tileFilename(lat, lon int) string {
	latPrefix := "N"
	if lat < 0 {
		latPrefix = "S"
		lat = -lat
	}
	lonPrefix := "E"
	if lon < 0 {
		lonPrefix = "W"
		lon = -lon
	}
	return fmt.Sprintf("%s%02d%s%03d.hgt", latPrefix, lat, lonPrefix, lon)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Reject trailing content.
	if dec.More() {
		return fmt.Errorf("unexpected trailing data")
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}
