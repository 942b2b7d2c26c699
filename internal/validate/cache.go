package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores previously observed reference elevations keyed by
// "<source-tag>:<lat>,<lon>" so repeat runs skip rate-limited network calls.
// It is read once at startup and rewritten in full at the end of a run.
type Cache struct {
	path    string
	entries map[string]float64
}

// LoadCache reads the cache file at path. A missing or corrupt file yields
// an empty cache.
func LoadCache(path string) *Cache {
	cache := &Cache{path: path, entries: make(map[string]float64)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cache
	}
	var entries map[string]float64
	if err := json.Unmarshal(raw, &entries); err != nil {
		return cache
	}
	cache.entries = entries
	return cache
}

// Key builds the cache key for one source/coordinate pair.
func Key(tag string, lat, lon float64) string {
	return fmt.Sprintf("%s:%g,%g", tag, lat, lon)
}

// Get returns a cached elevation, if present.
func (c *Cache) Get(key string) (float64, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put records an elevation for a key.
func (c *Cache) Put(key string, value float64) {
	c.entries[key] = value
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save rewrites the cache file in full.
func (c *Cache) Save() error {
	if dir := filepath.Dir(c.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating cache directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("error writing cache file: %w", err)
	}
	return nil
}
