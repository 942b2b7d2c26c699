// Package appconfig manages loading and interpreting the harness configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the harness configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 30 * time.Second
	// defaultBenchDuration is the default throughput measurement window.
	defaultBenchDuration = 10 * time.Second
	// defaultDataDir holds benchmark results and the reference-API cache.
	defaultDataDir = "elevbenchData"
)

// Config represents the top-level harness configuration.
type Config struct {
	ServiceURL      string   `json:"serviceUrl" mapstructure:"serviceUrl"`
	Container       string   `json:"container,omitempty" mapstructure:"container"`
	Tiles           int      `json:"tiles,omitempty" mapstructure:"tiles"`
	Requests        int      `json:"requests,omitempty" mapstructure:"requests"`
	DurationSeconds int      `json:"duration,omitempty" mapstructure:"duration"`
	Concurrency     int      `json:"concurrency,omitempty" mapstructure:"concurrency"`
	TimeoutSeconds  int      `json:"timeout,omitempty" mapstructure:"timeout"`
	DataDir         string   `json:"dataDir,omitempty" mapstructure:"dataDir"`
	CacheFile       string   `json:"cacheFile,omitempty" mapstructure:"cacheFile"`
	LogFile         string   `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug           bool     `json:"debug" mapstructure:"debug"`
	Quiet           bool     `json:"quiet" mapstructure:"quiet"`
	Targets         []Target `json:"targets,omitempty" mapstructure:"targets"`
	ConfigPath      string   `json:"-" mapstructure:"-"`
}

// Target names one elevation implementation the comparator can drive.
// Each target is a statically distinct service binding; order in the
// config is the order the comparator runs them in.
type Target struct {
	Name           string `json:"name" mapstructure:"name"`
	URL            string `json:"url" mapstructure:"url"`
	Implementation string `json:"implementation,omitempty" mapstructure:"implementation"`
}

// RequestTimeout returns the per-request HTTP timeout, falling back to the default.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BenchDuration returns the throughput measurement window.
func (c Config) BenchDuration() time.Duration {
	if c.DurationSeconds <= 0 {
		return defaultBenchDuration
	}
	return time.Duration(c.DurationSeconds) * time.Second
}

// BenchConcurrency returns the throughput worker count.
func (c Config) BenchConcurrency() int {
	if c.Concurrency <= 0 {
		return 10
	}
	return c.Concurrency
}

// BenchRequests returns the latency probe request count.
func (c Config) BenchRequests() int {
	if c.Requests <= 0 {
		return 1000
	}
	return c.Requests
}

// TileCount returns the number of tiles used for warm-up and memory phases.
func (c Config) TileCount() int {
	if c.Tiles <= 0 {
		return 100
	}
	return c.Tiles
}

// BaseURL returns the service endpoint, defaulting to a local instance.
func (c Config) BaseURL() string {
	if u := strings.TrimSpace(c.ServiceURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return "http://localhost:8080"
}

// ContainerName returns the docker container inspected for memory samples.
func (c Config) ContainerName() string {
	if n := strings.TrimSpace(c.Container); n != "" {
		return n
	}
	return "htg-bench"
}

// ResultsDir returns the directory benchmark results are written under.
func (c Config) ResultsDir() string {
	if d := strings.TrimSpace(c.DataDir); d != "" {
		return d
	}
	return defaultDataDir
}

// CacheFilePath returns the reference-API cache location.
func (c Config) CacheFilePath() string {
	if p := strings.TrimSpace(c.CacheFile); p != "" {
		return p
	}
	return defaultDataDir + "/apiCache.json"
}

// LogFilePath returns the path to the harness log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "elevbench.log"
}

// Load reads the harness configuration from the specified path. A missing
// file at the default path yields a zero config (defaults apply through the
// accessor methods); a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := validateDocument(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	config.ConfigPath = path

	return config, nil
}

// configSchema constrains the raw config document before decoding. Numeric
// knobs must be non-negative and comparator targets need name+url.
func configSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"serviceUrl":  map[string]any{"type": "string"},
			"container":   map[string]any{"type": "string"},
			"tiles":       map[string]any{"type": "integer", "minimum": 0},
			"requests":    map[string]any{"type": "integer", "minimum": 0},
			"duration":    map[string]any{"type": "integer", "minimum": 0},
			"concurrency": map[string]any{"type": "integer", "minimum": 0},
			"timeout":     map[string]any{"type": "integer", "minimum": 0},
			"dataDir":     map[string]any{"type": "string"},
			"cacheFile":   map[string]any{"type": "string"},
			"logFile":     map[string]any{"type": "string"},
			"debug":       map[string]any{"type": "boolean"},
			"quiet":       map[string]any{"type": "boolean"},
			"targets": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":           map[string]any{"type": "string"},
						"url":            map[string]any{"type": "string"},
						"implementation": map[string]any{"type": "string"},
					},
					"required": []string{"name", "url"},
				},
			},
		},
	}
}

// validateDocument checks the raw JSON document against the config schema.
func validateDocument(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(configSchema())
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return errors.New(strings.Join(errs, ", "))
}
