// Package elevation provides a typed HTTP client for an elevation-lookup service.
package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client issues requests against one elevation service endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// Health describes the service /health response.
type Health struct {
	Version string `json:"version"`
}

// Stats describes the service /stats response.
type Stats struct {
	CachedTiles int     `json:"cached_tiles"`
	HitRate     float64 `json:"hit_rate"`
}

// lineString is the GeoJSON body for batched elevation lookups.
// Coordinates are [lon, lat] pairs per the GeoJSON spec.
type lineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type elevationResponse struct {
	Elevation float64 `json:"elevation"`
}

// NewClient builds a client for the given base URL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the endpoint this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks the service /health endpoint. Any non-200 status means the
// service is unavailable.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Health{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Health{}, fmt.Errorf("service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Health{}, fmt.Errorf("service unavailable: health returned status %d", resp.StatusCode)
	}

	var health Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return Health{}, fmt.Errorf("could not parse health response: %w", err)
	}
	return health, nil
}

// Elevation queries a single coordinate, optionally with interpolation.
func (c *Client) Elevation(ctx context.Context, lat, lon float64, interpolate bool) (float64, error) {
	url := fmt.Sprintf("%s/elevation?lat=%f&lon=%f", c.baseURL, lat, lon)
	if interpolate {
		url += "&interpolate=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("elevation lookup returned status %d", resp.StatusCode)
	}

	var body elevationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("could not parse elevation response: %w", err)
	}
	return body.Elevation, nil
}

// Probe issues a plain elevation GET and reports only whether the service
// answered with status 200. Load measurement paths use this to avoid paying
// for response decoding.
func (c *Client) Probe(ctx context.Context, lat, lon float64) (bool, error) {
	url := fmt.Sprintf("%s/elevation?lat=%f&lon=%f", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}

// LineString posts a GeoJSON LineString with the given [lon, lat] coordinates
// and reports whether the batch request succeeded.
func (c *Client) LineString(ctx context.Context, coordinates [][2]float64) (bool, error) {
	body, err := json.Marshal(lineString{Type: "LineString", Coordinates: coordinates})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/elevation", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}

// Stats fetches the service cache statistics.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats", nil)
	if err != nil {
		return Stats{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Stats{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Stats{}, fmt.Errorf("stats returned status %d", resp.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return Stats{}, fmt.Errorf("could not parse stats response: %w", err)
	}
	return stats, nil
}
