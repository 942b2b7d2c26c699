package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Source is an external reference elevation API. Lookup reports
// (value, false) semantics for any failure or no-data response: a missing
// reading is a valid state, never an error that aborts the run.
type Source interface {
	Tag() string
	Name() string
	MinDelay() time.Duration
	Lookup(ctx context.Context, lat, lon float64) (float64, bool)
}

// locationsResponse is the shared response shape of the public elevation
// APIs: a results array whose entries carry an optional elevation.
type locationsResponse struct {
	Results []struct {
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// httpSource queries any API that accepts a "locations=<lat>,<lon>" query
// parameter and answers with a results array.
type httpSource struct {
	tag      string
	name     string
	endpoint string
	minDelay time.Duration
	client   *http.Client
}

func (s *httpSource) Tag() string             { return s.tag }
func (s *httpSource) Name() string            { return s.name }
func (s *httpSource) MinDelay() time.Duration { return s.minDelay }

func (s *httpSource) Lookup(ctx context.Context, lat, lon float64) (float64, bool) {
	url := fmt.Sprintf("%s?locations=%f,%f", s.endpoint, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	var body locationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, false
	}
	if len(body.Results) == 0 || body.Results[0].Elevation == nil {
		return 0, false
	}
	return *body.Results[0].Elevation, true
}

// NewOpenTopoData binds the OpenTopoData SRTM 90m dataset. The public API
// allows roughly one call per second.
func NewOpenTopoData(timeout time.Duration) Source {
	return &httpSource{
		tag:      "otd",
		name:     "OpenTopoData (SRTM 90m)",
		endpoint: "https://api.opentopodata.org/v1/srtm90m",
		minDelay: 1100 * time.Millisecond,
		client:   &http.Client{Timeout: timeout},
	}
}

// NewOpenElevation binds the Open-Elevation public API with a conservative
// call spacing.
func NewOpenElevation(timeout time.Duration) Source {
	return &httpSource{
		tag:      "oe",
		name:     "Open-Elevation",
		endpoint: "https://api.open-elevation.com/api/v1/lookup",
		minDelay: 500 * time.Millisecond,
		client:   &http.Client{Timeout: timeout},
	}
}
