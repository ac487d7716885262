package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"golang.org/x/time/rate"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

var (
	ErrNoResults = errors.New("no geocoding results")
	// ErrTransient marks failures worth retrying on a later batch.
	ErrTransient = errors.New("transient geocoding failure")
)

type (
	Geocoder interface {
		Geocode(ctx context.Context, address string) (lat float64, lng float64, err error)
	}

	googleGeocoder struct {
		apiKey  string
		baseURL string
		client  *http.Client
		limiter *rate.Limiter
	}

	googleResponse struct {
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message,omitempty"`
	}
)

// NewGoogleGeocoder calls the Google Geocoding API at most perSecond times
// per second.
func NewGoogleGeocoder(apiKey string, perSecond float64) Geocoder {
	return &googleGeocoder{
		apiKey:  apiKey,
		baseURL: googleGeocodeURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (g *googleGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return 0, 0, err
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return 0, 0, fmt.Errorf("%w: geocoding API returned HTTP %d", ErrTransient, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoding API returned HTTP %d", resp.StatusCode)
	}

	var result googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, 0, err
	}

	switch result.Status {
	case "OK":
	case "ZERO_RESULTS":
		return 0, 0, ErrNoResults
	case "OVER_QUERY_LIMIT", "UNKNOWN_ERROR":
		return 0, 0, fmt.Errorf("%w: geocoding API error: %s %s", ErrTransient, result.Status, result.ErrorMessage)
	default:
		return 0, 0, fmt.Errorf("geocoding API error: %s %s", result.Status, result.ErrorMessage)
	}
	if len(result.Results) == 0 {
		return 0, 0, ErrNoResults
	}

	loc := result.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// Address joins the non-empty parts of a postal address.
func Address(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
