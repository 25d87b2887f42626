// Package google implements the geocoding and place-search provider
// contracts against the Google Maps web service APIs.
package google

import (
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// Config holds Google Maps API client configuration.
type Config struct {
	APIKey       string
	PlacesAPIKey string // falls back to APIKey when empty
	BaseURL      string // overridable for tests
	Timeout      time.Duration
}

// Client talks to the Google Maps geocoding and places APIs. It implements
// both service.GeocodingProvider and service.PlaceSearchProvider.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	placesAPIKey string
	baseURL      string
}

// NewClient creates a Google Maps API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google API key is required")
	}

	placesKey := cfg.PlacesAPIKey
	if placesKey == "" {
		placesKey = cfg.APIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:       cfg.APIKey,
		placesAPIKey: placesKey,
		baseURL:      baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}
