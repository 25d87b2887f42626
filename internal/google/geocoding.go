package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/model"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves an address to candidate coordinates, first result most
// relevant. ZERO_RESULTS is an empty answer, not an error; any other
// non-OK status is a provider failure.
func (c *Client) Geocode(ctx context.Context, address, region string) ([]model.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	if region != "" {
		params.Set("region", region)
	}
	params.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/geocode/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode request failed: %v", common.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read geocode response: %v", common.ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocode API status %d", common.ErrProviderUnavailable, resp.StatusCode)
	}

	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse geocode response: %v", common.ErrProviderUnavailable, err)
	}

	switch parsed.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: geocode status %s: %s",
			common.ErrProviderUnavailable, parsed.Status, parsed.ErrorMessage)
	}

	coords := make([]model.Coordinates, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		coords = append(coords, model.Coordinates{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		})
	}

	return coords, nil
}
