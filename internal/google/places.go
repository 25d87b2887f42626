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

type nearbySearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		BusinessStatus   string   `json:"business_status"`
		Types            []string `json:"types"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// NearbySearch returns raw places of one type tag within radiusMeters of
// the origin. Callers are expected to filter and rank the results.
func (c *Client) NearbySearch(ctx context.Context, origin model.Coordinates, radiusMeters int, typeTag string) ([]model.PlaceResult, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", typeTag)
	params.Set("key", c.placesAPIKey)

	endpoint := fmt.Sprintf("%s/place/nearbysearch/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: nearby search request failed: %v", common.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read nearby search response: %v", common.ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nearby search API status %d", common.ErrProviderUnavailable, resp.StatusCode)
	}

	var parsed nearbySearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse nearby search response: %v", common.ErrProviderUnavailable, err)
	}

	switch parsed.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: nearby search status %s: %s",
			common.ErrProviderUnavailable, parsed.Status, parsed.ErrorMessage)
	}

	places := make([]model.PlaceResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		places = append(places, model.PlaceResult{
			Name:     r.Name,
			Vicinity: r.Vicinity,
			Location: model.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			BusinessStatus:   r.BusinessStatus,
			Types:            r.Types,
		})
	}

	return places, nil
}
