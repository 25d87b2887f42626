package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestGeocode(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		status    int
		wantCount int
		wantErr   bool
	}{
		{
			name: "single result",
			response: `{"status":"OK","results":[
				{"geometry":{"location":{"lat":51.9225,"lng":4.47917}}}]}`,
			status:    http.StatusOK,
			wantCount: 1,
		},
		{
			name:      "zero results is empty, not an error",
			response:  `{"status":"ZERO_RESULTS","results":[]}`,
			status:    http.StatusOK,
			wantCount: 0,
		},
		{
			name:     "request denied is a provider error",
			response: `{"status":"REQUEST_DENIED","error_message":"key invalid"}`,
			status:   http.StatusOK,
			wantErr:  true,
		},
		{
			name:     "http 500 is a provider error",
			response: `boom`,
			status:   http.StatusInternalServerError,
			wantErr:  true,
		},
		{
			name:     "malformed body is a provider error",
			response: `{"status":"OK","results":`,
			status:   http.StatusOK,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/geocode/json", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("key"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			})

			coords, err := client.Geocode(context.Background(), "Coolsingel 1, Rotterdam", "nl")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrProviderUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Len(t, coords, tt.wantCount)
		})
	}
}

func TestGeocode_PassesRegionHint(t *testing.T) {
	var gotRegion string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRegion = r.URL.Query().Get("region")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`))
	})

	_, err := client.Geocode(context.Background(), "Coolsingel 1", "nl")
	require.NoError(t, err)
	assert.Equal(t, "nl", gotRegion)
}

func TestNearbySearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/place/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "2000", r.URL.Query().Get("radius"))
		assert.Equal(t, "supermarket", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"name":"Albert Heijn","vicinity":"Coolsingel 100","geometry":{"location":{"lat":51.92,"lng":4.48}},
			 "rating":4.2,"user_ratings_total":120,"business_status":"OPERATIONAL","types":["supermarket"]},
			{"name":"Gesloten Markt","geometry":{"location":{"lat":51.93,"lng":4.49}},
			 "business_status":"CLOSED_PERMANENTLY"}]}`))
	})

	origin := model.Coordinates{Lat: 51.9225, Lng: 4.47917}
	places, err := client.NearbySearch(context.Background(), origin, 2000, "supermarket")
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "Albert Heijn", places[0].Name)
	assert.Equal(t, "Coolsingel 100", places[0].Vicinity)
	assert.Equal(t, 4.2, places[0].Rating)
	assert.Equal(t, 120, places[0].UserRatingsTotal)
	assert.Equal(t, "OPERATIONAL", places[0].BusinessStatus)
	assert.Equal(t, "CLOSED_PERMANENTLY", places[1].BusinessStatus)
}

func TestNearbySearch_OverQueryLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OVER_QUERY_LIMIT"}`))
	})

	_, err := client.NearbySearch(context.Background(), model.Coordinates{}, 2000, "pharmacy")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
}
