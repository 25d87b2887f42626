// Package geocode resolves free-text addresses to coordinates through a
// TTL-cached external geocoding provider.
package geocode

import (
	"context"
	"crypto/md5" //nolint:gosec // cache key, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/model"
	"github.com/vdbrink/proximascore/internal/service"
)

// Config holds geocoder settings.
type Config struct {
	Region      string        // region hint passed to the provider, e.g. "nl"
	CallTimeout time.Duration // per-call timeout, default 10s
}

// Geocoder resolves addresses via the external provider, cached by
// normalized address. A cache failure degrades to uncached operation;
// correctness never depends on the cache, only latency.
type Geocoder struct {
	provider service.GeocodingProvider
	cache    service.KeyValueStore
	region   string
	timeout  time.Duration
}

// New creates a Geocoder. The cache may be nil for uncached operation.
func New(provider service.GeocodingProvider, cache service.KeyValueStore, cfg Config) *Geocoder {
	timeout := cfg.CallTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Geocoder{
		provider: provider,
		cache:    cache,
		region:   cfg.Region,
		timeout:  timeout,
	}
}

// cacheKey hashes the case-folded address so near-identical spellings of
// the same address share an entry.
func cacheKey(address string) string {
	sum := md5.Sum([]byte(strings.ToLower(address))) //nolint:gosec // cache key, not security
	return hex.EncodeToString(sum[:])
}

// Resolve converts an address to coordinates. Provider failures, timeouts
// and empty answers all surface as ErrAddressNotFound; retries, if any,
// belong to the caller.
func (g *Geocoder) Resolve(ctx context.Context, address string) (model.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return model.Coordinates{}, fmt.Errorf("%w: empty address", common.ErrAddressNotFound)
	}

	key := cacheKey(address)

	if g.cache != nil {
		data, ok, err := g.cache.Get(ctx, service.TableGeocode, key)
		if err != nil {
			slog.Warn("geocode cache read failed, continuing uncached", "error", err)
		} else if ok {
			var coords model.Coordinates
			if err := json.Unmarshal(data, &coords); err == nil {
				slog.Debug("geocode cache hit", "address", address)
				return coords, nil
			}
			slog.Warn("discarding corrupt geocode cache entry", "key", key, "error", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results, err := g.provider.Geocode(callCtx, address, g.region)
	if err != nil {
		slog.Warn("geocoding provider call failed", "address", address, "error", err)
		return model.Coordinates{}, fmt.Errorf("%w: %s", common.ErrAddressNotFound, address)
	}
	if len(results) == 0 {
		slog.Info("geocoding returned no results", "address", address)
		return model.Coordinates{}, fmt.Errorf("%w: %s", common.ErrAddressNotFound, address)
	}

	coords := results[0]

	if g.cache != nil {
		if data, err := json.Marshal(coords); err == nil {
			if err := g.cache.Put(ctx, service.TableGeocode, key, data); err != nil {
				slog.Warn("geocode cache write failed", "error", err)
			}
		}
	}

	slog.Debug("geocoded address", "address", address, "location", coords)
	return coords, nil
}
