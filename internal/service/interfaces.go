// Package service defines the interfaces the engine depends on.
package service

import (
	"context"
	"time"

	"github.com/vdbrink/proximascore/internal/model"
)

// Cache table names. The key-value store keeps two independent namespaces:
// one keyed by address hash, one keyed by (location, category) hash.
const (
	TableGeocode = "geocode_cache"
	TablePOI     = "poi_cache"
)

// KeyValueStore is a TTL-bounded key-value cache. Get returns a value only
// while the entry is within its TTL; Put upserts and resets the entry's
// creation timestamp. Staleness is checked lazily at read time, so expired
// entries may linger in storage but are never returned.
type KeyValueStore interface {
	Get(ctx context.Context, table, key string) ([]byte, bool, error)
	Put(ctx context.Context, table, key string, value []byte) error
	Close() error
}

// GeocodingProvider resolves a free-text address to candidate coordinates.
// An empty result list with a nil error means the provider answered but
// found nothing.
type GeocodingProvider interface {
	Geocode(ctx context.Context, address, region string) ([]model.Coordinates, error)
}

// PlaceSearchProvider searches for places of one type tag around an origin.
type PlaceSearchProvider interface {
	NearbySearch(ctx context.Context, origin model.Coordinates, radiusMeters int, typeTag string) ([]model.PlaceResult, error)
}

// RetryOptions configures retry behavior for operations that wrap the engine.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
