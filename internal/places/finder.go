// Package places discovers, filters, deduplicates and ranks nearby points
// of interest per category, behind a TTL cache.
package places

import (
	"context"
	"crypto/md5" //nolint:gosec // cache key, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vdbrink/proximascore/internal/model"
	"github.com/vdbrink/proximascore/internal/scoring"
	"github.com/vdbrink/proximascore/internal/service"
)

// Distance sanity bounds. Results closer than minDistanceMeters are usually
// geocoding artifacts of the origin itself; farther than maxDistanceMeters
// indicates a provider radius or type mismatch.
const (
	minDistanceMeters = 10.0
	maxDistanceMeters = 5000.0
)

// Config holds place discovery settings.
type Config struct {
	RadiusMeters int           // search radius, default 2000
	MaxResults   int           // returned sequence length cap, default 3
	CallTimeout  time.Duration // per provider call, default 10s
	// Policies maps category id to its relevance keyword policy. Categories
	// absent from the map pass keyword filtering unconditionally.
	Policies map[string]model.RelevancePolicy
}

// Finder finds the nearest qualifying places for one category around an
// origin. It is safe for concurrent use.
type Finder struct {
	provider service.PlaceSearchProvider
	cache    service.KeyValueStore
	policies map[string]model.RelevancePolicy
	radius   int
	limit    int
	timeout  time.Duration
}

// New creates a Finder. The cache may be nil for uncached operation.
func New(provider service.PlaceSearchProvider, cache service.KeyValueStore, cfg Config) *Finder {
	radius := cfg.RadiusMeters
	if radius == 0 {
		radius = 2000
	}
	limit := cfg.MaxResults
	if limit == 0 {
		limit = 3
	}
	timeout := cfg.CallTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Finder{
		provider: provider,
		cache:    cache,
		policies: cfg.Policies,
		radius:   radius,
		limit:    limit,
		timeout:  timeout,
	}
}

// cacheKey hashes the origin rounded to 6 decimal places together with the
// category id, so near-identical origins share an entry per category.
func cacheKey(origin model.Coordinates, categoryID string) string {
	sum := md5.Sum([]byte(origin.Key() + "|" + categoryID)) //nolint:gosec // cache key, not security
	return hex.EncodeToString(sum[:])
}

// Find returns up to MaxResults places for the category, sorted ascending
// by distance. An inactive category returns an empty sequence without
// touching the cache or the provider. Total provider failure also yields an
// empty sequence; "nothing found" is a valid, zero-scoring outcome.
func (f *Finder) Find(ctx context.Context, origin model.Coordinates, category model.Category) ([]model.PointOfInterest, error) {
	if !category.Active {
		slog.Debug("skipping inactive category", "category", category.ID)
		return nil, nil
	}

	key := cacheKey(origin, category.ID)

	if f.cache != nil {
		data, ok, err := f.cache.Get(ctx, service.TablePOI, key)
		if err != nil {
			slog.Warn("poi cache read failed, continuing uncached", "category", category.ID, "error", err)
		} else if ok {
			var cached []model.PointOfInterest
			if err := json.Unmarshal(data, &cached); err == nil {
				slog.Debug("poi cache hit", "category", category.ID, "count", len(cached))
				return cached, nil
			}
			slog.Warn("discarding corrupt poi cache entry", "key", key, "error", err)
		}
	}

	pooled := f.search(ctx, origin, category)
	result := f.filter(origin, category, pooled)

	if f.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := f.cache.Put(ctx, service.TablePOI, key, data); err != nil {
				slog.Warn("poi cache write failed", "category", category.ID, "error", err)
			}
		}
	}

	slog.Debug("discovered places", "category", category.ID, "count", len(result))
	return result, nil
}

// search pools raw results across the category's provider type tags. A
// failing call is logged and skipped; it never aborts the remaining tags.
func (f *Finder) search(ctx context.Context, origin model.Coordinates, category model.Category) []model.PlaceResult {
	var pooled []model.PlaceResult

	for _, tag := range category.TypeTags {
		callCtx, cancel := context.WithTimeout(ctx, f.timeout)
		results, err := f.provider.NearbySearch(callCtx, origin, f.radius, tag)
		cancel()

		if err != nil {
			slog.Warn("nearby search failed",
				"category", category.ID,
				"tag", tag,
				"error", err)
			continue
		}

		pooled = append(pooled, results...)
	}

	return pooled
}

// filter applies the full quality pipeline: operational status, distance
// sanity bounds, relevance policy, dedup, then sort and truncate.
func (f *Finder) filter(origin model.Coordinates, category model.Category, pooled []model.PlaceResult) []model.PointOfInterest {
	var policy *model.RelevancePolicy
	if p, ok := f.policies[category.ID]; ok {
		policy = &p
	}

	result := make([]model.PointOfInterest, 0, len(pooled))
	seen := make(map[string]struct{}, len(pooled))

	for _, place := range pooled {
		if place.BusinessStatus == "CLOSED_PERMANENTLY" {
			continue
		}

		distance := scoring.Distance(origin, place.Location)
		if distance < minDistanceMeters || distance > maxDistanceMeters {
			slog.Debug("rejecting place with implausible distance",
				"category", category.ID,
				"name", place.Name,
				"distance_m", math.Round(distance))
			continue
		}

		if !relevant(place, policy) {
			slog.Debug("rejecting irrelevant place", "category", category.ID, "name", place.Name)
			continue
		}

		dedupKey := fmt.Sprintf("%s_%s", strings.ToLower(strings.TrimSpace(place.Name)), place.Location.Key())
		if _, dup := seen[dedupKey]; dup {
			continue
		}
		seen[dedupKey] = struct{}{}

		result = append(result, model.PointOfInterest{
			Name:           place.Name,
			Address:        place.Vicinity,
			DistanceMeters: int(math.Round(distance)),
			Lat:            place.Location.Lat,
			Lng:            place.Location.Lng,
			Rating:         place.Rating,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceMeters < result[j].DistanceMeters
	})

	if len(result) > f.limit {
		result = result[:f.limit]
	}

	return result
}
