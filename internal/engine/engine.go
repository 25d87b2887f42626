// Package engine orchestrates geocoding, place discovery and scoring into
// a single composite proximity score.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/model"
	"github.com/vdbrink/proximascore/internal/scoring"
)

// ProximityEngine computes profile-weighted proximity scores. The category
// and profile tables are immutable after construction, so the engine is
// safe for concurrent requests.
type ProximityEngine struct {
	resolver   AddressResolver
	finder     PlaceFinder
	categories map[string]model.Category
	profiles   map[string]model.Profile
}

// New creates a proximity engine over the given configuration tables.
func New(resolver AddressResolver, finder PlaceFinder, categories map[string]model.Category, profiles map[string]model.Profile) *ProximityEngine {
	return &ProximityEngine{
		resolver:   resolver,
		finder:     finder,
		categories: categories,
		profiles:   profiles,
	}
}

// ComputeScore resolves the address and folds per-category scores into a
// weighted total. Its only failure modes are an unknown or inactive
// profile and an unresolvable address; per-category provider trouble
// degrades to a zero score for that category.
func (e *ProximityEngine) ComputeScore(ctx context.Context, address, profileID string) (*model.ScoreResult, error) {
	profile, ok := e.profiles[profileID]
	if !ok || !profile.Active {
		return nil, fmt.Errorf("%w: %s", common.ErrProfileUnavailable, profileID)
	}

	origin, err := e.resolver.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	slog.Info("computing proximity score",
		"address", address,
		"profile", profileID,
		"location", origin)

	// Category lookups share the origin and are independent of each other,
	// so they fan out concurrently and join before aggregation.
	categoryResults := make(map[string]model.CategoryScoreResult)
	contributions := make(map[string]scoring.Contribution)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for catID, weight := range profile.Weights {
		category, known := e.categories[catID]
		if weight <= 0 || !known || !category.Active {
			continue
		}

		wg.Add(1)
		go func(category model.Category, weight int) {
			defer wg.Done()

			places, err := e.finder.Find(ctx, origin, category)
			if err != nil {
				slog.Warn("place discovery failed, scoring category as empty",
					"category", category.ID,
					"error", err)
				places = nil
			}

			score := scoring.CategoryScore(places)

			slog.Debug("category scored",
				"category", category.ID,
				"score", scoring.Round1(score),
				"weight", weight,
				"places", len(places))

			mu.Lock()
			categoryResults[category.ID] = model.CategoryScoreResult{
				Score:       scoring.Round1(score),
				Weight:      weight,
				Places:      places,
				DisplayName: category.DisplayName,
			}
			contributions[category.ID] = scoring.Contribution{Score: score, Weight: weight}
			mu.Unlock()
		}(category, weight)
	}

	wg.Wait()

	total := scoring.Round1(scoring.Aggregate(contributions))

	slog.Info("proximity score computed",
		"address", address,
		"profile", profileID,
		"total_score", total,
		"categories", len(categoryResults))

	return &model.ScoreResult{
		Address:        address,
		Profile:        profile.ID,
		ProfileDisplay: profile.DisplayName,
		TotalScore:     total,
		Location:       origin,
		Categories:     categoryResults,
		CalculatedAt:   time.Now(),
	}, nil
}

// ActiveCategories returns the active category set, sorted by id. Static
// configuration, no side effects.
func (e *ProximityEngine) ActiveCategories() []model.Category {
	categories := make([]model.Category, 0, len(e.categories))
	for _, c := range e.categories {
		if c.Active {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories
}

// ActiveProfiles returns the active profile set, sorted by id.
func (e *ProximityEngine) ActiveProfiles() []model.Profile {
	profiles := make([]model.Profile, 0, len(e.profiles))
	for _, p := range e.profiles {
		if p.Active {
			profiles = append(profiles, p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles
}
