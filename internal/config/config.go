// Package config loads the immutable category, profile and policy tables
// plus runtime settings. Tables are read once at process start; activation
// is a deploy-time decision, never a runtime mutation.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/model"
)

// Settings bundles everything the process needs at startup.
type Settings struct {
	Categories map[string]model.Category
	Profiles   map[string]model.Profile
	Policies   map[string]model.RelevancePolicy

	GoogleAPIKey       string
	GooglePlacesAPIKey string
	Region             string

	CacheBackend  string
	CachePath     string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTLS      bool

	ListenAddr string
}

// DefaultCategories returns the built-in category table. IDs and labels are
// Dutch, matching the provider type tags each category queries.
func DefaultCategories() map[string]model.Category {
	return map[string]model.Category{
		"supermarkt": {
			ID: "supermarkt", DisplayName: "Supermarkt",
			TypeTags: []string{"supermarket", "grocery_or_supermarket"},
			Active:   true,
		},
		"huisarts": {
			ID: "huisarts", DisplayName: "Huisarts/Medisch centrum",
			TypeTags: []string{"doctor", "hospital", "physiotherapist"},
			Active:   true,
		},
		"openbaar_vervoer": {
			ID: "openbaar_vervoer", DisplayName: "Openbaar vervoer",
			TypeTags: []string{"bus_station", "subway_station", "train_station", "transit_station"},
			Active:   true,
		},
		"basisschool": {
			ID: "basisschool", DisplayName: "Basisschool",
			TypeTags: []string{"primary_school", "school"},
			Active:   true,
		},
		"apotheek": {
			ID: "apotheek", DisplayName: "Apotheek",
			TypeTags: []string{"pharmacy"},
			Active:   true,
		},
		"sportfaciliteiten": {
			ID: "sportfaciliteiten", DisplayName: "Sportfaciliteiten",
			TypeTags: []string{"gym", "stadium", "bowling_alley", "swimming_pool"},
			Active:   true,
		},
		"horeca": {
			ID: "horeca", DisplayName: "Horeca",
			TypeTags: []string{"restaurant", "bar", "cafe", "meal_takeaway"},
			Active:   true,
		},
		"werkgelegenheid": {
			ID: "werkgelegenheid", DisplayName: "Werkgelegenheid",
			TypeTags: []string{"shopping_mall", "store"},
			Active:   true,
		},
		"cultuur": {
			ID: "cultuur", DisplayName: "Cultuur",
			TypeTags: []string{"library", "museum", "movie_theater", "art_gallery"},
			Active:   true,
		},
		"groenvoorziening": {
			ID: "groenvoorziening", DisplayName: "Groenvoorziening",
			TypeTags: []string{"park"},
			Active:   true,
		},
	}
}

// DefaultProfiles returns the built-in persona weighting schemes.
func DefaultProfiles() map[string]model.Profile {
	return map[string]model.Profile{
		"algemeen": {
			ID: "algemeen", DisplayName: "Algemeen profiel", Active: true,
			Weights: map[string]int{
				"supermarkt": 35, "huisarts": 35, "openbaar_vervoer": 30,
			},
		},
		"gezin": {
			ID: "gezin", DisplayName: "Gezin met kinderen", Active: true,
			Weights: map[string]int{
				"basisschool": 25, "supermarkt": 20, "huisarts": 15,
				"openbaar_vervoer": 15, "apotheek": 10, "sportfaciliteiten": 10,
				"groenvoorziening": 5,
			},
		},
		"senior": {
			ID: "senior", DisplayName: "Senior 65+", Active: true,
			Weights: map[string]int{
				"huisarts": 30, "apotheek": 20, "supermarkt": 20,
				"openbaar_vervoer": 15, "cultuur": 5, "groenvoorziening": 5,
				"horeca": 3, "sportfaciliteiten": 2,
			},
		},
		"student": {
			ID: "student", DisplayName: "Student", Active: true,
			Weights: map[string]int{
				"openbaar_vervoer": 30, "supermarkt": 25, "horeca": 15,
				"sportfaciliteiten": 10, "cultuur": 10, "huisarts": 5,
				"apotheek": 5,
			},
		},
		"starter": {
			ID: "starter", DisplayName: "Starter op woningmarkt", Active: true,
			Weights: map[string]int{
				"openbaar_vervoer": 25, "supermarkt": 20, "huisarts": 15,
				"werkgelegenheid": 15, "sportfaciliteiten": 10, "apotheek": 5,
				"horeca": 5, "cultuur": 5,
			},
		},
	}
}

// DefaultPolicies returns the built-in relevance keyword lists. The lists
// are Dutch; deployments targeting another locale override them in the
// config file under "relevance.policies".
func DefaultPolicies() map[string]model.RelevancePolicy {
	return map[string]model.RelevancePolicy{
		"apotheek": {
			Allow: []string{"apotheek", "pharmacy", "apotheke", "farmacie"},
		},
		"huisarts": {
			Allow: []string{"huisarts", "dokter", "arts", "doctor", "medisch", "gezondheid", "fysi"},
		},
		"basisschool": {
			Allow: []string{"school", "onderwijs", "basisschool", "elementary"},
			Deny:  []string{"rijschool", "dansschool", "muziekschool", "driving"},
		},
		"sportfaciliteiten": {
			Allow: []string{"gym", "sport", "fitness", "zwembad", "tennis", "voetbal", "hockey"},
		},
	}
}

// Load assembles settings from viper, falling back to built-in defaults.
func Load() (*Settings, error) {
	s := &Settings{
		Categories: DefaultCategories(),
		Profiles:   DefaultProfiles(),
		Policies:   DefaultPolicies(),

		GoogleAPIKey:       viper.GetString("google.api_key"),
		GooglePlacesAPIKey: viper.GetString("google.places_api_key"),
		Region:             viper.GetString("google.region"),

		CacheBackend:  viper.GetString("cache.backend"),
		CachePath:     viper.GetString("cache.path"),
		CacheTTL:      viper.GetDuration("cache.ttl"),
		RedisAddr:     viper.GetString("cache.redis.addr"),
		RedisPassword: viper.GetString("cache.redis.password"),
		RedisDB:       viper.GetInt("cache.redis.db"),
		RedisTLS:      viper.GetBool("cache.redis.tls"),

		ListenAddr: viper.GetString("server.listen"),
	}

	if s.Region == "" {
		s.Region = "nl"
	}
	if s.CachePath == "" {
		s.CachePath = "data/proximascore.db"
	}
	if s.CacheTTL == 0 {
		s.CacheTTL = 24 * time.Hour
	}
	if s.ListenAddr == "" {
		s.ListenAddr = ":5000"
	}

	// Deploy-time deactivation without redefining the whole table.
	for _, id := range viper.GetStringSlice("categories.inactive") {
		cat, ok := s.Categories[id]
		if !ok {
			return nil, fmt.Errorf("%w: cannot deactivate unknown category %q", common.ErrInvalidConfig, id)
		}
		cat.Active = false
		s.Categories[id] = cat
	}
	for _, id := range viper.GetStringSlice("profiles.inactive") {
		p, ok := s.Profiles[id]
		if !ok {
			return nil, fmt.Errorf("%w: cannot deactivate unknown profile %q", common.ErrInvalidConfig, id)
		}
		p.Active = false
		s.Profiles[id] = p
	}

	if viper.IsSet("relevance.policies") {
		policies := make(map[string]model.RelevancePolicy)
		if err := viper.UnmarshalKey("relevance.policies", &policies); err != nil {
			return nil, fmt.Errorf("%w: relevance.policies: %v", common.ErrInvalidConfig, err)
		}
		s.Policies = policies
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) validate() error {
	for id, p := range s.Profiles {
		for catID, weight := range p.Weights {
			if weight < 0 {
				return fmt.Errorf("%w: profile %q has negative weight for %q",
					common.ErrInvalidConfig, id, catID)
			}
			if _, ok := s.Categories[catID]; !ok {
				return fmt.Errorf("%w: profile %q references unknown category %q",
					common.ErrInvalidConfig, id, catID)
			}
		}
	}
	for id := range s.Policies {
		if _, ok := s.Categories[id]; !ok {
			return fmt.Errorf("%w: relevance policy references unknown category %q",
				common.ErrInvalidConfig, id)
		}
	}
	return nil
}
