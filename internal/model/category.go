// Package model defines the domain types for proximity scoring.
package model

// Category is a single amenity type (supermarket, pharmacy, ...) mapped to
// one or more provider search tags. Categories are immutable configuration:
// they are loaded once at startup and never mutated at runtime.
type Category struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	TypeTags    []string `json:"type_tags"`
	Active      bool     `json:"active"`
}

// RelevancePolicy is a declarative per-category quality filter applied to
// discovered places. A zero-value policy accepts every place name; the
// rating and review thresholds apply to all categories regardless.
type RelevancePolicy struct {
	// Allow lists keywords of which at least one must appear in the place
	// name (case-insensitive). Empty means any name passes.
	Allow []string `json:"allow"`
	// Deny lists keywords that disqualify a place even when an allow
	// keyword matches ("rijschool" must not satisfy "basisschool").
	Deny []string `json:"deny"`
}

// Profile is a named weighting scheme over categories representing a
// persona. Weights are non-negative; a zero weight excludes the category
// from scoring even when the category itself is active.
type Profile struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Weights     map[string]int `json:"weights"`
	Active      bool           `json:"active"`
}
