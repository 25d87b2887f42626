package model

import "time"

// CategoryScoreResult is the per-category component of a ScoreResult: the
// score in [0,100], the profile weight that was applied, and the up-to-3
// places that produced it.
type CategoryScoreResult struct {
	Score       float64           `json:"score"`
	Weight      int               `json:"weight"`
	Places      []PointOfInterest `json:"places"`
	DisplayName string            `json:"display_name"`
}

// ScoreResult is the engine's sole output: the composite proximity score
// for one address and profile. Constructed once per request and returned
// immutably.
type ScoreResult struct {
	Address        string                         `json:"address"`
	Profile        string                         `json:"profile"`
	ProfileDisplay string                         `json:"profile_display"`
	TotalScore     float64                        `json:"total_score"`
	Location       Coordinates                    `json:"location"`
	Categories     map[string]CategoryScoreResult `json:"categories"`
	CalculatedAt   time.Time                      `json:"calculated_at"`
}
