package places

import (
	"strings"

	"github.com/vdbrink/proximascore/internal/model"
)

// Quality thresholds applied to every category. A place with no rating or
// no reviews is left alone; a non-zero value below the threshold marks the
// listing as unreliable.
const (
	minRating  = 3.0
	minReviews = 3
)

// relevant applies the global quality thresholds and, when a keyword policy
// is defined for the category, the allow/deny lists against the place name.
// Categories without a policy pass the keyword step unconditionally.
func relevant(place model.PlaceResult, policy *model.RelevancePolicy) bool {
	if place.Rating > 0 && place.Rating < minRating {
		return false
	}
	if place.UserRatingsTotal > 0 && place.UserRatingsTotal < minReviews {
		return false
	}

	if policy == nil || len(policy.Allow) == 0 {
		return true
	}

	name := strings.ToLower(place.Name)

	for _, word := range policy.Deny {
		if strings.Contains(name, strings.ToLower(word)) {
			return false
		}
	}

	for _, word := range policy.Allow {
		if strings.Contains(name, strings.ToLower(word)) {
			return true
		}
	}

	return false
}
