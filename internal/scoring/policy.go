// Package scoring implements the pure proximity scoring policy: great-circle
// distance, per-category scores, and profile-weighted aggregation.
package scoring

import (
	"math"

	"github.com/vdbrink/proximascore/internal/model"
)

// earthRadiusMeters is the mean Earth radius used by the Haversine formula.
const earthRadiusMeters = 6371000.0

// decayMetersPerPoint couples the linear score decay to the 2000 m search
// radius: the score reaches 0 exactly at the radius edge. Keep this and the
// search radius in sync if either becomes configurable.
const decayMetersPerPoint = 20.0

// Distance returns the Haversine great-circle distance between two
// coordinates in meters. It is symmetric and zero for identical points.
func Distance(a, b model.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// CategoryScore converts a distance-sorted POI list into a score in
// [0,100]. No places means 0; otherwise the nearest place's distance decays
// linearly: 100 at 0 m, 0 at 2000 m.
func CategoryScore(places []model.PointOfInterest) float64 {
	if len(places) == 0 {
		return 0
	}

	nearest := places[0].DistanceMeters
	for _, p := range places[1:] {
		if p.DistanceMeters < nearest {
			nearest = p.DistanceMeters
		}
	}

	score := 100 - float64(nearest)/decayMetersPerPoint
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Contribution is one category's weighted input to the aggregate.
type Contribution struct {
	Score  float64
	Weight int
}

// Aggregate folds per-category contributions into a weighted mean in
// [0,100]. Categories with weight 0 are ignored; a zero weight sum yields 0.
func Aggregate(contributions map[string]Contribution) float64 {
	var weightedSum float64
	var weightSum int

	for _, c := range contributions {
		if c.Weight <= 0 {
			continue
		}
		weightedSum += c.Score * float64(c.Weight)
		weightSum += c.Weight
	}

	if weightSum == 0 {
		return 0
	}
	return weightedSum / float64(weightSum)
}

// Round1 rounds a score to one decimal place for presentation. Internal
// aggregation always uses full precision.
func Round1(score float64) float64 {
	return math.Round(score*10) / 10
}
