package model

// PlaceResult is a raw nearby-search hit as reported by the place-search
// provider, before any filtering.
type PlaceResult struct {
	Name             string      `json:"name"`
	Vicinity         string      `json:"vicinity"`
	Location         Coordinates `json:"location"`
	Rating           float64     `json:"rating"`
	UserRatingsTotal int         `json:"user_ratings_total"`
	BusinessStatus   string      `json:"business_status"`
	Types            []string    `json:"types"`
}

// PointOfInterest is a discovered place that survived filtering. Distance
// is computed from the query origin, not provider-supplied, and rounded to
// whole meters. Never mutated after creation.
type PointOfInterest struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	DistanceMeters int     `json:"distance_meters"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Rating         float64 `json:"rating"`
}

// Coordinates returns the POI location as a Coordinates value.
func (p PointOfInterest) Coordinates() Coordinates {
	return Coordinates{Lat: p.Lat, Lng: p.Lng}
}
