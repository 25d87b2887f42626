package model

import "fmt"

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Key returns the coordinates rounded to 6 decimal places as a stable
// string. Near-identical coordinates collide intentionally so cache
// lookups for the same block hit the same entry.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

func (c Coordinates) String() string {
	return c.Key()
}
