package engine

import (
	"context"

	"github.com/vdbrink/proximascore/internal/model"
)

// AddressResolver converts a free-text address to coordinates.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (model.Coordinates, error)
}

// PlaceFinder returns the nearest qualifying places for one category,
// sorted ascending by distance, at most three.
type PlaceFinder interface {
	Find(ctx context.Context, origin model.Coordinates, category model.Category) ([]model.PointOfInterest, error)
}
