package engine

import (
	"context"
	"sync"

	"github.com/vdbrink/proximascore/internal/model"
)

// MockResolver is a test double for AddressResolver.
type MockResolver struct {
	Coords model.Coordinates
	Err    error

	mu    sync.Mutex
	calls int
}

// Resolve returns the configured coordinates or error.
func (m *MockResolver) Resolve(_ context.Context, _ string) (model.Coordinates, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return model.Coordinates{}, m.Err
	}
	return m.Coords, nil
}

// Calls reports how often Resolve was invoked.
func (m *MockResolver) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockFinder is a test double for PlaceFinder, keyed by category id.
type MockFinder struct {
	PlacesByCategory map[string][]model.PointOfInterest
	ErrsByCategory   map[string]error

	mu      sync.Mutex
	queried []string
}

// Find returns the canned places for the category.
func (m *MockFinder) Find(_ context.Context, _ model.Coordinates, category model.Category) ([]model.PointOfInterest, error) {
	m.mu.Lock()
	m.queried = append(m.queried, category.ID)
	m.mu.Unlock()

	if err, ok := m.ErrsByCategory[category.ID]; ok {
		return nil, err
	}
	return m.PlacesByCategory[category.ID], nil
}

// Queried returns the category ids Find was called with, in call order.
func (m *MockFinder) Queried() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queried...)
}
