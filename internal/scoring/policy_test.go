package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vdbrink/proximascore/internal/model"
)

func TestDistance(t *testing.T) {
	rotterdam := model.Coordinates{Lat: 51.9225, Lng: 4.47917}
	amsterdam := model.Coordinates{Lat: 52.3676, Lng: 4.90414}

	t.Run("identical points are zero", func(t *testing.T) {
		assert.Zero(t, Distance(rotterdam, rotterdam))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, Distance(rotterdam, amsterdam), Distance(amsterdam, rotterdam), 1e-9)
	})

	t.Run("rotterdam to amsterdam is roughly 57km", func(t *testing.T) {
		d := Distance(rotterdam, amsterdam)
		assert.InDelta(t, 57000, d, 1500)
	})

	t.Run("small offset north is about 111m per millidegree", func(t *testing.T) {
		a := model.Coordinates{Lat: 51.9225, Lng: 4.47917}
		b := model.Coordinates{Lat: 51.9235, Lng: 4.47917}
		assert.InDelta(t, 111.2, Distance(a, b), 0.5)
	})
}

func TestCategoryScore(t *testing.T) {
	tests := []struct {
		name   string
		places []model.PointOfInterest
		want   float64
	}{
		{
			name:   "no places scores zero",
			places: nil,
			want:   0,
		},
		{
			name:   "zero distance scores 100",
			places: []model.PointOfInterest{{Name: "Albert Heijn", DistanceMeters: 0}},
			want:   100,
		},
		{
			name:   "2000m scores zero",
			places: []model.PointOfInterest{{Name: "Jumbo", DistanceMeters: 2000}},
			want:   0,
		},
		{
			name:   "1000m scores 50",
			places: []model.PointOfInterest{{Name: "Lidl", DistanceMeters: 1000}},
			want:   50,
		},
		{
			name:   "400m scores 80",
			places: []model.PointOfInterest{{Name: "Albert Heijn", DistanceMeters: 400}},
			want:   80,
		},
		{
			name: "nearest of several wins",
			places: []model.PointOfInterest{
				{Name: "Albert Heijn", DistanceMeters: 600},
				{Name: "Jumbo", DistanceMeters: 900},
				{Name: "Lidl", DistanceMeters: 1800},
			},
			want: 70,
		},
		{
			name:   "beyond decay range clamps to zero",
			places: []model.PointOfInterest{{Name: "Aldi", DistanceMeters: 4500}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CategoryScore(tt.places), 1e-9)
		})
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		contributions map[string]Contribution
		name          string
		want          float64
	}{
		{
			name:          "no contributions",
			contributions: map[string]Contribution{},
			want:          0,
		},
		{
			name: "all weights zero",
			contributions: map[string]Contribution{
				"supermarkt": {Score: 80, Weight: 0},
				"huisarts":   {Score: 60, Weight: 0},
			},
			want: 0,
		},
		{
			name: "single category equals its own score",
			contributions: map[string]Contribution{
				"supermarkt": {Score: 73.5, Weight: 35},
			},
			want: 73.5,
		},
		{
			name: "weighted mean of two categories",
			contributions: map[string]Contribution{
				"supermarkt":  {Score: 80, Weight: 20},
				"basisschool": {Score: 0, Weight: 25},
			},
			want: (80*20 + 0*25) / 45.0,
		},
		{
			name: "zero-weight category is excluded",
			contributions: map[string]Contribution{
				"supermarkt": {Score: 80, Weight: 10},
				"horeca":     {Score: 100, Weight: 0},
			},
			want: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Aggregate(tt.contributions), 1e-9)
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 73.5, Round1(73.456))
	assert.Equal(t, 73.5, Round1(73.54))
	assert.Equal(t, 0.0, Round1(0.04))
	assert.Equal(t, 100.0, Round1(99.96))
}
