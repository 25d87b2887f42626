package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdbrink/proximascore/internal/common"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s, err := Load()
	require.NoError(t, err)

	assert.Len(t, s.Categories, 10)
	assert.Len(t, s.Profiles, 5)
	assert.Equal(t, "nl", s.Region)
	assert.Equal(t, 24*time.Hour, s.CacheTTL)
	assert.Equal(t, ":5000", s.ListenAddr)

	gezin := s.Profiles["gezin"]
	assert.True(t, gezin.Active)
	assert.Equal(t, 25, gezin.Weights["basisschool"])
	assert.Equal(t, 5, gezin.Weights["groenvoorziening"])
}

func TestLoad_DeactivatesCategories(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("categories.inactive", []string{"horeca", "cultuur"})

	s, err := Load()
	require.NoError(t, err)

	assert.False(t, s.Categories["horeca"].Active)
	assert.False(t, s.Categories["cultuur"].Active)
	assert.True(t, s.Categories["supermarkt"].Active)
}

func TestLoad_UnknownInactiveCategoryFails(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("categories.inactive", []string{"zwembad"})

	_, err := Load()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoad_PolicyOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("relevance.policies", map[string]any{
		"apotheek": map[string]any{
			"allow": []string{"pharmacie", "pharmacy"},
		},
	})

	s, err := Load()
	require.NoError(t, err)

	require.Contains(t, s.Policies, "apotheek")
	assert.Equal(t, []string{"pharmacie", "pharmacy"}, s.Policies["apotheek"].Allow)
	assert.NotContains(t, s.Policies, "basisschool", "override replaces the defaults")
}

func TestLoad_ProfileWeightsReferenceKnownCategories(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s, err := Load()
	require.NoError(t, err)

	for id, p := range s.Profiles {
		for catID := range p.Weights {
			assert.Contains(t, s.Categories, catID, "profile %s", id)
		}
	}
}
