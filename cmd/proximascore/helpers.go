package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/config"
	"github.com/vdbrink/proximascore/internal/engine"
	"github.com/vdbrink/proximascore/internal/geocode"
	"github.com/vdbrink/proximascore/internal/google"
	"github.com/vdbrink/proximascore/internal/places"
	"github.com/vdbrink/proximascore/internal/service"
	"github.com/vdbrink/proximascore/internal/storage"
)

// buildEngine wires the full stack: provider client, cache store, geocoder,
// place finder, engine. The returned closer releases the cache store.
func buildEngine(ctx context.Context, settings *config.Settings) (*engine.ProximityEngine, func(), error) {
	if settings.GoogleAPIKey == "" {
		return nil, nil, fmt.Errorf("%w: google.api_key is not set (PROXIMA_GOOGLE_API_KEY)", common.ErrMissingConfig)
	}

	client, err := google.NewClient(google.Config{
		APIKey:       settings.GoogleAPIKey,
		PlacesAPIKey: settings.GooglePlacesAPIKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	store, err := newStore(ctx, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	resolver := geocode.New(client, store, geocode.Config{Region: settings.Region})
	finder := places.New(client, store, places.Config{Policies: settings.Policies})
	e := engine.New(resolver, finder, settings.Categories, settings.Profiles)

	closer := func() { _ = store.Close() }
	return e, closer, nil
}

func bindFlag(cmd *cobra.Command, key, flag string) error {
	return viper.BindPFlag(key, cmd.Flags().Lookup(flag))
}

func newStore(ctx context.Context, settings *config.Settings) (service.KeyValueStore, error) {
	return storage.NewStore(ctx, storage.Config{
		Backend: settings.CacheBackend,
		Path:    settings.CachePath,
		TTL:     settings.CacheTTL,
		Redis: storage.RedisConfig{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
			UseTLS:   settings.RedisTLS,
		},
	})
}
