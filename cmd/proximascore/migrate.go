package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vdbrink/proximascore/internal/config"
	"github.com/vdbrink/proximascore/internal/storage"
)

func migrateCmd() *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the cache database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			if settings.CacheBackend != "" && settings.CacheBackend != "sqlite" {
				return fmt.Errorf("migrate only applies to the sqlite backend, configured backend is %q", settings.CacheBackend)
			}

			store, err := storage.NewSQLiteStore(settings.CachePath, settings.CacheTTL)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("cache database at %s is at schema version %d\n", settings.CachePath, storage.ExpectedSchemaVersion)

			if prune {
				n, err := store.PruneExpired(cmd.Context())
				if err != nil {
					return err
				}
				cmd.Printf("pruned %d expired entries\n", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "also delete expired cache entries")

	return cmd
}
