package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vdbrink/proximascore/internal/service"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string // "sqlite" or "redis"
	Path    string // sqlite database path
	Redis   RedisConfig
	TTL     time.Duration
}

// NewStore creates a key-value store for the configured backend. The sqlite
// backend is migrated before use.
func NewStore(ctx context.Context, cfg Config) (service.KeyValueStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "sqlite":
		store, err := NewSQLiteStore(cfg.Path, cfg.TTL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case "redis":
		return NewRedisStore(cfg.Redis, cfg.TTL)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}
