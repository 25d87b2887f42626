package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
}

// RedisStore implements service.KeyValueStore on Redis. Expiry is delegated
// to Redis' native TTL, so Get never has to check timestamps itself. Values
// are gzip-compressed; POI payloads are repetitive JSON and compress well.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis with the given config and entry TTL.
func NewRedisStore(cfg RedisConfig, ttl time.Duration) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return &RedisStore{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}, nil
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func redisKey(table, key string) string {
	return fmt.Sprintf("proximascore:%s:%s", table, key)
}

// Get retrieves a cached value. A missing or expired key is a miss, not an
// error.
func (r *RedisStore) Get(ctx context.Context, table, key string) ([]byte, bool, error) {
	if err := validateTable(table); err != nil {
		return nil, false, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, false, err
	}

	val, err := r.client.Get(ctx, redisKey(table, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	decompressed, err := decompress(val)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress cache entry: %w", err)
	}

	return decompressed, true, nil
}

// Put upserts an entry with the store's TTL.
func (r *RedisStore) Put(ctx context.Context, table, key string, value []byte) error {
	if err := validateTable(table); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	compressed, err := compress(value)
	if err != nil {
		return fmt.Errorf("failed to compress cache entry: %w", err)
	}

	if err := r.client.Set(ctx, redisKey(table, key), compressed, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func compress(data []byte) ([]byte, error) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
