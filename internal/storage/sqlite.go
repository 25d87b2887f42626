// Package storage provides the TTL cache persistence layer.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.KeyValueStore on a local SQLite database.
// Entries carry a creation timestamp; staleness is decided at read time, so
// no background expiry sweep is needed.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	ttl    time.Duration
}

// NewSQLiteStore opens (and creates if needed) the cache database at dbPath.
// Entries older than ttl are treated as misses.
func NewSQLiteStore(dbPath string, ttl time.Duration) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		ttl:    ttl,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the cached value for key if the entry exists and is still
// within TTL. Expired entries are reported as misses, not errors.
func (s *SQLiteStore) Get(ctx context.Context, table, key string) ([]byte, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateTable(table); err != nil {
		return nil, false, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, false, err
	}

	query := fmt.Sprintf(`
		SELECT value FROM %s
		WHERE key = ? AND created_at > ?`, table)

	cutoff := time.Now().UTC().Add(-s.ttl)

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key, cutoff).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query %s: %w", table, err)
	}

	slog.Debug("cache hit", "table", table, "key", key)
	return value, true, nil
}

// Put upserts an entry, overwriting any prior value and resetting its
// creation timestamp.
func (s *SQLiteStore) Put(ctx context.Context, table, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTable(table); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (key, value, created_at)
		VALUES (?, ?, ?)`, table)

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", table, err)
	}

	return nil
}

// PruneExpired deletes entries past their TTL from both tables. Lazy reads
// never return them anyway; this reclaims disk from long-running deployments.
func (s *SQLiteStore) PruneExpired(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-s.ttl)
	var total int64

	for _, table := range cacheTables {
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE created_at <= ?`, table), cutoff)
		if err != nil {
			return total, fmt.Errorf("failed to prune %s: %w", table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	slog.Info("pruned expired cache entries", "count", total)
	return total, nil
}
