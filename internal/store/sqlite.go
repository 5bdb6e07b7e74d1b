package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/tfx/internal/shared"
)

// SQLiteKV implements [KV] on the kv_store table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV wraps a migrated database connection.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// OpenSQLiteKV opens the database file from cfg and applies pending migrations.
func OpenSQLiteKV(cfg shared.SQLiteConfig) (*SQLiteKV, error) {
	db, err := shared.OpenMigrated(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}
	return NewSQLiteKV(db), nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query key %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value at key.
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
