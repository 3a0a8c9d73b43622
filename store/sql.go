// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLStore keeps collections in the "collection" table created by
// db.CreateSchema. Works with both PostgreSQL and SQLite.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context, name string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM collection WHERE name = $1
	`, name).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", name, err)
	}

	return []byte(payload), nil
}

// Save upserts all documents in one transaction.
func (s *SQLStore) Save(ctx context.Context, docs map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for name, data := range docs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO collection (name, payload, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET
				payload = EXCLUDED.payload,
				updated_at = EXCLUDED.updated_at
		`, name, string(data), now)
		if err != nil {
			return fmt.Errorf("failed to save collection %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
