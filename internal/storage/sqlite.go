package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps blobs in a single sqlite file, one row per
// (store, key). Pure-Go driver, no cgo.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// Single writer keeps things simple and WAL keeps readers cheap.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS blobs (
		store      TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      BLOB NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (unixepoch()),
		PRIMARY KEY (store, key)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, store, key string, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (store, key, value, updated_at) VALUES (?, ?, ?, unixepoch())
		 ON CONFLICT (store, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		store, key, blob)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", store, key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, store, key string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE store = ? AND key = ?`, store, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", store, key, err)
	}
	return blob, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, store, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM blobs WHERE store = ? AND key = ?`, store, key)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", store, key, err)
	}
	return nil
}

func (s *SQLiteStore) ListKeys(ctx context.Context, store string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM blobs WHERE store = ? ORDER BY key`, store)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", store, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
