package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// SQLStore keeps values in a key/value table. It works with any
// database/sql driver speaking SQLite dialect; OpenLibSQL connects to Turso.
type SQLStore struct {
	DB *sql.DB
}

func OpenLibSQL(ctx context.Context, url string) (*SQLStore, error) {
	db, err := sql.Open("libsql", url)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db %s: %w", url, err)
	}

	st, err := NewSQLStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewSQLStore wraps db and creates the table if needed.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	if err := initializeDB(ctx, db); err != nil {
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}
	return &SQLStore{DB: db}, nil
}

func initializeDB(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS kv_store (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );
    `)
	return err
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(ctx,
		"SELECT value FROM kv_store WHERE key = ?",
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}
