package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteStore persists preferences in a single SQLite table. It is the Go
// counterpart of the tablet's native preferences storage: one row per key,
// whole-value overwrites only.
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the preferences database at path.
func OpenSQLite(path string) (Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// A single writer keeps whole-value overwrites atomic.
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create preferences table: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := "SELECT value FROM preferences WHERE key = ?"
	err := s.db.QueryRowContext(ctx, query, Namespace+key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, Namespace+key, value); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	query := "DELETE FROM preferences WHERE key = ?"
	if _, err := s.db.ExecContext(ctx, query, Namespace+key); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (s *sqliteStore) Keys(ctx context.Context) ([]string, error) {
	query := "SELECT key FROM preferences WHERE key LIKE ? ORDER BY key"
	rows, err := s.db.QueryContext(ctx, query, Namespace+"%")
	if err != nil {
		return nil, fmt.Errorf("%w: list keys: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, strings.TrimPrefix(key, Namespace))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list keys: %v", ErrUnavailable, err)
	}

	return keys, nil
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	query := "DELETE FROM preferences WHERE key LIKE ?"
	if _, err := s.db.ExecContext(ctx, query, Namespace+"%"); err != nil {
		return fmt.Errorf("%w: clear: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
