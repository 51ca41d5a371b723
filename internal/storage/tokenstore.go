// Package storage holds the only client-local state that survives a restart:
// the session token, kept in a single-row SQLite table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// TokenStore persists the bearer token across process restarts.
type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(dbPath string) (*TokenStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &TokenStore{db: db}, nil
}

// Save stores the token, replacing any previous one.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = CURRENT_TIMESTAMP`,
		token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load returns the stored token, or "" when none has been saved.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM session WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// Delete removes the stored token. Deleting an absent token is not an error.
func (s *TokenStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *TokenStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
