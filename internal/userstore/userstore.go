// Package userstore implements the external user-account contract: a
// relational users(username, password) table accessed only through
// parameterized statements, with no schema migration logic. This is an
// auxiliary collaborator, not part of the core search engine.
package userstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/riverrun/contextual-search/pkg/postgres"
)

// ErrNotFound is returned by Lookup when no row matches the username.
var ErrNotFound = errors.New("user not found")

// Store is a parameterized-query-only view of the users table.
type Store struct {
	client *postgres.Client
}

// New wraps client for user lookups and inserts.
func New(client *postgres.Client) *Store {
	return &Store{client: client}
}

// Lookup returns the stored password for username, or ErrNotFound.
func (s *Store) Lookup(ctx context.Context, username string) (password string, err error) {
	row := s.client.DB.QueryRowContext(ctx, `SELECT password FROM users WHERE username = $1`, username)
	if err := row.Scan(&password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return password, nil
}

// Create inserts a new user row.
func (s *Store) Create(ctx context.Context, username, password string) error {
	_, err := s.client.DB.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ($1, $2)`, username, password)
	return err
}
