// Package postgres wraps database/sql's connection pooling for the
// external user-account store (§6's "user account storage and session
// login" collaborator). internal/userstore issues its own lookup/insert
// statements directly against Client.DB, so this package has no
// transaction helper and no query methods of its own.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/riverrun/contextual-search/pkg/config"
)

// Client wraps a pooled connection to the user-account database.
type Client struct {
	DB *sql.DB
}

// New opens a pooled connection to the user-account database described by
// cfg and verifies it with a PING.
func New(cfg config.PostgresConfig) (*Client, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	slog.Default().With("component", "postgres").Info("connected to user-account database", "database", cfg.Database)
	return &Client{DB: db}, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.DB.Close()
}
