package userstore

import (
	"errors"
	"fmt"
	"testing"
)

// Lookup and Create require a live Postgres connection and are exercised
// only against a real database, matching the rest of this package's
// collaborators.

func TestErrNotFoundIsDistinctSentinel(t *testing.T) {
	if errors.Is(errors.New("user not found"), ErrNotFound) {
		t.Error("a freshly constructed error must not match the ErrNotFound sentinel by message alone")
	}

	wrapped := fmt.Errorf("looking up user: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapping ErrNotFound must still satisfy errors.Is")
	}
}
