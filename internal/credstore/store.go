package credstore

import (
	"context"
	"errors"
)

// Well-known keys used by the API client and session layer.
const (
	KeyAccessToken    = "access_token"
	KeyRefreshToken   = "refresh_token"
	KeyOrganizationID = "organization_id"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("credstore: key not found")

// Store is the minimal capability interface for credential persistence.
// Backends differ per deployment target (in-memory for tests, a file for
// desktop installs, SQLite next to other local state, Redis when the
// session lives server-side); the API client depends only on this interface.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
