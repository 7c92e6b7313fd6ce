// Package storage provides the on-device key-value store the rest of the
// application persists through. Keys are namespaced so the store can share a
// backing file with a host application without collisions.
package storage

import (
	"context"
	"errors"
)

// Namespace prefixes every key written by this application.
const Namespace = "tablet_storage_"

// Well-known keys used by the repositories.
const (
	KeyUsers       = "users_data"
	KeyCurrentUser = "current_user"
	KeySessions    = "game_sessions"
)

// ErrUnavailable indicates the persistence backend could not be reached.
// Callers decide whether that is fatal; the stats path treats it as a
// recoverable warning.
var ErrUnavailable = errors.New("storage unavailable")

// Store is a string-keyed, string-valued persistent store. Implementations
// must apply the namespace internally: callers always pass logical keys
// ("users_data"), never prefixed ones.
type Store interface {
	// Get returns the value for key, and false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes a whole value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists all logical keys currently stored under the namespace.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key under the namespace, and nothing else.
	Clear(ctx context.Context) error

	// Close releases the backing resources.
	Close() error
}
