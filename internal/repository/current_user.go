package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"silabas/internal/models"
	"silabas/internal/storage"
)

// CurrentUserStore persists the single "who is logged in" marker: a snapshot
// of the logged-in user's record, refreshed on every stats write.
type CurrentUserStore struct {
	store storage.Store
}

// NewCurrentUserStore creates a new current-user pointer store
func NewCurrentUserStore(store storage.Store) *CurrentUserStore {
	return &CurrentUserStore{store: store}
}

// Get retrieves the logged-in user's snapshot, or nil when nobody is.
func (c *CurrentUserStore) Get(ctx context.Context) (*models.UserRecord, error) {
	raw, ok, err := c.store.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var record models.UserRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("failed to decode current user: %w", err)
	}
	return &record, nil
}

// Set persists the given record as the logged-in user's snapshot.
func (c *CurrentUserStore) Set(ctx context.Context, record models.UserRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode current user: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyCurrentUser, string(data)); err != nil {
		return fmt.Errorf("failed to save current user: %w", err)
	}
	return nil
}

// Clear removes the pointer. User records themselves are untouched.
func (c *CurrentUserStore) Clear(ctx context.Context) error {
	if err := c.store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}
