package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"silabas/internal/models"
	"silabas/internal/storage"
)

// UserRepository handles storage operations for user records. The whole
// collection lives under one key and every write replaces it in full, so
// callers must read-modify-write rather than patch.
type UserRepository struct {
	store storage.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// All retrieves every stored user record. A missing key is an empty
// collection, not an error.
func (r *UserRepository) All(ctx context.Context) ([]models.UserRecord, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var users []models.UserRecord
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// GetByUsername retrieves a user record by username, or nil if absent.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create appends a new user record and persists the collection. Uniqueness
// of the username is the service layer's responsibility.
func (r *UserRepository) Create(ctx context.Context, record models.UserRecord) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	return r.SaveAll(ctx, append(users, record))
}

// Update replaces the record with the same username and persists the
// collection. Updating an unknown username is an error.
func (r *UserRepository) Update(ctx context.Context, record models.UserRecord) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range users {
		if users[i].Username == record.Username {
			users[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("no stored record for user %q", record.Username)
	}

	return r.SaveAll(ctx, users)
}

// SaveAll persists the full user collection as one value.
func (r *UserRepository) SaveAll(ctx context.Context, users []models.UserRecord) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyUsers, string(data)); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}
