package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"silabas/internal/models"
	"silabas/internal/storage"
)

// SessionLog is the append-only history of completed game sessions. The full
// sequence is stored under one key; appends rewrite the whole list so there
// is no partial-write format to corrupt.
type SessionLog struct {
	store storage.Store
}

// NewSessionLog creates a new session history log
func NewSessionLog(store storage.Store) *SessionLog {
	return &SessionLog{store: store}
}

// All retrieves the stored history in append order (oldest first).
func (l *SessionLog) All(ctx context.Context) ([]models.GameSession, error) {
	raw, ok, err := l.store.Get(ctx, storage.KeySessions)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var sessions []models.GameSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode session history: %w", err)
	}
	return sessions, nil
}

// Append adds one completed session to the history and persists it.
func (l *SessionLog) Append(ctx context.Context, session models.GameSession) error {
	sessions, err := l.All(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(append(sessions, session))
	if err != nil {
		return fmt.Errorf("failed to encode session history: %w", err)
	}
	if err := l.store.Set(ctx, storage.KeySessions, string(data)); err != nil {
		return fmt.Errorf("failed to save session history: %w", err)
	}
	return nil
}

// Recent returns up to n sessions, most recent first. The stored order is
// not modified.
func (l *SessionLog) Recent(ctx context.Context, n int) ([]models.GameSession, error) {
	sessions, err := l.All(ctx)
	if err != nil {
		return nil, err
	}

	if n > len(sessions) {
		n = len(sessions)
	}
	recent := make([]models.GameSession, 0, n)
	for i := len(sessions) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, sessions[i])
	}
	return recent, nil
}

// Count returns the number of stored sessions.
func (l *SessionLog) Count(ctx context.Context) (int, error) {
	sessions, err := l.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}
