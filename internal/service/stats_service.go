package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"silabas/internal/models"
	"silabas/internal/repository"
	"silabas/internal/storage"
)

// Result is the terminal projection of one finished play-through: everything
// the persisted state needs to absorb from the discarded in-memory session.
type Result struct {
	Score          int
	WordsCompleted int
	GameType       models.GameType
	Elapsed        time.Duration
}

// StorageOverview is the census shown on the storage screen.
type StorageOverview struct {
	TotalKeys    int
	Keys         []string
	UserCount    int
	SessionCount int
}

// StatsService folds finished sessions into the persisted user record and the
// session history. It is the only component that mutates aggregate stats.
type StatsService struct {
	users   *repository.UserRepository
	history *repository.SessionLog
	current *repository.CurrentUserStore
	store   storage.Store
	now     func() time.Time
	newID   func() string
}

// NewStatsService creates a new stats service
func NewStatsService(users *repository.UserRepository, history *repository.SessionLog, current *repository.CurrentUserStore, store storage.Store) *StatsService {
	return &StatsService{
		users:   users,
		history: history,
		current: current,
		store:   store,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Record merges one terminal session result into the stored record for
// username, appends it to the history, and refreshes the current-user
// snapshot. The caller invokes it exactly once per terminal transition; a
// storage failure here is reported but must not roll back the caller's
// in-memory state.
func (s *StatsService) Record(ctx context.Context, username string, result Result) (*models.UserRecord, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.now()
	user.GamesPlayed++
	if result.Score > user.BestScore {
		user.BestScore = result.Score
	}
	user.LastPlayed = &now
	user.TotalTimeSpent += int(result.Elapsed.Seconds())

	if err := s.users.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to save user stats: %w", err)
	}

	session := models.GameSession{
		ID:             s.newID(),
		Date:           now,
		Score:          result.Score,
		WordsCompleted: result.WordsCompleted,
		GameType:       result.GameType,
	}
	if err := s.history.Append(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to append session: %w", err)
	}

	if err := s.current.Set(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to refresh current user: %w", err)
	}

	return user, nil
}

// RecentSessions returns up to n history entries, most recent first.
func (s *StatsService) RecentSessions(ctx context.Context, n int) ([]models.GameSession, error) {
	return s.history.Recent(ctx, n)
}

// Overview reports what currently lives in the namespace.
func (s *StatsService) Overview(ctx context.Context) (*StorageOverview, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage keys: %w", err)
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	sessionCount, err := s.history.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &StorageOverview{
		TotalKeys:    len(keys),
		Keys:         keys,
		UserCount:    len(users),
		SessionCount: sessionCount,
	}, nil
}

// ClearAll wipes every key in the namespace: users, history and the login
// pointer. Host-application keys outside the namespace are untouched.
func (s *StatsService) ClearAll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}
