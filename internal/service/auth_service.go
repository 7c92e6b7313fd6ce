package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"silabas/internal/models"
	"silabas/internal/repository"
	"silabas/internal/validation"
)

var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect password")
)

// RegisterForm is the raw registration input.
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthService handles registration, login and logout over the user
// collection and the current-session pointer.
type AuthService struct {
	users   *repository.UserRepository
	current *repository.CurrentUserStore
	now     func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, current *repository.CurrentUserStore) *AuthService {
	return &AuthService{
		users:   users,
		current: current,
		now:     time.Now,
	}
}

// Register validates the form and creates a user record with zeroed stats.
// The persisted collection is untouched when any check fails.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*models.UserRecord, error) {
	if err := validation.ValidateUsername(form.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(form.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(form.Password, form.ConfirmPassword); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(ctx, form.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	record := models.UserRecord{
		Username:     form.Username,
		Password:     form.Password,
		Email:        form.Email,
		RegisteredAt: s.now(),
	}
	if err := s.users.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &record, nil
}

// Login checks the credentials and marks the user as the current session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.UserRecord, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Plain comparison; the storage format keeps passwords as entered.
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}

	if err := s.current.Set(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return user, nil
}

// Logout clears the current-session pointer. User records are untouched.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.current.Clear(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// Resume restores the persisted login at startup, or returns nil when nobody
// was logged in.
func (s *AuthService) Resume(ctx context.Context) (*models.UserRecord, error) {
	return s.current.Get(ctx)
}

// SeedDemoUser creates the demo tablet account when it does not exist yet, so
// a fresh install can be tried without registering.
func (s *AuthService) SeedDemoUser(ctx context.Context) error {
	existing, err := s.users.GetByUsername(ctx, "tablet")
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	now := s.now()
	demo := models.UserRecord{
		Username:       "tablet",
		Password:       "1234",
		Email:          "tablet@educativo.com",
		RegisteredAt:   now,
		GamesPlayed:    3,
		BestScore:      120,
		LastPlayed:     &now,
		TotalTimeSpent: 300,
	}
	if err := s.users.Create(ctx, demo); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	return nil
}
