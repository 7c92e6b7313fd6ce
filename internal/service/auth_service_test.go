package service

import (
	"context"
	"errors"
	"testing"

	"silabas/internal/repository"
	"silabas/internal/storage"
	"silabas/internal/validation"
)

func newAuthFixture() (*AuthService, *repository.UserRepository, *repository.CurrentUserStore) {
	store := storage.NewMemoryStore()
	users := repository.NewUserRepository(store)
	current := repository.NewCurrentUserStore(store)
	return NewAuthService(users, current), users, current
}

func validForm() RegisterForm {
	return RegisterForm{
		Username:        "ana",
		Email:           "ana@example.com",
		Password:        "1234",
		ConfirmPassword: "1234",
	}
}

func TestRegisterCreatesZeroStatRecord(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := newAuthFixture()

	record, err := auth.Register(ctx, validForm())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if record.GamesPlayed != 0 || record.BestScore != 0 || record.TotalTimeSpent != 0 {
		t.Errorf("new record has non-zero stats: %+v", record)
	}
	if record.RegisteredAt.IsZero() {
		t.Error("RegisteredAt not set")
	}

	stored, err := users.GetByUsername(ctx, "ana")
	if err != nil || stored == nil {
		t.Fatalf("record not persisted: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterForm)
	}{
		{name: "empty username", mutate: func(f *RegisterForm) { f.Username = "" }},
		{name: "empty email", mutate: func(f *RegisterForm) { f.Email = "" }},
		{name: "bad email", mutate: func(f *RegisterForm) { f.Email = "not-an-email" }},
		{name: "short password", mutate: func(f *RegisterForm) { f.Password = "123"; f.ConfirmPassword = "123" }},
		{name: "confirm mismatch", mutate: func(f *RegisterForm) { f.ConfirmPassword = "4321" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			auth, users, _ := newAuthFixture()

			form := validForm()
			tt.mutate(&form)

			_, err := auth.Register(ctx, form)
			var verr validation.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Register error = %v, want ValidationError", err)
			}

			// Nothing may be written on a rejected form.
			all, _ := users.All(ctx)
			if len(all) != 0 {
				t.Errorf("collection has %d records after rejected form", len(all))
			}
		})
	}
}

func TestRegisterDuplicateUser(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := newAuthFixture()

	if _, err := auth.Register(ctx, validForm()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	form := validForm()
	form.Email = "other@example.com"
	_, err := auth.Register(ctx, form)
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("second Register error = %v, want ErrDuplicateUser", err)
	}

	all, _ := users.All(ctx)
	if len(all) != 1 {
		t.Errorf("collection has %d records after duplicate, want 1", len(all))
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	auth, _, current := newAuthFixture()
	if _, err := auth.Register(ctx, validForm()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := auth.Login(ctx, "nadie", "1234"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Login(unknown) error = %v, want ErrUserNotFound", err)
	}
	if _, err := auth.Login(ctx, "ana", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(bad password) error = %v, want ErrInvalidCredentials", err)
	}

	user, err := auth.Login(ctx, "ana", "1234")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Username != "ana" {
		t.Errorf("Login returned %+v", user)
	}

	pointer, err := current.Get(ctx)
	if err != nil || pointer == nil || pointer.Username != "ana" {
		t.Errorf("current-session pointer = %+v, err %v", pointer, err)
	}
}

func TestLogoutClearsOnlyPointer(t *testing.T) {
	ctx := context.Background()
	auth, users, current := newAuthFixture()
	if _, err := auth.Register(ctx, validForm()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := auth.Login(ctx, "ana", "1234"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := auth.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	pointer, _ := current.Get(ctx)
	if pointer != nil {
		t.Errorf("pointer still set after logout: %+v", pointer)
	}
	record, _ := users.GetByUsername(ctx, "ana")
	if record == nil {
		t.Error("user record removed by logout")
	}
}

func TestResumeRestoresLogin(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuthFixture()

	user, err := auth.Resume(ctx)
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if user != nil {
		t.Errorf("Resume with no login = %+v, want nil", user)
	}

	if _, err := auth.Register(ctx, validForm()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := auth.Login(ctx, "ana", "1234"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user, err = auth.Resume(ctx)
	if err != nil || user == nil || user.Username != "ana" {
		t.Errorf("Resume = %+v, err %v", user, err)
	}
}

func TestSeedDemoUserIdempotent(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := newAuthFixture()

	if err := auth.SeedDemoUser(ctx); err != nil {
		t.Fatalf("SeedDemoUser failed: %v", err)
	}
	if err := auth.SeedDemoUser(ctx); err != nil {
		t.Fatalf("second SeedDemoUser failed: %v", err)
	}

	all, _ := users.All(ctx)
	if len(all) != 1 {
		t.Fatalf("collection has %d records, want 1", len(all))
	}
	if _, err := auth.Login(ctx, "tablet", "1234"); err != nil {
		t.Errorf("demo login failed: %v", err)
	}
}
