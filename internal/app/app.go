// Package app wires storage, services and the game state machine into one
// controller owning the lifetime of a login session and the active game.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"silabas/internal/audio"
	"silabas/internal/config"
	"silabas/internal/game"
	"silabas/internal/models"
	"silabas/internal/repository"
	"silabas/internal/service"
	"silabas/internal/storage"
	"silabas/internal/words"
)

// ErrNotLoggedIn is returned when an operation needs a logged-in user.
var ErrNotLoggedIn = errors.New("no user is logged in")

// Speech feedback parameters used for every utterance.
const (
	speechPitch = 1.2
	speechRate  = 0.8
)

// recordTimeout bounds the background stats write after a run ends.
const recordTimeout = 10 * time.Second

// App owns the store, repositories and services, plus the cached current
// user and the active game session.
type App struct {
	cfg     *config.Config
	store   storage.Store
	users   *repository.UserRepository
	history *repository.SessionLog
	auth    *service.AuthService
	stats   *service.StatsService
	speaker audio.Speaker

	mu      sync.Mutex
	current *models.UserRecord
	session *game.Session
}

// New assembles the application over an opened store. Speech output is only
// wired when enabled; everything else talks to the null speaker.
func New(cfg *config.Config, store storage.Store) *App {
	users := repository.NewUserRepository(store)
	history := repository.NewSessionLog(store)
	current := repository.NewCurrentUserStore(store)

	var speaker audio.Speaker = audio.Nop{}
	if cfg.SpeechEnabled {
		speaker = audio.NewTTSService(cfg.AudioCachePath)
	}

	return &App{
		cfg:     cfg,
		store:   store,
		users:   users,
		history: history,
		auth:    service.NewAuthService(users, current),
		stats:   service.NewStatsService(users, history, current, store),
		speaker: speaker,
	}
}

// Startup seeds the demo account, then loads the user collection, the saved
// login and the session history concurrently. A saved login is resumed into
// the in-memory current user.
func (a *App) Startup(ctx context.Context) error {
	if err := a.auth.SeedDemoUser(ctx); err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	var (
		userCount    int
		sessionCount int
		resumed      *models.UserRecord
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := a.users.All(ctx)
		if err != nil {
			return fmt.Errorf("loading users: %w", err)
		}
		userCount = len(records)
		return nil
	})
	g.Go(func() error {
		record, err := a.auth.Resume(ctx)
		if err != nil {
			return fmt.Errorf("resuming login: %w", err)
		}
		resumed = record
		return nil
	})
	g.Go(func() error {
		count, err := a.history.Count(ctx)
		if err != nil {
			return fmt.Errorf("loading session history: %w", err)
		}
		sessionCount = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.mu.Lock()
	a.current = resumed
	a.mu.Unlock()

	slog.Info("startup complete",
		"users", userCount,
		"sessions", sessionCount,
		"resumed", resumed != nil)
	return nil
}

// Register creates a new account. The user still has to log in afterwards.
func (a *App) Register(ctx context.Context, form service.RegisterForm) (*models.UserRecord, error) {
	return a.auth.Register(ctx, form)
}

// Login authenticates and caches the record as the current user.
func (a *App) Login(ctx context.Context, username, password string) (*models.UserRecord, error) {
	record, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.current = record
	a.mu.Unlock()
	return record, nil
}

// Logout ends the active game, clears the saved login and the cache. User
// records and history are kept.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	a.current = nil
	a.mu.Unlock()
	return a.auth.Logout(ctx)
}

// CurrentUser returns the cached logged-in record, nil when logged out.
func (a *App) CurrentUser() *models.UserRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil
	}
	record := *a.current
	return &record
}

// StartSyllableGame begins a fresh run for the logged-in user, replacing any
// session already in progress. The run reports its terminal result to the
// stats reconciler in the background; a storage failure there is logged and
// does not disturb the finished session.
func (a *App) StartSyllableGame() (*game.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil, ErrNotLoggedIn
	}
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}

	username := a.current.Username
	session, err := game.NewSession(game.Config{
		Words:     words.SyllableWords(),
		Syllables: words.Syllables(),
		TimeLimit: a.cfg.WordTimeLimit,
		Lives:     a.cfg.Lives,
		Scheduler: game.NewScheduler(),
		Speaker:   a.speaker,
		Speech: audio.SpeechOptions{
			Language: a.cfg.SpeechLanguage,
			Pitch:    speechPitch,
			Rate:     speechRate,
		},
		OnFinish: func(result game.Result) {
			go a.recordResult(username, service.Result{
				Score:          result.Score,
				WordsCompleted: result.WordsCompleted,
				GameType:       models.GameTypeSyllables,
				Elapsed:        result.Elapsed,
			})
		},
	})
	if err != nil {
		return nil, err
	}

	session.Start()
	a.session = session
	return session, nil
}

// SubmitWordSearch records a finished word-search round directly; the grid
// interaction happens in the presentation layer.
func (a *App) SubmitWordSearch(ctx context.Context, found int, elapsed time.Duration) (*models.UserRecord, error) {
	a.mu.Lock()
	current := a.current
	a.mu.Unlock()
	if current == nil {
		return nil, ErrNotLoggedIn
	}

	record, err := a.stats.Record(ctx, current.Username, game.WordSearchResult(found, elapsed))
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.current = record
	a.mu.Unlock()
	return record, nil
}

func (a *App) recordResult(username string, result service.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	record, err := a.stats.Record(ctx, username, result)
	if err != nil {
		slog.Warn("failed to record game result",
			"user", username,
			"score", result.Score,
			"error", err)
		return
	}

	a.mu.Lock()
	if a.current != nil && a.current.Username == username {
		a.current = record
	}
	a.mu.Unlock()
}

// RecentSessions returns the latest n history entries, newest first.
func (a *App) RecentSessions(ctx context.Context, n int) ([]models.GameSession, error) {
	return a.stats.RecentSessions(ctx, n)
}

// Overview reports the storage key census.
func (a *App) Overview(ctx context.Context) (*service.StorageOverview, error) {
	return a.stats.Overview(ctx)
}

// ClearAll wipes the whole storage namespace, which also forgets the saved
// login, so the in-memory session state is torn down with it.
func (a *App) ClearAll(ctx context.Context) error {
	if err := a.stats.ClearAll(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	a.current = nil
	a.mu.Unlock()
	return nil
}

// Close ends the active game and releases the store.
func (a *App) Close() error {
	a.mu.Lock()
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	a.mu.Unlock()
	return a.store.Close()
}
