// Package game implements the syllable-game session state machine: one
// play-through of the word sequence under a countdown, with score, lives and
// streak evolving on answers, ending in Completed or GameOver.
package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"silabas/internal/audio"
	"silabas/internal/models"
)

// Phase is the discrete state of one play-through.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePlaying
	PhaseCorrect
	PhaseWrong
	PhaseGameOver
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "notStarted"
	case PhasePlaying:
		return "playing"
	case PhaseCorrect:
		return "correct"
	case PhaseWrong:
		return "wrong"
	case PhaseGameOver:
		return "gameOver"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the play-through.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseCompleted
}

// Result is the terminal projection of a finished run; it is all that
// survives the discarded in-memory state.
type Result struct {
	Score          int
	WordsCompleted int
	Elapsed        time.Duration
	Completed      bool
}

const (
	basePoints    = 10
	streakBonus   = 2
	optionCount   = 4
	defaultLives  = 3
	defaultLimit  = 30 * time.Second
	defaultReveal = 1500 * time.Millisecond
)

// Config assembles a session's dependencies. Words and Syllables are
// required; everything else has a default.
type Config struct {
	Words     []models.Word
	Syllables []string

	TimeLimit   time.Duration
	RevealDelay time.Duration
	Lives       int

	Scheduler Scheduler
	Rand      *rand.Rand
	Speaker   audio.Speaker
	Speech    audio.SpeechOptions
	Now       func() time.Time

	// OnFinish receives the result of each terminal transition, exactly once
	// per run. It is called without the session lock held.
	OnFinish func(Result)
}

// Session drives one play-through. All transitions are serialized by an
// internal lock; scheduled callbacks from a superseded run are fenced out by
// a run token and dropped silently.
type Session struct {
	mu  sync.Mutex
	cfg Config

	run       uuid.UUID
	phase     Phase
	wordIndex int
	score     int
	lives     int
	streak    int
	timeLeft  int
	selected  string
	options   []string
	startedAt time.Time
	reported  bool
	closed    bool

	countdown Timer
	reveal    Timer
}

// NewSession creates a session over the given word sequence.
func NewSession(cfg Config) (*Session, error) {
	if len(cfg.Words) == 0 {
		return nil, errors.New("no words configured")
	}
	if len(cfg.Syllables) < optionCount {
		return nil, errors.New("syllable vocabulary too small for the option draw")
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = defaultLimit
	}
	if cfg.RevealDelay <= 0 {
		cfg.RevealDelay = defaultReveal
	}
	if cfg.Lives <= 0 {
		cfg.Lives = defaultLives
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewScheduler()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Speaker == nil {
		cfg.Speaker = audio.Nop{}
	}
	if cfg.Speech.Language == "" {
		cfg.Speech = audio.SpeechOptions{Language: "es-ES", Pitch: 1.2, Rate: 0.8}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Session{
		cfg:      cfg,
		phase:    PhaseNotStarted,
		lives:    cfg.Lives,
		timeLeft: int(cfg.TimeLimit.Seconds()),
	}, nil
}

// Start begins the run. It does nothing unless the session is still in
// NotStarted; use Restart to begin again from any phase.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.phase != PhaseNotStarted {
		return
	}
	s.resetLocked()
}

// Restart fully reinitializes the run from any phase, terminal or not.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.resetLocked()
}

// SubmitAnswer evaluates the chosen syllable against the current word.
// Outside the Playing phase it is a no-op, not an error: late calls are
// expected when racing the timer.
func (s *Session) SubmitAnswer(choice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.phase != PhasePlaying {
		return
	}

	s.selected = choice
	if choice == s.cfg.Words[s.wordIndex].Syllable {
		s.phase = PhaseCorrect
		// Award uses the streak before it grows.
		s.score += basePoints + s.streak*streakBonus
		s.streak++
		s.cfg.Speaker.Speak("¡Correcto!", s.cfg.Speech)
		s.stopCountdownLocked()
		s.scheduleRevealLocked(s.resolveCorrect)
		return
	}

	s.missLocked()
}

// SpeakWord pronounces the current word's complete form on demand.
func (s *Session) SpeakWord() {
	s.mu.Lock()
	word := s.cfg.Words[s.wordIndex]
	s.mu.Unlock()
	s.cfg.Speaker.Speak(word.Complete, s.cfg.Speech)
}

// Close tears the session down, cancelling all pending timers. Callbacks
// already in flight are fenced out and apply nothing.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.run = uuid.New()
	s.stopCountdownLocked()
	s.stopRevealLocked()
}

// resetLocked reinitializes every run-scoped field and arms the countdown.
func (s *Session) resetLocked() {
	s.stopCountdownLocked()
	s.stopRevealLocked()
	s.run = uuid.New()
	s.phase = PhasePlaying
	s.wordIndex = 0
	s.score = 0
	s.lives = s.cfg.Lives
	s.streak = 0
	s.timeLeft = int(s.cfg.TimeLimit.Seconds())
	s.selected = ""
	s.reported = false
	s.startedAt = s.cfg.Now()
	s.drawOptionsLocked()
	s.scheduleTickLocked()
}

// missLocked applies the wrong-answer penalty. Timeouts funnel through here
// too, so they cost exactly what a wrong submission costs.
func (s *Session) missLocked() {
	s.phase = PhaseWrong
	s.lives--
	s.streak = 0
	s.cfg.Speaker.Speak("Inténtalo de nuevo", s.cfg.Speech)
	s.stopCountdownLocked()
	s.scheduleRevealLocked(s.resolveWrong)
}

// tick is the countdown callback, rescheduled every second while Playing.
func (s *Session) tick(run uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || run != s.run || s.phase != PhasePlaying {
		return
	}

	s.timeLeft--
	if s.timeLeft <= 0 {
		s.selected = ""
		s.missLocked()
		return
	}
	s.scheduleTickLocked()
}

// resolveCorrect fires after the reveal delay of a correct answer: advance to
// the next word, or complete the run on the last one.
func (s *Session) resolveCorrect(run uuid.UUID) {
	s.mu.Lock()
	if s.closed || run != s.run || s.phase != PhaseCorrect {
		s.mu.Unlock()
		return
	}

	if s.wordIndex < len(s.cfg.Words)-1 {
		s.wordIndex++
		s.resumeLocked()
		s.mu.Unlock()
		return
	}

	s.phase = PhaseCompleted
	result, report := s.finishLocked()
	s.mu.Unlock()
	if report && s.cfg.OnFinish != nil {
		s.cfg.OnFinish(result)
	}
}

// resolveWrong fires after the reveal delay of a miss: game over when the
// lives ran out, otherwise retry the same word with a fresh countdown.
func (s *Session) resolveWrong(run uuid.UUID) {
	s.mu.Lock()
	if s.closed || run != s.run || s.phase != PhaseWrong {
		s.mu.Unlock()
		return
	}

	if s.lives > 0 {
		s.resumeLocked()
		s.mu.Unlock()
		return
	}

	s.phase = PhaseGameOver
	result, report := s.finishLocked()
	s.mu.Unlock()
	if report && s.cfg.OnFinish != nil {
		s.cfg.OnFinish(result)
	}
}

// resumeLocked returns to Playing on the current word index.
func (s *Session) resumeLocked() {
	s.timeLeft = int(s.cfg.TimeLimit.Seconds())
	s.selected = ""
	s.phase = PhasePlaying
	s.drawOptionsLocked()
	s.scheduleTickLocked()
}

// finishLocked builds the terminal result once per run.
func (s *Session) finishLocked() (Result, bool) {
	if s.reported {
		return Result{}, false
	}
	s.reported = true

	completed := s.phase == PhaseCompleted
	words := s.wordIndex
	if completed {
		words = len(s.cfg.Words)
	}
	return Result{
		Score:          s.score,
		WordsCompleted: words,
		Elapsed:        s.cfg.Now().Sub(s.startedAt),
		Completed:      completed,
	}, true
}

// drawOptionsLocked builds the four-choice option set for the current word:
// the target syllable plus three distinct others, in shuffled order.
func (s *Session) drawOptionsLocked() {
	target := s.cfg.Words[s.wordIndex].Syllable

	pool := make([]string, 0, len(s.cfg.Syllables))
	for _, syllable := range s.cfg.Syllables {
		if syllable != target {
			pool = append(pool, syllable)
		}
	}
	s.cfg.Rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	options := append([]string{target}, pool[:optionCount-1]...)
	s.cfg.Rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	s.options = options
}

func (s *Session) scheduleTickLocked() {
	run := s.run
	s.countdown = s.cfg.Scheduler.AfterFunc(time.Second, func() { s.tick(run) })
}

func (s *Session) scheduleRevealLocked(resolve func(uuid.UUID)) {
	run := s.run
	s.reveal = s.cfg.Scheduler.AfterFunc(s.cfg.RevealDelay, func() { resolve(run) })
}

func (s *Session) stopCountdownLocked() {
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
}

func (s *Session) stopRevealLocked() {
	if s.reveal != nil {
		s.reveal.Stop()
		s.reveal = nil
	}
}
