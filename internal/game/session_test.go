package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"silabas/internal/models"
	"silabas/internal/words"
)

// manualScheduler collects scheduled callbacks so tests can fire the
// countdown and reveal delays deterministically.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &manualTimer{f: f}
	s.pending = append(s.pending, timer)
	return timer
}

// fire runs the oldest pending callback that was not stopped. It reports
// whether one ran.
func (s *manualScheduler) fire() bool {
	s.mu.Lock()
	var next *manualTimer
	for len(s.pending) > 0 {
		candidate := s.pending[0]
		s.pending = s.pending[1:]
		if !candidate.stopped {
			next = candidate
			break
		}
	}
	s.mu.Unlock()

	if next == nil {
		return false
	}
	next.f()
	return true
}

// steal removes and returns the oldest pending callback without running it,
// so tests can replay it after a restart as a stale timer would.
func (s *manualScheduler) steal() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.pending) > 0 {
		candidate := s.pending[0]
		s.pending = s.pending[1:]
		if !candidate.stopped {
			return candidate.f
		}
	}
	return nil
}

var testWords = []models.Word{
	{Complete: "KARATE", Incomplete: "_RATE", Syllable: "KA", Image: "🥋"},
	{Complete: "RANA", Incomplete: "_NA", Syllable: "RA", Image: "🐸"},
	{Complete: "GATO", Incomplete: "_TO", Syllable: "GA", Image: "🐱"},
}

var testSyllables = []string{"KA", "RA", "GA", "DO", "JU", "MI", "PE", "LU"}

func newTestSession(t *testing.T, onFinish func(Result)) (*Session, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	session, err := NewSession(Config{
		Words:     testWords,
		Syllables: testSyllables,
		Scheduler: sched,
		Rand:      rand.New(rand.NewSource(1)),
		OnFinish:  onFinish,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return session, sched
}

// answerCorrect submits the current word's syllable and fires the reveal.
func answerCorrect(t *testing.T, session *Session, sched *manualScheduler) {
	t.Helper()
	session.SubmitAnswer(session.Snapshot().Word.Syllable)
	if !sched.fire() {
		t.Fatal("no reveal callback scheduled after correct answer")
	}
}

// answerWrong submits a syllable that is never a target and fires the reveal.
func answerWrong(t *testing.T, session *Session, sched *manualScheduler) {
	t.Helper()
	session.SubmitAnswer("ZZ")
	if !sched.fire() {
		t.Fatal("no reveal callback scheduled after wrong answer")
	}
}

func TestStartInitializesState(t *testing.T) {
	session, _ := newTestSession(t, nil)
	session.Start()

	state := session.Snapshot()
	if state.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", state.Phase)
	}
	if state.WordIndex != 0 || state.Score != 0 || state.Lives != 3 || state.Streak != 0 {
		t.Errorf("initial state = %+v", state)
	}
	if state.TimeLeft != 30 {
		t.Errorf("TimeLeft = %d, want 30", state.TimeLeft)
	}
	assertValidOptions(t, state)
}

func TestStartOnlyFromNotStarted(t *testing.T) {
	session, sched := newTestSession(t, nil)
	session.Start()
	answerCorrect(t, session, sched)

	// A second Start must not reset a run in progress.
	session.Start()
	state := session.Snapshot()
	if state.Score != 10 || state.WordIndex != 1 {
		t.Errorf("Start mid-run reset the session: %+v", state)
	}
}

func TestCompletedRunScoring(t *testing.T) {
	var results []Result
	session, sched := newTestSession(t, func(r Result) { results = append(results, r) })
	session.Start()

	wantScores := []int{10, 22, 36} // 10+0, +(10+2), +(10+4): streak before increment
	for i, want := range wantScores {
		session.SubmitAnswer(session.Snapshot().Word.Syllable)
		state := session.Snapshot()
		if state.Phase != PhaseCorrect {
			t.Fatalf("word %d: phase = %v, want correct", i, state.Phase)
		}
		if state.Score != want {
			t.Fatalf("word %d: score = %d, want %d", i, state.Score, want)
		}
		if state.Streak != i+1 {
			t.Errorf("word %d: streak = %d, want %d", i, state.Streak, i+1)
		}
		if !sched.fire() {
			t.Fatal("no reveal callback scheduled")
		}
	}

	state := session.Snapshot()
	if state.Phase != PhaseCompleted {
		t.Fatalf("final phase = %v, want completed", state.Phase)
	}

	if len(results) != 1 {
		t.Fatalf("reconciler invoked %d times, want exactly 1", len(results))
	}
	if results[0].Score != 36 || results[0].WordsCompleted != 3 || !results[0].Completed {
		t.Errorf("result = %+v", results[0])
	}
}

func TestThreeMissesIsGameOver(t *testing.T) {
	var results []Result
	session, sched := newTestSession(t, func(r Result) { results = append(results, r) })
	session.Start()

	for miss, wantLives := range []int{2, 1, 0} {
		session.SubmitAnswer("ZZ")
		state := session.Snapshot()
		if state.Phase != PhaseWrong {
			t.Fatalf("miss %d: phase = %v, want wrong", miss, state.Phase)
		}
		if state.Lives != wantLives {
			t.Fatalf("miss %d: lives = %d, want %d", miss, state.Lives, wantLives)
		}
		if state.Streak != 0 {
			t.Errorf("miss %d: streak = %d, want 0", miss, state.Streak)
		}
		if !sched.fire() {
			t.Fatal("no reveal callback scheduled")
		}
		// Until the last life is gone the same word is retried.
		if wantLives > 0 {
			retry := session.Snapshot()
			if retry.Phase != PhasePlaying || retry.WordIndex != 0 {
				t.Fatalf("miss %d: retry state = %+v", miss, retry)
			}
		}
	}

	state := session.Snapshot()
	if state.Phase != PhaseGameOver {
		t.Fatalf("final phase = %v, want gameOver", state.Phase)
	}
	if state.Lives != 0 {
		t.Errorf("lives = %d, want 0 and never negative", state.Lives)
	}

	if len(results) != 1 {
		t.Fatalf("reconciler invoked %d times, want exactly 1", len(results))
	}
	if results[0].WordsCompleted != 0 || results[0].Completed {
		t.Errorf("result = %+v", results[0])
	}

	// Terminal phases ignore further answers.
	session.SubmitAnswer(testWords[0].Syllable)
	if after := session.Snapshot(); after.Phase != PhaseGameOver || after.Score != state.Score {
		t.Errorf("terminal phase mutated by SubmitAnswer: %+v", after)
	}
}

func TestMissResetsStreakNotScore(t *testing.T) {
	session, sched := newTestSession(t, nil)
	session.Start()

	answerCorrect(t, session, sched) // 10
	answerCorrect(t, session, sched) // 22
	answerWrong(t, session, sched)   // streak gone, score kept, retry word 2

	state := session.Snapshot()
	if state.Score != 22 {
		t.Errorf("score after miss = %d, want 22 (never decreases)", state.Score)
	}
	if state.Streak != 0 || state.Lives != 2 || state.WordIndex != 2 {
		t.Errorf("state after miss = %+v", state)
	}

	answerCorrect(t, session, sched) // +10, streak was reset
	state = session.Snapshot()
	if state.Score != 32 {
		t.Errorf("score = %d, want 32", state.Score)
	}
	if state.Phase != PhaseCompleted {
		t.Errorf("phase = %v, want completed", state.Phase)
	}
}

func TestTimeoutActsAsWrongAnswer(t *testing.T) {
	session, sched := newTestSession(t, nil)
	session.Start()

	// 29 ticks leave one second on the clock and stay in Playing.
	for i := 0; i < 29; i++ {
		if !sched.fire() {
			t.Fatalf("tick %d: no countdown callback scheduled", i)
		}
	}
	state := session.Snapshot()
	if state.Phase != PhasePlaying || state.TimeLeft != 1 {
		t.Fatalf("state before timeout = %+v", state)
	}

	if !sched.fire() {
		t.Fatal("no countdown callback for the final second")
	}
	state = session.Snapshot()
	if state.Phase != PhaseWrong {
		t.Fatalf("phase after timeout = %v, want wrong", state.Phase)
	}
	if state.Lives != 2 || state.Streak != 0 {
		t.Errorf("timeout penalty = lives %d streak %d, want 2 and 0", state.Lives, state.Streak)
	}

	// The reveal resolves to a retry with a fresh clock.
	if !sched.fire() {
		t.Fatal("no reveal callback after timeout")
	}
	state = session.Snapshot()
	if state.Phase != PhasePlaying || state.TimeLeft != 30 || state.WordIndex != 0 {
		t.Errorf("state after timeout retry = %+v", state)
	}
}

func TestCountdownStopsOutsidePlaying(t *testing.T) {
	session, sched := newTestSession(t, nil)
	session.Start()

	session.SubmitAnswer(testWords[0].Syllable)

	// The only live callback now is the reveal; the countdown was stopped.
	if sched.steal() == nil {
		t.Fatal("expected a pending reveal callback")
	}
	if sched.fire() {
		t.Error("countdown still scheduled after leaving Playing")
	}
}

func TestOptionSetProperties(t *testing.T) {
	sched := &manualScheduler{}
	session, err := NewSession(Config{
		Words:     words.SyllableWords(),
		Syllables: words.Syllables(),
		Scheduler: sched,
		Rand:      rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	session.Start()

	total := len(words.SyllableWords())
	for i := 0; i < total; i++ {
		state := session.Snapshot()
		if state.Phase != PhasePlaying {
			t.Fatalf("word %d: phase = %v", i, state.Phase)
		}
		assertValidOptions(t, state)
		answerCorrect(t, session, sched)
	}
	if state := session.Snapshot(); state.Phase != PhaseCompleted {
		t.Fatalf("phase after full dataset = %v, want completed", state.Phase)
	}
}

func assertValidOptions(t *testing.T, state State) {
	t.Helper()
	if len(state.Options) != 4 {
		t.Fatalf("word %d: %d options, want 4", state.WordIndex, len(state.Options))
	}
	seen := make(map[string]int)
	for _, option := range state.Options {
		seen[option]++
	}
	if len(seen) != 4 {
		t.Errorf("word %d: duplicate options %v", state.WordIndex, state.Options)
	}
	if seen[state.Word.Syllable] != 1 {
		t.Errorf("word %d: target %q appears %d times in %v",
			state.WordIndex, state.Word.Syllable, seen[state.Word.Syllable], state.Options)
	}
}

func TestRestartFromAnyPhase(t *testing.T) {
	phases := []struct {
		name    string
		arrange func(t *testing.T, session *Session, sched *manualScheduler)
	}{
		{
			name:    "from playing",
			arrange: func(t *testing.T, session *Session, sched *manualScheduler) {},
		},
		{
			name: "from wrong",
			arrange: func(t *testing.T, session *Session, sched *manualScheduler) {
				session.SubmitAnswer("ZZ")
			},
		},
		{
			name: "from game over",
			arrange: func(t *testing.T, session *Session, sched *manualScheduler) {
				answerWrong(t, session, sched)
				answerWrong(t, session, sched)
				answerWrong(t, session, sched)
			},
		},
		{
			name: "from completed",
			arrange: func(t *testing.T, session *Session, sched *manualScheduler) {
				answerCorrect(t, session, sched)
				answerCorrect(t, session, sched)
				answerCorrect(t, session, sched)
			},
		},
	}

	for _, tt := range phases {
		t.Run(tt.name, func(t *testing.T) {
			session, sched := newTestSession(t, nil)
			session.Start()
			tt.arrange(t, session, sched)

			session.Restart()
			state := session.Snapshot()
			if state.Phase != PhasePlaying {
				t.Errorf("phase = %v, want playing", state.Phase)
			}
			if state.WordIndex != 0 || state.Score != 0 || state.Lives != 3 || state.Streak != 0 || state.TimeLeft != 30 {
				t.Errorf("state after restart = %+v", state)
			}
		})
	}
}

func TestRestartGetsFreshReconcilerBudget(t *testing.T) {
	invocations := 0
	session, sched := newTestSession(t, func(Result) { invocations++ })
	session.Start()

	for run := 1; run <= 2; run++ {
		for i := 0; i < len(testWords); i++ {
			answerCorrect(t, session, sched)
		}
		if invocations != run {
			t.Fatalf("after run %d: reconciler invoked %d times", run, invocations)
		}
		session.Restart()
	}
}

func TestStaleRevealDroppedAfterRestart(t *testing.T) {
	invocations := 0
	session, sched := newTestSession(t, func(Result) { invocations++ })
	session.Start()

	session.SubmitAnswer(testWords[0].Syllable)
	stale := sched.steal()
	if stale == nil {
		t.Fatal("expected a pending reveal callback")
	}

	session.Restart()
	stale() // fires into the new run; the run token must fence it out

	state := session.Snapshot()
	if state.WordIndex != 0 || state.Score != 0 || state.Phase != PhasePlaying {
		t.Errorf("stale reveal mutated the new run: %+v", state)
	}
	if invocations != 0 {
		t.Errorf("stale reveal reached the reconciler %d times", invocations)
	}
}

func TestCloseDropsPendingWork(t *testing.T) {
	invocations := 0
	session, sched := newTestSession(t, func(Result) { invocations++ })
	session.Start()

	session.SubmitAnswer("ZZ")
	stale := sched.steal()
	if stale == nil {
		t.Fatal("expected a pending reveal callback")
	}

	session.Close()
	stale()

	if invocations != 0 {
		t.Errorf("callback after Close reached the reconciler %d times", invocations)
	}
	if sched.fire() {
		t.Error("live timers remain after Close")
	}

	// A closed session ignores every transition.
	session.SubmitAnswer(testWords[0].Syllable)
	session.Restart()
	if state := session.Snapshot(); state.Score != 0 {
		t.Errorf("closed session mutated: %+v", state)
	}
}

func TestSubmitAnswerNoopWhenNotPlaying(t *testing.T) {
	session, _ := newTestSession(t, nil)

	// Before Start nothing happens.
	session.SubmitAnswer(testWords[0].Syllable)
	if state := session.Snapshot(); state.Phase != PhaseNotStarted || state.Score != 0 {
		t.Errorf("SubmitAnswer before Start mutated state: %+v", state)
	}

	session.Start()
	session.SubmitAnswer(testWords[0].Syllable)
	score := session.Snapshot().Score

	// During the reveal window further answers are ignored.
	session.SubmitAnswer(testWords[0].Syllable)
	if state := session.Snapshot(); state.Score != score {
		t.Errorf("score changed during reveal window: %d -> %d", score, state.Score)
	}
}

func TestDisplayWordProjection(t *testing.T) {
	session, _ := newTestSession(t, nil)
	session.Start()

	if display := session.Snapshot().Display; display != "_RATE" {
		t.Errorf("display = %q, want masked form", display)
	}

	session.SubmitAnswer("KA")
	if display := session.Snapshot().Display; display != "KARATE" {
		t.Errorf("display after correct = %q, want complete word", display)
	}
}

func TestAccuracyClamped(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		misses    int
		want      int
	}{
		{name: "no words yet", completed: 0, misses: 0, want: 0},
		{name: "no words yet with misses", completed: 0, misses: 2, want: 0},
		{name: "half", completed: 2, misses: 1, want: 50},
		{name: "perfect", completed: 4, misses: 0, want: 100},
		{name: "misses exceed completed clamps to zero", completed: 1, misses: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := accuracy(tt.completed, tt.misses); got != tt.want {
				t.Errorf("accuracy(%d, %d) = %d, want %d", tt.completed, tt.misses, got, tt.want)
			}
		})
	}
}
