package game

import (
	"math"

	"silabas/internal/models"
)

// State is an immutable view of the session for the presentation layer,
// including the derived display fields the screens render.
type State struct {
	Phase      Phase
	WordIndex  int
	TotalWords int
	Word       models.Word
	Display    string
	Options    []string
	Selected   string
	Score      int
	Lives      int
	Streak     int
	TimeLeft   int
	Progress   int
	Accuracy   int
}

// Snapshot returns the current state. The returned value shares nothing with
// the session; the presentation layer may hold it across transitions.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	word := s.cfg.Words[s.wordIndex]
	options := make([]string, len(s.options))
	copy(options, s.options)

	return State{
		Phase:      s.phase,
		WordIndex:  s.wordIndex,
		TotalWords: len(s.cfg.Words),
		Word:       word,
		Display:    word.Display(s.selected, s.phase == PhaseCorrect || s.phase == PhaseCompleted),
		Options:    options,
		Selected:   s.selected,
		Score:      s.score,
		Lives:      s.lives,
		Streak:     s.streak,
		TimeLeft:   s.timeLeft,
		Progress:   int(math.Round(float64(s.wordIndex+1) / float64(len(s.cfg.Words)) * 100)),
		Accuracy:   accuracy(s.wordIndex, s.cfg.Lives-s.lives),
	}
}

// accuracy is the historical display formula (completed minus misses, over
// completed), clamped to [0,100]: the raw ratio goes negative when misses
// outnumber completed words, which reads as nonsense on screen.
func accuracy(completed, misses int) int {
	if completed <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed-misses) / float64(completed) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
