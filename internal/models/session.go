package models

import "time"

// GameType identifies which mini-game produced a session.
type GameType string

const (
	GameTypeSyllables  GameType = "syllables"
	GameTypeWordSearch GameType = "wordSearch"
)

// GameSession is one completed play-through, appended to the session history
// log. Sessions are immutable once written; only a bulk clear removes them.
type GameSession struct {
	ID             string    `json:"id,omitempty"`
	Date           time.Time `json:"date"`
	Score          int       `json:"score"`
	WordsCompleted int       `json:"wordsCompleted"`
	GameType       GameType  `json:"gameType"`
}
