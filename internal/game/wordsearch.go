package game

import (
	"time"

	"silabas/internal/models"
	"silabas/internal/service"
)

// wordSearchPoints is the flat award per found word; the word search has no
// streak bonus.
const wordSearchPoints = 10

// WordSearchResult converts a finished word-search round into the shared
// result shape the stats reconciler records.
func WordSearchResult(found int, elapsed time.Duration) service.Result {
	if found < 0 {
		found = 0
	}
	return service.Result{
		Score:          found * wordSearchPoints,
		WordsCompleted: found,
		GameType:       models.GameTypeWordSearch,
		Elapsed:        elapsed,
	}
}
