package models

import "time"

// UserRecord represents a registered player account. The JSON field names
// match the on-device storage format, so records written by earlier versions
// of the application load unchanged.
//
// The password is stored and compared as a plain value. That is a known
// weakness of the storage format, kept deliberately for compatibility.
type UserRecord struct {
	Username       string     `json:"username"`
	Password       string     `json:"password"`
	Email          string     `json:"email"`
	RegisteredAt   time.Time  `json:"registeredAt"`
	GamesPlayed    int        `json:"gamesPlayed"`
	BestScore      int        `json:"bestScore"`
	LastPlayed     *time.Time `json:"lastPlayed,omitempty"`
	TotalTimeSpent int        `json:"totalTimeSpent"` // seconds
}
