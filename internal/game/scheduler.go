package game

import "time"

// Timer is a handle to one scheduled callback.
type Timer interface {
	// Stop cancels the callback; it reports false when the callback already
	// fired or was stopped before.
	Stop() bool
}

// Scheduler schedules one-shot callbacks. The production implementation uses
// the runtime timers; tests substitute a manual one to drive the countdown
// and the answer-reveal delay deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewScheduler returns the runtime-timer backed scheduler.
func NewScheduler() Scheduler {
	return realScheduler{}
}
