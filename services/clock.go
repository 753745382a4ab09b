package services

import "time"

// Timer is the subset of *time.Timer used by the form
type Timer interface {
	Stop() bool
}

// Clock abstracts time so the confirmation revert can be driven in tests
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// SystemClock is the wall clock
var SystemClock Clock = realClock{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
