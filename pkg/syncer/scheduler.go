package syncer

import "time"

// Scheduler abstracts the debounce timer so tests can fire it
// deterministically instead of sleeping. A coordinator keeps at most one
// scheduled task; scheduling again after cancel replaces the previous one.
type Scheduler interface {
	// Schedule runs fn after d and returns a cancel function. Cancel after
	// firing is a no-op.
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
