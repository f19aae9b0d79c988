package syncer

import "time"

// ManualScheduler is a test scheduler: nothing runs until Fire is called, so
// debounce behavior can be driven deterministically without real timers.
type ManualScheduler struct {
	pending   func()
	gen       int
	Scheduled int
	Cancelled int
	LastDelay time.Duration
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	s.Scheduled++
	s.LastDelay = d
	s.gen++
	gen := s.gen
	s.pending = fn
	return func() {
		s.Cancelled++
		// Only clear the task if it is still the pending one.
		if s.gen == gen {
			s.pending = nil
		}
	}
}

// Fire runs the pending task, if any, simulating the timer elapsing.
func (s *ManualScheduler) Fire() {
	if s.pending == nil {
		return
	}
	fn := s.pending
	s.pending = nil
	fn()
}

// HasPending reports whether a task is scheduled and not yet fired.
func (s *ManualScheduler) HasPending() bool {
	return s.pending != nil
}
