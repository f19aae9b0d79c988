package budget

import (
	"context"
	"errors"
)

// StubSessions hands out a single fixed store, standing in for the sync
// manager in tests.
type StubSessions struct {
	Store      *Store
	SwitchErr  error
	SwitchedTo []string
}

func NewStubSessions(store *Store) *StubSessions {
	return &StubSessions{Store: store}
}

func (s *StubSessions) Acquire(ctx context.Context) (*Store, func(), error) {
	if s.Store == nil {
		return nil, nil, errors.New("no active session")
	}
	return s.Store, func() {}, nil
}

func (s *StubSessions) Switch(ctx context.Context, budgetID string) error {
	if s.SwitchErr != nil {
		return s.SwitchErr
	}
	s.SwitchedTo = append(s.SwitchedTo, budgetID)
	return nil
}
