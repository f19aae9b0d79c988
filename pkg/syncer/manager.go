package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spendwell/spendwell/internal/event_bus"
	"github.com/spendwell/spendwell/internal/utils"
	"github.com/spendwell/spendwell/pkg/budget"
	"github.com/spendwell/spendwell/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Manager owns one Coordinator per signed-in user. It subscribes to document
// mutation events on the bus and routes each one to the session that
// originated it, so mutating code never talks to the coordinator directly.
type Manager struct {
	remote    budget.Repo
	cache     LocalCache
	scheduler Scheduler
	clock     utils.Clock
	bus       *event_bus.EventBus
	debounce  time.Duration

	mu       sync.Mutex
	sessions map[string]*Coordinator

	unsubscribe func()
}

func NewManager(remote budget.Repo, cache LocalCache, scheduler Scheduler, clock utils.Clock, bus *event_bus.EventBus, debounce time.Duration) *Manager {
	m := &Manager{
		remote:    remote,
		cache:     cache,
		scheduler: scheduler,
		clock:     clock,
		bus:       bus,
		debounce:  debounce,
		sessions:  map[string]*Coordinator{},
	}
	m.unsubscribe = bus.Subscribe(event_bus.DocumentMutatedEvent, m.onDocumentMutated)
	return m
}

// Close detaches the manager from the event bus.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// ForUser returns the current user's coordinator, creating and activating the
// session on first use (implicit sign-in).
func (m *Manager) ForUser(ctx context.Context) (*Coordinator, error) {
	u, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.sessions[u.Uid]; ok {
		return c, nil
	}

	store := budget.NewStore(PersonalDocID(u.Uid), nil, m.clock, m.bus)
	c := NewCoordinator(u.Uid, store, m.remote, m.cache, m.scheduler, m.debounce)
	if err := c.ActivatePersonal(ctx); err != nil {
		return nil, err
	}
	m.sessions[u.Uid] = c
	log.Debugf("started budget session for user %s", u.Uid)
	return c, nil
}

// Acquire locks the current user's session and returns its document store.
// Implements budget.Sessions.
func (m *Manager) Acquire(ctx context.Context) (*budget.Store, func(), error) {
	c, err := m.ForUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	store, release := c.Acquire()
	return store, release, nil
}

// Switch makes another budget the active document for the current user.
// An empty budgetID means the personal budget. Implements budget.Sessions.
func (m *Manager) Switch(ctx context.Context, budgetID string) error {
	c, err := m.ForUser(ctx)
	if err != nil {
		return err
	}
	if budgetID == "" {
		return c.SwitchToPersonal(ctx)
	}
	return c.SwitchToShared(ctx, budgetID)
}

// ActiveDocument returns a snapshot of the current user's active document.
// Implements stats.DocumentProvider.
func (m *Manager) ActiveDocument(ctx context.Context) (*budget.Document, error) {
	c, err := m.ForUser(ctx)
	if err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// FlushAll writes every dirty session remotely; used on shutdown.
func (m *Manager) FlushAll(ctx context.Context) {
	m.mu.Lock()
	coordinators := make([]*Coordinator, 0, len(m.sessions))
	for _, c := range m.sessions {
		coordinators = append(coordinators, c)
	}
	m.mu.Unlock()

	for _, c := range coordinators {
		c.Flush(ctx)
	}
}

// onDocumentMutated routes a mutation event to the session that produced it.
// The publisher still holds that session's lock, so only lock-free coordinator
// methods may be called here.
func (m *Manager) onDocumentMutated(e event_bus.Event) error {
	data, ok := e.Data.(event_bus.DocumentMutated)
	if !ok {
		log.Debugf("unexpected payload %T on %s", e.Data, e.Type)
		return nil
	}

	u, err := user.CurrentUser(e.Context())
	if err != nil {
		log.Warnf("mutation of document %s without a user in context", data.DocumentID)
		return nil
	}

	m.mu.Lock()
	c := m.sessions[u.Uid]
	m.mu.Unlock()
	if c == nil || c.DocID() != data.DocumentID {
		// A stale event published around a budget switch; nothing to persist.
		return nil
	}

	c.OnMutation(e.Context())
	return nil
}
