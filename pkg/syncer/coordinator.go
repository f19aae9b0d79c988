package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spendwell/spendwell/pkg/budget"
	log "github.com/sirupsen/logrus"
)

// State is the persistence state of the active document.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateLoaded   State = "loaded"
	StateDirty    State = "dirty"
	StateSaving   State = "saving"
)

// ErrSharedBudgetGone is returned when switching to a shared budget that no
// longer exists remotely. The previously active document stays in place.
var ErrSharedBudgetGone = errors.New("shared budget not found")

// Coordinator keeps one budget session's in-memory document consistent with
// the local cache and the remote store. It owns its document reference and
// its debounce timer; there is no shared module state between sessions.
//
// Every mutation writes the cache synchronously and (re)starts the debounce
// timer; only when the timer fires is the latest snapshot written remotely,
// so rapid edits coalesce into one remote write. Remote failures are
// swallowed: the cache is the fallback of record.
type Coordinator struct {
	userID    string
	remote    budget.Repo
	cache     LocalCache
	scheduler Scheduler
	debounce  time.Duration

	// sessionMu guards the store and its document.
	sessionMu sync.Mutex
	store     *budget.Store

	// stateMu guards state, the pending debounce task, and the docID mirror.
	stateMu       sync.Mutex
	state         State
	cancelPending func()
	// docID mirrors store.DocID() so the event-bus callback can route events
	// without touching the session lock its publisher already holds.
	docID string
}

func NewCoordinator(userID string, store *budget.Store, remote budget.Repo, cache LocalCache, scheduler Scheduler, debounce time.Duration) *Coordinator {
	return &Coordinator{
		userID:    userID,
		remote:    remote,
		cache:     cache,
		scheduler: scheduler,
		debounce:  debounce,
		store:     store,
		state:     StateUnloaded,
		docID:     store.DocID(),
	}
}

// PersonalDocID returns the document id of a user's personal budget.
func PersonalDocID(userID string) string {
	return "personal:" + userID
}

// State returns the current persistence state.
func (c *Coordinator) State() State {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// DocID returns the id of the currently active document. Safe to call from
// event handlers running inside a mutation.
func (c *Coordinator) DocID() string {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.docID
}

func (c *Coordinator) install(docID string, doc *budget.Document) *budget.Document {
	c.sessionMu.Lock()
	c.store.Install(docID, doc)
	snapshot := c.store.Snapshot()
	c.sessionMu.Unlock()

	c.stateMu.Lock()
	c.docID = docID
	c.stateMu.Unlock()
	return snapshot
}

// Acquire locks the session and hands out the store for a run of mutations.
// The returned release function must be called when done. Mutations announce
// themselves on the event bus, which calls back into OnMutation on the same
// goroutine, so OnMutation must not take the session lock itself.
func (c *Coordinator) Acquire() (*budget.Store, func()) {
	c.sessionMu.Lock()
	return c.store, c.sessionMu.Unlock
}

// Snapshot returns a deep copy of the active document.
func (c *Coordinator) Snapshot() *budget.Document {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	return c.store.Snapshot()
}

// ActivatePersonal resolves the personal document on sign-in:
// a remote copy wins wholesale; with no remote copy, a non-trivial cached
// document is adopted as a first-run migration and scheduled for remote
// write; otherwise the default document is used. Whatever branch resolved the
// state, the cache is overwritten with it afterwards.
func (c *Coordinator) ActivatePersonal(ctx context.Context) error {
	docID := PersonalDocID(c.userID)
	c.setState(StateLoading)

	migrated := false
	doc, err := c.remote.Load(ctx, docID)
	if err != nil {
		if !errors.Is(err, budget.ErrNotFound) {
			// Offline or broken remote: degrade to the cache, same as not-found.
			log.Warnf("remote load of %s failed, falling back to cache: %v", docID, err)
		}
		cached, cacheErr := c.cache.Get(ctx, docID)
		if cacheErr == nil && cached.HasExpenses() {
			log.Infof("migrating cached document %s to remote store", docID)
			doc = cached
			migrated = true
		} else {
			if cacheErr != nil && !errors.Is(cacheErr, budget.ErrNotFound) {
				log.Warnf("cache read of %s failed: %v", docID, cacheErr)
			}
			doc = budget.NewDefaultDocument()
		}
	}

	snapshot := c.install(docID, doc)

	// Cache always reflects the last-resolved state, never the reverse.
	if err := c.cache.Put(ctx, docID, snapshot); err != nil {
		log.Warnf("cache write of %s failed: %v", docID, err)
	}

	if migrated {
		c.setState(StateDirty)
		c.restartDebounce()
	} else {
		c.setState(StateLoaded)
	}
	return nil
}

// SwitchToShared makes the shared budget with the given document id active.
// Any pending debounced write for the previous document is cancelled first.
// An edit whose debounce had not fired may be lost remotely, but never
// locally, since its cache write already happened. Shared budgets always load
// fresh from remote; a missing one returns ErrSharedBudgetGone and leaves the
// previous document active.
func (c *Coordinator) SwitchToShared(ctx context.Context, docID string) error {
	c.cancelPendingWrite()
	c.setState(StateLoading)

	doc, err := c.remote.Load(ctx, docID)
	if errors.Is(err, budget.ErrNotFound) {
		c.setState(StateLoaded)
		return ErrSharedBudgetGone
	} else if err != nil {
		c.setState(StateLoaded)
		return fmt.Errorf("failed to load shared budget %s: %w", docID, err)
	}

	snapshot := c.install(docID, doc)

	if err := c.cache.Put(ctx, docID, snapshot); err != nil {
		log.Warnf("cache write of %s failed: %v", docID, err)
	}
	c.setState(StateLoaded)
	return nil
}

// SwitchToPersonal switches back from a shared budget, dropping any pending
// write for it, and re-resolves the personal document.
func (c *Coordinator) SwitchToPersonal(ctx context.Context) error {
	c.cancelPendingWrite()
	return c.ActivatePersonal(ctx)
}

// OnMutation persists an effective mutation: the cache synchronously, the
// remote store via the debounce timer. Called on the mutating goroutine while
// it still holds the session lock, so the cache can never be observed behind
// the in-memory document.
func (c *Coordinator) OnMutation(ctx context.Context) {
	snapshot := c.store.Snapshot()
	docID := c.store.DocID()

	if err := c.cache.Put(ctx, docID, snapshot); err != nil {
		log.Warnf("cache write of %s failed: %v", docID, err)
	}

	c.setState(StateDirty)
	c.restartDebounce()
}

// Flush writes the latest snapshot remotely now if the document is dirty.
// Used on shutdown; the debounce path calls the same save.
func (c *Coordinator) Flush(ctx context.Context) {
	c.cancelPendingWrite()
	c.save(ctx)
}

func (c *Coordinator) restartDebounce() {
	c.stateMu.Lock()
	if c.cancelPending != nil {
		c.cancelPending()
	}
	c.cancelPending = c.scheduler.Schedule(c.debounce, func() {
		c.save(context.Background())
	})
	c.stateMu.Unlock()
}

// save performs the debounced remote write with the snapshot taken at fire
// time, not at schedule time. Failure drops the document back to Dirty; the
// next mutation's debounce cycle is the only retry.
func (c *Coordinator) save(ctx context.Context) {
	c.stateMu.Lock()
	if c.state != StateDirty {
		c.stateMu.Unlock()
		return
	}
	c.state = StateSaving
	c.stateMu.Unlock()

	c.sessionMu.Lock()
	snapshot := c.store.Snapshot()
	docID := c.store.DocID()
	c.sessionMu.Unlock()

	err := c.remote.Save(ctx, docID, snapshot)

	c.stateMu.Lock()
	if err != nil {
		log.Warnf("remote save of %s failed, keeping document dirty: %v", docID, err)
		c.state = StateDirty
	} else if c.state == StateSaving {
		// A mutation during the save has already moved the state back to
		// Dirty; only a quiet save completes the cycle.
		c.state = StateLoaded
	}
	c.stateMu.Unlock()
}

func (c *Coordinator) cancelPendingWrite() {
	c.stateMu.Lock()
	if c.cancelPending != nil {
		c.cancelPending()
		c.cancelPending = nil
	}
	c.stateMu.Unlock()
}

func (c *Coordinator) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}
