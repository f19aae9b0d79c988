package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/spendwell/spendwell/internal/utils"
	"github.com/spendwell/spendwell/pkg/budget"
)

type coordinatorFixture struct {
	coordinator *Coordinator
	store       *budget.Store
	remote      *budget.StubRepo
	cache       *StubLocalCache
	scheduler   *ManualScheduler
	clock       *utils.MockClock
}

func newCoordinatorFixture() *coordinatorFixture {
	remote := budget.NewStubRepo()
	cache := NewStubLocalCache()
	scheduler := NewManualScheduler()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	store := budget.NewStore(PersonalDocID("alice"), nil, clock, nil)
	coordinator := NewCoordinator("alice", store, remote, cache, scheduler, 500*time.Millisecond)
	return &coordinatorFixture{coordinator, store, remote, cache, scheduler, clock}
}

func docWithExpense(amount float64) *budget.Document {
	doc := budget.NewDefaultDocument()
	doc.Expenses["2025-03-09"] = []budget.Expense{{ID: "e1", Amount: amount, Category: "groceries"}}
	return doc
}

func TestActivateRemoteWinsWholesale(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	remoteDoc := docWithExpense(42)
	remoteDoc.DailyGoal = 80
	f.remote.Seed(PersonalDocID("alice"), remoteDoc)
	// A diverged cached copy must be discarded, not merged.
	cachedDoc := docWithExpense(7)
	cachedDoc.Expenses["2025-03-08"] = []budget.Expense{{ID: "e9", Amount: 1}}
	f.cache.Seed(PersonalDocID("alice"), cachedDoc)

	require.NoError(t, f.coordinator.ActivatePersonal(ctx))

	doc := f.coordinator.Snapshot()
	assert.Equal(t, 80.0, doc.DailyGoal)
	assert.Len(t, doc.Expenses, 1)
	assert.Equal(t, 42.0, doc.Expenses["2025-03-09"][0].Amount)
	assert.Equal(t, StateLoaded, f.coordinator.State())
	// Cache is overwritten with the resolved state.
	assert.Equal(t, 80.0, f.cache.Cached(PersonalDocID("alice")).DailyGoal)
	assert.False(t, f.scheduler.HasPending())
}

func TestActivateMigratesCacheWhenRemoteEmpty(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	f.cache.Seed(PersonalDocID("alice"), docWithExpense(7))

	require.NoError(t, f.coordinator.ActivatePersonal(ctx))

	doc := f.coordinator.Snapshot()
	assert.Equal(t, 7.0, doc.Expenses["2025-03-09"][0].Amount)
	assert.Equal(t, StateDirty, f.coordinator.State())
	// Migration schedules the first remote write.
	require.True(t, f.scheduler.HasPending())
	f.scheduler.Fire()
	require.NotNil(t, f.remote.Stored(PersonalDocID("alice")))
	assert.Equal(t, StateLoaded, f.coordinator.State())
}

func TestActivateIgnoresTrivialCachedDocument(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	trivial := budget.NewDefaultDocument()
	trivial.DailyGoal = 99 // changed goal but no expenses: not worth migrating
	f.cache.Seed(PersonalDocID("alice"), trivial)

	require.NoError(t, f.coordinator.ActivatePersonal(ctx))

	assert.Equal(t, budget.DefaultDailyGoal, f.coordinator.Snapshot().DailyGoal)
	assert.Equal(t, StateLoaded, f.coordinator.State())
	assert.False(t, f.scheduler.HasPending())
}

func TestActivateDefaultsWhenNothingExists(t *testing.T) {
	f := newCoordinatorFixture()

	require.NoError(t, f.coordinator.ActivatePersonal(context.Background()))

	doc := f.coordinator.Snapshot()
	assert.Equal(t, budget.DefaultDailyGoal, doc.DailyGoal)
	assert.Empty(t, doc.Expenses)
	// Even the default state lands in the cache.
	assert.NotNil(t, f.cache.Cached(PersonalDocID("alice")))
}

func TestActivateFallsBackToCacheWhenRemoteFails(t *testing.T) {
	f := newCoordinatorFixture()
	f.cache.Seed(PersonalDocID("alice"), docWithExpense(7))
	failing := &failingRepo{loadErr: errors.New("connection refused")}
	f.coordinator.remote = failing

	require.NoError(t, f.coordinator.ActivatePersonal(context.Background()))

	assert.Equal(t, 7.0, f.coordinator.Snapshot().Expenses["2025-03-09"][0].Amount)
}

func TestMutationWritesCacheAndStartsDebounce(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))
	putsBefore := f.cache.PutCalls

	store, release := f.coordinator.Acquire()
	store.AddExpense(ctx, "2025-03-10", 12.5, "groceries", "")
	f.coordinator.OnMutation(ctx)
	release()

	assert.Equal(t, putsBefore+1, f.cache.PutCalls)
	assert.Len(t, f.cache.Cached(PersonalDocID("alice")).Expenses["2025-03-10"], 1)
	assert.Equal(t, StateDirty, f.coordinator.State())
	assert.Equal(t, 500*time.Millisecond, f.scheduler.LastDelay)
	// Nothing remote yet.
	assert.Nil(t, f.remote.Stored(PersonalDocID("alice")))

	f.scheduler.Fire()
	require.NotNil(t, f.remote.Stored(PersonalDocID("alice")))
	assert.Equal(t, StateLoaded, f.coordinator.State())
}

func TestRapidMutationsCoalesceIntoOneSave(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))

	store, release := f.coordinator.Acquire()
	for i := 0; i < 5; i++ {
		store.AddExpense(ctx, "2025-03-10", 1, "groceries", "")
		f.coordinator.OnMutation(ctx)
	}
	release()

	f.scheduler.Fire()

	assert.Equal(t, 1, f.remote.SaveCalls)
	// The save carries the latest snapshot, not the first.
	assert.Len(t, f.remote.Stored(PersonalDocID("alice")).Expenses["2025-03-10"], 5)
}

func TestSaveFailureKeepsDirtyUntilNextMutation(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))

	store, release := f.coordinator.Acquire()
	store.AddExpense(ctx, "2025-03-10", 10, "groceries", "")
	f.coordinator.OnMutation(ctx)
	release()

	f.remote.SaveErr = errors.New("remote down")
	f.scheduler.Fire()
	assert.Equal(t, StateDirty, f.coordinator.State())
	// No retry without a new mutation.
	assert.False(t, f.scheduler.HasPending())

	f.remote.SaveErr = nil
	store, release = f.coordinator.Acquire()
	store.AddExpense(ctx, "2025-03-10", 5, "transport", "")
	f.coordinator.OnMutation(ctx)
	release()
	f.scheduler.Fire()

	assert.Equal(t, StateLoaded, f.coordinator.State())
	assert.Len(t, f.remote.Stored(PersonalDocID("alice")).Expenses["2025-03-10"], 2)
}

func TestSwitchToSharedCancelsPendingPersonalWrite(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))
	f.remote.Seed("shared-1", sharedDoc())

	store, release := f.coordinator.Acquire()
	store.AddExpense(ctx, "2025-03-10", 10, "groceries", "")
	f.coordinator.OnMutation(ctx)
	release()
	require.True(t, f.scheduler.HasPending())

	require.NoError(t, f.coordinator.SwitchToShared(ctx, "shared-1"))

	// The personal edit never reached the remote store but survives in cache.
	assert.False(t, f.scheduler.HasPending())
	assert.Nil(t, f.remote.Stored(PersonalDocID("alice")))
	assert.Len(t, f.cache.Cached(PersonalDocID("alice")).Expenses["2025-03-10"], 1)

	assert.Equal(t, "shared-1", f.coordinator.DocID())
	assert.Equal(t, "Trip", f.coordinator.Snapshot().Name)
}

func TestSwitchToSharedNeverMigratesCache(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))
	// A stale cached copy of the shared budget must not be adopted.
	f.cache.Seed("shared-1", docWithExpense(999))

	err := f.coordinator.SwitchToShared(ctx, "shared-1")

	assert.ErrorIs(t, err, ErrSharedBudgetGone)
	assert.Equal(t, PersonalDocID("alice"), f.coordinator.DocID())
}

func TestSwitchToMissingSharedKeepsCurrentDocument(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	f.remote.Seed(PersonalDocID("alice"), docWithExpense(42))
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))

	err := f.coordinator.SwitchToShared(ctx, "vanished")

	assert.ErrorIs(t, err, ErrSharedBudgetGone)
	assert.Equal(t, 42.0, f.coordinator.Snapshot().Expenses["2025-03-09"][0].Amount)
	assert.Equal(t, StateLoaded, f.coordinator.State())
}

func TestSwitchBackToPersonalReloadsRemote(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	f.remote.Seed(PersonalDocID("alice"), docWithExpense(42))
	f.remote.Seed("shared-1", sharedDoc())
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))
	require.NoError(t, f.coordinator.SwitchToShared(ctx, "shared-1"))

	require.NoError(t, f.coordinator.SwitchToPersonal(ctx))

	assert.Equal(t, PersonalDocID("alice"), f.coordinator.DocID())
	assert.Equal(t, 42.0, f.coordinator.Snapshot().Expenses["2025-03-09"][0].Amount)
}

func TestFlushSavesDirtyDocumentImmediately(t *testing.T) {
	f := newCoordinatorFixture()
	ctx := context.Background()
	require.NoError(t, f.coordinator.ActivatePersonal(ctx))

	store, release := f.coordinator.Acquire()
	store.AddExpense(ctx, "2025-03-10", 10, "groceries", "")
	f.coordinator.OnMutation(ctx)
	release()

	f.coordinator.Flush(ctx)

	require.NotNil(t, f.remote.Stored(PersonalDocID("alice")))
	assert.Equal(t, StateLoaded, f.coordinator.State())
	// The cancelled debounce must not save again.
	f.scheduler.Fire()
	assert.Equal(t, 1, f.remote.SaveCalls)
}

func TestFlushWithoutDirtyStateIsNoOp(t *testing.T) {
	f := newCoordinatorFixture()
	require.NoError(t, f.coordinator.ActivatePersonal(context.Background()))

	f.coordinator.Flush(context.Background())

	assert.Equal(t, 0, f.remote.SaveCalls)
}

func sharedDoc() *budget.Document {
	doc := budget.NewDefaultDocument()
	doc.Name = "Trip"
	doc.OwnerID = "alice"
	doc.Members = []string{"alice", "bob"}
	doc.InviteCode = "AB23CD"
	return doc
}

// failingRepo simulates a broken remote store.
type failingRepo struct {
	loadErr error
}

func (r *failingRepo) Load(ctx context.Context, docID string) (*budget.Document, error) {
	return nil, r.loadErr
}

func (r *failingRepo) Save(ctx context.Context, docID string, doc *budget.Document) error {
	return nil
}
