package budget

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/spendwell/spendwell/internal/event_bus"
	"github.com/spendwell/spendwell/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Store holds the active document of one budget session and exposes its
// mutation operations. Every effective mutation is announced on the event bus
// so the sync coordinator can persist the new state; rejected input is a
// silent no-op and publishes nothing.
//
// The Store is not safe for concurrent use on its own; the owning coordinator
// serializes access.
type Store struct {
	docID string
	doc   *Document
	clock utils.Clock
	bus   *event_bus.EventBus
}

func NewStore(docID string, doc *Document, clock utils.Clock, bus *event_bus.EventBus) *Store {
	if doc == nil {
		doc = NewDefaultDocument()
	}
	return &Store{docID: docID, doc: doc, clock: clock, bus: bus}
}

// DocID returns the identifier of the document currently installed.
func (s *Store) DocID() string {
	return s.docID
}

// Document returns the live document. Callers must not retain it across
// mutations; use Snapshot for a stable copy.
func (s *Store) Document() *Document {
	return s.doc
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() *Document {
	return s.doc.Clone()
}

// Install swaps the active document without announcing a mutation. The
// coordinator uses it when resolving state on sign-in and budget switches.
func (s *Store) Install(docID string, doc *Document) {
	s.docID = docID
	s.doc = doc
}

// AddExpense appends a new expense to the bucket for dateKey, creating the
// bucket if absent. Amounts that are not finite positive numbers are rejected
// as a no-op. Returns the created expense and whether the document changed.
func (s *Store) AddExpense(ctx context.Context, dateKey string, amount float64, categoryID string, note string) (Expense, bool) {
	if !isFinite(amount) || amount <= 0 {
		log.Debugf("rejected expense with amount %v on %s", amount, dateKey)
		return Expense{}, false
	}
	expense := Expense{
		ID:       uuid.NewString(),
		Amount:   amount,
		Category: categoryID,
		Note:     note,
		Time:     s.clock.Now(),
	}
	s.doc.Expenses[dateKey] = append(s.doc.Expenses[dateKey], expense)
	s.announce(ctx, "expense.added")
	return expense, true
}

// DeleteExpense removes the expense with the given id from the bucket for
// dateKey. When the bucket becomes empty its key is removed entirely.
// Deleting an absent expense is a no-op, so the operation is idempotent.
func (s *Store) DeleteExpense(ctx context.Context, dateKey string, expenseID string) bool {
	bucket, ok := s.doc.Expenses[dateKey]
	if !ok {
		return false
	}
	for i, e := range bucket {
		if e.ID != expenseID {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(s.doc.Expenses, dateKey)
		} else {
			s.doc.Expenses[dateKey] = bucket
		}
		s.announce(ctx, "expense.deleted")
		return true
	}
	return false
}

// SetDailyGoal updates the daily spending goal. Only finite values >= 0 are
// accepted; anything else is silently ignored.
func (s *Store) SetDailyGoal(ctx context.Context, goal float64) bool {
	if !isFinite(goal) || goal < 0 {
		log.Debugf("rejected daily goal %v", goal)
		return false
	}
	s.doc.DailyGoal = goal
	s.announce(ctx, "goal.changed")
	return true
}

// SetCustomCategories replaces the custom category list verbatim after
// normalization. Entries are not validated against existing expense
// categories, and duplicates are tolerated.
func (s *Store) SetCustomCategories(ctx context.Context, normalized []string) bool {
	s.doc.CustomCategories = normalized
	s.announce(ctx, "categories.changed")
	return true
}

// ResetToDefault replaces the whole document with the default one, keeping
// the sharing metadata of a shared budget intact.
func (s *Store) ResetToDefault(ctx context.Context) bool {
	fresh := NewDefaultDocument()
	fresh.Name = s.doc.Name
	fresh.OwnerID = s.doc.OwnerID
	fresh.Members = s.doc.Members
	fresh.InviteCode = s.doc.InviteCode
	s.doc = fresh
	s.announce(ctx, "document.reset")
	return true
}

// Replace swaps in an imported document and announces the change. Used by the
// import flow after the payload passed shape validation.
func (s *Store) Replace(ctx context.Context, doc *Document) bool {
	s.doc = doc
	s.announce(ctx, "document.imported")
	return true
}

func (s *Store) announce(ctx context.Context, change string) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.DocumentMutatedEvent, event_bus.DocumentMutated{
		DocumentID: s.docID,
		Change:     change,
	}))
	if err != nil {
		log.Errorf("failed to publish mutation of document %s: %v", s.docID, err)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
