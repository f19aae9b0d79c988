package budget

import (
	"time"
)

// DefaultDailyGoal is the spending threshold a fresh document starts with.
const DefaultDailyGoal float64 = 50

// Expense is a single ledger entry. Expenses are immutable once created;
// an edit is a delete followed by a new entry.
type Expense struct {
	ID       string    `json:"id"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Note     string    `json:"note"`
	Time     time.Time `json:"time"`
}

// Document is the unit of persistence: one budget's full state.
// Expenses are bucketed by canonical date-key ("YYYY-MM-DD"); insertion order
// within a bucket is preserved, and a bucket with no expenses is removed
// rather than kept empty.
//
// The sharing fields are zero-valued for a personal budget.
type Document struct {
	DailyGoal        float64              `json:"dailyGoal"`
	CustomCategories []string             `json:"customCategories"`
	Expenses         map[string][]Expense `json:"expenses"`

	Name       string   `json:"name,omitempty"`
	OwnerID    string   `json:"ownerId,omitempty"`
	Members    []string `json:"members,omitempty"`
	InviteCode string   `json:"inviteCode,omitempty"`
}

// NewDefaultDocument returns the document a user starts with: goal 50,
// no custom categories, no expenses.
func NewDefaultDocument() *Document {
	return &Document{
		DailyGoal:        DefaultDailyGoal,
		CustomCategories: []string{},
		Expenses:         map[string][]Expense{},
	}
}

// IsShared reports whether the document represents a shared budget.
func (d *Document) IsShared() bool {
	return d.OwnerID != ""
}

// HasExpenses reports whether the document holds at least one expense bucket.
// Used by the sync coordinator to decide whether a cached document is worth
// migrating to the remote store on first sign-in.
func (d *Document) HasExpenses() bool {
	return len(d.Expenses) > 0
}

// HasMember reports whether userID is a member of a shared budget document.
func (d *Document) HasMember(userID string) bool {
	for _, m := range d.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document. The coordinator snapshots the
// document before handing it to asynchronous persistence so later mutations
// cannot race an in-flight save.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		DailyGoal:  d.DailyGoal,
		Name:       d.Name,
		OwnerID:    d.OwnerID,
		InviteCode: d.InviteCode,
	}
	out.CustomCategories = append([]string{}, d.CustomCategories...)
	if d.Members != nil {
		out.Members = append([]string{}, d.Members...)
	}
	out.Expenses = make(map[string][]Expense, len(d.Expenses))
	for key, bucket := range d.Expenses {
		out.Expenses[key] = append([]Expense{}, bucket...)
	}
	return out
}
