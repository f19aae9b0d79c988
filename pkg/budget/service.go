package budget

import (
	"context"
	"fmt"

	"github.com/spendwell/spendwell/pkg/category"
	"github.com/spendwell/spendwell/pkg/datekey"
)

// Sessions hands out the current user's document store with its session lock
// held, and switches the active budget. Implemented by the sync coordinator's
// manager.
type Sessions interface {
	Acquire(ctx context.Context) (*Store, func(), error)
	Switch(ctx context.Context, budgetID string) error
}

type Service interface {
	GetDocument(ctx context.Context) (*Document, error)
	// AddExpense returns nil without error when the amount was rejected:
	// invalid input is a silent no-op, visible to the caller only as an
	// unchanged document.
	AddExpense(ctx context.Context, dateKey string, amount float64, categoryID string, note string) (*Expense, error)
	DeleteExpense(ctx context.Context, dateKey string, expenseID string) error
	SetDailyGoal(ctx context.Context, goal float64) error
	SetCustomCategories(ctx context.Context, categories []string) error
	CustomCategories(ctx context.Context) ([]string, error)
	Reset(ctx context.Context) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) error
	Switch(ctx context.Context, budgetID string) error
}

type ServiceImpl struct {
	sessions Sessions
}

func NewService(sessions Sessions) *ServiceImpl {
	return &ServiceImpl{sessions: sessions}
}

func (s *ServiceImpl) GetDocument(ctx context.Context) (*Document, error) {
	store, release, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return store.Snapshot(), nil
}

func (s *ServiceImpl) AddExpense(ctx context.Context, dateKey string, amount float64, categoryID string, note string) (*Expense, error) {
	if !datekey.IsValid(dateKey) {
		return nil, fmt.Errorf("invalid date key %q", dateKey)
	}
	store, release, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	expense, added := store.AddExpense(ctx, dateKey, amount, categoryID, note)
	if !added {
		return nil, nil
	}
	return &expense, nil
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, dateKey string, expenseID string) error {
	store, release, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	// Deleting an absent expense is a no-op.
	store.DeleteExpense(ctx, dateKey, expenseID)
	return nil
}

func (s *ServiceImpl) SetDailyGoal(ctx context.Context, goal float64) error {
	store, release, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	store.SetDailyGoal(ctx, goal)
	return nil
}

func (s *ServiceImpl) SetCustomCategories(ctx context.Context, categories []string) error {
	store, release, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	store.SetCustomCategories(ctx, category.Normalize(categories))
	return nil
}

func (s *ServiceImpl) CustomCategories(ctx context.Context) ([]string, error) {
	doc, err := s.GetDocument(ctx)
	if err != nil {
		return nil, err
	}
	return doc.CustomCategories, nil
}

func (s *ServiceImpl) Reset(ctx context.Context) error {
	store, release, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	store.ResetToDefault(ctx)
	return nil
}

func (s *ServiceImpl) Export(ctx context.Context) ([]byte, error) {
	doc, err := s.GetDocument(ctx)
	if err != nil {
		return nil, err
	}
	return Export(doc)
}

func (s *ServiceImpl) Import(ctx context.Context, data []byte) error {
	doc, err := ParseImport(data)
	if err != nil {
		return err
	}
	store, release, aerr := s.sessions.Acquire(ctx)
	if aerr != nil {
		return aerr
	}
	defer release()

	store.Replace(ctx, doc)
	return nil
}

func (s *ServiceImpl) Switch(ctx context.Context, budgetID string) error {
	return s.sessions.Switch(ctx, budgetID)
}
