package sharing

import (
	"context"

	"github.com/spendwell/spendwell/pkg/budget"
)

// StubRepo is an in-memory sharing Repo for tests, backed by the same map a
// budget.StubRepo can share.
type StubRepo struct {
	docs map[string]*budget.Document
}

func NewStubRepo(docs map[string]*budget.Document) *StubRepo {
	if docs == nil {
		docs = map[string]*budget.Document{}
	}
	return &StubRepo{docs: docs}
}

func (s *StubRepo) FindByInviteCode(ctx context.Context, code string) (string, *budget.Document, error) {
	for id, doc := range s.docs {
		if doc.IsShared() && doc.InviteCode == code {
			return id, doc.Clone(), nil
		}
	}
	return "", nil, budget.ErrNotFound
}

func (s *StubRepo) ListForMember(ctx context.Context, userID string) ([]Membership, error) {
	memberships := make([]Membership, 0)
	for id, doc := range s.docs {
		if doc.IsShared() && doc.HasMember(userID) {
			memberships = append(memberships, MembershipOf(id, doc))
		}
	}
	return memberships, nil
}

// Seed stores a shared document directly.
func (s *StubRepo) Seed(budgetID string, doc *budget.Document) {
	s.docs[budgetID] = doc.Clone()
}
