package sharing

import "github.com/spendwell/spendwell/pkg/budget"

// Membership describes one shared budget from a member's point of view.
type Membership struct {
	BudgetID   string
	Name       string
	OwnerID    string
	Members    []string
	InviteCode string
}

// MembershipOf projects a shared document to its membership view.
func MembershipOf(budgetID string, doc *budget.Document) Membership {
	members := make([]string, len(doc.Members))
	copy(members, doc.Members)
	return Membership{
		BudgetID:   budgetID,
		Name:       doc.Name,
		OwnerID:    doc.OwnerID,
		Members:    members,
		InviteCode: doc.InviteCode,
	}
}
