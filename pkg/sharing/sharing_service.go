package sharing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spendwell/spendwell/pkg/budget"
	"github.com/spendwell/spendwell/pkg/user"
)

// ErrInviteNotFound is returned when a redeemed code matches no shared budget.
var ErrInviteNotFound = errors.New("invite code not found")

// ErrNotMember is returned when the caller tries to leave a budget they are
// not part of.
var ErrNotMember = errors.New("not a member of this budget")

type Service interface {
	Create(ctx context.Context, name string) (Membership, error)
	Join(ctx context.Context, inviteCode string) (Membership, error)
	Leave(ctx context.Context, budgetID string) error
	ListMemberships(ctx context.Context) ([]Membership, error)
}

type ServiceImpl struct {
	documents budget.Repo
	repo      Repo
}

func NewService(documents budget.Repo, repo Repo) *ServiceImpl {
	return &ServiceImpl{documents: documents, repo: repo}
}

// Create makes a fresh shared budget owned by the current user, who becomes
// its first member. The budget starts from defaults, not from the owner's
// personal data.
func (s *ServiceImpl) Create(ctx context.Context, name string) (Membership, error) {
	uid, err := currentUid(ctx)
	if err != nil {
		return Membership{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Membership{}, errors.New("budget name must not be empty")
	}

	doc := budget.NewDefaultDocument()
	doc.Name = name
	doc.OwnerID = uid
	doc.Members = []string{uid}
	doc.InviteCode = NewInviteCode()

	budgetID := uuid.NewString()
	if err := s.documents.Save(ctx, budgetID, doc); err != nil {
		return Membership{}, fmt.Errorf("could not create shared budget: %w", err)
	}
	log.Infof("user %s created shared budget %s", uid, budgetID)
	return MembershipOf(budgetID, doc), nil
}

// Join redeems an invite code for the current user. Joining a budget the user
// already belongs to returns the membership unchanged.
func (s *ServiceImpl) Join(ctx context.Context, inviteCode string) (Membership, error) {
	uid, err := currentUid(ctx)
	if err != nil {
		return Membership{}, err
	}

	code := NormalizeInviteCode(inviteCode)
	budgetID, doc, err := s.repo.FindByInviteCode(ctx, code)
	if errors.Is(err, budget.ErrNotFound) {
		return Membership{}, ErrInviteNotFound
	} else if err != nil {
		return Membership{}, err
	}

	if doc.HasMember(uid) {
		return MembershipOf(budgetID, doc), nil
	}

	doc.Members = append(doc.Members, uid)
	if err := s.documents.Save(ctx, budgetID, doc); err != nil {
		return Membership{}, fmt.Errorf("could not join shared budget %s: %w", budgetID, err)
	}
	log.Infof("user %s joined shared budget %s", uid, budgetID)
	return MembershipOf(budgetID, doc), nil
}

// Leave removes the current user from a shared budget's member list. The
// budget itself persists even when the last member leaves.
func (s *ServiceImpl) Leave(ctx context.Context, budgetID string) error {
	uid, err := currentUid(ctx)
	if err != nil {
		return err
	}

	doc, err := s.documents.Load(ctx, budgetID)
	if err != nil {
		return err
	}
	if !doc.IsShared() || !doc.HasMember(uid) {
		return ErrNotMember
	}

	members := make([]string, 0, len(doc.Members)-1)
	for _, m := range doc.Members {
		if m != uid {
			members = append(members, m)
		}
	}
	doc.Members = members

	if err := s.documents.Save(ctx, budgetID, doc); err != nil {
		return fmt.Errorf("could not leave shared budget %s: %w", budgetID, err)
	}
	log.Infof("user %s left shared budget %s", uid, budgetID)
	return nil
}

func (s *ServiceImpl) ListMemberships(ctx context.Context) ([]Membership, error) {
	uid, err := currentUid(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForMember(ctx, uid)
}

func currentUid(ctx context.Context) (string, error) {
	u, err := user.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return u.Uid, nil
}
