package sharing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spendwell/spendwell/internal/rest"
	"github.com/spendwell/spendwell/pkg/budget"
)

type MembershipDTO struct {
	BudgetID   string   `json:"budgetId"`
	Name       string   `json:"name"`
	OwnerID    string   `json:"ownerId"`
	Members    []string `json:"members"`
	InviteCode string   `json:"inviteCode,omitempty"`
}

type SharingHandler struct {
	sharingService Service
}

func NewSharingHandler(sharingService Service) *SharingHandler {
	return &SharingHandler{sharingService}
}

func (handler *SharingHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	membership, err := handler.sharingService.Create(r.Context(), dto.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(membershipToDTO(membership)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *SharingHandler) Join(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto struct {
		InviteCode string `json:"inviteCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	membership, err := handler.sharingService.Join(r.Context(), dto.InviteCode)
	if errors.Is(err, ErrInviteNotFound) {
		w.WriteHeader(http.StatusNotFound)
		rest.WriteError(w, rest.ErrorResponse{Error: "Invite code not found"})
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(membershipToDTO(membership)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *SharingHandler) Leave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := handler.sharingService.Leave(r.Context(), vars["budgetId"])
	if errors.Is(err, ErrNotMember) || errors.Is(err, budget.ErrNotFound) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		rest.WriteError(w, rest.ErrorResponse{Error: "Budget not available"})
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *SharingHandler) ListMemberships(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	memberships, err := handler.sharingService.ListMemberships(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MembershipDTO, 0, len(memberships))
	for _, m := range memberships {
		dtos = append(dtos, membershipToDTO(m))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func membershipToDTO(m Membership) MembershipDTO {
	return MembershipDTO(m)
}
