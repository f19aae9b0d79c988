package category

import (
	"context"
	"encoding/json"
	"net/http"
)

type CategoryDTO struct {
	ID     string `json:"id"`
	Color  string `json:"color"`
	Custom bool   `json:"custom"`
}

// CustomProvider supplies the active budget's custom categories.
type CustomProvider interface {
	CustomCategories(ctx context.Context) ([]string, error)
}

type Handler struct {
	custom CustomProvider
}

func NewHandler(custom CustomProvider) *Handler {
	return &Handler{custom: custom}
}

// ListCategories returns the default registry plus the active budget's custom
// categories, each with its display color.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	custom, err := h.custom.CustomCategories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defaults := Defaults()
	dtos := make([]CategoryDTO, 0, len(defaults)+len(custom))
	for _, c := range defaults {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Color: c.Color})
	}
	for _, id := range custom {
		if IsDefault(id) {
			continue
		}
		dtos = append(dtos, CategoryDTO{ID: id, Color: ColorFor(id), Custom: true})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
