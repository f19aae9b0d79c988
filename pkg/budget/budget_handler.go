package budget

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spendwell/spendwell/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	ID       string    `json:"id"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Note     string    `json:"note,omitempty"`
	Time     time.Time `json:"time"`
}

type DocumentDTO struct {
	DailyGoal        float64                 `json:"dailyGoal"`
	CustomCategories []string                `json:"customCategories"`
	Expenses         map[string][]ExpenseDTO `json:"expenses"`
	Name             string                  `json:"name,omitempty"`
	OwnerID          string                  `json:"ownerId,omitempty"`
	Members          []string                `json:"members,omitempty"`
	InviteCode       string                  `json:"inviteCode,omitempty"`
}

type BudgetHandler struct {
	budgetService Service
}

func NewBudgetHandler(budgetService Service) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (handler *BudgetHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	doc, err := handler.budgetService.GetDocument(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(DocumentToDTO(doc)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new expense")
	w.Header().Set("Content-Type", "application/json")

	var dto struct {
		Date     string  `json:"date"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Note     string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expense, err := handler.budgetService.AddExpense(r.Context(), dto.Date, dto.Amount, dto.Category, dto.Note)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if expense == nil {
		// Rejected amount: nothing created, respond with the unchanged document.
		handler.GetDocument(w, r)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(*expense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := handler.budgetService.DeleteExpense(r.Context(), vars["date"], vars["expenseId"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *BudgetHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto struct {
		DailyGoal float64 `json:"dailyGoal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := handler.budgetService.SetDailyGoal(r.Context(), dto.DailyGoal); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.GetDocument(w, r)
}

func (handler *BudgetHandler) SetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := handler.budgetService.SetCustomCategories(r.Context(), dto.Categories); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.GetDocument(w, r)
}

func (handler *BudgetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := handler.budgetService.Reset(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.GetDocument(w, r)
}

func (handler *BudgetHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := handler.budgetService.Export(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="budget.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Import(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := handler.budgetService.Import(r.Context(), data); err != nil {
		if errors.Is(err, ErrInvalidImport) {
			w.WriteHeader(http.StatusBadRequest)
			rest.WriteError(w, rest.ErrorResponse{Error: "Invalid budget file", Details: err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.GetDocument(w, r)
}

func (handler *BudgetHandler) Switch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto struct {
		BudgetID string `json:"budgetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := handler.budgetService.Switch(r.Context(), dto.BudgetID); err != nil {
		w.WriteHeader(http.StatusNotFound)
		rest.WriteError(w, rest.ErrorResponse{Error: "Budget not available", Details: err.Error()})
		return
	}
	handler.GetDocument(w, r)
}

func ExpenseToDTO(e Expense) ExpenseDTO {
	return ExpenseDTO(e)
}

func DocumentToDTO(doc *Document) DocumentDTO {
	expenses := make(map[string][]ExpenseDTO, len(doc.Expenses))
	for key, bucket := range doc.Expenses {
		dtos := make([]ExpenseDTO, 0, len(bucket))
		for _, e := range bucket {
			dtos = append(dtos, ExpenseToDTO(e))
		}
		expenses[key] = dtos
	}
	return DocumentDTO{
		DailyGoal:        doc.DailyGoal,
		CustomCategories: doc.CustomCategories,
		Expenses:         expenses,
		Name:             doc.Name,
		OwnerID:          doc.OwnerID,
		Members:          doc.Members,
		InviteCode:       doc.InviteCode,
	}
}
