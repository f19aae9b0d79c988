package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/spendwell/spendwell/internal/utils"
)

func newTestHandler() (*BudgetHandler, *Store) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	store := NewStore("personal:alice", nil, clock, nil)
	return NewBudgetHandler(NewService(NewStubSessions(store))), store
}

func TestGetDocumentEndpoint(t *testing.T) {
	handler, store := newTestHandler()
	store.AddExpense(context.Background(), "2025-03-10", 12.5, "groceries", "milk")

	req := httptest.NewRequest("GET", "/api/budget", nil)
	w := httptest.NewRecorder()
	handler.GetDocument(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var dto DocumentDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, DefaultDailyGoal, dto.DailyGoal)
	require.Len(t, dto.Expenses["2025-03-10"], 1)
	assert.Equal(t, 12.5, dto.Expenses["2025-03-10"][0].Amount)
}

func TestAddExpenseEndpoint(t *testing.T) {
	handler, store := newTestHandler()

	body := `{"date": "2025-03-10", "amount": 9.99, "category": "eating out", "note": "lunch"}`
	req := httptest.NewRequest("POST", "/api/budget/expense", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.AddExpense(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var dto ExpenseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, 9.99, dto.Amount)
	assert.Len(t, store.Document().Expenses["2025-03-10"], 1)
}

func TestAddExpenseEndpointRejectedAmount(t *testing.T) {
	handler, store := newTestHandler()

	body := `{"date": "2025-03-10", "amount": -1, "category": "eating out"}`
	req := httptest.NewRequest("POST", "/api/budget/expense", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.AddExpense(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.Document().Expenses)

	// The body carries the unchanged document, same as the other mutation
	// endpoints.
	var dto DocumentDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Empty(t, dto.Expenses)
	assert.Equal(t, DefaultDailyGoal, dto.DailyGoal)
}

func TestAddExpenseEndpointBadDate(t *testing.T) {
	handler, _ := newTestHandler()

	body := `{"date": "today", "amount": 5, "category": "bills"}`
	req := httptest.NewRequest("POST", "/api/budget/expense", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.AddExpense(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteExpenseEndpoint(t *testing.T) {
	handler, store := newTestHandler()
	expense, _ := store.AddExpense(context.Background(), "2025-03-10", 10, "groceries", "")

	req := httptest.NewRequest("DELETE", "/api/budget/expense/2025-03-10/"+expense.ID, nil)
	req = mux.SetURLVars(req, map[string]string{"date": "2025-03-10", "expenseId": expense.ID})
	w := httptest.NewRecorder()
	handler.DeleteExpense(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Document().Expenses)
}

func TestSetGoalEndpoint(t *testing.T) {
	handler, store := newTestHandler()

	req := httptest.NewRequest("PUT", "/api/budget/goal", strings.NewReader(`{"dailyGoal": 75}`))
	w := httptest.NewRecorder()
	handler.SetGoal(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 75.0, store.Document().DailyGoal)
}

func TestImportEndpointRejectsMalformedFile(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest("POST", "/api/budget/import", strings.NewReader(`{"nope": true}`))
	w := httptest.NewRecorder()
	handler.Import(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid budget file")
}

func TestExportEndpoint(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest("GET", "/api/budget/export", nil)
	w := httptest.NewRecorder()
	handler.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "budget.json")
	_, err := ParseImport(w.Body.Bytes())
	assert.NoError(t, err)
}
