package app

import (
	"github.com/gorilla/mux"
	"github.com/spendwell/spendwell/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Budget document
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetDocument).Methods("GET")
	r.HandleFunc("/api/budget/expense", deps.BudgetHandler.AddExpense).Methods("POST")
	r.HandleFunc("/api/budget/expense/{date}/{expenseId}", deps.BudgetHandler.DeleteExpense).Methods("DELETE")
	r.HandleFunc("/api/budget/goal", deps.BudgetHandler.SetGoal).Methods("PUT")
	r.HandleFunc("/api/budget/categories", deps.BudgetHandler.SetCategories).Methods("PUT")
	r.HandleFunc("/api/budget/reset", deps.BudgetHandler.Reset).Methods("POST")
	r.HandleFunc("/api/budget/export", deps.BudgetHandler.Export).Methods("GET")
	r.HandleFunc("/api/budget/import", deps.BudgetHandler.Import).Methods("POST")
	r.HandleFunc("/api/budget/switch", deps.BudgetHandler.Switch).Methods("POST")

	// Stats
	r.HandleFunc("/api/stats/day", deps.StatsHandler.GetDay).Methods("GET")
	r.HandleFunc("/api/stats/week", deps.StatsHandler.GetWeek).Methods("GET")
	r.HandleFunc("/api/stats/history", deps.StatsHandler.GetHistory).Methods("GET")

	// Categories
	r.HandleFunc("/api/categories", deps.CategoryHandler.ListCategories).Methods("GET")

	// Sharing
	r.HandleFunc("/api/sharing", deps.SharingHandler.Create).Methods("POST")
	r.HandleFunc("/api/sharing", deps.SharingHandler.ListMemberships).Methods("GET")
	r.HandleFunc("/api/sharing/join", deps.SharingHandler.Join).Methods("POST")
	r.HandleFunc("/api/sharing/{budgetId}/leave", deps.SharingHandler.Leave).Methods("POST")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")

	// Google sign-in
	r.HandleFunc("/api/auth/google/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/auth/google/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/auth/google/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
}
