package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/spendwell/spendwell/pkg/budget"
	"github.com/spendwell/spendwell/pkg/category"
)

func docWithExpenses(goal float64, expenses map[string][]budget.Expense) *budget.Document {
	doc := budget.NewDefaultDocument()
	doc.DailyGoal = goal
	for key, bucket := range expenses {
		doc.Expenses[key] = bucket
	}
	return doc
}

func TestDayTotal(t *testing.T) {
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {{ID: "e1", Amount: 12.5}, {ID: "e2", Amount: 7.5}},
	})

	assert.Equal(t, 20.0, DayTotal(doc, "2025-03-10"))
	assert.Equal(t, 0.0, DayTotal(doc, "2025-03-11"))
}

func TestDaySummaryNormalProgress(t *testing.T) {
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {{ID: "e1", Amount: 12.5}},
	})

	summary := DaySummaryFor(doc, "2025-03-10")

	assert.Equal(t, 12.5, summary.Total)
	assert.Equal(t, 37.5, summary.Remaining)
	assert.Equal(t, ProgressNormal, summary.Progress)
}

func TestDaySummaryOverBudget(t *testing.T) {
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {{ID: "e1", Amount: 60}},
	})

	summary := DaySummaryFor(doc, "2025-03-10")

	assert.Equal(t, 60.0, summary.Total)
	assert.Equal(t, -10.0, summary.Remaining)
	assert.Equal(t, ProgressOver, summary.Progress)
}

func TestProgressThresholds(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		goal  float64
		want  ProgressState
	}{
		{"well under", 10, 50, ProgressNormal},
		{"just under warning", 37.49, 50, ProgressNormal},
		{"at 75 percent", 37.5, 50, ProgressWarning},
		{"exactly at goal", 50, 50, ProgressWarning},
		{"over goal", 50.01, 50, ProgressOver},
		{"zero goal no spending", 0, 0, ProgressNormal},
		{"zero goal with spending", 1, 0, ProgressOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progressFor(tt.total, tt.goal))
		})
	}
}

func TestWeekAggregatePerDayTotals(t *testing.T) {
	// Monday 2025-03-10 through Sunday 2025-03-16.
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {{ID: "e1", Amount: 10}},
		"2025-03-13": {{ID: "e2", Amount: 20}},
	})
	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	agg := WeekAggregateFor(doc, weekStart)

	assert.Equal(t, [7]float64{10, 0, 0, 20, 0, 0, 0}, agg.PerDayTotals)
	assert.Equal(t, 30.0, agg.Total)
}

func TestDailyAverageExcludesZeroSpendDays(t *testing.T) {
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {{ID: "e1", Amount: 10}},
		"2025-03-13": {{ID: "e2", Amount: 20}},
	})

	agg := WeekAggregateFor(doc, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 15.0, agg.DailyAverage)
}

func TestDailyAverageZeroWhenNoSpending(t *testing.T) {
	doc := budget.NewDefaultDocument()

	agg := WeekAggregateFor(doc, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0.0, agg.DailyAverage)
}

func TestCategoryTotalsSortedDescending(t *testing.T) {
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {
			{ID: "e1", Amount: 5, Category: "groceries"},
			{ID: "e2", Amount: 30, Category: "bills"},
			{ID: "e3", Amount: 10, Category: "groceries"},
			{ID: "e4", Amount: 15, Category: "transport"},
		},
	})

	agg := WeekAggregateFor(doc, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	require.Len(t, agg.CategoryTotals, 3)
	assert.Equal(t, "bills", agg.CategoryTotals[0].Category)
	assert.Equal(t, 30.0, agg.CategoryTotals[0].Total)
	assert.Equal(t, "groceries", agg.CategoryTotals[1].Category)
	assert.Equal(t, 15.0, agg.CategoryTotals[1].Total)
	assert.Equal(t, "transport", agg.CategoryTotals[2].Category)
}

func TestCategoryTotalsTieBrokenByName(t *testing.T) {
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {
			{ID: "e1", Amount: 10, Category: "transport"},
			{ID: "e2", Amount: 10, Category: "bills"},
		},
	})

	agg := WeekAggregateFor(doc, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	require.Len(t, agg.CategoryTotals, 2)
	assert.Equal(t, "bills", agg.CategoryTotals[0].Category)
	assert.Equal(t, "transport", agg.CategoryTotals[1].Category)
}

func TestCategoryTotalsCarryColors(t *testing.T) {
	doc := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {
			{ID: "e1", Amount: 10, Category: "groceries"},
			{ID: "e2", Amount: 5, Category: "spaceships"},
		},
	})

	agg := WeekAggregateFor(doc, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	require.Len(t, agg.CategoryTotals, 2)
	assert.Equal(t, category.ColorFor("groceries"), agg.CategoryTotals[0].Color)
	assert.Equal(t, category.DefaultColor, agg.CategoryTotals[1].Color)
}

func TestWeekGoalStatus(t *testing.T) {
	over := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {{ID: "e1", Amount: 400}},
	})
	agg := WeekAggregateFor(over, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, OverGoal, agg.GoalStatus)
	assert.Equal(t, 50.0, agg.GoalDelta)

	under := docWithExpenses(50, map[string][]budget.Expense{
		"2025-03-10": {{ID: "e1", Amount: 100}},
	})
	agg = WeekAggregateFor(under, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, UnderGoal, agg.GoalStatus)
	assert.Equal(t, 250.0, agg.GoalDelta)
}

func TestFiveWeekHistoryOrderAndSpan(t *testing.T) {
	doc := budget.NewDefaultDocument()
	anchor := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC) // Wednesday

	history := FiveWeekHistory(doc, anchor)

	require.Len(t, history, 5)
	// Oldest first; current week last.
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), history[0].WeekStart)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), history[4].WeekStart)
	for i := 1; i < 5; i++ {
		assert.Equal(t, history[i-1].WeekStart.AddDate(0, 0, 7), history[i].WeekStart)
	}
}

func TestFiveWeekHistoryAllZero(t *testing.T) {
	doc := budget.NewDefaultDocument() // goal 50, no expenses

	history := FiveWeekHistory(doc, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))

	for _, week := range history {
		assert.Equal(t, UnderGoal, week.GoalStatus)
		assert.Equal(t, 350.0, week.GoalDelta)
		assert.Equal(t, 0.0, week.Total)
	}
}
