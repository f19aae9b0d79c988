package stats

import (
	"sort"
	"time"

	"github.com/spendwell/spendwell/pkg/budget"
	"github.com/spendwell/spendwell/pkg/category"
	"github.com/spendwell/spendwell/pkg/datekey"
)

// The aggregation engine is pure: every view is recomputed on demand from the
// document, nothing is cached. Sums stay unrounded float64; rounding happens
// only at presentation.

// DayTotal sums the expense amounts in the bucket for dateKey; 0 when the
// bucket is absent.
func DayTotal(doc *budget.Document, dateKey string) float64 {
	total := 0.0
	for _, e := range doc.Expenses[dateKey] {
		total += e.Amount
	}
	return total
}

// DaySummaryFor computes the daily progress view for dateKey.
func DaySummaryFor(doc *budget.Document, dateKey string) DaySummary {
	total := DayTotal(doc, dateKey)
	return DaySummary{
		DateKey:   dateKey,
		Total:     total,
		Goal:      doc.DailyGoal,
		Remaining: doc.DailyGoal - total,
		Progress:  progressFor(total, doc.DailyGoal),
	}
}

func progressFor(total, goal float64) ProgressState {
	if goal <= 0 {
		if total > 0 {
			return ProgressOver
		}
		return ProgressNormal
	}
	switch ratio := total / goal; {
	case ratio > 1:
		return ProgressOver
	case ratio >= 0.75:
		return ProgressWarning
	default:
		return ProgressNormal
	}
}

// WeekAggregateFor aggregates the 7 calendar days starting at weekStart,
// which must be a Monday (see datekey.WeekStart).
func WeekAggregateFor(doc *budget.Document, weekStart time.Time) WeekAggregate {
	agg := WeekAggregate{WeekStart: weekStart}

	byCategory := map[string]float64{}
	daysWithSpending := 0
	for i := 0; i < 7; i++ {
		key := datekey.Format(weekStart.AddDate(0, 0, i))
		dayTotal := 0.0
		for _, e := range doc.Expenses[key] {
			dayTotal += e.Amount
			byCategory[e.Category] += e.Amount
		}
		agg.PerDayTotals[i] = dayTotal
		agg.Total += dayTotal
		if dayTotal != 0 {
			daysWithSpending++
		}
	}
	if daysWithSpending > 0 {
		agg.DailyAverage = agg.Total / float64(daysWithSpending)
	}

	agg.CategoryTotals = make([]CategoryTotal, 0, len(byCategory))
	for id, total := range byCategory {
		agg.CategoryTotals = append(agg.CategoryTotals, CategoryTotal{
			Category: id,
			Color:    category.ColorFor(id),
			Total:    total,
		})
	}
	// Descending by amount for presentation; name breaks ties so the order is stable.
	sort.Slice(agg.CategoryTotals, func(i, j int) bool {
		if agg.CategoryTotals[i].Total != agg.CategoryTotals[j].Total {
			return agg.CategoryTotals[i].Total > agg.CategoryTotals[j].Total
		}
		return agg.CategoryTotals[i].Category < agg.CategoryTotals[j].Category
	})

	weeklyGoal := doc.DailyGoal * 7
	if agg.Total > weeklyGoal {
		agg.GoalStatus = OverGoal
		agg.GoalDelta = agg.Total - weeklyGoal
	} else {
		agg.GoalStatus = UnderGoal
		agg.GoalDelta = weeklyGoal - agg.Total
	}
	return agg
}

// FiveWeekHistory returns the week containing anchor plus the four preceding
// complete weeks, oldest first.
func FiveWeekHistory(doc *budget.Document, anchor time.Time) []WeekAggregate {
	currentWeek := datekey.WeekStart(anchor)
	history := make([]WeekAggregate, 0, 5)
	for i := 4; i >= 0; i-- {
		weekStart := currentWeek.AddDate(0, 0, -7*i)
		history = append(history, WeekAggregateFor(doc, weekStart))
	}
	return history
}
