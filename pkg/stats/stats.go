package stats

import (
	"time"
)

// ProgressState drives the daily progress bar.
type ProgressState string

const (
	// ProgressNormal: spending below 75% of the daily goal.
	ProgressNormal ProgressState = "normal"
	// ProgressWarning: spending between 75% and 100% of the daily goal.
	ProgressWarning ProgressState = "warning"
	// ProgressOver: spending above the daily goal.
	ProgressOver ProgressState = "over"
)

// GoalStatus reports how a week compares to the weekly goal (dailyGoal x 7).
type GoalStatus string

const (
	UnderGoal GoalStatus = "under"
	OverGoal  GoalStatus = "over"
)

// DaySummary is the per-day view: total spent against the daily goal.
type DaySummary struct {
	DateKey   string
	Total     float64
	Goal      float64
	Remaining float64 // negative when over budget
	Progress  ProgressState
}

// CategoryTotal is one slice of a week's category breakdown.
type CategoryTotal struct {
	Category string
	Color    string
	Total    float64
}

// WeekAggregate is the weekly view: totals, per-day bars, category breakdown,
// and the position relative to the weekly goal.
type WeekAggregate struct {
	WeekStart time.Time
	Total     float64
	// DailyAverage divides the total by the number of days that actually had
	// spending, so empty days do not dilute the average. 0 when no day had
	// spending.
	DailyAverage   float64
	CategoryTotals []CategoryTotal
	PerDayTotals   [7]float64
	GoalStatus     GoalStatus
	// GoalDelta is the absolute distance from dailyGoal*7.
	GoalDelta float64
}
