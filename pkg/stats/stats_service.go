package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/spendwell/spendwell/internal/utils"
	"github.com/spendwell/spendwell/pkg/budget"
	"github.com/spendwell/spendwell/pkg/datekey"
)

// DocumentProvider yields the active budget document for the current user.
// Implemented by the sync coordinator's session manager.
type DocumentProvider interface {
	ActiveDocument(ctx context.Context) (*budget.Document, error)
}

type StatsService interface {
	GetDaySummary(ctx context.Context, dateKey string) (DaySummary, error)
	GetWeek(ctx context.Context, date time.Time) (WeekAggregate, error)
	GetHistory(ctx context.Context, anchor time.Time) ([]WeekAggregate, error)
}

type StatsServiceImpl struct {
	provider DocumentProvider
	clock    utils.Clock
}

func NewStatsServiceImpl(provider DocumentProvider, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{provider: provider, clock: clock}
}

func (s *StatsServiceImpl) GetDaySummary(ctx context.Context, dateKey string) (DaySummary, error) {
	if dateKey == "" {
		dateKey = datekey.Format(s.clock.Now())
	}
	if !datekey.IsValid(dateKey) {
		return DaySummary{}, fmt.Errorf("invalid date key %q", dateKey)
	}
	doc, err := s.provider.ActiveDocument(ctx)
	if err != nil {
		return DaySummary{}, fmt.Errorf("failed to resolve active document: %w", err)
	}
	return DaySummaryFor(doc, dateKey), nil
}

func (s *StatsServiceImpl) GetWeek(ctx context.Context, date time.Time) (WeekAggregate, error) {
	if date.IsZero() {
		date = s.clock.Now()
	}
	doc, err := s.provider.ActiveDocument(ctx)
	if err != nil {
		return WeekAggregate{}, fmt.Errorf("failed to resolve active document: %w", err)
	}
	return WeekAggregateFor(doc, datekey.WeekStart(date)), nil
}

func (s *StatsServiceImpl) GetHistory(ctx context.Context, anchor time.Time) ([]WeekAggregate, error) {
	if anchor.IsZero() {
		anchor = s.clock.Now()
	}
	doc, err := s.provider.ActiveDocument(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active document: %w", err)
	}
	return FiveWeekHistory(doc, anchor), nil
}
