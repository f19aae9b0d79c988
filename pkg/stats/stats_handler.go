package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/spendwell/spendwell/internal/rest"
	"github.com/spendwell/spendwell/pkg/datekey"
)

type DaySummaryDTO struct {
	Date      string  `json:"date"`
	Label     string  `json:"label"`
	Total     float64 `json:"total"`
	Goal      float64 `json:"goal"`
	Remaining float64 `json:"remaining"`
	Progress  string  `json:"progress"`
}

type CategoryTotalDTO struct {
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Total    float64 `json:"total"`
}

type WeekAggregateDTO struct {
	WeekStart      string             `json:"weekStart"`
	Label          string             `json:"label"`
	Total          float64            `json:"total"`
	DailyAverage   float64            `json:"dailyAverage"`
	CategoryTotals []CategoryTotalDTO `json:"categoryTotals"`
	PerDayTotals   []float64          `json:"perDayTotals"`
	GoalStatus     string             `json:"goalStatus"`
	GoalDelta      float64            `json:"goalDelta"`
}

type StatsHandler struct {
	statsService StatsService
	weekRenderer WeekRenderer
}

func NewStatsHandler(statsService StatsService, weekRenderer WeekRenderer) *StatsHandler {
	return &StatsHandler{statsService, weekRenderer}
}

func (handler *StatsHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	dateKey := r.URL.Query().Get("date")

	summary, err := handler.statsService.GetDaySummary(r.Context(), dateKey)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		rest.WriteError(w, rest.ErrorResponse{Error: "Invalid date", Details: err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(daySummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}

	week, err := handler.statsService.GetWeek(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		out, err := handler.weekRenderer.RenderWeek(week)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(out)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(weekToDTO(week)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}

	history, err := handler.statsService.GetHistory(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]WeekAggregateDTO, 0, len(history))
	for _, week := range history {
		dtos = append(dtos, weekToDTO(week))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseDateParam reads the optional ?date=YYYY-MM-DD query parameter. A zero
// time means "today" and is resolved by the service's clock.
func parseDateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateString := r.URL.Query().Get("date")
	if dateString == "" {
		return time.Time{}, true
	}
	date, err := datekey.Parse(dateString)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		rest.WriteError(w, rest.ErrorResponse{Error: "Invalid date format", Details: "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func daySummaryToDTO(s DaySummary) DaySummaryDTO {
	return DaySummaryDTO{
		Date:      s.DateKey,
		Label:     datekey.Label(s.DateKey),
		Total:     s.Total,
		Goal:      s.Goal,
		Remaining: s.Remaining,
		Progress:  string(s.Progress),
	}
}

func weekToDTO(week WeekAggregate) WeekAggregateDTO {
	categories := make([]CategoryTotalDTO, 0, len(week.CategoryTotals))
	for _, ct := range week.CategoryTotals {
		categories = append(categories, CategoryTotalDTO(ct))
	}
	return WeekAggregateDTO{
		WeekStart:      datekey.Format(week.WeekStart),
		Label:          datekey.WeekLabel(week.WeekStart),
		Total:          week.Total,
		DailyAverage:   week.DailyAverage,
		CategoryTotals: categories,
		PerDayTotals:   week.PerDayTotals[:],
		GoalStatus:     string(week.GoalStatus),
		GoalDelta:      week.GoalDelta,
	}
}
