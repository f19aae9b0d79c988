package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/spendwell/spendwell/pkg/datekey"
)

type WeekRenderer interface {
	RenderWeek(week WeekAggregate) (string, error)
}

// CsvWeekRendererImpl renders a week aggregate as CSV for spreadsheet import.
type CsvWeekRendererImpl struct {
}

func NewCsvWeekRenderer() *CsvWeekRendererImpl {
	return &CsvWeekRendererImpl{}
}

func (t *CsvWeekRendererImpl) RenderWeek(week WeekAggregate) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Week", datekey.WeekLabel(week.WeekStart)}
	dayNames := []string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	dayTotals := []string{"Spent"}
	for _, total := range week.PerDayTotals {
		dayTotals = append(dayTotals, amountToString(total))
	}

	rows := [][]string{
		header,
		dayNames,
		dayTotals,
		{"Total", amountToString(week.Total)},
		{"Daily average", amountToString(week.DailyAverage)},
		{},
		{"Category", "Spent"},
	}
	for _, ct := range week.CategoryTotals {
		rows = append(rows, []string{ct.Category, amountToString(ct.Total)})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("could not render week as CSV: %w", err)
	}
	w.Flush()
	return buf.String(), nil
}

// amountToString rounds to two decimals for display; internal sums stay unrounded.
func amountToString(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
