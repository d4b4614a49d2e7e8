package domain

import (
	"time"

	"github.com/Prodbylino/shiftflow/pkg/errors"
)

// Window is a half-open date range [Start, End). A shift dated exactly
// at End falls outside the window.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the window covering the given calendar month.
func MonthWindow(year, month int) (Window, error) {
	if month < 1 || month > 12 {
		return Window{}, errors.BadRequest("month must be between 1 and 12")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}, nil
}

// FinancialYearWindow returns the window for the financial year that
// starts on July 1 of startYear and runs to July 1 of the next year.
func FinancialYearWindow(startYear int) (Window, error) {
	start := time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC)
	return Window{
		Start: start,
		End:   start.AddDate(1, 0, 0),
	}, nil
}

// Contains reports whether the given day falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Bounds returns the window edges formatted as SQL date parameters.
func (w Window) Bounds() (string, string) {
	return w.Start.Format(DateFormat), w.End.Format(DateFormat)
}

// Label returns a display label such as "FY2024-25" for a financial
// year window or "2024-03" for a month window.
func (w Window) Label() string {
	if w.Start.Month() == time.July && w.Start.Day() == 1 && w.End.Year() == w.Start.Year()+1 {
		return "FY" + w.Start.Format("2006") + "-" + w.End.Format("06")
	}
	return w.Start.Format("2006-01")
}
