package metrics

import "time"

// Period selects the dashboard comparison window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Days returns the rolling window length of the period.
func (p Period) Days() int {
	switch p {
	case PeriodWeekly:
		return 7
	case PeriodYearly:
		return 365
	default:
		return 30
	}
}

// Window is a half-open time span [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// CurrentWindow returns the rolling window of the period ending at now.
func CurrentWindow(p Period, now time.Time) Window {
	return Window{Start: now.AddDate(0, 0, -p.Days()), End: now}
}

// Previous returns the equal-length window immediately before w.
func (w Window) Previous() Window {
	length := w.End.Sub(w.Start)
	return Window{Start: w.Start.Add(-length), End: w.Start}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
