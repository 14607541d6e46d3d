package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/filmdesk/internal/model"
)

// Period names a schedule window relative to today.
type Period string

const (
	PeriodAll      Period = "all"
	PeriodToday    Period = "today"
	PeriodWeek     Period = "week"
	PeriodMonth    Period = "month"
	PeriodUpcoming Period = "upcoming"
)

// Periods lists the schedule periods in display order.
var Periods = []Period{PeriodAll, PeriodToday, PeriodWeek, PeriodMonth, PeriodUpcoming}

// ParsePeriod resolves a period name, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (want all, today, week, month or upcoming)", s)
}

// Label returns the human-readable name of the period.
func (p Period) Label() string {
	switch p {
	case PeriodAll:
		return "All"
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "This week"
	case PeriodMonth:
		return "This month"
	case PeriodUpcoming:
		return "Upcoming"
	}
	return string(p)
}

// Next cycles to the following period, wrapping around.
func (p Period) Next() Period {
	for i, known := range Periods {
		if p == known {
			return Periods[(i+1)%len(Periods)]
		}
	}
	return Periods[0]
}

// RangeFor computes the inclusive date range of p around now's local
// calendar date. Weeks run Monday to Sunday.
func RangeFor(p Period, now time.Time) model.DateRange {
	today := model.Day(now.Local())
	switch p {
	case PeriodToday:
		return model.DateRange{From: today, To: today}
	case PeriodWeek:
		monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
		return model.DateRange{From: monday, To: monday.AddDate(0, 0, 6)}
	case PeriodMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return model.DateRange{From: first, To: first.AddDate(0, 1, -1)}
	case PeriodUpcoming:
		return model.DateRange{From: today}
	}
	return model.DateRange{}
}
