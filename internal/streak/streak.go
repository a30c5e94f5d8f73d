// Package streak computes runs of consecutive positive days.
package streak

import (
	"sort"
	"time"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
	"github.com/gyaneshwarpardhi/behaviour/internal/period"
)

// Streaks summarises the whole history.
//
// Current is the run length as of the last day that has any events; a gap
// between that day and today does not reset it.
type Streaks struct {
	Current      int `json:"current"`
	Best         int `json:"best"`
	PositiveDays int `json:"positive_days"`
}

// DayTotal is the summed points of one calendar day.
type DayTotal struct {
	Date   string `json:"date"` // YYYY-MM-DD in the engine's location
	Points int    `json:"points"`
}

// Positive reports whether the day counts towards a streak.
func (d DayTotal) Positive() bool { return d.Points > 0 }

// DailyTotals groups events by local calendar day, oldest first.
func DailyTotals(events []event.Event, loc *time.Location) []DayTotal {
	sums := make(map[string]int)
	for _, e := range events {
		sums[period.Key(e.Timestamp, loc)] += e.Points
	}
	days := make([]DayTotal, 0, len(sums))
	for k, v := range sums {
		days = append(days, DayTotal{Date: k, Points: v})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// Compute walks the daily totals in order and tracks the current and best runs.
func Compute(events []event.Event, loc *time.Location) Streaks {
	var s Streaks
	var prev string
	for _, day := range DailyTotals(events, loc) {
		switch {
		case day.Positive() && prev != "" && nextDay(prev) == day.Date:
			s.Current++
		case day.Positive():
			s.Current = 1
		default:
			s.Current = 0
		}
		if day.Positive() {
			s.PositiveDays++
		}
		if s.Current > s.Best {
			s.Best = s.Current
		}
		prev = day.Date
	}
	return s
}

func nextDay(key string) string {
	d, err := time.Parse(period.DateKey, key)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, 1).Format(period.DateKey)
}
