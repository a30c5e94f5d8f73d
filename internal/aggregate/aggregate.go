// Package aggregate buckets events into chart series and scores.
package aggregate

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
	"github.com/gyaneshwarpardhi/behaviour/internal/period"
)

// WeekdayLabels are the weekly bucket labels, Monday first.
var WeekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Series is a chart-ready list of labelled totals.
type Series struct {
	Labels []string `json:"labels"`
	Totals []int    `json:"totals"`
}

// Sum returns the total across all buckets.
func (s Series) Sum() int {
	total := 0
	for _, v := range s.Totals {
		total += v
	}
	return total
}

// Scores are the running totals shown on the tracker.
type Scores struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Total int `json:"total"`
}

// Charts bundles every series the host renders.
type Charts struct {
	Hourly     Series `json:"hourly"`
	Weekly     Series `json:"weekly"`
	Monthly    Series `json:"monthly"`
	Categories Series `json:"categories"`
}

// Hourly returns 24 buckets for the day range, keyed by local hour.
func Hourly(events []event.Event, today period.Range) Series {
	loc := today.Start.Location()
	s := Series{Labels: make([]string, 24), Totals: make([]int, 24)}
	for h := range s.Labels {
		s.Labels[h] = fmt.Sprintf("%d:00", h)
	}
	for _, e := range events {
		if today.Contains(e.Timestamp) {
			s.Totals[e.Timestamp.In(loc).Hour()] += e.Points
		}
	}
	return s
}

// Weekly returns seven buckets, Monday to Sunday, for the week range.
func Weekly(events []event.Event, week period.Range) Series {
	return daily(events, week.Start, 7, func(i int) string { return WeekdayLabels[i] })
}

// Monthly returns one bucket per calendar day of the month range.
func Monthly(events []event.Event, month period.Range) Series {
	n := period.DaysInMonth(month.Start, month.Start.Location())
	return daily(events, month.Start, n, func(i int) string { return strconv.Itoa(i + 1) })
}

func daily(events []event.Event, start time.Time, n int, label func(int) string) Series {
	s := Series{Labels: make([]string, n), Totals: make([]int, n)}
	days := make([]period.Range, n)
	for i := range days {
		day := period.AddDays(start, i)
		days[i] = period.Range{Start: day, End: period.AddDays(day, 1)}
		s.Labels[i] = label(i)
	}
	for _, e := range events {
		for i, d := range days {
			if d.Contains(e.Timestamp) {
				s.Totals[i] += e.Points
				break
			}
		}
	}
	return s
}

// Categories sums points per category across all events, in first-seen order.
func Categories(events []event.Event) Series {
	s := Series{Labels: []string{}, Totals: []int{}}
	idx := make(map[string]int)
	for _, e := range events {
		i, ok := idx[e.Category]
		if !ok {
			i = len(s.Labels)
			idx[e.Category] = i
			s.Labels = append(s.Labels, e.Category)
			s.Totals = append(s.Totals, 0)
		}
		s.Totals[i] += e.Points
	}
	return s
}

// Score sums the points of events inside r.
func Score(events []event.Event, r period.Range) int {
	total := 0
	for _, e := range events {
		if r.Contains(e.Timestamp) {
			total += e.Points
		}
	}
	return total
}

// ScoresAt computes today's, this week's and the all-time score.
func ScoresAt(events []event.Event, now time.Time, loc *time.Location) Scores {
	return Scores{
		Today: Score(events, period.Today(now, loc)),
		Week:  Score(events, period.Week(now, loc)),
		Total: event.Sum(events),
	}
}

// ChartsAt builds every chart series relative to now.
func ChartsAt(events []event.Event, now time.Time, loc *time.Location) Charts {
	return Charts{
		Hourly:     Hourly(events, period.Today(now, loc)),
		Weekly:     Weekly(events, period.Week(now, loc)),
		Monthly:    Monthly(events, period.Month(now, loc)),
		Categories: Categories(events),
	}
}
