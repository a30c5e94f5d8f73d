// Package report composes the weekly summary.
package report

import (
	"fmt"
	"strings"

	"github.com/gyaneshwarpardhi/behaviour/internal/achievement"
	"github.com/gyaneshwarpardhi/behaviour/internal/aggregate"
	"github.com/gyaneshwarpardhi/behaviour/internal/event"
	"github.com/gyaneshwarpardhi/behaviour/internal/period"
	"github.com/gyaneshwarpardhi/behaviour/internal/streak"
)

// Title heads the shareable text.
const Title = "Weekly Behaviour Report"

// None is the sentinel entry used when the week has no events.
var None = Entry{Name: "None", Points: 0}

// Entry is a named total: a weekday or a category.
type Entry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Report is the weekly summary handed to the host.
type Report struct {
	Range        period.Range        `json:"range"`
	Total        int                 `json:"total"`
	Positives    int                 `json:"positives"`
	Negatives    int                 `json:"negatives"`
	Days         []Entry             `json:"days"`
	BestDay      Entry               `json:"best_day"`
	WorstDay     Entry               `json:"worst_day"`
	Categories   []Entry             `json:"categories"`
	TopCategory  Entry               `json:"top_category"`
	Streaks      streak.Streaks      `json:"streaks"`
	Achievements []achievement.Badge `json:"achievements"`
}

// Weekly summarises the events that fall inside week. Streaks cover the whole
// history; achievements see the week total with today's score zeroed.
func Weekly(events []event.Event, week period.Range) Report {
	loc := week.Start.Location()
	r := Report{Range: week}

	var inWeek []event.Event
	for _, e := range events {
		if !week.Contains(e.Timestamp) {
			continue
		}
		inWeek = append(inWeek, e)
		r.Total += e.Points
		switch {
		case e.Points > 0:
			r.Positives++
		case e.Points < 0:
			r.Negatives++
		}
	}

	r.Days = totals(inWeek, func(e event.Event) string {
		return e.Timestamp.In(loc).Weekday().String()[:3]
	})
	r.Categories = totals(inWeek, func(e event.Event) string { return e.Category })
	r.BestDay = pick(r.Days, func(a, b int) bool { return a > b })
	r.WorstDay = pick(r.Days, func(a, b int) bool { return a < b })
	r.TopCategory = pick(r.Categories, func(a, b int) bool { return a > b })

	r.Streaks = streak.Compute(events, loc)
	r.Achievements = achievement.Evaluate(r.Streaks, aggregate.Scores{Today: 0, Week: r.Total, Total: r.Total})
	return r
}

// totals sums points by key in first-seen order.
func totals(events []event.Event, key func(event.Event) string) []Entry {
	out := []Entry{}
	idx := make(map[string]int)
	for _, e := range events {
		k := key(e)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Entry{Name: k})
		}
		out[i].Points += e.Points
	}
	return out
}

// pick returns the first entry that no later entry beats.
func pick(entries []Entry, better func(a, b int) bool) Entry {
	if len(entries) == 0 {
		return None
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if better(e.Points, best.Points) {
			best = e
		}
	}
	return best
}

// ShareText renders the plain-text summary users copy out of the app.
func (r Report) ShareText() string {
	achievements := "None"
	if len(r.Achievements) > 0 {
		achievements = strings.Join(achievement.Labels(r.Achievements), ", ")
	}
	var b strings.Builder
	b.WriteString(Title + "\n\n")
	fmt.Fprintf(&b, "Total points: %d\n", r.Total)
	fmt.Fprintf(&b, "Best day: %s (%d)\n", r.BestDay.Name, r.BestDay.Points)
	fmt.Fprintf(&b, "Top category: %s (%d)\n", r.TopCategory.Name, r.TopCategory.Points)
	fmt.Fprintf(&b, "Achievements: %s\n", achievements)
	return b.String()
}
