package report_test

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/gyaneshwarpardhi/behaviour/internal/achievement"
	"github.com/gyaneshwarpardhi/behaviour/internal/event"
	"github.com/gyaneshwarpardhi/behaviour/internal/period"
	"github.com/gyaneshwarpardhi/behaviour/internal/report"
	"github.com/gyaneshwarpardhi/behaviour/internal/streak"
)

var loc = time.FixedZone("UTC+5", 5*60*60)

func ev(category string, pts int, d, h int) event.Event {
	return event.Event{
		ID:        category,
		Category:  category,
		Points:    pts,
		Timestamp: time.Date(2026, time.October, d, h, 0, 0, 0, loc).UTC(),
	}
}

func fixture() []event.Event {
	return []event.Event{
		ev("Health", 2, 9, 10),
		ev("Health", 1, 10, 10),
		ev("Health", 1, 11, 10),
		ev("Health", 3, 12, 8),
		ev("Work", 2, 12, 18),
		ev("Sleep", -2, 13, 7),
		ev("Health", 0, 14, 12),
		ev("Work", 5, 15, 9),
		ev("Health", -2, 16, 21),
		ev("Work", 50, 19, 0),
	}
}

func week() period.Range {
	return period.Week(time.Date(2026, time.October, 17, 12, 0, 0, 0, loc), loc)
}

func TestWeekly(t *testing.T) {
	r := report.Weekly(fixture(), week())

	assert.Equal(t, 6, r.Total)
	assert.Equal(t, 3, r.Positives)
	assert.Equal(t, 2, r.Negatives)
	assert.Equal(t, []report.Entry{
		{Name: "Mon", Points: 5},
		{Name: "Tue", Points: -2},
		{Name: "Wed", Points: 0},
		{Name: "Thu", Points: 5},
		{Name: "Fri", Points: -2},
	}, r.Days)
	// Ties go to the earliest entry.
	assert.Equal(t, report.Entry{Name: "Mon", Points: 5}, r.BestDay)
	assert.Equal(t, report.Entry{Name: "Tue", Points: -2}, r.WorstDay)
	assert.Equal(t, []report.Entry{
		{Name: "Health", Points: 1},
		{Name: "Work", Points: 7},
		{Name: "Sleep", Points: -2},
	}, r.Categories)
	assert.Equal(t, report.Entry{Name: "Work", Points: 7}, r.TopCategory)
	assert.Equal(t, streak.Streaks{Current: 1, Best: 4, PositiveDays: 6}, r.Streaks)
	assert.Equal(t, []achievement.Badge{achievement.Streak3}, r.Achievements)
}

func TestWeeklyIgnoresTodayForAchievements(t *testing.T) {
	var events []event.Event
	for h := 0; h < 10; h++ {
		events = append(events, ev("Health", 3, 17, h))
	}
	r := report.Weekly(events, week())
	assert.Equal(t, 30, r.Total)
	assert.Equal(t, []achievement.Badge{achievement.StrongWeek}, r.Achievements)
}

func TestWeeklyEmptyWeekUsesSentinels(t *testing.T) {
	r := report.Weekly([]event.Event{ev("Health", 4, 1, 9)}, week())
	assert.Equal(t, 0, r.Total)
	assert.Empty(t, r.Days)
	assert.Equal(t, report.None, r.BestDay)
	assert.Equal(t, report.None, r.WorstDay)
	assert.Equal(t, report.None, r.TopCategory)
	assert.Equal(t, streak.Streaks{Current: 1, Best: 1, PositiveDays: 1}, r.Streaks)
	assert.Equal(t, "Weekly Behaviour Report\n\nTotal points: 0\nBest day: None (0)\nTop category: None (0)\nAchievements: None\n", r.ShareText())
}

func TestShareText(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "weekly_share_text", []byte(report.Weekly(fixture(), week()).ShareText()))
}
