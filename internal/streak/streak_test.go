package streak_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
	"github.com/gyaneshwarpardhi/behaviour/internal/streak"
)

var loc = time.FixedZone("UTC-3", -3*60*60)

// day returns an event at noon local time, offset days from 2026-02-26.
func day(offset, pts int) event.Event {
	ts := time.Date(2026, time.February, 26+offset, 12, 0, 0, 0, loc)
	return event.Event{ID: ts.String(), Category: "c", Points: pts, Timestamp: ts.UTC()}
}

func TestCompute(t *testing.T) {
	cases := []struct {
		name   string
		events []event.Event
		want   streak.Streaks
	}{
		{
			name: "empty history",
			want: streak.Streaks{},
		},
		{
			name:   "single positive day",
			events: []event.Event{day(0, 2)},
			want:   streak.Streaks{Current: 1, Best: 1, PositiveDays: 1},
		},
		{
			name:   "broken by a non-positive day",
			events: []event.Event{day(0, 1), day(1, 1), day(2, 1), day(3, 0), day(4, 1)},
			want:   streak.Streaks{Current: 1, Best: 3, PositiveDays: 4},
		},
		{
			name:   "negative day resets to zero",
			events: []event.Event{day(0, 1), day(1, 1), day(2, -4)},
			want:   streak.Streaks{Current: 0, Best: 2, PositiveDays: 2},
		},
		{
			name:   "gap restarts at one",
			events: []event.Event{day(0, 1), day(1, 1), day(5, 1), day(6, 1), day(7, 1)},
			want:   streak.Streaks{Current: 3, Best: 3, PositiveDays: 5},
		},
		{
			name:   "several events sum per day",
			events: []event.Event{day(0, 3), day(0, -2), day(1, -1), day(1, 2), day(2, -1), day(2, 1)},
			want:   streak.Streaks{Current: 0, Best: 2, PositiveDays: 2},
		},
		{
			name:   "month boundary is contiguous",
			events: []event.Event{day(1, 1), day(2, 1), day(3, 1), day(4, 1)},
			want:   streak.Streaks{Current: 4, Best: 4, PositiveDays: 4},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, streak.Compute(tc.events, loc))
		})
	}
}

func TestComputeIgnoresInputOrder(t *testing.T) {
	events := []event.Event{day(2, 1), day(0, 1), day(1, 1)}
	assert.Equal(t, streak.Streaks{Current: 3, Best: 3, PositiveDays: 3}, streak.Compute(events, loc))
}

func TestCurrentSurvivesGapToToday(t *testing.T) {
	// Nothing logged for weeks after the run; Current still reports it.
	events := []event.Event{day(0, 1), day(1, 1)}
	assert.Equal(t, 2, streak.Compute(events, loc).Current)
}

func TestDailyTotalsUseLocalDay(t *testing.T) {
	// 01:00 UTC on the 27th is still the 26th at UTC-3.
	late := event.Event{Points: 4, Timestamp: time.Date(2026, time.February, 27, 1, 0, 0, 0, time.UTC)}
	got := streak.DailyTotals([]event.Event{day(0, 1), late}, loc)
	assert.Equal(t, []streak.DayTotal{{Date: "2026-02-26", Points: 5}}, got)
	assert.Equal(t, []streak.DayTotal{{Date: "2026-02-26", Points: 1}, {Date: "2026-02-27", Points: 4}},
		streak.DailyTotals([]event.Event{day(0, 1), late}, time.UTC))
}
