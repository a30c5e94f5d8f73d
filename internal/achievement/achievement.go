// Package achievement awards badges from streaks and scores.
package achievement

import (
	"github.com/gyaneshwarpardhi/behaviour/internal/aggregate"
	"github.com/gyaneshwarpardhi/behaviour/internal/streak"
)

// Badge is a threshold-triggered achievement.
type Badge string

const (
	Streak3    Badge = "3+ day streak"
	Streak7    Badge = "7+ day streak"
	GreatDay   Badge = "Great day"
	StrongWeek Badge = "Strong week"
	Total100   Badge = "100+ total points"
)

// Definition describes one badge and the rule that unlocks it.
type Definition struct {
	Badge Badge
	Emoji string
	Label string
	met   func(streak.Streaks, aggregate.Scores) bool
}

// definitions are kept in display order.
var definitions = []Definition{
	{Streak3, "🔥", "3+ day streak", func(s streak.Streaks, _ aggregate.Scores) bool { return s.Best >= 3 }},
	{Streak7, "🏆", "7+ day streak", func(s streak.Streaks, _ aggregate.Scores) bool { return s.Best >= 7 }},
	{GreatDay, "⭐", "Great day (5+ points)", func(_ streak.Streaks, sc aggregate.Scores) bool { return sc.Today >= 5 }},
	{StrongWeek, "🌈", "Strong week (20+ points)", func(_ streak.Streaks, sc aggregate.Scores) bool { return sc.Week >= 20 }},
	{Total100, "🎉", "100+ total points", func(_ streak.Streaks, sc aggregate.Scores) bool { return sc.Total >= 100 }},
}

// Definitions returns every badge definition in display order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Evaluate returns the badges earned, in display order.
func Evaluate(s streak.Streaks, sc aggregate.Scores) []Badge {
	out := []Badge{}
	for _, d := range definitions {
		if d.met(s, sc) {
			out = append(out, d.Badge)
		}
	}
	return out
}

// Label is the display text with its emoji, e.g. "⭐ Great day (5+ points)".
func (b Badge) Label() string {
	for _, d := range definitions {
		if d.Badge == b {
			return d.Emoji + " " + d.Label
		}
	}
	return string(b)
}

// Labels maps badges to their display text.
func Labels(badges []Badge) []string {
	out := make([]string, len(badges))
	for i, b := range badges {
		out[i] = b.Label()
	}
	return out
}
