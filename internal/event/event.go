package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an event as something to encourage or to avoid.
type Kind string

const (
	Positive Kind = "positive"
	Negative Kind = "negative"
)

// DefaultCategory is used when an event arrives without a category.
const DefaultCategory = "Other"

// Event is the canonical record for a single logged behaviour.
type Event struct {
	ID        string    `json:"id"`
	Type      Kind      `json:"type"`
	Category  string    `json:"category"`
	Points    int       `json:"points"` // signed; negatives subtract from scores
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// Draft is the user-supplied part of an event. Points is a magnitude;
// the sign comes from Type.
type Draft struct {
	Type     Kind
	Category string
	Points   int
	Notes    string
}

// New turns a draft into an event stamped at now with a fresh id. Line
// breaks in the category and notes become spaces.
func New(d Draft, now time.Time) (Event, error) {
	kind := d.Type
	if kind == "" {
		kind = Positive
	}
	if kind != Positive && kind != Negative {
		return Event{}, fmt.Errorf("event: unknown type %q", d.Type)
	}
	category := SingleLine(d.Category)
	if category == "" {
		category = DefaultCategory
	}
	pts := d.Points
	if pts < 0 {
		pts = -pts
	}
	if kind == Negative {
		pts = -pts
	}
	return Event{
		ID:        uuid.NewString(),
		Type:      kind,
		Category:  category,
		Points:    pts,
		Notes:     SingleLine(d.Notes),
		Timestamp: now.UTC(),
	}, nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// SingleLine replaces line breaks with spaces. Backups hold one event per
// line, so free text must not span lines.
func SingleLine(s string) string {
	return lineBreaks.Replace(s)
}

// Sum adds up the points of all events.
func Sum(events []Event) int {
	total := 0
	for _, e := range events {
		total += e.Points
	}
	return total
}
