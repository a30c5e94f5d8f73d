package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
)

// parseDraft reads the -add flag value "type:category:points[:notes]".
// Notes may contain further colons.
func parseDraft(s string) (event.Draft, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return event.Draft{}, fmt.Errorf("want type:category:points[:notes], got %q", s)
	}
	pts, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return event.Draft{}, fmt.Errorf("points %q: %w", parts[2], err)
	}
	d := event.Draft{
		Type:     event.Kind(strings.ToLower(strings.TrimSpace(parts[0]))),
		Category: strings.TrimSpace(parts[1]),
		Points:   pts,
	}
	if len(parts) == 4 {
		d.Notes = parts[3]
	}
	return d, nil
}
