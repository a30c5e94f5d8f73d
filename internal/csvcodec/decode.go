package csvcodec

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gyaneshwarpardhi/behaviour/internal/clock"
	"github.com/gyaneshwarpardhi/behaviour/internal/event"
)

// Layouts accepted for timestamps without an explicit offset; they are read
// in the decoder's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Result is the outcome of decoding one file.
type Result struct {
	Events  []event.Event
	Skipped int // rows dropped as malformed
}

// Decoder fills in defaults for missing fields while parsing.
type Decoder struct {
	Clock    clock.Clock
	Location *time.Location
	NewID    func() string
}

// NewDecoder returns a decoder that stamps missing timestamps with clk and
// generates UUIDs for missing ids.
func NewDecoder(clk clock.Clock, loc *time.Location) *Decoder {
	if clk == nil {
		clk = clock.System
	}
	if loc == nil {
		loc = time.Local
	}
	return &Decoder{Clock: clk, Location: loc, NewID: uuid.NewString}
}

// Read decodes a whole stream. A UTF-8 byte order mark is dropped and UTF-16
// input with a BOM is transcoded, so spreadsheet exports parse as-is.
func (d *Decoder) Read(r io.Reader) (Result, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return Result{}, fmt.Errorf("csvcodec: read: %w", err)
	}
	return d.Parse(string(data)), nil
}

// Parse decodes CSV text. Columns are looked up by header name, so their order
// does not matter. Rows whose field count differs from the header's, whose
// timestamp cannot be read, or whose id repeats an earlier row are skipped. The result is sorted by timestamp.
func (d *Decoder) Parse(text string) Result {
	res := Result{Events: []event.Event{}}
	lines := splitLines(strings.TrimPrefix(text, "\ufeff"))
	if len(lines) < 2 {
		return res
	}

	header := splitFields(lines[0])
	col := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := col[name]; !seen {
			col[name] = i
		}
	}

	seen := make(map[string]struct{})
	for _, line := range lines[1:] {
		row := splitFields(line)
		if len(row) != len(header) {
			res.Skipped++
			continue
		}
		get := func(name string) string {
			if i, ok := col[name]; ok {
				return row[i]
			}
			return ""
		}
		e, ok := d.event(get)
		if !ok {
			res.Skipped++
			continue
		}
		if _, dup := seen[e.ID]; dup {
			res.Skipped++
			continue
		}
		seen[e.ID] = struct{}{}
		res.Events = append(res.Events, e)
	}

	sort.SliceStable(res.Events, func(i, j int) bool {
		return res.Events[i].Timestamp.Before(res.Events[j].Timestamp)
	})
	return res
}

func (d *Decoder) event(get func(string) string) (event.Event, bool) {
	e := event.Event{
		ID:       get("id"),
		Type:     event.Kind(get("type")),
		Category: get("category"),
		Points:   parsePoints(get("points")),
		Notes:    get("notes"),
	}
	if e.ID == "" {
		e.ID = d.NewID()
	}
	if e.Type == "" {
		e.Type = event.Positive
	}
	if e.Category == "" {
		e.Category = event.DefaultCategory
	}
	ts := get("timestamp")
	if ts == "" {
		e.Timestamp = d.Clock.Now().UTC()
		return e, true
	}
	t, err := d.parseTime(ts)
	if err != nil {
		return event.Event{}, false
	}
	e.Timestamp = t
	return e, true
}

func (d *Decoder) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, d.Location); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("csvcodec: unrecognised timestamp %q", s)
}

// parsePoints reads an integer, tolerating integer-valued decimals such as
// "3.0". Anything else is worth zero.
func parsePoints(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0
	}
	return int(f)
}

func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// splitFields scans one line, tracking whether it is inside quotes. A doubled
// quote inside a quoted field is a literal quote.
func splitFields(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
