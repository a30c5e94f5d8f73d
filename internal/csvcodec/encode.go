// Package csvcodec converts events to and from the backup CSV format.
//
// The format is line oriented: one record per line, every data field
// double-quoted, quotes inside a field doubled. Reading is forgiving; a bad
// row is dropped, never the whole file.
package csvcodec

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
)

// Columns is the exported column order.
var Columns = []string{"id", "type", "category", "points", "notes", "timestamp"}

// TimestampLayout is how timestamps are written. Output is always UTC.
const TimestampLayout = time.RFC3339Nano

const lineBreak = "\r\n"

// Marshal renders events as CSV text: an unquoted header, then one quoted
// row per event, joined by CRLF. Line breaks inside a field are written as
// spaces so every event stays on its own line.
func Marshal(events []event.Event) string {
	lines := make([]string, 0, len(events)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for _, e := range events {
		fields := []string{
			e.ID,
			string(e.Type),
			e.Category,
			strconv.Itoa(e.Points),
			e.Notes,
			e.Timestamp.UTC().Format(TimestampLayout),
		}
		for i, f := range fields {
			fields[i] = quote(event.SingleLine(f))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, lineBreak)
}

// Write streams Marshal's output to w.
func Write(w io.Writer, events []event.Event) error {
	_, err := io.WriteString(w, Marshal(events))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportFilename names a backup taken at now, dated in loc.
func ExportFilename(now time.Time, loc *time.Location) string {
	return "behaviour-data-" + now.In(loc).Format("2006-01-02") + ".csv"
}
