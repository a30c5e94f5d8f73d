package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTimestampMigration(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer s.Close()

	// Roll back to the nanosecond column and seed rows the way it stored them.
	require.NoError(t, goose.DownTo(s.db, "migrations", 1))
	before := time.Date(1969, time.December, 31, 23, 59, 59, 250, time.UTC)
	after := time.Date(2026, time.October, 17, 9, 30, 0, 123456789, time.UTC)
	_, err = s.db.Exec(
		`INSERT INTO events (id, type, category, points, notes, ts) VALUES
			('a', 'positive', 'x', 1, '', ?),
			('b', 'negative', 'y', -2, 'n', ?)`,
		before.UnixNano(), after.UnixNano())
	require.NoError(t, err)

	require.NoError(t, migrate(s.db))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, before, got[0].Timestamp)
	assert.Equal(t, after, got[1].Timestamp)
	assert.Equal(t, "n", got[1].Notes)
}
