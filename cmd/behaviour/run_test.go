package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/behaviour/internal/clock"
	"github.com/gyaneshwarpardhi/behaviour/internal/engine"
)

func TestRunAddDeleteExport(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	eng := engine.New(nil, nil,
		engine.WithClock(clock.Fixed(now)),
		engine.WithLocation(time.UTC),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	require.Equal(t, 0, run(ctx, eng, actions{add: "negative:Snacks:2:crisps"}))
	events := eng.Events()
	require.Len(t, events, 1)
	assert.Equal(t, -2, events[0].Points)
	assert.Equal(t, "crisps", events[0].Notes)

	dir := t.TempDir()
	require.Equal(t, 0, run(ctx, eng, actions{delete: events[0].ID, exportDir: dir}))
	assert.Empty(t, eng.Events())
	_, err := os.Stat(filepath.Join(dir, "behaviour-data-2026-10-17.csv"))
	assert.NoError(t, err)

	assert.Equal(t, 1, run(ctx, eng, actions{delete: "missing"}))
	assert.Equal(t, 1, run(ctx, eng, actions{add: "positive:Health"}))
	assert.Equal(t, 1, run(ctx, eng, actions{add: "neutral:Health:1"}))
	assert.Empty(t, eng.Events())
}
