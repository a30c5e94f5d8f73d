package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/behaviour/internal/metrics"
)

func TestWriteTextfile(t *testing.T) {
	metrics.StoreEvents.Set(42)
	metrics.Exports.Inc()

	path := filepath.Join(t.TempDir(), "behaviour.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "behaviour_store_events 42")
	assert.Contains(t, string(data), "# TYPE behaviour_exports_total counter")
}

func TestWriteTextfileMissingDir(t *testing.T) {
	err := metrics.WriteTextfile(filepath.Join(t.TempDir(), "absent", "behaviour.prom"))
	assert.ErrorContains(t, err, "metrics: write textfile")
}
