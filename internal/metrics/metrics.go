package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "behaviour_events_added_total",
		Help: "Total number of events logged, labelled by type and source (manual or quick_add).",
	}, []string{"type", "source"})

	EventsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behaviour_events_deleted_total",
		Help: "Total number of events deleted.",
	})

	Imports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "behaviour_imports_total",
		Help: "Total number of CSV imports, labelled by status (ok, empty, error).",
	}, []string{"status"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "behaviour_import_rows_total",
		Help: "Total number of CSV rows read on import, labelled by result (imported, skipped).",
	}, []string{"result"})

	Exports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behaviour_exports_total",
		Help: "Total number of CSV exports written.",
	})

	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behaviour_persist_failures_total",
		Help: "Total number of failed saves to the persistence backend.",
	})

	PersistDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "behaviour_persist_duration_ms",
		Help:    "Time spent saving the event list, in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	StoreEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "behaviour_store_events",
		Help: "Number of events currently held in the store.",
	})
)

// WriteTextfile dumps the default registry in the node-exporter textfile
// format. The binary has no HTTP listener, so this is how metrics leave it.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
