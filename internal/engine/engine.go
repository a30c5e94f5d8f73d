package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gyaneshwarpardhi/behaviour/internal/achievement"
	"github.com/gyaneshwarpardhi/behaviour/internal/aggregate"
	"github.com/gyaneshwarpardhi/behaviour/internal/clock"
	"github.com/gyaneshwarpardhi/behaviour/internal/config"
	"github.com/gyaneshwarpardhi/behaviour/internal/csvcodec"
	"github.com/gyaneshwarpardhi/behaviour/internal/event"
	"github.com/gyaneshwarpardhi/behaviour/internal/metrics"
	"github.com/gyaneshwarpardhi/behaviour/internal/period"
	"github.com/gyaneshwarpardhi/behaviour/internal/report"
	"github.com/gyaneshwarpardhi/behaviour/internal/store"
	"github.com/gyaneshwarpardhi/behaviour/internal/streak"
)

// ErrUnknownPreset is returned by QuickAdd for an id no preset carries.
var ErrUnknownPreset = errors.New("engine: unknown quick-add preset")

// Dashboard is everything the tracker page shows above the charts.
type Dashboard struct {
	Scores       aggregate.Scores    `json:"scores"`
	Streaks      streak.Streaks      `json:"streaks"`
	Achievements []achievement.Badge `json:"achievements"`
}

// Engine owns the event store and keeps it in step with the persister.
// Mutations are not safe for concurrent use; SetLocation and SetPresets are.
type Engine struct {
	store     *store.Store
	persister store.Persister
	clock     clock.Clock
	log       *slog.Logger
	loc       atomic.Pointer[time.Location]
	presets   atomic.Pointer[[]config.Preset]
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option { return func(e *Engine) { e.clock = c } }

// WithLocation sets the calendar used for days, weeks and months.
func WithLocation(loc *time.Location) Option { return func(e *Engine) { e.loc.Store(loc) } }

// WithLogger replaces slog.Default().
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithPresets sets the initial quick-add presets.
func WithPresets(p []config.Preset) Option { return func(e *Engine) { e.SetPresets(p) } }

// New creates an Engine over s. A nil store starts empty; a nil persister
// keeps everything in memory.
func New(s *store.Store, p store.Persister, opts ...Option) *Engine {
	if s == nil {
		s = &store.Store{}
	}
	e := &Engine{
		store:     s,
		persister: p,
		clock:     clock.System,
		log:       slog.Default(),
	}
	e.loc.Store(time.Local)
	e.presets.Store(&[]config.Preset{})
	for _, opt := range opts {
		opt(e)
	}
	metrics.StoreEvents.Set(float64(s.Len()))
	return e
}

// SetLocation atomically replaces the calendar location (used on hot-reload).
func (e *Engine) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	e.loc.Store(loc)
}

// Location returns the calendar location in use.
func (e *Engine) Location() *time.Location { return e.loc.Load() }

// SetPresets atomically replaces the quick-add presets (used on hot-reload).
func (e *Engine) SetPresets(p []config.Preset) {
	cp := make([]config.Preset, len(p))
	copy(cp, p)
	e.presets.Store(&cp)
}

// Presets returns the quick-add presets in configured order.
func (e *Engine) Presets() []config.Preset {
	p := *e.presets.Load()
	out := make([]config.Preset, len(p))
	copy(out, p)
	return out
}

// Load replaces the store with whatever the persister holds.
func (e *Engine) Load(ctx context.Context) error {
	if e.persister == nil {
		return nil
	}
	events, err := e.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("engine: load: %w", err)
	}
	if err := e.store.Replace(events); err != nil {
		return fmt.Errorf("engine: load: %w", err)
	}
	metrics.StoreEvents.Set(float64(e.store.Len()))
	e.log.Info("events loaded", "count", e.store.Len())
	return nil
}

// Add logs a new event from d, stamped now. The event stays in the store
// even when saving fails; the save error is still returned.
func (e *Engine) Add(ctx context.Context, d event.Draft) (event.Event, error) {
	return e.add(ctx, d, "manual")
}

// QuickAdd logs the event described by the preset with the given id.
func (e *Engine) QuickAdd(ctx context.Context, presetID string) (event.Event, error) {
	for _, p := range *e.presets.Load() {
		if p.ID == presetID {
			return e.add(ctx, event.Draft{
				Type:     event.Kind(p.Type),
				Category: p.Category,
				Points:   p.Points,
				Notes:    p.Notes,
			}, "quick_add")
		}
	}
	return event.Event{}, fmt.Errorf("%w: %s", ErrUnknownPreset, presetID)
}

func (e *Engine) add(ctx context.Context, d event.Draft, source string) (event.Event, error) {
	ev, err := event.New(d, e.clock.Now())
	if err != nil {
		return event.Event{}, fmt.Errorf("engine: add: %w", err)
	}
	if err := e.store.Add(ev); err != nil {
		return event.Event{}, fmt.Errorf("engine: add: %w", err)
	}
	metrics.EventsAdded.WithLabelValues(string(ev.Type), source).Inc()
	metrics.StoreEvents.Set(float64(e.store.Len()))
	e.log.Info("event added",
		"id", ev.ID, "type", ev.Type, "category", ev.Category, "points", ev.Points, "source", source)
	return ev, e.save(ctx)
}

// Delete removes the event with the given id.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if err := e.store.Delete(id); err != nil {
		return fmt.Errorf("engine: delete: %w", err)
	}
	metrics.EventsDeleted.Inc()
	metrics.StoreEvents.Set(float64(e.store.Len()))
	e.log.Info("event deleted", "id", id)
	return e.save(ctx)
}

// Events returns every event in timestamp order.
func (e *Engine) Events() []event.Event { return e.store.Events() }

// Scores returns today's, this week's and the all-time totals.
func (e *Engine) Scores() aggregate.Scores {
	return aggregate.ScoresAt(e.store.Events(), e.clock.Now(), e.Location())
}

// Streaks returns the current and best runs of positive days.
func (e *Engine) Streaks() streak.Streaks {
	return streak.Compute(e.store.Events(), e.Location())
}

// Achievements returns the badges currently earned.
func (e *Engine) Achievements() []achievement.Badge {
	return e.Dashboard().Achievements
}

// Dashboard computes scores, streaks and badges from one snapshot.
func (e *Engine) Dashboard() Dashboard {
	events := e.store.Events()
	loc := e.Location()
	d := Dashboard{
		Scores:  aggregate.ScoresAt(events, e.clock.Now(), loc),
		Streaks: streak.Compute(events, loc),
	}
	d.Achievements = achievement.Evaluate(d.Streaks, d.Scores)
	return d
}

// Charts returns the hourly, weekly, monthly and category series.
func (e *Engine) Charts() aggregate.Charts {
	return aggregate.ChartsAt(e.store.Events(), e.clock.Now(), e.Location())
}

// WeeklyReport summarises the current Monday-to-Sunday week.
func (e *Engine) WeeklyReport() report.Report {
	return report.Weekly(e.store.Events(), period.Week(e.clock.Now(), e.Location()))
}

// Export writes every event as CSV to w and returns the suggested filename.
func (e *Engine) Export(w io.Writer) (string, error) {
	if err := csvcodec.Write(w, e.store.Events()); err != nil {
		return "", fmt.Errorf("engine: export: %w", err)
	}
	metrics.Exports.Inc()
	name := csvcodec.ExportFilename(e.clock.Now(), e.Location())
	e.log.Info("events exported", "count", e.store.Len(), "file", name)
	return name, nil
}

// Import replaces the store with the events read from r and returns how
// many were imported. On a read error, or when r holds no valid rows, the
// store is left as it was.
func (e *Engine) Import(ctx context.Context, r io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		metrics.Imports.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("engine: import: %w", err)
	}
	res, err := csvcodec.NewDecoder(e.clock, e.Location()).Read(r)
	if err != nil {
		metrics.Imports.WithLabelValues("error").Inc()
		e.log.Error("import failed", "err", err)
		return 0, fmt.Errorf("engine: import: %w", err)
	}
	metrics.ImportRows.WithLabelValues("skipped").Add(float64(res.Skipped))
	if res.Skipped > 0 {
		e.log.Warn("import skipped malformed rows", "skipped", res.Skipped)
	}
	if len(res.Events) == 0 {
		metrics.Imports.WithLabelValues("empty").Inc()
		e.log.Info("import found no events, store unchanged")
		return 0, nil
	}
	if err := e.store.Replace(res.Events); err != nil {
		metrics.Imports.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("engine: import: %w", err)
	}
	metrics.Imports.WithLabelValues("ok").Inc()
	metrics.ImportRows.WithLabelValues("imported").Add(float64(len(res.Events)))
	metrics.StoreEvents.Set(float64(e.store.Len()))
	e.log.Info("events imported", "count", len(res.Events), "skipped", res.Skipped)
	return len(res.Events), e.save(ctx)
}

func (e *Engine) save(ctx context.Context) error {
	if e.persister == nil {
		return nil
	}
	start := time.Now()
	err := e.persister.Save(ctx, e.store.Events())
	metrics.PersistDuration.Observe(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.PersistFailures.Inc()
		e.log.Error("save failed", "count", e.store.Len(), "err", err)
		return fmt.Errorf("engine: save: %w", err)
	}
	return nil
}
