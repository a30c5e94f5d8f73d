package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	_ "time/tzdata"

	"github.com/gyaneshwarpardhi/behaviour/internal/config"
	"github.com/gyaneshwarpardhi/behaviour/internal/engine"
	"github.com/gyaneshwarpardhi/behaviour/internal/metrics"
	"github.com/gyaneshwarpardhi/behaviour/internal/storage/jsonfile"
	"github.com/gyaneshwarpardhi/behaviour/internal/storage/sqlite"
	"github.com/gyaneshwarpardhi/behaviour/internal/store"
)

func main() {
	cfgPath := flag.String("config", "configs/behaviour.yaml", "Path to behaviour YAML config")
	var act actions
	flag.StringVar(&act.importPath, "import", "", "Replace all events with the contents of this CSV file")
	flag.StringVar(&act.add, "add", "", "Log an event given as type:category:points[:notes]")
	flag.StringVar(&act.quick, "quick", "", "Log the quick-add preset with this id")
	flag.StringVar(&act.delete, "delete", "", "Delete the event with this id")
	flag.StringVar(&act.exportDir, "export", "", "Write a CSV backup into this directory")
	flag.BoolVar(&act.report, "report", false, "Print this week's shareable report")
	watch := flag.Bool("watch", false, "Keep running and hot-reload the config until interrupted")
	flag.Parse()

	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	level.Set(cfg.SlogLevel())
	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "err", err)
		os.Exit(1)
	}

	// ── Persistence ──────────────────────────────────────────────────────────
	persister, closeStore, err := openPersister(cfg.Storage)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Storage.Backend, "err", err)
		os.Exit(1)
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(nil, persister,
		engine.WithLocation(loc),
		engine.WithLogger(logger),
		engine.WithPresets(cfg.QuickAdd),
	)
	if err := eng.Load(ctx); err != nil {
		slog.Error("failed to load events", "err", err)
		closeStore()
		os.Exit(1)
	}
	slog.Info("storage ready", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "timezone", loc.String())

	code := run(ctx, eng, act)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	if *watch && code == 0 {
		loader.OnChange(func(newCfg *config.Config) {
			newLoc, err := newCfg.Location()
			if err != nil {
				slog.Warn("hot-reload skipped: timezone invalid", "err", err)
				return
			}
			level.Set(newCfg.SlogLevel())
			eng.SetLocation(newLoc)
			eng.SetPresets(newCfg.QuickAdd)
			slog.Info("config hot-reloaded", "timezone", newLoc.String(), "presets", len(newCfg.QuickAdd))
		})
		stopWatch, err := loader.Watch()
		if err != nil {
			slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
		} else {
			defer stopWatch()
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			slog.Info("watching config", "path", *cfgPath)
			<-quit
			slog.Info("shutting down…")
		}
	}

	if path := loader.Config().Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			slog.Warn("metrics textfile not written", "err", err)
		}
	}
	closeStore()
	if code != 0 {
		os.Exit(code)
	}
}

// actions are the one-shot operations selected on the command line, applied
// in field order.
type actions struct {
	importPath string
	add        string
	quick      string
	delete     string
	exportDir  string
	report     bool
}

// run performs the selected actions and prints the dashboard. It returns the
// process exit code.
func run(ctx context.Context, eng *engine.Engine, act actions) int {
	if importPath := act.importPath; importPath != "" {
		f, err := os.Open(importPath)
		if err != nil {
			slog.Error("import failed", "err", err)
			return 1
		}
		n, err := eng.Import(ctx, f)
		f.Close()
		if err != nil {
			slog.Error("import failed", "file", importPath, "err", err)
			return 1
		}
		fmt.Printf("Imported %d events\n", n)
	}

	if act.add != "" {
		d, err := parseDraft(act.add)
		if err != nil {
			slog.Error("add failed", "err", err)
			return 1
		}
		ev, err := eng.Add(ctx, d)
		if err != nil {
			slog.Error("add failed", "err", err)
			return 1
		}
		fmt.Printf("Added %s\n", ev.ID)
	}

	if act.quick != "" {
		if _, err := eng.QuickAdd(ctx, act.quick); err != nil {
			slog.Error("quick add failed", "preset", act.quick, "err", err)
			return 1
		}
	}

	if act.delete != "" {
		if err := eng.Delete(ctx, act.delete); err != nil {
			slog.Error("delete failed", "id", act.delete, "err", err)
			return 1
		}
		fmt.Printf("Deleted %s\n", act.delete)
	}

	if act.exportDir != "" {
		if err := export(eng, act.exportDir); err != nil {
			slog.Error("export failed", "err", err)
			return 1
		}
	}

	d := eng.Dashboard()
	fmt.Printf("Today: %d  Week: %d  Total: %d\n", d.Scores.Today, d.Scores.Week, d.Scores.Total)
	fmt.Printf("Streak: %d (best %d, %d positive days)\n", d.Streaks.Current, d.Streaks.Best, d.Streaks.PositiveDays)
	for _, b := range d.Achievements {
		fmt.Println(b.Label())
	}

	if act.report {
		fmt.Print("\n" + eng.WeeklyReport().ShareText())
	}
	return 0
}

func export(eng *engine.Engine, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	name, err := eng.Export(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	dst := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", dst)
	return nil
}

func openPersister(conf config.StorageConf) (store.Persister, func(), error) {
	if dir := filepath.Dir(conf.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	switch conf.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(conf.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return jsonfile.New(conf.Path), func() {}, nil
	}
}
