package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. BEHAVIOUR_STORAGE_PATH.
const EnvPrefix = "BEHAVIOUR_"

// Loader owns the config file: it parses it once up front and, when
// watching, re-parses it whenever the file is written or replaced.
type Loader struct {
	path    string
	current atomic.Pointer[Config]

	hooksMu sync.Mutex
	hooks   []func(*Config)
}

// NewLoader parses the file at path. It fails when the file is missing or
// invalid.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: filepath.Clean(path)}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current.Store(cfg)
	return l, nil
}

// Config is the last config that parsed and validated.
func (l *Loader) Config() *Config { return l.current.Load() }

// OnChange adds a hook run after every successful reload.
func (l *Loader) OnChange(fn func(*Config)) {
	l.hooksMu.Lock()
	l.hooks = append(l.hooks, fn)
	l.hooksMu.Unlock()
}

// Reload re-reads the file now. An invalid file keeps the current config and
// skips the hooks.
func (l *Loader) Reload() (*Config, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current.Store(cfg)

	l.hooksMu.Lock()
	hooks := append(([]func(*Config))(nil), l.hooks...)
	l.hooksMu.Unlock()
	for _, fn := range hooks {
		fn(cfg)
	}
	return cfg, nil
}

// Watch reloads the config in the background until stop is called. The
// parent directory is watched, not the file, so editors that save by
// renaming a temp file over it are picked up too.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(l.path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", filepath.Dir(l.path), err)
	}

	done := make(chan struct{})
	go l.watch(w, done)

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

func (l *Loader) watch(w *fsnotify.Watcher, done <-chan struct{}) {
	defer w.Close()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != l.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if _, err := l.Reload(); err != nil {
				slog.Warn("config reload failed, keeping previous", "path", l.path, "err", err)
				continue
			}
			slog.Debug("config reloaded", "path", l.path, "op", ev.Op.String())
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "err", err)
		}
	}
}

func (l *Loader) load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and defaults, and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := env.ParseWithOptions(&cfg.Settings, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendJSON
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case BackendSQLite:
			cfg.Storage.Path = "data/behaviour.db"
		default:
			cfg.Storage.Path = "data/behaviour.json"
		}
	}
	for i := range cfg.QuickAdd {
		if cfg.QuickAdd[i].Type == "" {
			cfg.QuickAdd[i].Type = "positive"
		}
	}
}
