package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - Required fields
//   - A known storage backend and a loadable timezone
//   - Quick-add presets with unique ids, a known type and a non-negative magnitude
func Validate(cfg *Config) error {
	var errs []string
	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if _, err := cfg.Location(); err != nil {
		errs = append(errs, err.Error())
	}
	switch cfg.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, cfg.Storage.Backend))
	}

	ids := make(map[string]int)
	for i, p := range cfg.QuickAdd {
		loc := fmt.Sprintf("quick_add[%d]", i)
		if p.ID == "" {
			errs = append(errs, loc+": id is required")
		} else if prev, ok := ids[p.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate preset id %q (first seen at quick_add[%d], again at %s)", p.ID, prev, loc))
		} else {
			ids[p.ID] = i
		}
		if p.Type != "positive" && p.Type != "negative" {
			errs = append(errs, fmt.Sprintf("%s: type must be positive or negative, got %q", loc, p.Type))
		}
		if p.Category == "" {
			errs = append(errs, loc+": category is required")
		}
		if p.Points < 0 {
			errs = append(errs, fmt.Sprintf("%s: points is a magnitude and must not be negative", loc))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
