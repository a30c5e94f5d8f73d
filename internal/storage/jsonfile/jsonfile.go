// Package jsonfile persists the event list as one JSON array on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
)

// File implements store.Persister on a single JSON file.
type File struct {
	path string
}

// New returns a persister for path. The file is created on first save.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Load reads the saved list. A missing file is an empty history.
func (f *File) Load(ctx context.Context) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []event.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", f.path, err)
	}
	events := []event.Event{}
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", f.path, err)
	}
	return events, nil
}

// Save writes the list to a temporary file and renames it into place.
func (f *File) Save(ctx context.Context, events []event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if events == nil {
		events = []event.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("jsonfile: mkdir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("jsonfile: rename %s: %w", tmp, err)
	}
	return nil
}
