// Package store holds the in-memory event collection.
//
// The Store is the single source of truth: events are kept in ascending
// timestamp order (equal timestamps stay in insertion order) and ids are
// unique. It is not safe for concurrent mutation; the host serialises writes.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
)

var (
	ErrDuplicateID = errors.New("store: duplicate event id")
	ErrNotFound    = errors.New("store: event not found")
)

// Persister loads and saves the full event list. Save is called after every
// mutation; implementations need not be atomic.
type Persister interface {
	Load(ctx context.Context) ([]event.Event, error)
	Save(ctx context.Context, events []event.Event) error
}

// Store is an ordered, id-unique collection of events. The zero value is an
// empty store ready to use.
type Store struct {
	events []event.Event
	ids    map[string]struct{}
}

// New returns a store holding events, sorted and checked for duplicate ids.
func New(events []event.Event) (*Store, error) {
	s := &Store{}
	if err := s.Replace(events); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of events.
func (s *Store) Len() int { return len(s.events) }

// Events returns a copy of the events in canonical order.
func (s *Store) Events() []event.Event {
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Get looks an event up by id.
func (s *Store) Get(id string) (event.Event, bool) {
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}

// Add inserts e after every event with a timestamp not later than its own.
func (s *Store) Add(e event.Event) error {
	if _, ok := s.ids[e.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	i := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Timestamp.After(e.Timestamp)
	})
	s.events = append(s.events, event.Event{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = e
	s.ids[e.ID] = struct{}{}
	return nil
}

// Delete removes the event with the given id.
func (s *Store) Delete(id string) error {
	if _, ok := s.ids[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	delete(s.ids, id)
	return nil
}

// Replace swaps the whole collection. On error the store is left unchanged.
func (s *Store) Replace(events []event.Event) error {
	ids := make(map[string]struct{}, len(events))
	for _, e := range events {
		if _, ok := ids[e.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		ids[e.ID] = struct{}{}
	}
	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	s.events = sorted
	s.ids = ids
	return nil
}
