package toolbelt

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store holds registered tool records keyed by qualified name, preserving
// insertion order. Writes are expected during single-goroutine start-up
// but the mutex keeps inserts atomic regardless; reads are concurrent.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Register installs a record. A record whose qualified name is already
// taken is rejected with ErrAlreadyRegistered; use Replace to overwrite.
func (s *Store) Register(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.qualified]; exists {
		return fmt.Errorf("%s: %w", rec.qualified, ErrAlreadyRegistered)
	}

	s.records[rec.qualified] = rec
	s.order = append(s.order, rec.qualified)
	return nil
}

// Replace installs a record unconditionally. Replacing an existing
// registration is logged so it never happens silently.
func (s *Store) Replace(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.qualified]; exists {
		log.Warn().Str("tool", rec.qualified).Msg("Tool registration replaced")
	} else {
		s.order = append(s.order, rec.qualified)
	}
	s.records[rec.qualified] = rec
}

// Get returns the record for a qualified name.
func (s *Store) Get(qualified string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[qualified]
	return rec, ok
}

// List returns records in insertion order, optionally filtered to the
// given groups. The returned slice is a fresh copy.
func (s *Store) List(groups ...string) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filter map[string]bool
	if len(groups) > 0 {
		filter = make(map[string]bool, len(groups))
		for _, g := range groups {
			filter[g] = true
		}
	}

	out := make([]*Record, 0, len(s.order))
	for _, qualified := range s.order {
		rec := s.records[qualified]
		if filter != nil && !filter[rec.group] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Len returns the number of registered tools.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
