package toolbelt

import (
	"fmt"
	"strings"
)

// Resolve maps a qualified ("group.name") or bare ("name") tool name to
// exactly one record. A bare name that exists in more than one group
// fails with ErrAmbiguousName rather than picking a candidate silently.
func (s *Store) Resolve(name string) (*Record, error) {
	if strings.Contains(name, separator) {
		rec, ok := s.Get(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return rec, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*Record
	for _, qualified := range s.order {
		if rec := s.records[qualified]; rec.name == name {
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		candidates := make([]string, len(matches))
		for i, rec := range matches {
			candidates[i] = rec.qualified
		}
		return nil, fmt.Errorf("%q matches %s: %w", name, strings.Join(candidates, ", "), ErrAmbiguousName)
	}
}
