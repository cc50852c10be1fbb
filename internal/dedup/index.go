package dedup

import (
	"context"
	"fmt"

	"cityfeed/internal/store"
	"cityfeed/internal/violation"
)

// Span describes the date range covered by a batch. Undated marks that the
// batch contains at least one record without a date, whose stored
// counterparts sit outside any date range.
type Span struct {
	From    string
	To      string
	Undated bool
}

// Observe widens the span to include a record's canonical date. An empty
// date flags the undated bucket instead.
func (s *Span) Observe(date string) {
	if date == "" {
		s.Undated = true
		return
	}
	if s.From == "" || date < s.From {
		s.From = date
	}
	if s.To == "" || date > s.To {
		s.To = date
	}
}

// IsZero reports whether the span covers nothing at all.
func (s Span) IsZero() bool {
	return s.From == "" && s.To == "" && !s.Undated
}

// Index is a membership structure over the canonical keys stored within a
// span. It is a read-only snapshot valid for one cycle.
type Index struct {
	keys map[violation.Key]struct{}
}

// Load materializes the index with one bulk key query against the store.
func Load(ctx context.Context, st *store.Store, span Span) (*Index, error) {
	index := &Index{keys: make(map[violation.Key]struct{})}
	if span.IsZero() {
		return index, nil
	}

	keys, err := st.CanonicalKeys(ctx, span.From, span.To, span.Undated)
	if err != nil {
		return nil, fmt.Errorf("load dedup index: %w", err)
	}
	for _, key := range keys {
		index.keys[key] = struct{}{}
	}
	return index, nil
}

// Contains reports whether a canonical key is already stored.
func (i *Index) Contains(key violation.Key) bool {
	_, ok := i.keys[key]
	return ok
}

// Len returns the number of loaded keys.
func (i *Index) Len() int {
	return len(i.keys)
}
