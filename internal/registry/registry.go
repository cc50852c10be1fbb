package registry

import (
	"context"
	"fmt"
	"strings"

	"cityfeed/internal/store"
	"cityfeed/internal/violation"
)

// Registry tracks the known violation codes plus the registrations staged
// during the current cycle.
type Registry struct {
	known  map[string]string
	staged []violation.Code
	index  map[string]struct{}
}

// Load snapshots the registered codes from the store.
func Load(ctx context.Context, st *store.Store) (*Registry, error) {
	known, err := st.KnownCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load code registry: %w", err)
	}
	return &Registry{
		known: known,
		index: make(map[string]struct{}),
	}, nil
}

// Known reports whether a code is registered in the store or staged in this
// cycle.
func (r *Registry) Known(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	if _, ok := r.known[code]; ok {
		return true
	}
	_, ok := r.index[code]
	return ok
}

// Description returns the authoritative description for a code, if any.
func (r *Registry) Description(code string) (string, bool) {
	desc, ok := r.known[strings.TrimSpace(code)]
	return desc, ok
}

// RegisterIfAbsent stages a code for registration unless it is already
// known. The first description observed for a code wins; repeat calls are
// no-ops regardless of the description argument. Returns true when the
// code was newly staged.
func (r *Registry) RegisterIfAbsent(code, description string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	if r.Known(code) {
		return false
	}
	r.index[code] = struct{}{}
	r.staged = append(r.staged, violation.Code{
		Code:        code,
		Description: strings.TrimSpace(description),
	})
	return true
}

// Pending returns the codes staged during this cycle in registration order.
func (r *Registry) Pending() []violation.Code {
	return r.staged
}
