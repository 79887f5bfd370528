// Package registry provides the indexed statute collection consulted by
// reasoning engines.
//
// A Registry is constructed once at startup, populated from a statute
// source, and treated as read-only thereafter. It is an explicit value
// passed to the layers that need it; there is no process-wide registry.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"tribunal-hq/minos/pkg/statute/ast"
)

// Registry is a thread-safe, insertion-ordered statute collection.
//
// Re-adding an id is explicit last-write-wins: the new statute replaces
// the old one while keeping the original insertion position, and the
// replacement is logged. Versioning happens by replacement, never by
// in-place mutation.
type Registry struct {
	mu       sync.RWMutex
	statutes map[string]*ast.Statute
	order    []string
	logger   *slog.Logger
}

// New creates an empty registry. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		statutes: make(map[string]*ast.Statute),
		logger:   logger.With("component", "statute.registry"),
	}
}

// Add registers a statute. If the id is already present the statute is
// replaced (last-write-wins) and Add reports the replacement; insertion
// order is preserved for iteration.
func (r *Registry) Add(s *ast.Statute) (replaced bool, err error) {
	if s == nil {
		return false, fmt.Errorf("statute cannot be nil")
	}
	if s.ID == "" {
		return false, fmt.Errorf("statute id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.statutes[s.ID]; ok {
		r.logger.Info("statute replaced",
			"statute_id", s.ID,
			"old_version", prev.Version,
			"new_version", s.Version,
		)
		r.statutes[s.ID] = s
		return true, nil
	}

	r.statutes[s.ID] = s
	r.order = append(r.order, s.ID)
	return false, nil
}

// Get looks up a statute by id.
func (r *Registry) Get(id string) (*ast.Statute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statutes[id]
	return s, ok
}

// Statutes returns all registered statutes in stable insertion order.
func (r *Registry) Statutes() []*ast.Statute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ast.Statute, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.statutes[id])
	}
	return out
}

// Len returns the number of registered statutes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
