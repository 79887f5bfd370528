package source

import (
	"context"

	"tribunal-hq/minos/pkg/statute/ast"
)

// MemorySource is an in-memory statute source for testing.
type MemorySource struct {
	statutes []*ast.Statute
}

// NewMemorySource creates a new in-memory statute source.
func NewMemorySource(statutes ...*ast.Statute) *MemorySource {
	return &MemorySource{
		statutes: statutes,
	}
}

// Load returns the statutes stored in memory.
func (s *MemorySource) Load(ctx context.Context) ([]*ast.Statute, error) {
	// Return a copy to prevent external modification
	statutes := make([]*ast.Statute, len(s.statutes))
	copy(statutes, s.statutes)
	return statutes, nil
}

// SetStatutes updates the statutes in memory (for testing).
func (s *MemorySource) SetStatutes(statutes []*ast.Statute) {
	s.statutes = statutes
}
