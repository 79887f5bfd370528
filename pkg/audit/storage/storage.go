package storage

import (
	"context"

	"tribunal-hq/minos/pkg/audit"
)

// Store is the persistence contract for audit records. Implementations
// must be thread-safe and must preserve exact append order across
// Store/LoadAll round trips.
type Store interface {
	// Store persists one record. Records arrive in append order; the
	// backend must retain that order.
	Store(ctx context.Context, record *audit.Record) error

	// LoadAll returns every persisted record in original append order.
	LoadAll(ctx context.Context) ([]audit.Record, error)

	// Count returns the number of persisted records.
	Count(ctx context.Context) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
