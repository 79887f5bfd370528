// Package recorder pairs the in-memory hash chain with a persistence
// backend so that every appended record is durably stored in the same
// order it entered the chain.
package recorder

import (
	"context"
	"fmt"
	"log/slog"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/audit/ledger"
	"tribunal-hq/minos/pkg/audit/storage"
	"tribunal-hq/minos/pkg/telemetry/metrics"
)

// Recorder appends audit records to the ledger and persists them.
// The store and metrics are optional; a nil store keeps records in
// memory only.
type Recorder struct {
	ledger  *ledger.Ledger
	store   storage.Store
	metrics *metrics.LedgerMetrics
	logger  *slog.Logger
}

// New creates a recorder over the given ledger. store and m may be nil.
func New(l *ledger.Ledger, store storage.Store, m *metrics.LedgerMetrics, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		ledger:  l,
		store:   store,
		metrics: m,
		logger:  logger.With("component", "audit.recorder"),
	}
}

// Open rebuilds a recorder from persisted records. The reloaded chain is
// verified before use so that offline tampering surfaces at startup.
func Open(ctx context.Context, store storage.Store, m *metrics.LedgerMetrics, logger *slog.Logger) (*Recorder, error) {
	records, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit records: %w", err)
	}

	l := ledger.FromRecords(logger, records)
	if result := l.Verify(); !result.Valid {
		return nil, &audit.ChainIntegrityError{
			Index:  result.FirstBrokenIndex,
			Reason: result.Reason,
		}
	}

	return New(l, store, m, logger), nil
}

// Record appends one entry to the chain and persists the resulting
// record. Persistence failure is returned to the caller; the record is
// already on the in-memory chain at that point and the caller should
// treat the ledger as ahead of the store.
func (r *Recorder) Record(ctx context.Context, entry ledger.Entry) (*audit.Record, error) {
	rec, err := r.ledger.Append(entry)
	if err != nil {
		return nil, err
	}

	if r.metrics != nil {
		r.metrics.RecordAppend(string(rec.EventType), r.ledger.Len())
	}

	if r.store != nil {
		if err := r.store.Store(ctx, rec); err != nil {
			r.logger.Error("failed to persist audit record",
				"record_id", rec.ID,
				"error", err,
			)
			return rec, fmt.Errorf("failed to persist audit record %s: %w", rec.ID, err)
		}
	}

	return rec, nil
}

// Ledger returns the underlying chain.
func (r *Recorder) Ledger() *ledger.Ledger {
	return r.ledger
}
