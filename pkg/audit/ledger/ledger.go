package ledger

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/engine"
)

// Entry carries the caller-supplied fields of a record to be appended.
// The ledger assigns the id, timestamp, previous hash, and record hash.
type Entry struct {
	EventType       audit.EventType
	Actor           audit.Actor
	StatuteID       string
	SubjectID       string
	DecisionContext map[string]string
	Result          engine.Decision
}

// Ledger is an append-only, hash-chained sequence of audit records.
//
// Records live in a contiguous growable slice indexed by position; the
// previous-hash links are content references, never pointers. A single
// mutex serializes appends so that at most one append is in flight at a
// time. The lock is held only for hash computation and insertion; callers
// run statute evaluation before calling Append.
type Ledger struct {
	mu      sync.RWMutex
	records []audit.Record
	tipHash string
	clock   func() time.Time
	logger  *slog.Logger
}

// New creates an empty ledger.
func New(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		clock:  time.Now,
		logger: logger.With("component", "audit.ledger"),
	}
}

// WithClock overrides the ledger clock for testing.
func (l *Ledger) WithClock(clock func() time.Time) *Ledger {
	l.clock = clock
	return l
}

// FromRecords rebuilds a ledger from an already-persisted record sequence,
// e.g. after reload from storage. Order must be exactly the original
// append order. The chain is not re-verified here; callers should run
// Verify after loading and treat a failure as evidence of tampering, not
// as a load error.
func FromRecords(logger *slog.Logger, records []audit.Record) *Ledger {
	l := New(logger)
	l.records = make([]audit.Record, len(records))
	copy(l.records, records)
	if n := len(records); n > 0 {
		l.tipHash = records[n-1].RecordHash
	}
	return l
}

// Append builds a record from the entry, hashes it, and appends it to the
// chain. It returns a copy of the appended record, whose RecordHash is the
// new tip of the chain.
//
// Lock acquisition has no internal timeout; a caller that bounds its wait
// and gives up must treat the attempt as a transient failure and retry,
// never as a successful append.
func (l *Ledger) Append(entry Entry) (*audit.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record := audit.Record{
		ID:              uuid.New().String(),
		Timestamp:       l.clock().UTC(),
		EventType:       entry.EventType,
		Actor:           entry.Actor,
		StatuteID:       entry.StatuteID,
		SubjectID:       entry.SubjectID,
		DecisionContext: copyContext(entry.DecisionContext),
		Result:          entry.Result,
		PreviousHash:    l.tipHash,
	}

	hash, err := HashRecord(&record)
	if err != nil {
		return nil, fmt.Errorf("failed to hash record: %w", err)
	}
	record.RecordHash = hash

	l.records = append(l.records, record)
	l.tipHash = hash

	l.logger.Debug("audit record appended",
		"record_id", record.ID,
		"event_type", record.EventType,
		"statute_id", record.StatuteID,
		"chain_length", len(l.records),
	)

	out := record
	out.DecisionContext = copyContext(record.DecisionContext)
	return &out, nil
}

// VerificationResult reports the outcome of a full-chain verification.
type VerificationResult struct {
	// Valid is true when every record's content hash and previous-hash
	// link check out.
	Valid bool

	// FirstBrokenIndex is the position of the first record that failed
	// either check, or -1 when the chain is valid.
	FirstBrokenIndex int

	// Reason describes the first failure in human terms.
	Reason string
}

// Verify walks the whole chain in order, recomputing each record's content
// hash and checking each previous-hash link. It stops at the first failure
// and reports its index. An empty ledger is trivially valid. Verify
// mutates nothing and is idempotent.
func (l *Ledger) Verify() VerificationResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	prevHash := ""
	for i := range l.records {
		r := &l.records[i]

		if r.PreviousHash != prevHash {
			return VerificationResult{
				Valid:            false,
				FirstBrokenIndex: i,
				Reason: fmt.Sprintf("previous-hash link broken: expected %q, found %q",
					prevHash, r.PreviousHash),
			}
		}

		computed, err := HashRecord(r)
		if err != nil {
			return VerificationResult{
				Valid:            false,
				FirstBrokenIndex: i,
				Reason:           fmt.Sprintf("failed to recompute hash: %v", err),
			}
		}
		if computed != r.RecordHash {
			return VerificationResult{
				Valid:            false,
				FirstBrokenIndex: i,
				Reason:           "content hash mismatch",
			}
		}

		prevHash = r.RecordHash
	}

	return VerificationResult{Valid: true, FirstBrokenIndex: -1}
}

// Records returns a copy of the record sequence in append order. The
// copies own their decision context maps, so callers cannot reach the
// ledger's records through the returned slice.
func (l *Ledger) Records() []audit.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]audit.Record, len(l.records))
	copy(out, l.records)
	for i := range out {
		out[i].DecisionContext = copyContext(out[i].DecisionContext)
	}
	return out
}

// Len returns the number of records in the chain.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// TipHash returns the hash of the last appended record, or the empty
// string for an empty ledger.
func (l *Ledger) TipHash() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tipHash
}

func copyContext(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
