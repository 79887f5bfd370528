package integrity

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/audit/anchor"
	"tribunal-hq/minos/pkg/audit/ledger"
	"tribunal-hq/minos/pkg/audit/recorder"
	"tribunal-hq/minos/pkg/engine"
	"tribunal-hq/minos/pkg/telemetry/metrics"
)

// SweepResult reports the outcome of a single integrity sweep.
type SweepResult struct {
	// Valid is true when the chain verified and matched the latest anchor.
	Valid bool

	// ChainLength is the number of records in the chain at sweep time,
	// before the sweep's own record is appended.
	ChainLength int

	// Verification is the full-chain verification result.
	Verification ledger.VerificationResult

	// AnchorErr is non-nil when the chain did not match a previously
	// anchored tip.
	AnchorErr error

	// Duration is how long verification took.
	Duration time.Duration
}

// Sweeper performs integrity sweeps over an audit ledger. Sweep outcomes
// are appended through the recorder so they persist with the rest of the
// chain. The anchor store and metrics are optional.
type Sweeper struct {
	recorder *recorder.Recorder
	anchors  *anchor.SQLiteStore
	metrics  *metrics.LedgerMetrics
	logger   *slog.Logger
}

// NewSweeper creates a sweeper over the given recorder.
// anchors and m may be nil.
func NewSweeper(rec *recorder.Recorder, anchors *anchor.SQLiteStore, m *metrics.LedgerMetrics, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		recorder: rec,
		anchors:  anchors,
		metrics:  m,
		logger:   logger.With("component", "audit.integrity"),
	}
}

// Sweep runs one integrity sweep: verify the full chain, check it against
// the latest anchor, append a sweep record with the outcome, and anchor
// the new tip. The sweep record is appended even when verification fails
// so that the failure itself is on the record.
func (s *Sweeper) Sweep(ctx context.Context) (*SweepResult, error) {
	start := time.Now()
	chain := s.recorder.Ledger()

	result := &SweepResult{
		ChainLength: chain.Len(),
	}

	result.Verification = chain.Verify()
	result.Valid = result.Verification.Valid

	if s.anchors != nil && result.Valid {
		records := chain.Records()
		hashAt := func(index int) (string, bool) {
			if index < 0 || index >= len(records) {
				return "", false
			}
			return records[index].RecordHash, true
		}
		if err := s.anchors.CheckAgainst(ctx, len(records), hashAt); err != nil {
			result.Valid = false
			result.AnchorErr = err
		}
	}

	result.Duration = time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordVerification(result.Valid, result.Duration)
	}

	if result.Valid {
		s.logger.Info("integrity sweep passed",
			"chain_length", result.ChainLength,
			"duration", result.Duration,
		)
	} else {
		s.logger.Error("integrity sweep failed",
			"chain_length", result.ChainLength,
			"broken_index", result.Verification.FirstBrokenIndex,
			"reason", sweepFailureReason(result),
		)
	}

	rec, err := s.recorder.Record(ctx, ledger.Entry{
		EventType:       audit.EventIntegritySweep,
		Actor:           audit.SystemActor(),
		DecisionContext: sweepContext(result),
		Result:          engine.Deterministic(result.Valid),
	})
	if err != nil {
		return result, fmt.Errorf("failed to record integrity sweep: %w", err)
	}

	if s.anchors != nil && result.Valid {
		if _, err := s.anchors.Record(ctx, chain.Len(), rec.RecordHash); err != nil {
			return result, fmt.Errorf("failed to anchor chain tip: %w", err)
		}
	}

	return result, nil
}

func sweepContext(result *SweepResult) map[string]string {
	ctx := map[string]string{
		"chain_length": strconv.Itoa(result.ChainLength),
		"valid":        strconv.FormatBool(result.Valid),
	}
	if !result.Verification.Valid {
		ctx["broken_index"] = strconv.Itoa(result.Verification.FirstBrokenIndex)
		ctx["reason"] = result.Verification.Reason
	}
	if result.AnchorErr != nil {
		ctx["anchor_error"] = result.AnchorErr.Error()
	}
	return ctx
}

func sweepFailureReason(result *SweepResult) string {
	if !result.Verification.Valid {
		return result.Verification.Reason
	}
	if result.AnchorErr != nil {
		return result.AnchorErr.Error()
	}
	return ""
}
