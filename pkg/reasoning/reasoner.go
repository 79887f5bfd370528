package reasoning

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/audit/ledger"
	"tribunal-hq/minos/pkg/audit/recorder"
	"tribunal-hq/minos/pkg/engine"
	"tribunal-hq/minos/pkg/facts"
	"tribunal-hq/minos/pkg/statute/ast"
	"tribunal-hq/minos/pkg/statute/registry"
	"tribunal-hq/minos/pkg/telemetry/metrics"
)

// Source provides statutes to load into the registry.
// Both source.FileSource and source.MemorySource satisfy it.
type Source interface {
	Load(ctx context.Context) ([]*ast.Statute, error)
}

// StatuteNotFoundError is returned when an evaluation names a statute
// that is not in the registry.
type StatuteNotFoundError struct {
	StatuteID string
}

// Error implements the error interface.
func (e *StatuteNotFoundError) Error() string {
	return fmt.Sprintf("statute %q not found in registry", e.StatuteID)
}

// Finding is the outcome of evaluating one statute against one fact
// context, together with the audit record that captured it.
type Finding struct {
	Statute  *ast.Statute
	Decision engine.Decision
	Record   *audit.Record
}

// Reasoner evaluates statutes for a jurisdiction and records every
// evaluation on the audit chain.
type Reasoner struct {
	registry  *registry.Registry
	evaluator *engine.Evaluator
	recorder  *recorder.Recorder
	metrics   *metrics.EngineMetrics
	logger    *slog.Logger
}

// NewReasoner creates a reasoner. m may be nil.
func NewReasoner(reg *registry.Registry, rec *recorder.Recorder, m *metrics.EngineMetrics, logger *slog.Logger) *Reasoner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reasoner{
		registry:  reg,
		evaluator: engine.NewEvaluator(logger),
		recorder:  rec,
		metrics:   m,
		logger:    logger.With("component", "reasoning"),
	}
}

// Registry returns the statute registry.
func (r *Reasoner) Registry() *registry.Registry {
	return r.registry
}

// LoadFrom loads statutes from the source into the registry. Each add or
// replacement is recorded on the audit chain. It returns the number of
// statutes loaded.
func (r *Reasoner) LoadFrom(ctx context.Context, src Source, actor audit.Actor) (int, error) {
	statutes, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load statutes: %w", err)
	}

	for _, s := range statutes {
		replaced, err := r.registry.Add(s)
		if err != nil {
			return 0, fmt.Errorf("failed to register statute %q: %w", s.ID, err)
		}

		change := "added"
		if replaced {
			change = "replaced"
		}
		_, err = r.recorder.Record(ctx, ledger.Entry{
			EventType: audit.EventRegistryChange,
			Actor:     actor,
			StatuteID: s.ID,
			DecisionContext: map[string]string{
				"change":  change,
				"version": strconv.Itoa(s.Version),
			},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to record registry change for %q: %w", s.ID, err)
		}
	}

	if r.metrics != nil {
		r.metrics.SetRegistrySize(r.registry.Len())
	}

	r.logger.Info("statutes loaded into registry",
		"loaded", len(statutes),
		"registry_size", r.registry.Len(),
	)

	return len(statutes), nil
}

// Evaluate evaluates one statute by id against the fact context and
// appends an audit record carrying the decision and the facts consulted.
func (r *Reasoner) Evaluate(ctx context.Context, statuteID string, fc *facts.Context, actor audit.Actor) (*Finding, error) {
	statute, ok := r.registry.Get(statuteID)
	if !ok {
		return nil, &StatuteNotFoundError{StatuteID: statuteID}
	}
	return r.evaluateStatute(ctx, statute, fc, actor)
}

// EvaluateAll evaluates every statute in the registry, in registration
// order, against the fact context. Evaluation failures on individual
// statutes (malformed statutes, type mismatches) abort the run.
func (r *Reasoner) EvaluateAll(ctx context.Context, fc *facts.Context, actor audit.Actor) ([]Finding, error) {
	statutes := r.registry.Statutes()
	findings := make([]Finding, 0, len(statutes))

	for _, statute := range statutes {
		finding, err := r.evaluateStatute(ctx, statute, fc, actor)
		if err != nil {
			return findings, err
		}
		findings = append(findings, *finding)
	}

	return findings, nil
}

func (r *Reasoner) evaluateStatute(ctx context.Context, statute *ast.Statute, fc *facts.Context, actor audit.Actor) (*Finding, error) {
	start := time.Now()
	decision, err := r.evaluator.Evaluate(statute, fc)
	elapsed := time.Since(start)

	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordEvaluation(statute.ID, "error", elapsed)
		}
		return nil, fmt.Errorf("evaluation of statute %q failed: %w", statute.ID, err)
	}

	if r.metrics != nil {
		r.metrics.RecordEvaluation(statute.ID, string(decision.Kind), elapsed)
	}

	rec, err := r.recorder.Record(ctx, ledger.Entry{
		EventType:       audit.EventEvaluation,
		Actor:           actor,
		StatuteID:       statute.ID,
		SubjectID:       fc.SubjectID(),
		DecisionContext: factSnapshot(fc),
		Result:          decision,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("statute evaluated",
		"statute_id", statute.ID,
		"subject_id", fc.SubjectID(),
		"decision", decision.String(),
		"duration", elapsed,
	)

	return &Finding{Statute: statute, Decision: decision, Record: rec}, nil
}

// factSnapshot captures the fact context's attributes in the canonical
// string form used for hashing.
func factSnapshot(fc *facts.Context) map[string]string {
	snapshot := make(map[string]string, len(fc.AttributeNames()))
	for _, name := range fc.AttributeNames() {
		if v, ok := fc.Attribute(name); ok {
			snapshot[name] = v.String()
		}
	}
	return snapshot
}
