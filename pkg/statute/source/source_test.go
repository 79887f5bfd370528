package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tribunal-hq/minos/pkg/engine"
	"tribunal-hq/minos/pkg/facts"
	"tribunal-hq/minos/pkg/statute/ast"
)

const tortStatuteYAML = `
statutes:
  - id: minpo-709
    title: Compensation for damages in tort
    jurisdiction: jp
    version: 1
    effect:
      kind: obligation
      description: liable to compensate resulting damages
    preconditions:
      - attribute: caused_harm
        value: true
      - any:
          - attribute: intent
            value: true
          - attribute: negligence
            value: true
  - id: minpo-5
    title: Capacity of minors
    jurisdiction: jp
    version: 2
    effect:
      kind: grant
      description: contract voidable by guardian
    discretion: court weighs the minor's circumstances
    preconditions:
      - attribute: age
        operator: "<"
        value: 18
      - not:
          relationship:
            type: emancipated_by
`

func TestParseStatutes(t *testing.T) {
	statutes, err := ParseStatutes([]byte(tortStatuteYAML))
	if err != nil {
		t.Fatalf("ParseStatutes returned error: %v", err)
	}
	if len(statutes) != 2 {
		t.Fatalf("parsed %d statutes, want 2", len(statutes))
	}

	tort := statutes[0]
	if tort.ID != "minpo-709" {
		t.Errorf("statute id = %q", tort.ID)
	}
	if tort.Effect.Kind != ast.EffectObligation {
		t.Errorf("effect kind = %q, want obligation", tort.Effect.Kind)
	}
	if len(tort.Preconditions) != 2 {
		t.Fatalf("precondition count = %d, want 2", len(tort.Preconditions))
	}
	if tort.HasDiscretion() {
		t.Error("tort statute should not have discretion")
	}

	minors := statutes[1]
	if !minors.HasDiscretion() {
		t.Error("minors statute should have discretion")
	}
	if minors.Version != 2 {
		t.Errorf("version = %d, want 2", minors.Version)
	}
}

// Parsed statutes must evaluate the way hand-built ones do.
func TestParseStatutes_EvaluatesCorrectly(t *testing.T) {
	statutes, err := ParseStatutes([]byte(tortStatuteYAML))
	if err != nil {
		t.Fatalf("ParseStatutes returned error: %v", err)
	}
	tort := statutes[0]

	ev := engine.NewEvaluator(nil)

	fc := facts.NewContextBuilder("subject-a").
		WithBool("caused_harm", true).
		WithBool("intent", false).
		WithBool("negligence", true).
		Build()
	decision, err := ev.Evaluate(tort, fc)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if decision.Kind != engine.DecisionDeterministic || !decision.Satisfied {
		t.Errorf("decision = %+v, want deterministic satisfied", decision)
	}

	fc = facts.NewContextBuilder("subject-b").
		WithBool("caused_harm", true).
		Build()
	decision, err = ev.Evaluate(tort, fc)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if decision.Kind != engine.DecisionError || decision.MissingAttribute != "intent" {
		t.Errorf("decision = %+v, want evaluation error on intent", decision)
	}
}

func TestParseStatutes_UnknownOperator(t *testing.T) {
	_, err := ParseStatutes([]byte(`
statutes:
  - id: s-1
    title: bad operator
    version: 1
    effect:
      kind: grant
    preconditions:
      - attribute: age
        operator: "~="
        value: 18
`))
	if err == nil {
		t.Fatal("expected error for unknown operator")
	}
}

func TestParseStatutes_UnknownEffectKind(t *testing.T) {
	_, err := ParseStatutes([]byte(`
statutes:
  - id: s-1
    title: bad effect
    version: 1
    effect:
      kind: reward
    preconditions:
      - attribute: age
        value: 18
`))
	if err == nil {
		t.Fatal("expected error for unknown effect kind")
	}
}

func TestParseStatutes_EmptyCondition(t *testing.T) {
	_, err := ParseStatutes([]byte(`
statutes:
  - id: s-1
    title: empty condition
    version: 1
    effect:
      kind: grant
    preconditions:
      - {}
`))
	if err == nil {
		t.Fatal("expected error for empty condition")
	}
}

func TestFileSource_LoadSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statutes.yaml")
	if err := os.WriteFile(path, []byte(tortStatuteYAML), 0o600); err != nil {
		t.Fatalf("failed to write statute file: %v", err)
	}

	src := NewFileSource(path, nil)
	statutes, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(statutes) != 2 {
		t.Errorf("loaded %d statutes, want 2", len(statutes))
	}
}

func TestFileSource_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(tortStatuteYAML), 0o600); err != nil {
		t.Fatalf("failed to write statute file: %v", err)
	}
	// Invalid files are skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("statutes: [unclosed"), 0o600); err != nil {
		t.Fatalf("failed to write statute file: %v", err)
	}
	// Non-YAML files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a statute"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	src := NewFileSource(dir, nil)
	statutes, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(statutes) != 2 {
		t.Errorf("loaded %d statutes, want 2", len(statutes))
	}
}

func TestFileSource_MissingPath(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing"), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestMemorySource(t *testing.T) {
	s, err := ast.NewStatuteBuilder("s-1", "test statute").
		Version(1).
		Effect(ast.EffectGrant, "grants a right").
		Precondition(ast.AttributeEquals("eligible", facts.Bool(true))).
		Build()
	if err != nil {
		t.Fatalf("failed to build statute: %v", err)
	}

	src := NewMemorySource(s)
	statutes, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(statutes) != 1 || statutes[0].ID != "s-1" {
		t.Errorf("loaded statutes = %+v", statutes)
	}
}

// TestDebouncer_StopTwice tests that stopping an already stopped
// debouncer is a no-op; an explicit Stop followed by a deferred one must
// not panic.
func TestDebouncer_StopTwice(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	d.trigger(func() {})
	d.stop()
	d.stop()
}

func TestDebouncer_StopCancelsPendingCallback(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.trigger(func() { fired <- struct{}{} })
	d.stop()

	select {
	case <-fired:
		t.Error("callback fired after stop")
	case <-time.After(50 * time.Millisecond):
	}
}
