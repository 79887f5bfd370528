package anchor

import (
	"context"
	"path/filepath"
	"testing"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/audit/ledger"
	"tribunal-hq/minos/pkg/engine"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "anchors.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func grow(t *testing.T, l *ledger.Ledger, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := l.Append(ledger.Entry{
			EventType: audit.EventEvaluation,
			Actor:     audit.SystemActor(),
			StatuteID: "s-1",
			SubjectID: "p-1",
			Result:    engine.Deterministic(true),
		})
		if err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}
}

func hashAt(l *ledger.Ledger) func(int) (string, bool) {
	records := l.Records()
	return func(i int) (string, bool) {
		if i < 0 || i >= len(records) {
			return "", false
		}
		return records[i].RecordHash, true
	}
}

// TestAnchor_RecordAndLatest tests basic anchor persistence.
func TestAnchor_RecordAndLatest(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if _, ok, err := s.Latest(ctx); err != nil || ok {
		t.Fatalf("expected no anchors yet (ok=%v, err=%v)", ok, err)
	}

	if _, err := s.Record(ctx, 3, "aaa"); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if _, err := s.Record(ctx, 5, "bbb"); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	latest, ok, err := s.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("Latest() failed (ok=%v): %v", ok, err)
	}
	if latest.ChainLength != 5 || latest.TipHash != "bbb" {
		t.Errorf("expected latest anchor (5, bbb), got (%d, %s)", latest.ChainLength, latest.TipHash)
	}
}

// TestAnchor_CheckAgainst tests truncation and replacement detection.
func TestAnchor_CheckAgainst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	l := ledger.New(nil)
	grow(t, l, 4)

	if _, err := s.Record(ctx, l.Len(), l.TipHash()); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	// The chain growing past the anchor is fine.
	grow(t, l, 2)
	if err := s.CheckAgainst(ctx, l.Len(), hashAt(l)); err != nil {
		t.Errorf("expected grown chain to pass anchor check, got %v", err)
	}

	// A shorter chain fails.
	short := ledger.New(nil)
	grow(t, short, 2)
	if err := s.CheckAgainst(ctx, short.Len(), hashAt(short)); err == nil {
		t.Error("expected truncated chain to fail anchor check")
	}

	// A same-length chain with a different history fails.
	replaced := ledger.New(nil)
	grow(t, replaced, 6)
	if err := s.CheckAgainst(ctx, replaced.Len(), hashAt(replaced)); err == nil {
		t.Error("expected replaced chain to fail anchor check")
	}
}
