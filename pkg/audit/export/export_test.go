package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/audit/ledger"
	"tribunal-hq/minos/pkg/engine"
)

func sampleRecords(t *testing.T, n int) []audit.Record {
	t.Helper()
	l := ledger.New(nil)
	for i := 0; i < n; i++ {
		_, err := l.Append(ledger.Entry{
			EventType:       audit.EventEvaluation,
			Actor:           audit.UserActor("clerk-1"),
			StatuteID:       "minpo-709",
			SubjectID:       "person-1",
			DecisionContext: map[string]string{"reasoner": "jp"},
			Result:          engine.Deterministic(true),
		})
		if err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}
	return l.Records()
}

// TestJSONExporter_Export tests JSON export round-trips records in order.
func TestJSONExporter_Export(t *testing.T) {
	records := sampleRecords(t, 3)

	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), records, &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	var decoded []audit.Record
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 records, got %d", len(decoded))
	}
	for i := range decoded {
		if decoded[i].RecordHash != records[i].RecordHash {
			t.Errorf("record %d: hash mismatch after export round trip", i)
		}
	}
}

// TestJSONExporter_Empty tests that an empty export is a valid JSON array.
func TestJSONExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(true).Export(context.Background(), nil, &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if buf.String() != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

// TestCSVExporter_Export tests CSV structure and order preservation.
func TestCSVExporter_Export(t *testing.T) {
	records := sampleRecords(t, 2)

	var buf bytes.Buffer
	if err := NewCSVExporter().Export(context.Background(), records, &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(rows) != 3 { // header + 2 records
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" {
		t.Errorf("expected header row, got %v", rows[0])
	}
	for i, r := range records {
		row := rows[i+1]
		if row[0] != r.ID {
			t.Errorf("row %d: expected id %q, got %q", i, r.ID, row[0])
		}
		if row[11] != r.RecordHash {
			t.Errorf("row %d: record hash column mismatch", i)
		}
	}
}
