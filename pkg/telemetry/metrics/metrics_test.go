package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEngineMetrics_RecordEvaluation(t *testing.T) {
	c := NewCollector(nil)

	c.Engine().RecordEvaluation("minpo-709", "deterministic", 50*time.Microsecond)
	c.Engine().RecordEvaluation("minpo-709", "deterministic", 75*time.Microsecond)
	c.Engine().RecordEvaluation("minpo-709", "requires_discretion", 60*time.Microsecond)

	got := testutil.ToFloat64(c.Engine().evaluationsTotal.WithLabelValues("minpo-709", "deterministic"))
	if got != 2 {
		t.Errorf("deterministic evaluations = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.Engine().evaluationsTotal.WithLabelValues("minpo-709", "requires_discretion"))
	if got != 1 {
		t.Errorf("requires_discretion evaluations = %v, want 1", got)
	}
}

func TestEngineMetrics_SetRegistrySize(t *testing.T) {
	c := NewCollector(nil)

	c.Engine().SetRegistrySize(7)
	if got := testutil.ToFloat64(c.Engine().registryStatutes); got != 7 {
		t.Errorf("registry size = %v, want 7", got)
	}
}

func TestLedgerMetrics_RecordAppend(t *testing.T) {
	c := NewCollector(nil)

	c.Ledger().RecordAppend("evaluation.recorded", 1)
	c.Ledger().RecordAppend("evaluation.recorded", 2)
	c.Ledger().RecordAppend("registry.changed", 3)

	got := testutil.ToFloat64(c.Ledger().appendsTotal.WithLabelValues("evaluation.recorded"))
	if got != 2 {
		t.Errorf("evaluation appends = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Ledger().chainLength); got != 3 {
		t.Errorf("chain length = %v, want 3", got)
	}
}

func TestLedgerMetrics_RecordVerification(t *testing.T) {
	c := NewCollector(nil)

	c.Ledger().RecordVerification(true, time.Millisecond)
	c.Ledger().RecordVerification(false, time.Millisecond)

	if got := testutil.ToFloat64(c.Ledger().verificationsTotal.WithLabelValues("valid")); got != 1 {
		t.Errorf("valid verifications = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Ledger().verificationsTotal.WithLabelValues("invalid")); got != 1 {
		t.Errorf("invalid verifications = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(nil)
	c.Engine().RecordEvaluation("minpo-709", "deterministic", time.Microsecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "minos_engine_evaluations_total") {
		t.Errorf("exposition missing engine counter:\n%s", body)
	}
}
