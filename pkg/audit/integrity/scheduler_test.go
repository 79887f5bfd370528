package integrity

import (
	"context"
	"testing"
	"time"

	"tribunal-hq/minos/pkg/audit/recorder"
)

func TestScheduler_StartStop(t *testing.T) {
	l := seedLedger(t, 1)
	s := NewScheduler(NewSweeper(recorder.New(l, nil, nil, nil), nil, nil, nil), "0 * * * *", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler not running after Start")
	}
	if s.NextRun() == nil {
		t.Error("NextRun returned nil for scheduled sweep")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	l := seedLedger(t, 1)
	s := NewScheduler(NewSweeper(recorder.New(l, nil, nil, nil), nil, nil, nil), "every day at noon", nil)

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestScheduler_EmptyScheduleIsNoop(t *testing.T) {
	l := seedLedger(t, 1)
	s := NewScheduler(NewSweeper(recorder.New(l, nil, nil, nil), nil, nil, nil), "", nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler running with empty schedule")
	}
}

func TestScheduler_ContextCancelStops(t *testing.T) {
	l := seedLedger(t, 1)
	s := NewScheduler(NewSweeper(recorder.New(l, nil, nil, nil), nil, nil, nil), "0 * * * *", nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	cancel()

	deadline := time.After(2 * time.Second)
	for s.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("scheduler still running after context cancel")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
