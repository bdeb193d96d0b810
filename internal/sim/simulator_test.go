package sim

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"vitalsim/internal/config"
	"vitalsim/internal/risk"
	"vitalsim/internal/vitals"
)

// MockWriter collects vitals rows for validation
type MockWriter struct {
	Rows []vitals.VitalsRow
}

func (w *MockWriter) Write(row vitals.VitalsRow) error {
	w.Rows = append(w.Rows, row)
	return nil
}

func newTestSimulator(writer VitalsWriter) *Simulator {
	return NewSimulator("monitor-test", config.Default(), writer, time.Second, rand.New(rand.NewSource(7)), nil)
}

func TestSimulator_TickGeneratesVitals(t *testing.T) {
	writer := &MockWriter{}
	s := newTestSimulator(writer)

	s.tick(context.Background())

	if len(writer.Rows) != 1 {
		t.Fatalf("expected 1 vitals row, got %d", len(writer.Rows))
	}
	row := writer.Rows[0]
	if row.MonitorID != "monitor-test" {
		t.Errorf("row has wrong monitor ID: %+v", row)
	}
	if row.Tick != 1 {
		t.Errorf("expected tick 1, got %d", row.Tick)
	}
	if row.Status == "" {
		t.Errorf("expected scored row, got %+v", row)
	}
}

func TestSimulator_DataSnapshotBeforeFirstTick(t *testing.T) {
	s := newTestSimulator(nil)

	dp := s.DataSnapshot()
	if dp.HeartRate != 72 || dp.BPSystolic != 120 || dp.SpO2 != 98 {
		t.Errorf("expected baseline snapshot, got %+v", dp)
	}
	if dp.Score != 0 || dp.Status != risk.StatusNormal {
		t.Errorf("baselines should assess as normal: %+v", dp)
	}
	if dp.Tick != 0 || dp.Phase != vitals.PhaseStable {
		t.Errorf("expected tick 0 stable, got %+v", dp)
	}
}

func TestSimulator_DataSnapshotMergesAssessment(t *testing.T) {
	s := newTestSimulator(nil)
	for i := 0; i < 40; i++ {
		s.tick(context.Background())
	}

	dp := s.DataSnapshot()
	if dp.Tick != 40 {
		t.Errorf("expected tick 40, got %d", dp.Tick)
	}
	if dp.Phase != vitals.PhaseDegrading {
		t.Errorf("expected degrading phase, got %s", dp.Phase)
	}
	// At tick 40 the drift has pushed HR past 100 and SpO2 below 95, so all
	// three scoring rules fire.
	if dp.Score != 90 || dp.Status != risk.StatusCritical {
		t.Errorf("expected critical score 90, got %+v", dp)
	}
	want := risk.Evaluate(dp.HeartRate, dp.BPSystolic, dp.SpO2)
	if dp.Score != want.Score || dp.Status != want.Status {
		t.Errorf("snapshot assessment diverges from evaluator: %+v vs %+v", dp, want)
	}
}

func TestSimulator_NilWriterDoesNotPanic(t *testing.T) {
	s := newTestSimulator(nil)
	s.tick(context.Background())
	if s.TickCount() != 1 {
		t.Errorf("expected tick count 1, got %d", s.TickCount())
	}
}

func TestSimulator_RunStopsOnCancel(t *testing.T) {
	writer := &MockWriter{}
	s := NewSimulator("monitor-test", config.Default(), writer, 5*time.Millisecond, rand.New(rand.NewSource(7)), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
	if len(writer.Rows) == 0 {
		t.Errorf("expected at least one row from the run loop")
	}
}

func TestSimulator_PhaseNeverReverts(t *testing.T) {
	s := newTestSimulator(nil)
	for i := 0; i < 25; i++ {
		s.tick(context.Background())
	}
	if s.Phase() != vitals.PhaseDegrading {
		t.Fatalf("expected degrading phase, got %s", s.Phase())
	}
	for i := 0; i < 10; i++ {
		s.tick(context.Background())
		if s.Phase() != vitals.PhaseDegrading {
			t.Fatalf("phase reverted at tick %d", s.TickCount())
		}
	}
}

func TestSimulator_BatchWriterPreferred(t *testing.T) {
	writer := &mockBatchWriter{}
	s := NewSimulator("monitor-test", config.Default(), writer, time.Second, rand.New(rand.NewSource(7)), nil)
	s.tick(context.Background())
	if writer.batches != 1 || writer.singles != 0 {
		t.Errorf("expected one batch write, got batches=%d singles=%d", writer.batches, writer.singles)
	}
}

type mockBatchWriter struct {
	batches int
	singles int
}

func (w *mockBatchWriter) Write(vitals.VitalsRow) error { w.singles++; return nil }

func (w *mockBatchWriter) WriteBatch(rows []vitals.VitalsRow) error {
	w.batches++
	return nil
}
