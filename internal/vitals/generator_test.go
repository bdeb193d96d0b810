package vitals

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func newTestGenerator() *Generator {
	return NewGenerator(DefaultProfile(), rand.New(rand.NewSource(42)), nil)
}

func TestGenerateVitals_Stable(t *testing.T) {
	gen := newTestGenerator()
	patient := &Patient{MonitorID: "monitor-001"}

	row := gen.GenerateVitals(patient)

	if row.MonitorID != "monitor-001" {
		t.Errorf("expected monitor-001, got %s", row.MonitorID)
	}
	if row.Tick != 1 || patient.Tick != 1 {
		t.Errorf("expected tick 1, got row=%d patient=%d", row.Tick, patient.Tick)
	}
	if row.Phase != PhaseStable {
		t.Errorf("expected stable phase, got %s", row.Phase)
	}
	if time.Since(row.Timestamp) > 1*time.Second {
		t.Errorf("timestamp too old: %v", row.Timestamp)
	}
	// Values should stay within a few standard deviations of baseline.
	if math.Abs(row.HeartRate-72) > 10 {
		t.Errorf("heart rate too far from baseline: %f", row.HeartRate)
	}
	if math.Abs(row.SpO2-98) > 2.5 {
		t.Errorf("spo2 too far from baseline: %f", row.SpO2)
	}
	if row.BPSystolic != 120 {
		t.Errorf("expected fixed bp baseline 120, got %f", row.BPSystolic)
	}
}

func TestGenerateVitals_BPStaysConstant(t *testing.T) {
	gen := newTestGenerator()
	patient := &Patient{MonitorID: "monitor-001"}
	for i := 0; i < 50; i++ {
		row := gen.GenerateVitals(patient)
		if row.BPSystolic != 120 {
			t.Fatalf("bp changed at tick %d: %f", row.Tick, row.BPSystolic)
		}
	}
}

func TestGenerateVitals_DegradingDrift(t *testing.T) {
	gen := newTestGenerator()
	patient := &Patient{MonitorID: "monitor-001"}

	var row VitalsRow
	for i := 0; i < 40; i++ {
		row = gen.GenerateVitals(patient)
	}

	if row.Phase != PhaseDegrading {
		t.Errorf("expected degrading phase at tick 40, got %s", row.Phase)
	}
	// At tick 40 the drift adds (40-20)*2 to HR and subtracts (40-20)*0.5
	// from SpO2, up to injected noise.
	if math.Abs(row.HeartRate-(72+40)) > 10 {
		t.Errorf("heart rate drift off: got %f, want ~112", row.HeartRate)
	}
	if math.Abs(row.SpO2-(98-10)) > 2.5 {
		t.Errorf("spo2 drift off: got %f, want ~88", row.SpO2)
	}
}

func TestGenerateVitals_PhaseTransitionIsOneWay(t *testing.T) {
	gen := newTestGenerator()
	patient := &Patient{MonitorID: "monitor-001"}
	for i := 0; i < 21; i++ {
		gen.GenerateVitals(patient)
	}
	if patient.Phase != PhaseDegrading {
		t.Fatalf("expected degrading after onset, got %s", patient.Phase)
	}
	for i := 0; i < 10; i++ {
		if row := gen.GenerateVitals(patient); row.Phase != PhaseDegrading {
			t.Fatalf("phase reverted at tick %d: %s", row.Tick, row.Phase)
		}
	}
}

func TestGenerateVitals_SnapshotMatchesRow(t *testing.T) {
	gen := newTestGenerator()
	patient := &Patient{MonitorID: "monitor-001"}
	row := gen.GenerateVitals(patient)
	if patient.Snapshot.HeartRate != row.HeartRate ||
		patient.Snapshot.SpO2 != row.SpO2 ||
		patient.Snapshot.BPSystolic != row.BPSystolic {
		t.Errorf("snapshot %+v does not match row %+v", patient.Snapshot, row)
	}
}

func TestVitalsRowTableName(t *testing.T) {
	orig := VitalsTableName
	VitalsTableName = "custom"
	defer func() { VitalsTableName = orig }()
	if (VitalsRow{}).TableName() != "custom" {
		t.Errorf("expected custom table name, got %s", (VitalsRow{}).TableName())
	}
}
