// Vitals structs with greptime tags
package vitals

import (
	"os"
	"time"
)

// VitalsRow represents one vitals record for GreptimeDB and log exports.
type VitalsRow struct {
	MonitorID  string    `json:"monitor_id"`  // TAG
	Tick       int       `json:"tick"`        // FIELD
	Phase      Phase     `json:"phase"`       // FIELD
	HeartRate  float64   `json:"heart_rate"`  // FIELD, BPM
	BPSystolic float64   `json:"bp_systolic"` // FIELD, mmHg
	SpO2       float64   `json:"spo2"`        // FIELD, percent
	Score      int       `json:"score"`       // FIELD, 0-100
	Status     string    `json:"status"`      // FIELD
	Timestamp  time.Time `json:"ts"`          // TIME INDEX
}

// VitalsTableName holds the table name used when writing to GreptimeDB.
// It defaults to "vital_signs" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var VitalsTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "vital_signs"
}()

func (VitalsRow) TableName() string {
	return VitalsTableName
}

// Snapshot holds the latest simulated sensor values.
type Snapshot struct {
	HeartRate  float64 `json:"heart_rate"`
	BPSystolic float64 `json:"bp_systolic"`
	SpO2       float64 `json:"spo2"`
}

// Patient holds runtime state for a simulated wearable.
type Patient struct {
	MonitorID string
	Snapshot  Snapshot
	Tick      int
	Phase     Phase
}

// Phase identifies the simulation stage for a patient.
type Phase string

// Simulation phases. The transition from stable to degrading is
// one-directional for the life of the process.
const (
	PhaseStable    Phase = "stable"
	PhaseDegrading Phase = "degrading"
)
