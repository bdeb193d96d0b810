// Simulator orchestrating the virtual wearable and vitals ticks
package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"vitalsim/internal/config"
	"vitalsim/internal/logging"
	"vitalsim/internal/risk"
	"vitalsim/internal/vitals"
)

// VitalsWriter is an interface to support different output writers.
type VitalsWriter interface {
	Write(vitals.VitalsRow) error
}

// Optional: Writers can also support batch mode
type batchWriter interface {
	WriteBatch([]vitals.VitalsRow) error
}

// DataPoint merges the latest vitals snapshot with its risk assessment into
// one flat object for the polling endpoint.
type DataPoint struct {
	MonitorID  string       `json:"monitor_id"`
	Tick       int          `json:"tick"`
	Phase      vitals.Phase `json:"phase"`
	HeartRate  float64      `json:"heart_rate"`
	BPSystolic float64      `json:"bp_systolic"`
	SpO2       float64      `json:"spo2"`
	Score      int          `json:"score"`
	Status     risk.Status  `json:"status"`
	Timestamp  time.Time    `json:"ts"`
}

// Simulator owns the patient state and drives vitals generation. The latest
// snapshot is the only shared mutable resource; all reads go through
// DataSnapshot under the mutex.
type Simulator struct {
	monitorID    string
	patient      *vitals.Patient
	gen          *vitals.Generator
	writer       VitalsWriter
	tickInterval time.Duration
	cfg          *config.MonitorConfig
	now          func() time.Time
	mu           sync.Mutex
	latest       vitals.VitalsRow
}

// NewSimulator initializes the patient from config. rng and now may be nil
// for the default time-seeded source and wall clock.
func NewSimulator(monitorID string, cfg *config.MonitorConfig, writer VitalsWriter, tickInterval time.Duration, rng *rand.Rand, now func() time.Time) *Simulator {
	if cfg == nil {
		cfg = config.Default()
	}
	if now == nil {
		now = time.Now
	}
	profile := vitals.Profile{
		HeartRateBaseline: cfg.Patient.HeartRateBaseline,
		HeartRateNoise:    cfg.Patient.HeartRateNoise,
		SpO2Baseline:      cfg.Patient.SpO2Baseline,
		SpO2Noise:         cfg.Patient.SpO2Noise,
		BPSystolic:        cfg.Patient.BPSystolic,
		OnsetTick:         cfg.Deterioration.OnsetTick,
		HeartRateRamp:     cfg.Deterioration.HeartRateRamp,
		SpO2Ramp:          cfg.Deterioration.SpO2Ramp,
	}
	s := &Simulator{
		monitorID:    monitorID,
		gen:          vitals.NewGenerator(profile, rng, now),
		writer:       writer,
		tickInterval: tickInterval,
		cfg:          cfg,
		now:          now,
		patient: &vitals.Patient{
			MonitorID: monitorID,
			Phase:     vitals.PhaseStable,
			Snapshot: vitals.Snapshot{
				HeartRate:  profile.HeartRateBaseline,
				BPSystolic: profile.BPSystolic,
				SpO2:       profile.SpO2Baseline,
			},
		},
	}
	// Seed the latest row so a poll before the first tick sees baselines.
	s.latest = vitals.VitalsRow{
		MonitorID:  monitorID,
		Phase:      vitals.PhaseStable,
		HeartRate:  profile.HeartRateBaseline,
		BPSystolic: profile.BPSystolic,
		SpO2:       profile.SpO2Baseline,
		Timestamp:  now().UTC(),
	}
	a := risk.Evaluate(s.latest.HeartRate, s.latest.BPSystolic, s.latest.SpO2)
	s.latest.Score = a.Score
	s.latest.Status = string(a.Status)
	return s
}

// Run starts the simulation loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "monitor_id", s.monitorID, "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// tick generates vitals, scores them, and writes the row.
func (s *Simulator) tick(ctx context.Context) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	row := s.gen.GenerateVitals(s.patient)
	a := risk.Evaluate(row.HeartRate, row.BPSystolic, row.SpO2)
	row.Score = a.Score
	row.Status = string(a.Status)
	s.latest = row
	s.mu.Unlock()

	if s.writer == nil {
		return
	}
	if bw, ok := s.writer.(batchWriter); ok {
		if err := bw.WriteBatch([]vitals.VitalsRow{row}); err != nil {
			log.Error("batch write failed", "err", err)
		}
	} else {
		if err := s.writer.Write(row); err != nil {
			log.Error("write failed", "monitor_id", row.MonitorID, "err", err)
		}
	}
}

// DataSnapshot returns the latest vitals merged with a fresh risk
// assessment.
func (s *Simulator) DataSnapshot() DataPoint {
	s.mu.Lock()
	row := s.latest
	s.mu.Unlock()

	a := risk.Evaluate(row.HeartRate, row.BPSystolic, row.SpO2)
	return DataPoint{
		MonitorID:  row.MonitorID,
		Tick:       row.Tick,
		Phase:      row.Phase,
		HeartRate:  row.HeartRate,
		BPSystolic: row.BPSystolic,
		SpO2:       row.SpO2,
		Score:      a.Score,
		Status:     a.Status,
		Timestamp:  row.Timestamp,
	}
}

// TickCount returns how many ticks have elapsed.
func (s *Simulator) TickCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patient.Tick
}

// Phase returns the current simulation phase.
func (s *Simulator) Phase() vitals.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patient.Phase
}

// GetConfig returns the monitor configuration.
func (s *Simulator) GetConfig() *config.MonitorConfig {
	return s.cfg
}
