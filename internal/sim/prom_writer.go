package sim

import (
	"github.com/prometheus/client_golang/prometheus"

	"vitalsim/internal/vitals"
)

// PromWriter mirrors each vitals row into prometheus collectors so the
// latest state is scrapeable at /metrics.
type PromWriter struct {
	HeartRate   prometheus.Gauge
	BPSystolic  prometheus.Gauge
	SpO2        prometheus.Gauge
	RiskScore   prometheus.Gauge
	TicksTotal  prometheus.Counter
	StatusTotal *prometheus.CounterVec
	Degrading   prometheus.Gauge
}

// NewPromWriter registers the vitals collectors on the given registry.
func NewPromWriter(registry *prometheus.Registry) *PromWriter {
	w := &PromWriter{
		HeartRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vitalsim_heart_rate_bpm",
			Help: "Latest simulated heart rate in BPM.",
		}),
		BPSystolic: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vitalsim_bp_systolic_mmhg",
			Help: "Latest simulated systolic blood pressure in mmHg.",
		}),
		SpO2: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vitalsim_spo2_percent",
			Help: "Latest simulated oxygen saturation in percent.",
		}),
		RiskScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vitalsim_risk_score",
			Help: "Latest composite risk score (0-100).",
		}),
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vitalsim_ticks_total",
			Help: "Total number of simulator ticks.",
		}),
		StatusTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalsim_status_total",
			Help: "Ticks observed per risk status.",
		}, []string{"status"}),
		Degrading: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vitalsim_degrading",
			Help: "1 while the induced deterioration phase is active.",
		}),
	}

	registry.MustRegister(
		w.HeartRate,
		w.BPSystolic,
		w.SpO2,
		w.RiskScore,
		w.TicksTotal,
		w.StatusTotal,
		w.Degrading,
	)

	return w
}

// Write updates the collectors from a single vitals row.
func (w *PromWriter) Write(row vitals.VitalsRow) error {
	w.HeartRate.Set(row.HeartRate)
	w.BPSystolic.Set(row.BPSystolic)
	w.SpO2.Set(row.SpO2)
	w.RiskScore.Set(float64(row.Score))
	w.TicksTotal.Inc()
	w.StatusTotal.WithLabelValues(row.Status).Inc()
	if row.Phase == vitals.PhaseDegrading {
		w.Degrading.Set(1)
	} else {
		w.Degrading.Set(0)
	}
	return nil
}
