package vitals

import (
	"math/rand"
	"time"
)

// Profile defines baselines and drift behavior for a simulated patient.
type Profile struct {
	HeartRateBaseline float64
	HeartRateNoise    float64
	SpO2Baseline      float64
	SpO2Noise         float64
	BPSystolic        float64
	OnsetTick         int
	HeartRateRamp     float64
	SpO2Ramp          float64
}

// DefaultProfile returns the stock wearable profile: normal fluctuation for
// the first 20 ticks, then a linearly worsening trend.
func DefaultProfile() Profile {
	return Profile{
		HeartRateBaseline: 72,
		HeartRateNoise:    2,
		SpO2Baseline:      98,
		SpO2Noise:         0.5,
		BPSystolic:        120,
		OnsetTick:         20,
		HeartRateRamp:     2,
		SpO2Ramp:          0.5,
	}
}

// Generator simulates vitals for a wearable sensor.
type Generator struct {
	profile Profile
	rng     *rand.Rand
	now     func() time.Time
}

// NewGenerator creates a vitals generator. rng and now may be nil, in which
// case a time-seeded source and time.Now are used.
func NewGenerator(profile Profile, rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{profile: profile, rng: rng, now: now}
}

// GenerateVitals advances a patient by one tick and returns a VitalsRow.
// Score and Status are filled in by the caller after risk evaluation.
func (g *Generator) GenerateVitals(p *Patient) VitalsRow {
	p.Tick++

	hr := g.profile.HeartRateBaseline + g.rng.NormFloat64()*g.profile.HeartRateNoise
	spo2 := g.profile.SpO2Baseline + g.rng.NormFloat64()*g.profile.SpO2Noise

	// Induced deterioration: past the onset tick the trend worsens linearly
	// with no saturation floor or ceiling.
	if p.Tick > g.profile.OnsetTick {
		elapsed := float64(p.Tick - g.profile.OnsetTick)
		hr += elapsed * g.profile.HeartRateRamp
		spo2 -= elapsed * g.profile.SpO2Ramp
		p.Phase = PhaseDegrading
	} else if p.Phase == "" {
		p.Phase = PhaseStable
	}

	p.Snapshot = Snapshot{
		HeartRate:  hr,
		BPSystolic: g.profile.BPSystolic,
		SpO2:       spo2,
	}

	return VitalsRow{
		MonitorID:  p.MonitorID,
		Tick:       p.Tick,
		Phase:      p.Phase,
		HeartRate:  hr,
		BPSystolic: g.profile.BPSystolic,
		SpO2:       spo2,
		Timestamp:  g.now().UTC(),
	}
}
