// YAML config loader with CUE validation integration
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Patient defines the simulated wearable's baselines and noise.
type Patient struct {
	HeartRateBaseline float64 `yaml:"heart_rate_baseline"`
	HeartRateNoise    float64 `yaml:"heart_rate_noise"`
	SpO2Baseline      float64 `yaml:"spo2_baseline"`
	SpO2Noise         float64 `yaml:"spo2_noise"`
	BPSystolic        float64 `yaml:"bp_systolic"`
}

// Deterioration defines the staged fault injection: after onset_tick the
// trend worsens linearly by the ramp values per tick.
type Deterioration struct {
	OnsetTick     int     `yaml:"onset_tick"`
	HeartRateRamp float64 `yaml:"heart_rate_ramp"`
	SpO2Ramp      float64 `yaml:"spo2_ramp"`
}

// Server holds HTTP surface settings.
type Server struct {
	ListenAddr    string  `yaml:"listen_addr"`
	DataRateRPS   float64 `yaml:"data_rate_rps"`
	DataRateBurst int     `yaml:"data_rate_burst"`
}

// MonitorConfig is the root configuration for the vitals monitor.
type MonitorConfig struct {
	Patient       Patient       `yaml:"patient"`
	Deterioration Deterioration `yaml:"deterioration"`
	Server        Server        `yaml:"server"`
}

// Default returns the stock configuration: 72 BPM / 98% SpO2 baselines,
// deterioration onset after 20 ticks.
func Default() *MonitorConfig {
	return &MonitorConfig{
		Patient: Patient{
			HeartRateBaseline: 72,
			HeartRateNoise:    2,
			SpO2Baseline:      98,
			SpO2Noise:         0.5,
			BPSystolic:        120,
		},
		Deterioration: Deterioration{
			OnsetTick:     20,
			HeartRateRamp: 2,
			SpO2Ramp:      0.5,
		},
		Server: Server{
			ListenAddr:    ":8080",
			DataRateRPS:   5,
			DataRateBurst: 10,
		},
	}
}

// Load loads YAML config over the defaults and validates it against a CUE
// schema first. An empty configPath returns the defaults unchanged.
func Load(configPath, cueSchemaPath string) (*MonitorConfig, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
