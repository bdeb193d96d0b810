// Package risk scores a vitals snapshot against multi-signal thresholds.
package risk

// Status labels an assessment by severity.
type Status string

// Status values, ordered Normal < ModerateRisk < Critical.
const (
	StatusNormal   Status = "normal"
	StatusModerate Status = "moderate_risk"
	StatusCritical Status = "critical"
)

// Scoring thresholds and contributions.
const (
	highHeartRate    = 100
	lowSpO2          = 95
	subtleHeartRate  = 90
	subtleSpO2       = 96
	heartRatePenalty = 20
	spo2Penalty      = 40
	subtlePenalty    = 30

	criticalScore = 70
	moderateScore = 40
	maxScore      = 100
)

// Assessment is the result of evaluating one vitals snapshot.
type Assessment struct {
	Score  int    `json:"score"`
	Status Status `json:"status"`
}

// Evaluate maps a vitals snapshot to a risk assessment. The contributions
// are additive: high heart rate and low SpO2 each count on their own, and a
// jointly abnormal pair earns an extra penalty even when neither value
// crosses its individual threshold.
func Evaluate(heartRate, bpSystolic, spo2 float64) Assessment {
	score := 0
	if heartRate > highHeartRate {
		score += heartRatePenalty
	}
	if spo2 < lowSpO2 {
		score += spo2Penalty
	}
	if heartRate > subtleHeartRate && spo2 < subtleSpO2 {
		score += subtlePenalty
	}

	status := StatusNormal
	if score > criticalScore {
		status = StatusCritical
	} else if score > moderateScore {
		status = StatusModerate
	}

	// Unreachable with the current contributions (max is 90) but kept so a
	// future rule change cannot push the score past 100.
	if score > maxScore {
		score = maxScore
	}
	return Assessment{Score: score, Status: status}
}
