package service

import (
	"fmt"

	"firewatch/internal/models"
)

// Default alert thresholds.
const (
	DefaultTempThresholdC = 35.0
	DefaultSmokeThreshold = 400
)

// ThresholdEvaluator decides whether a reading is alert-triggering. It is
// pure: the caller owns every state transition.
type ThresholdEvaluator struct {
	TempC float64
	Smoke int
}

// Evaluate returns the alert reasons for r, empty when r is benign. A sample
// carrying only one of temperature/smoke is judged on whatever is present; a
// sample with neither is never alert-triggering.
func (e ThresholdEvaluator) Evaluate(r models.Reading) []string {
	var reasons []string
	if r.Temperature != nil && *r.Temperature > e.TempC {
		reasons = append(reasons, fmt.Sprintf("High Temperature (%g°C)", *r.Temperature))
	}
	if r.Smoke != nil && *r.Smoke > e.Smoke {
		reasons = append(reasons, "Smoke Detected")
	}
	return reasons
}
