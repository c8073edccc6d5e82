package service

import (
	"testing"

	"firewatch/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestThresholdEvaluator_Evaluate(t *testing.T) {
	eval := ThresholdEvaluator{TempC: 35.0, Smoke: 400}

	cases := []struct {
		name    string
		reading models.Reading
		want    []string
	}{
		{
			name:    "both below threshold",
			reading: models.Reading{Temperature: floatPtr(30), Smoke: intPtr(100)},
			want:    nil,
		},
		{
			name:    "at threshold is not alerting",
			reading: models.Reading{Temperature: floatPtr(35), Smoke: intPtr(400)},
			want:    nil,
		},
		{
			name:    "high temperature",
			reading: models.Reading{Temperature: floatPtr(40), Smoke: intPtr(100)},
			want:    []string{"High Temperature (40°C)"},
		},
		{
			name:    "smoke only sample over threshold",
			reading: models.Reading{Smoke: intPtr(500)},
			want:    []string{"Smoke Detected"},
		},
		{
			name:    "both over threshold",
			reading: models.Reading{Temperature: floatPtr(36.5), Smoke: intPtr(401)},
			want:    []string{"High Temperature (36.5°C)", "Smoke Detected"},
		},
		{
			name:    "empty sample never alerts",
			reading: models.Reading{},
			want:    nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := eval.Evaluate(tc.reading)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("reason %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
