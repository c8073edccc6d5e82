package models

import "time"

// Incident is the first-observed fire incident, persisted at most once per
// process run.
type Incident struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"roomId"`
	Temperature *float64  `json:"temperature,omitempty"`
	Smoke       *int      `json:"smokeValue,omitempty"`
	AlertTime   time.Time `json:"alertTime"`
}
