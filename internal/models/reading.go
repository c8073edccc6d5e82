package models

import "time"

// Reading is one timestamped sensor sample for a room. Temperature and Smoke
// are pointers because a sample may carry either, both, or neither.
type Reading struct {
	RoomID      string    `json:"roomId"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature,omitempty"`
	Smoke       *int      `json:"smokeValue,omitempty"`
}
