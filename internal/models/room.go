package models

import "time"

// RoomStatus is the health status of a single room.
type RoomStatus string

const (
	StatusUnknown      RoomStatus = "UNKNOWN"       // known by roster, never reported
	StatusNormal       RoomStatus = "NORMAL"        // fresh data below thresholds
	StatusStale        RoomStatus = "STALE"         // no data past the stale timeout
	StatusAlertMissing RoomStatus = "ALERT_MISSING" // no data past the missing timeout
	StatusAlertFire    RoomStatus = "ALERT_FIRE"    // fire condition observed; sticky
)

// RoomState is the authoritative live state of one room.
// LastSeen carries the monotonic clock for staleness comparison;
// LastUpdate is the wall-clock instant shown on the dashboard.
type RoomState struct {
	RoomID      string
	Status      RoomStatus
	Details     string
	LastSeen    time.Time
	LastUpdate  time.Time
	Temperature *float64
	Smoke       *int
}
